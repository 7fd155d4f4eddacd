package analytics

import (
	"golang.org/x/exp/slices"

	"github.com/aanand-mishra/roster/internal/types"
)

// Status classifies a course by its mean gpa.
type Status string

const (
	StatusExcellent      Status = "Excellent"
	StatusGood           Status = "Good"
	StatusAverage        Status = "Average"
	StatusNeedsAttention Status = "Needs Attention"
)

// Course status cutoffs, applied to the course mean.
const (
	CourseExcellentCutoff = 7.5
	CourseGoodCutoff      = 6.0
	CourseAverageCutoff   = 5.0
)

// CourseSummary is one row of the per-course breakdown.
type CourseSummary struct {
	Course  string  `json:"course"`
	Count   int     `json:"count"`
	MeanGPA float64 `json:"mean_gpa"`
	Status  Status  `json:"status"`
}

// ByCourse groups students by exact course string and reports each
// group's mean gpa. Groups are ordered by course name, not by roster
// order.
func ByCourse(students []types.Student) []CourseSummary {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	courses := make([]string, 0)

	for _, s := range students {
		if _, seen := counts[s.Course]; !seen {
			courses = append(courses, s.Course)
		}
		sums[s.Course] += s.GPA
		counts[s.Course]++
	}
	slices.Sort(courses)

	out := make([]CourseSummary, 0, len(courses))
	for _, c := range courses {
		mean := sums[c] / float64(counts[c])
		out = append(out, CourseSummary{
			Course:  c,
			Count:   counts[c],
			MeanGPA: mean,
			Status:  CourseStatus(mean),
		})
	}
	return out
}

// CourseStatus maps a course mean gpa to its Status.
func CourseStatus(mean float64) Status {
	switch {
	case mean >= CourseExcellentCutoff:
		return StatusExcellent
	case mean >= CourseGoodCutoff:
		return StatusGood
	case mean >= CourseAverageCutoff:
		return StatusAverage
	default:
		return StatusNeedsAttention
	}
}

// Dashboard is the at-a-glance summary shown on startup.
type Dashboard struct {
	Total       int     `json:"total"`
	MeanGPA     float64 `json:"mean_gpa"`
	TopStudent  string  `json:"top_student"`
	MaxGPA      float64 `json:"max_gpa"`
	AtRiskCount int     `json:"at_risk"`
}

// Summarize builds the Dashboard. TopStudent is the name of the first
// student whose gpa is above zero and above every earlier gpa; it stays
// "N/A" for an empty roster or one where every gpa is zero.
func Summarize(students []types.Student) Dashboard {
	d := Dashboard{TopStudent: "N/A"}
	if len(students) == 0 {
		return d
	}

	var sum float64
	for _, s := range students {
		sum += s.GPA
		if s.GPA > d.MaxGPA {
			d.MaxGPA = s.GPA
			d.TopStudent = s.Name
		}
		if s.GPA < RiskThreshold {
			d.AtRiskCount++
		}
	}
	d.Total = len(students)
	d.MeanGPA = sum / float64(len(students))

	return d
}
