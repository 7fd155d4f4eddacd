package insight

import (
	"fmt"
	"strings"

	"github.com/aanand-mishra/roster/internal/analytics"
	"github.com/aanand-mishra/roster/internal/types"
)

// Kind selects which prompt is built.
type Kind string

const (
	KindClass        Kind = "class"
	KindIntervention Kind = "intervention"
	KindFeedback     Kind = "feedback"
	KindPredictive   Kind = "predictive"
)

// Kinds lists every supported kind in menu order.
var Kinds = []Kind{KindClass, KindIntervention, KindFeedback, KindPredictive}

// NeedsStudent reports whether k is about a single student.
func (k Kind) NeedsStudent() bool {
	return k == KindIntervention || k == KindFeedback
}

// ParseKind converts user input into a Kind.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == strings.ToLower(strings.TrimSpace(s)) {
			return k, true
		}
	}
	return "", false
}

// ClassPrompt summarizes the whole roster.
func ClassPrompt(students []types.Student) string {
	d := analytics.Summarize(students)

	var b strings.Builder
	b.WriteString("Analyze this student class data:\n")
	fmt.Fprintf(&b, "Total Students: %d\n", d.Total)
	fmt.Fprintf(&b, "Average GPA: %.2f\n", d.MeanGPA)
	b.WriteString("Provide insights on overall class performance, trends, and recommendations.")
	return b.String()
}

// InterventionPrompt asks for an improvement plan for one student.
func InterventionPrompt(s types.Student) string {
	var b strings.Builder
	b.WriteString("Student Profile:\n")
	fmt.Fprintf(&b, "Name: %s\n", s.Name)
	fmt.Fprintf(&b, "Course: %s\n", s.Course)
	fmt.Fprintf(&b, "Current GPA: %g\n", s.GPA)
	b.WriteString("Suggest specific intervention strategies and action items to help this student improve.")
	return b.String()
}

// FeedbackPrompt asks for personalized feedback for one student.
func FeedbackPrompt(s types.Student) string {
	var b strings.Builder
	b.WriteString("Generate detailed personalized feedback for:\n")
	fmt.Fprintf(&b, "Student: %s\n", s.Name)
	fmt.Fprintf(&b, "Course: %s\n", s.Course)
	fmt.Fprintf(&b, "GPA: %g\n", s.GPA)
	b.WriteString("Include strengths, areas for improvement, and encouragement.")
	return b.String()
}

// PredictivePrompt lists each course's mean gpa, ordered by course name.
func PredictivePrompt(students []types.Student) string {
	var b strings.Builder
	b.WriteString("Based on this academic data, provide predictive insights:\n")
	for _, c := range analytics.ByCourse(students) {
		fmt.Fprintf(&b, "Course: %s, Avg GPA: %.2f\n", c.Course, c.MeanGPA)
	}
	b.WriteString("Predict trends, potential challenges, and provide proactive recommendations.")
	return b.String()
}
