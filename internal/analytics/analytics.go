// Package analytics computes read-only aggregates over a snapshot of
// the roster: rankings, risk flags, distribution statistics, and
// per-course averages.
//
// Every function takes a []types.Student and never modifies it. An
// empty snapshot yields an empty result rather than dividing by zero.
package analytics

import (
	"cmp"
	"errors"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/aanand-mishra/roster/internal/types"
)

// RiskThreshold is the gpa below which a student is at risk.
const RiskThreshold = 5.0

// Distribution cutoffs. Each bucket is half-open [lower, upper).
const (
	ExcellentCutoff = 8.0
	GoodCutoff      = 6.5
	AverageCutoff   = 5.0
)

// ErrInvalidN is returned by TopN for n < 1.
var ErrInvalidN = errors.New("n must be a positive integer")

// TopN returns the n students with the highest gpa, best first.
// Students with equal gpa keep their roster order.
func TopN(students []types.Student, n int) ([]types.Student, error) {
	if n < 1 {
		return nil, fmt.Errorf("TopN: %w: got %d", ErrInvalidN, n)
	}
	if len(students) == 0 {
		return make([]types.Student, 0), nil
	}

	ranked := slices.Clone(students)
	slices.SortStableFunc(ranked, func(a, b types.Student) int {
		return cmp.Compare(b.GPA, a.GPA)
	})

	return ranked[:min(n, len(ranked))], nil
}

// AtRisk returns every student whose gpa is strictly below
// RiskThreshold, in roster order.
func AtRisk(students []types.Student) []types.Student {
	out := make([]types.Student, 0)
	for _, s := range students {
		if s.GPA < RiskThreshold {
			out = append(out, s)
		}
	}
	return out
}

// Distribution counts students per gpa bucket.
type Distribution struct {
	Excellent int `json:"excellent"` // gpa >= 8.0
	Good      int `json:"good"`      // 6.5 <= gpa < 8.0
	Average   int `json:"average"`   // 5.0 <= gpa < 6.5
	Poor      int `json:"poor"`      // gpa < 5.0
}

// Stats are the descriptive statistics of the roster's gpas.
type Stats struct {
	Count        int          `json:"count"`
	Mean         float64      `json:"mean"`
	Median       float64      `json:"median"`
	Min          float64      `json:"min"`
	Max          float64      `json:"max"`
	Distribution Distribution `json:"distribution"`
}

// Describe computes Stats. ok is false for an empty snapshot.
//
// The median is the middle element for an odd count and the mean of
// the two central elements for an even count.
func Describe(students []types.Student) (stats Stats, ok bool) {
	if len(students) == 0 {
		return Stats{}, false
	}

	gpas := make([]float64, len(students))
	var sum float64
	for i, s := range students {
		gpas[i] = s.GPA
		sum += s.GPA
		classify(&stats.Distribution, s.GPA)
	}
	slices.Sort(gpas)

	n := len(gpas)
	stats.Count = n
	stats.Mean = sum / float64(n)
	stats.Min = gpas[0]
	stats.Max = gpas[n-1]
	if n%2 == 0 {
		stats.Median = (gpas[n/2-1] + gpas[n/2]) / 2
	} else {
		stats.Median = gpas[n/2]
	}

	return stats, true
}

func classify(d *Distribution, gpa float64) {
	switch {
	case gpa >= ExcellentCutoff:
		d.Excellent++
	case gpa >= GoodCutoff:
		d.Good++
	case gpa >= AverageCutoff:
		d.Average++
	default:
		d.Poor++
	}
}
