package acquisitions

import (
	"github.com/mufattish/backend/internal/types"
)

// GlobalComposites maps each omnibus student onto a composite percentage
// over every subject with a recorded grade, in input order.
func GlobalComposites(students []types.AcqGlobalStudent) []float64 {
	out := make([]float64, len(students))
	for i := range students {
		points, graded := 0, 0
		for _, g := range students[i].Subjects {
			points += g.Points()
			graded++
		}
		out[i] = percentOf(points, graded)
	}
	return out
}

// SubjectRate is the success rate of one subject column across the cohort.
type SubjectRate struct {
	Subject   string  `json:"subject"`
	Graded    int     `json:"graded"`
	Successes int     `json:"successes"`
	Rate      float64 `json:"rate"`
}

// SubjectSuccessRates computes, per discovered subject and in the given
// order, the share of graded students with A or B.
func SubjectSuccessRates(students []types.AcqGlobalStudent, subjects []string) []SubjectRate {
	rates := make([]SubjectRate, 0, len(subjects))
	for _, subject := range subjects {
		graded, successes := 0, 0
		for i := range students {
			g, ok := students[i].Subjects[subject]
			if !ok {
				continue
			}
			graded++
			if g.IsSuccess() {
				successes++
			}
		}
		rate := 0.0
		if graded > 0 {
			rate = float64(successes) / float64(graded) * 100
		}
		rates = append(rates, SubjectRate{
			Subject:   subject,
			Graded:    graded,
			Successes: successes,
			Rate:      rate,
		})
	}
	return rates
}

// EliteRate is the percentage of students whose every applicable subject
// grade is A. Subjects in excluded are not applicable; a student with no
// applicable subject at all is left out of both numerator and denominator.
func EliteRate(students []types.AcqGlobalStudent, excluded map[string]bool) float64 {
	return allOfRate(students, excluded, func(g types.Grade) bool {
		return g == types.GradeA
	})
}

// AcceptableRate is the percentage of students with no C or D among their
// applicable subjects, under the same applicability rule as EliteRate.
func AcceptableRate(students []types.AcqGlobalStudent, excluded map[string]bool) float64 {
	return allOfRate(students, excluded, func(g types.Grade) bool {
		return g.IsSuccess()
	})
}

func allOfRate(students []types.AcqGlobalStudent, excluded map[string]bool, pass func(types.Grade) bool) float64 {
	eligible, passing := 0, 0
	for i := range students {
		applicable := 0
		allPass := true
		for subject, g := range students[i].Subjects {
			if excluded[subject] {
				continue
			}
			applicable++
			if !pass(g) {
				allPass = false
			}
		}
		if applicable == 0 {
			continue
		}
		eligible++
		if allPass {
			passing++
		}
	}
	if eligible == 0 {
		return 0
	}
	return float64(passing) / float64(eligible) * 100
}
