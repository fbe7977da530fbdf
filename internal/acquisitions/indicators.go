package acquisitions

import (
	"math"
	"sort"

	"github.com/mufattish/backend/internal/types"
)

// MasteryBand is the tri-classification of a composite percentage.
type MasteryBand string

const (
	BandControlled MasteryBand = "controlled"
	BandPartial    MasteryBand = "partial"
	BandLimited    MasteryBand = "limited"
)

// ClassifyComposite places a composite percentage in its mastery band.
// Lower bounds are inclusive: 66 is controlled, 33 is partial.
func ClassifyComposite(composite float64) MasteryBand {
	switch {
	case composite >= 66:
		return BandControlled
	case composite >= 33:
		return BandPartial
	default:
		return BandLimited
	}
}

// maxPoints is the per-criterion ceiling of the A=3..D=0 scale.
const maxPoints = 3

// CompositePercent is the student's overall score: points summed over every
// criterion with a recorded grade, against the ceiling of those same
// criteria. A student with no recorded grade composites to 0, never NaN.
func CompositePercent(s types.AcqStudent) float64 {
	points, graded := 0, 0
	for _, byCriterion := range s.Results {
		for _, g := range byCriterion {
			points += g.Points()
			graded++
		}
	}
	return percentOf(points, graded)
}

// AxisCompositePercent restricts the composite to the given competencies.
// The second return is false when none of them carry a recorded grade.
func AxisCompositePercent(s types.AcqStudent, competencyIDs []string) (float64, bool) {
	points, graded := 0, 0
	for _, id := range competencyIDs {
		for _, g := range s.Results[id] {
			points += g.Points()
			graded++
		}
	}
	if graded == 0 {
		return 0, false
	}
	return percentOf(points, graded), true
}

func percentOf(points, graded int) float64 {
	if graded == 0 {
		return 0
	}
	return float64(points) / float64(maxPoints*graded) * 100
}

// ClassComposites returns the per-student composite percentages in input
// order.
func ClassComposites(students []types.AcqStudent) []float64 {
	out := make([]float64, len(students))
	for i := range students {
		out[i] = CompositePercent(students[i])
	}
	return out
}

// Homogeneity is the population standard deviation (divide by N) of the
// composite percentages. Lower means a more homogeneous cohort. An empty
// input yields 0.
func Homogeneity(composites []float64) float64 {
	n := len(composites)
	if n == 0 {
		return 0
	}
	mean := 0.0
	for _, c := range composites {
		mean += c
	}
	mean /= float64(n)

	variance := 0.0
	for _, c := range composites {
		d := c - mean
		variance += d * d
	}
	variance /= float64(n)
	return math.Sqrt(variance)
}

// BandTally counts students per mastery band.
type BandTally struct {
	Controlled int `json:"controlled"`
	Partial    int `json:"partial"`
	Limited    int `json:"limited"`
}

func TallyBands(composites []float64) BandTally {
	var t BandTally
	for _, c := range composites {
		switch ClassifyComposite(c) {
		case BandControlled:
			t.Controlled++
		case BandPartial:
			t.Partial++
		default:
			t.Limited++
		}
	}
	return t
}

// CriterionRate is one line of the per-criterion success ranking.
type CriterionRate struct {
	CompetencyID    string  `json:"competency_id"`
	CompetencyLabel string  `json:"competency_label"`
	CriterionID     int     `json:"criterion_id"`
	CriterionLabel  string  `json:"criterion_label"`
	Graded          int     `json:"graded"`
	Successes       int     `json:"successes"`
	Rate            float64 `json:"rate"`
}

// CriterionSuccessRates computes, for every criterion of the schema, the
// share of graded students with A or B, and ranks criteria ascending by that
// rate (weakest first). Criteria nobody was graded on rate 0 and therefore
// lead the ranking; ties keep schema order.
func CriterionSuccessRates(students []types.AcqStudent, def *SubjectDefinition) []CriterionRate {
	rates := make([]CriterionRate, 0, def.TotalCriteria())
	for _, comp := range def.Competencies {
		for _, crit := range comp.Criteria {
			graded, successes := 0, 0
			for i := range students {
				g, ok := students[i].GradeAt(comp.ID, crit.ID)
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
			rates = append(rates, CriterionRate{
				CompetencyID:    comp.ID,
				CompetencyLabel: comp.Label,
				CriterionID:     crit.ID,
				CriterionLabel:  crit.Label,
				Graded:          graded,
				Successes:       successes,
				Rate:            rate,
			})
		}
	}
	sort.SliceStable(rates, func(a, b int) bool {
		return rates[a].Rate < rates[b].Rate
	})
	return rates
}

// Performance quadrant keys: axis one is the first competency group of the
// subject definition, axis two the second, each split at 50%.
const (
	QuadrantStrongBoth    = "strong_both"
	QuadrantStrongAxisOne = "strong_axis_one"
	QuadrantStrongAxisTwo = "strong_axis_two"
	QuadrantWeakBoth      = "weak_both"
)

// QuadrantSummary aggregates the 2x2 performance classification. Counts sum
// to Classified: every student with at least one recorded grade lands in
// exactly one quadrant (an axis with no data composites to 0).
type QuadrantSummary struct {
	AxisOneLabel string             `json:"axis_one_label"`
	AxisTwoLabel string             `json:"axis_two_label"`
	Classified   int                `json:"classified"`
	Counts       map[string]int     `json:"counts"`
	Percents     map[string]float64 `json:"percents"`
}

func TallyQuadrants(students []types.AcqStudent, def *SubjectDefinition) QuadrantSummary {
	counts := map[string]int{
		QuadrantStrongBoth:    0,
		QuadrantStrongAxisOne: 0,
		QuadrantStrongAxisTwo: 0,
		QuadrantWeakBoth:      0,
	}
	classified := 0
	for i := range students {
		one, okOne := AxisCompositePercent(students[i], def.AxisOne)
		two, okTwo := AxisCompositePercent(students[i], def.AxisTwo)
		if !okOne && !okTwo {
			continue
		}
		classified++
		switch {
		case one >= 50 && two >= 50:
			counts[QuadrantStrongBoth]++
		case one >= 50:
			counts[QuadrantStrongAxisOne]++
		case two >= 50:
			counts[QuadrantStrongAxisTwo]++
		default:
			counts[QuadrantWeakBoth]++
		}
	}

	percents := make(map[string]float64, len(counts))
	for key, count := range counts {
		if classified == 0 {
			percents[key] = 0
			continue
		}
		percents[key] = float64(count) / float64(classified) * 100
	}
	return QuadrantSummary{
		AxisOneLabel: def.AxisOneLabel,
		AxisTwoLabel: def.AxisTwoLabel,
		Classified:   classified,
		Counts:       counts,
		Percents:     percents,
	}
}
