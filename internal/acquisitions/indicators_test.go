package acquisitions

import (
	"math"
	"testing"

	"github.com/mufattish/backend/internal/types"
)

func mathStudent(results map[string]map[int]types.Grade) types.AcqStudent {
	return types.AcqStudent{ID: "s", FullName: "تلميذ", Results: results}
}

// uniformMathStudent grades every year-2 math criterion with g.
func uniformMathStudent(g types.Grade) types.AcqStudent {
	results := make(map[string]map[int]types.Grade)
	for _, comp := range year2Math.Competencies {
		byCriterion := make(map[int]types.Grade, len(comp.Criteria))
		for _, crit := range comp.Criteria {
			byCriterion[crit.ID] = g
		}
		results[comp.ID] = byCriterion
	}
	return mathStudent(results)
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCompositePercent(t *testing.T) {
	s := mathStudent(map[string]map[int]types.Grade{
		"numbers_computation": {1: types.GradeA, 2: types.GradeB},
		"problem_solving":     {1: types.GradeC, 2: types.GradeD},
	})
	// 3+2+1+0 points over a ceiling of 4*3.
	if got := CompositePercent(s); !almostEqual(got, 50) {
		t.Fatalf("CompositePercent = %v, want 50", got)
	}

	if got := CompositePercent(mathStudent(nil)); got != 0 {
		t.Fatalf("CompositePercent of ungraded student = %v, want 0", got)
	}
	if got := CompositePercent(uniformMathStudent(types.GradeA)); !almostEqual(got, 100) {
		t.Fatalf("all-A composite = %v, want 100", got)
	}
	if got := CompositePercent(uniformMathStudent(types.GradeD)); !almostEqual(got, 0) {
		t.Fatalf("all-D composite = %v, want 0", got)
	}
}

func TestClassifyComposite_BandBoundsAreInclusive(t *testing.T) {
	cases := []struct {
		composite float64
		want      MasteryBand
	}{
		{100, BandControlled},
		{66, BandControlled},
		{65.9, BandPartial},
		{50, BandPartial},
		{33, BandPartial},
		{32.9, BandLimited},
		{0, BandLimited},
	}
	for _, tc := range cases {
		if got := ClassifyComposite(tc.composite); got != tc.want {
			t.Fatalf("ClassifyComposite(%v) = %q, want %q", tc.composite, got, tc.want)
		}
	}
}

func TestTallyBands(t *testing.T) {
	tally := TallyBands([]float64{100, 66, 65, 33, 20, 0})
	if tally.Controlled != 2 || tally.Partial != 2 || tally.Limited != 2 {
		t.Fatalf("tally = %+v, want 2/2/2", tally)
	}
}

func TestHomogeneity(t *testing.T) {
	if got := Homogeneity(nil); got != 0 {
		t.Fatalf("empty cohort = %v, want 0", got)
	}
	if got := Homogeneity([]float64{75, 75, 75}); !almostEqual(got, 0) {
		t.Fatalf("identical composites = %v, want 0", got)
	}
	if got := Homogeneity([]float64{0, 100}); !almostEqual(got, 50) {
		t.Fatalf("split cohort = %v, want 50", got)
	}
}

func TestAxisCompositePercent_ReportsMissingAxisData(t *testing.T) {
	s := mathStudent(map[string]map[int]types.Grade{
		"numbers_computation": {1: types.GradeA, 2: types.GradeA, 3: types.GradeB},
	})
	one, ok := AxisCompositePercent(s, year2Math.AxisOne)
	if !ok {
		t.Fatalf("axis one should have data")
	}
	if want := float64(3+3+2) / 9 * 100; !almostEqual(one, want) {
		t.Fatalf("axis one composite = %v, want %v", one, want)
	}
	if _, ok := AxisCompositePercent(s, year2Math.AxisTwo); ok {
		t.Fatalf("axis two has no recorded grades, ok must be false")
	}
}

func TestCriterionSuccessRates_WeakestFirst(t *testing.T) {
	// Criterion 3 of numbers_computation is failed by both students,
	// criterion 1 passed by both, criterion 2 split. problem_solving is
	// graded for nobody and must lead the ranking at rate 0 in schema
	// order.
	students := []types.AcqStudent{
		mathStudent(map[string]map[int]types.Grade{
			"numbers_computation": {1: types.GradeA, 2: types.GradeB, 3: types.GradeD},
		}),
		mathStudent(map[string]map[int]types.Grade{
			"numbers_computation": {1: types.GradeB, 2: types.GradeC, 3: types.GradeC},
		}),
	}
	rates := CriterionSuccessRates(students, &year2Math)
	if len(rates) != year2Math.TotalCriteria() {
		t.Fatalf("got %d rates, want %d", len(rates), year2Math.TotalCriteria())
	}
	for i := 1; i < len(rates); i++ {
		if rates[i].Rate < rates[i-1].Rate {
			t.Fatalf("ranking not ascending at %d: %v then %v", i, rates[i-1].Rate, rates[i].Rate)
		}
	}

	// Four zero-rate lines, ties keeping schema order: the universally
	// failed computation criterion, then the ungraded problem_solving
	// criteria.
	zero := rates[:4]
	for i, want := range []struct {
		comp string
		crit int
	}{
		{"numbers_computation", 3},
		{"problem_solving", 1},
		{"problem_solving", 2},
		{"problem_solving", 3},
	} {
		if zero[i].CompetencyID != want.comp || zero[i].CriterionID != want.crit {
			t.Fatalf("zero-rate line %d = %s/%d, want %s/%d",
				i, zero[i].CompetencyID, zero[i].CriterionID, want.comp, want.crit)
		}
	}
	if zero[0].Graded != 2 || zero[0].Successes != 0 {
		t.Fatalf("failed criterion tallied %d/%d, want 0/2", zero[0].Successes, zero[0].Graded)
	}

	last := rates[len(rates)-1]
	if last.CriterionID != 1 || !almostEqual(last.Rate, 100) {
		t.Fatalf("strongest line = %s/%d at %v, want criterion 1 at 100", last.CompetencyID, last.CriterionID, last.Rate)
	}
}

func TestTallyQuadrants(t *testing.T) {
	students := []types.AcqStudent{
		uniformMathStudent(types.GradeA), // strong on both axes
		uniformMathStudent(types.GradeD), // weak on both
		mathStudent(map[string]map[int]types.Grade{ // strong axis one only
			"numbers_computation": {1: types.GradeA, 2: types.GradeA, 3: types.GradeA},
			"problem_solving":     {1: types.GradeD, 2: types.GradeD, 3: types.GradeD},
		}),
		mathStudent(nil), // never graded, not classified
	}
	summary := TallyQuadrants(students, &year2Math)
	if summary.Classified != 3 {
		t.Fatalf("classified = %d, want 3", summary.Classified)
	}
	if summary.Counts[QuadrantStrongBoth] != 1 ||
		summary.Counts[QuadrantWeakBoth] != 1 ||
		summary.Counts[QuadrantStrongAxisOne] != 1 ||
		summary.Counts[QuadrantStrongAxisTwo] != 0 {
		t.Fatalf("counts = %v", summary.Counts)
	}
	total := 0
	for _, c := range summary.Counts {
		total += c
	}
	if total != summary.Classified {
		t.Fatalf("counts sum to %d, want %d", total, summary.Classified)
	}
	if summary.AxisOneLabel != year2Math.AxisOneLabel || summary.AxisTwoLabel != year2Math.AxisTwoLabel {
		t.Fatalf("axis labels not propagated: %+v", summary)
	}
}
