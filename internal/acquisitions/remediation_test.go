package acquisitions

import (
	"testing"

	"github.com/mufattish/backend/internal/types"
)

func TestSuggestRemediation_RanksByFailureCount(t *testing.T) {
	// numbers_computation/3 failed by all three students,
	// problem_solving/2 by two, numbers_computation/1 by one.
	students := []types.AcqStudent{
		mathStudent(map[string]map[int]types.Grade{
			"numbers_computation": {1: types.GradeD, 3: types.GradeD},
			"problem_solving":     {2: types.GradeD},
		}),
		mathStudent(map[string]map[int]types.Grade{
			"numbers_computation": {1: types.GradeA, 3: types.GradeD},
			"problem_solving":     {2: types.GradeD},
		}),
		mathStudent(map[string]map[int]types.Grade{
			"numbers_computation": {1: types.GradeB, 3: types.GradeD},
			"problem_solving":     {2: types.GradeA},
		}),
	}
	suggestions := SuggestRemediation(students, &year2Math, 3)
	if len(suggestions) != 3 {
		t.Fatalf("got %d suggestions, want 3", len(suggestions))
	}

	first := suggestions[0]
	if first.CompetencyID != "numbers_computation" || first.CriterionID != 3 {
		t.Fatalf("top suggestion = %s/%d, want numbers_computation/3", first.CompetencyID, first.CriterionID)
	}
	if first.FailureCount != 3 || !almostEqual(first.FailureShare, 100) {
		t.Fatalf("top failure tally = %d at %v%%, want 3 at 100%%", first.FailureCount, first.FailureShare)
	}
	// The addition/subtraction criterion dispatches to the carrying entry.
	if first.RootCause != remediationKB[3].RootCause {
		t.Fatalf("top root cause = %q", first.RootCause)
	}

	second := suggestions[1]
	if second.CompetencyID != "problem_solving" || second.CriterionID != 2 || second.FailureCount != 2 {
		t.Fatalf("second suggestion = %+v", second)
	}
	// Measurement criterion dispatches to the measurement entry.
	if second.Suggestion != remediationKB[6].Suggestion {
		t.Fatalf("second suggestion text = %q", second.Suggestion)
	}

	if suggestions[2].CriterionID != 1 || suggestions[2].FailureCount != 1 {
		t.Fatalf("third suggestion = %+v", suggestions[2])
	}
}

func TestSuggestRemediation_LimitAndZeroFailures(t *testing.T) {
	students := []types.AcqStudent{
		mathStudent(map[string]map[int]types.Grade{
			"numbers_computation": {1: types.GradeD, 2: types.GradeD, 3: types.GradeD},
			"problem_solving":     {1: types.GradeA, 2: types.GradeB, 3: types.GradeA},
		}),
	}
	suggestions := SuggestRemediation(students, &year2Math, 2)
	if len(suggestions) != 2 {
		t.Fatalf("got %d suggestions, want limit of 2", len(suggestions))
	}
	for _, s := range suggestions {
		if s.CompetencyID != "numbers_computation" {
			t.Fatalf("criterion without failures suggested: %+v", s)
		}
	}
}

func TestSuggestRemediation_FallbackEntry(t *testing.T) {
	students := []types.AcqStudent{
		{ID: "s", FullName: "تلميذ", Results: map[string]map[int]types.Grade{
			// presentation criterion has no dedicated knowledge-base line.
			"written_comprehension": {5: types.GradeD},
		}},
	}
	suggestions := SuggestRemediation(students, &year2Arabic, 3)
	if len(suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(suggestions))
	}
	if suggestions[0].RootCause != remediationFallback.RootCause {
		t.Fatalf("expected the fallback root cause, got %q", suggestions[0].RootCause)
	}
}

func TestSuggestRemediation_EmptyInputs(t *testing.T) {
	if got := SuggestRemediation(nil, &year2Math, 3); len(got) != 0 {
		t.Fatalf("empty cohort yielded %d suggestions", len(got))
	}
	students := []types.AcqStudent{uniformMathStudent(types.GradeD)}
	if got := SuggestRemediation(students, &year2Math, 0); len(got) != 0 {
		t.Fatalf("zero limit yielded %d suggestions", len(got))
	}
}
