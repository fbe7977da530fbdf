package acquisitions

import (
	"testing"

	"github.com/mufattish/backend/internal/types"
)

func TestParseDetailedGrid_SecondYearArabic(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"المقاطعة التفتيشية الأولى"},
		{"الرقم", "اللقب والاسم", "م1", "م2", "م3", "م4", "م5", "م6", "م7", "م8"},
		{"1", "بن علي محمد", "أ", "ب", "أ", "ب", "ج", "أ", "ب", "د"},
		{"المجموع", "", "", ""},
	})

	students, err := ParseDetailedGrid(data, LevelYear2, "اللغة العربية")
	if err != nil {
		t.Fatalf("ParseDetailedGrid: %v", err)
	}
	if len(students) != 1 {
		t.Fatalf("got %d students, want 1", len(students))
	}
	s := students[0]
	if s.FullName != "بن علي محمد" {
		t.Fatalf("name = %q, want %q", s.FullName, "بن علي محمد")
	}
	if s.ID == "" {
		t.Fatalf("expected a generated student id")
	}

	wantReading := map[int]types.Grade{1: types.GradeA, 2: types.GradeB, 3: types.GradeA}
	wantWritten := map[int]types.Grade{
		1: types.GradeB, 2: types.GradeC, 3: types.GradeA, 4: types.GradeB, 5: types.GradeD,
	}
	assertResults(t, s, "reading_performance", wantReading)
	assertResults(t, s, "written_comprehension", wantWritten)
}

func assertResults(t *testing.T, s types.AcqStudent, competencyID string, want map[int]types.Grade) {
	t.Helper()
	got := s.Results[competencyID]
	if len(got) != len(want) {
		t.Fatalf("%s: got %d grades, want %d", competencyID, len(got), len(want))
	}
	for id, grade := range want {
		if got[id] != grade {
			t.Fatalf("%s criterion %d = %q, want %q", competencyID, id, got[id], grade)
		}
	}
}

func TestParseDetailedGrid_PositionalMappingYear4Arabic(t *testing.T) {
	// 19 tokens cycling A,B,C,D so every position is distinguishable.
	cycle := []string{"أ", "ب", "ج", "د"}
	row := []interface{}{"1", "بوقرة إلياس"}
	for i := 0; i < 19; i++ {
		row = append(row, cycle[i%4])
	}
	data := buildWorkbook(t, [][]interface{}{row})

	students, err := ParseDetailedGrid(data, LevelYear4, "اللغة العربية")
	if err != nil {
		t.Fatalf("ParseDetailedGrid: %v", err)
	}
	if len(students) != 1 {
		t.Fatalf("got %d students, want 1", len(students))
	}
	s := students[0]

	gradeCycle := []types.Grade{types.GradeA, types.GradeB, types.GradeC, types.GradeD}
	def, _ := FindSubjectDefinition(LevelYear4, "اللغة العربية")
	flat := 0
	for _, comp := range def.Competencies {
		for _, crit := range comp.Criteria {
			got, ok := s.GradeAt(comp.ID, crit.ID)
			if !ok {
				t.Fatalf("missing grade at %s/%d (flat index %d)", comp.ID, crit.ID, flat)
			}
			if want := gradeCycle[flat%4]; got != want {
				t.Fatalf("%s/%d = %q, want %q (flat index %d)", comp.ID, crit.ID, got, want, flat)
			}
			flat++
		}
	}
	if flat != 19 {
		t.Fatalf("walked %d criteria, want 19", flat)
	}
}

func TestParseDetailedGrid_ThresholdBoundary(t *testing.T) {
	// Year-2 math accepts rows with at least 3 resolved grades.
	under := buildWorkbook(t, [][]interface{}{
		{"1", "بن عودة أمينة", "أ", "ب"},
	})
	students, err := ParseDetailedGrid(under, LevelYear2, "الرياضيات")
	if err != nil {
		t.Fatalf("ParseDetailedGrid: %v", err)
	}
	if len(students) != 0 {
		t.Fatalf("row under threshold produced %d students, want 0", len(students))
	}

	exact := buildWorkbook(t, [][]interface{}{
		{"1", "بن عودة أمينة", "أ", "ب", "ج"},
	})
	students, err = ParseDetailedGrid(exact, LevelYear2, "الرياضيات")
	if err != nil {
		t.Fatalf("ParseDetailedGrid: %v", err)
	}
	if len(students) != 1 {
		t.Fatalf("row meeting threshold produced %d students, want 1", len(students))
	}

	// The three grades fill the first competency; the second stays empty.
	s := students[0]
	if got := len(s.Results["numbers_computation"]); got != 3 {
		t.Fatalf("numbers_computation has %d grades, want 3", got)
	}
	if got := len(s.Results["problem_solving"]); got != 0 {
		t.Fatalf("problem_solving has %d grades, want 0 (trailing slots stay absent)", got)
	}
}

func TestParseDetailedGrid_SummaryRowNeverAStudent(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"المجموع", "", "", ""},
	})
	for _, sel := range SupportedSelectors() {
		students, err := ParseDetailedGrid(data, sel.Level, sel.SubjectLabel)
		if err != nil {
			t.Fatalf("ParseDetailedGrid(%v): %v", sel, err)
		}
		if len(students) != 0 {
			t.Fatalf("summary-only sheet produced %d students under %v", len(students), sel)
		}
	}
}

func TestParseDetailedGrid_UnsupportedSelectorYieldsEmpty(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"1", "بن علي محمد", "أ", "ب", "أ", "ب", "ج", "أ", "ب", "د"},
	})
	students, err := ParseDetailedGrid(data, "3", "اللغة العربية")
	if err != nil {
		t.Fatalf("ParseDetailedGrid: %v", err)
	}
	if len(students) != 0 {
		t.Fatalf("unsupported selector produced %d students, want 0", len(students))
	}
}

func TestParseDetailedGrid_ReparseIsIdenticalUpToIDs(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"1", "بن علي محمد", "أ", "ب", "أ", "ب", "ج", "أ", "ب", "د"},
		{"2", "بوزيد سمية", "ب", "ب", "ج", "د", "أ", "ب", "ج", "ج"},
	})

	first, err := ParseDetailedGrid(data, LevelYear2, "اللغة العربية")
	if err != nil {
		t.Fatalf("first parse: %v", err)
	}
	second, err := ParseDetailedGrid(data, LevelYear2, "اللغة العربية")
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if len(first) != len(second) {
		t.Fatalf("parses disagree on student count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID == second[i].ID {
			t.Fatalf("student %d: ids must be freshly generated per parse", i)
		}
		if first[i].FullName != second[i].FullName {
			t.Fatalf("student %d: names differ: %q vs %q", i, first[i].FullName, second[i].FullName)
		}
		for compID, byCriterion := range first[i].Results {
			for critID, grade := range byCriterion {
				if second[i].Results[compID][critID] != grade {
					t.Fatalf("student %d: %s/%d differs between parses", i, compID, critID)
				}
			}
		}
	}
}
