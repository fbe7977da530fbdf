package acquisitions

import (
	"strings"

	"github.com/mufattish/backend/internal/types"
)

// Exported spreadsheets write the four ordinal grades as single Arabic or
// Latin letters. Alef shows up both plain and hamza-bearing depending on the
// keyboard that produced the sheet.
var gradeLetters = []struct {
	grade   types.Grade
	letters []string
}{
	{types.GradeA, []string{"أ", "ا", "آ", "إ", "A", "a"}},
	{types.GradeB, []string{"ب", "B", "b"}},
	{types.GradeC, []string{"ج", "C", "c"}},
	{types.GradeD, []string{"د", "D", "d"}},
}

// maxGradeRunes guards against reading the first letter of a name fragment
// as a grade: anything longer than this many runes is never a grade cell.
const maxGradeRunes = 3

// RecognizeGrade classifies a single raw cell value as one of the four
// ordinal grades. It is pure and total: any input that does not resolve to
// exactly one grade yields ok=false, never an error.
func RecognizeGrade(raw string) (types.Grade, bool) {
	cell := strings.TrimSpace(raw)
	if cell == "" {
		return "", false
	}
	runes := []rune(cell)
	if len(runes) > maxGradeRunes {
		return "", false
	}
	for _, set := range gradeLetters {
		for _, letter := range set.letters {
			if cell == letter {
				return set.grade, true
			}
		}
	}
	// Very short cells may carry trailing punctuation or a diacritic after
	// the grade letter ("أ." and the like).
	if len(runes) <= 2 {
		for _, set := range gradeLetters {
			for _, letter := range set.letters {
				if strings.HasPrefix(cell, letter) {
					return set.grade, true
				}
			}
		}
	}
	return "", false
}
