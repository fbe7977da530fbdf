package acquisitions

import (
	"regexp"
	"strings"

	"github.com/mufattish/backend/internal/normalization"
	"github.com/mufattish/backend/internal/types"
)

// ClassifiedRow is the structural signature of a student data row: a
// plausible personal name followed by a left-to-right run of grade tokens.
type ClassifiedRow struct {
	Name   string
	Grades []types.Grade
}

// nameScanWindow bounds how far into a row we look for the name; real
// exports put at most a couple of id/date columns before it.
const nameScanWindow = 6

var numericLikeRe = regexp.MustCompile(`^[0-9/.\-]+$`)

// Substrings marking a totals/averages footer row, matched against folded
// cell text. Any hit while scanning for a name rejects the whole row.
var summaryVocabulary = []string{
	"مجموع",
	"معدل",
	"نسبه",
	"total",
	"moyenne",
	"pourcentage",
	"average",
}

// Exact header captions that must never be taken for a student name.
var headerVocabulary = []string{
	"اللقب",
	"الاسم",
	"اللقب والاسم",
	"الاسم واللقب",
	"nom",
	"prenom",
	"nom et prenom",
	"nom & prenom",
}

// ClassifyRow decides whether a raw spreadsheet row represents a student
// and, if so, extracts the full name and the ordered grade tokens after it.
// Header rows, footer rows and anything without a name candidate in the
// leading cells are rejected.
func ClassifyRow(cells []string) (ClassifiedRow, bool) {
	populated := 0
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			populated++
		}
	}
	if populated < 2 {
		return ClassifiedRow{}, false
	}

	nameIdx := -1
	nameEnd := -1
	var name string

	limit := nameScanWindow
	if limit > len(cells) {
		limit = len(cells)
	}
	for i := 0; i < limit; i++ {
		cell := strings.TrimSpace(cells[i])
		if cell == "" {
			continue
		}
		if isSummaryText(cell) {
			// A totals row, no matter what follows.
			return ClassifiedRow{}, false
		}
		if numericLikeRe.MatchString(cell) {
			continue
		}
		if len([]rune(cell)) < 3 {
			continue
		}
		if _, ok := RecognizeGrade(cell); ok {
			continue
		}

		name = cell
		nameIdx = i
		nameEnd = i
		// Surname and first name are often split across two columns.
		if i+1 < len(cells) {
			next := strings.TrimSpace(cells[i+1])
			if looksLikeNamePart(next) {
				name = name + " " + next
				nameEnd = i + 1
			}
		}
		break
	}
	if nameIdx < 0 {
		return ClassifiedRow{}, false
	}

	name = normalizeName(name)
	if name == "" || isHeaderText(name) || isSummaryText(name) {
		return ClassifiedRow{}, false
	}

	var grades []types.Grade
	for i := nameEnd + 1; i < len(cells); i++ {
		if g, ok := RecognizeGrade(cells[i]); ok {
			grades = append(grades, g)
		}
	}
	return ClassifiedRow{Name: name, Grades: grades}, true
}

func looksLikeNamePart(cell string) bool {
	if cell == "" || len([]rune(cell)) <= 2 {
		return false
	}
	if numericLikeRe.MatchString(cell) {
		return false
	}
	if _, ok := RecognizeGrade(cell); ok {
		return false
	}
	return !isSummaryText(cell)
}

var nameQuoteStripper = strings.NewReplacer(
	`"`, "", "'", "", "«", "", "»", "", "“", "", "”", "",
)

func normalizeName(name string) string {
	name = nameQuoteStripper.Replace(name)
	return strings.Join(strings.Fields(name), " ")
}

func isSummaryText(cell string) bool {
	folded := normalization.NormalizeArabic(cell)
	for _, word := range summaryVocabulary {
		if strings.Contains(folded, word) {
			return true
		}
	}
	return false
}

func isHeaderText(name string) bool {
	folded := normalization.NormalizeArabic(name)
	for _, caption := range headerVocabulary {
		if folded == caption {
			return true
		}
	}
	return false
}
