package acquisitions

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/mufattish/backend/internal/normalization"
	"github.com/mufattish/backend/internal/types"
)

// ErrNoHeaderRow is returned when header discovery cannot attribute any
// columns. Unlike every other degenerate input, this one is a hard error:
// without a column map no subject attribution is possible at all.
var ErrNoHeaderRow = errors.New("no subject header row found")

// TamazightSubject is the one conditionally-applicable subject: schools that
// do not teach it have its column excluded from the elite/acceptable rates.
const TamazightSubject = "اللغة الأمازيغية"

// subjectKeywords maps folded keyword roots onto canonical subject labels.
// Evaluated top to bottom, first match wins, so more specific roots (the
// biological/technological science dimensions) must precede the generic
// science roots or the generic match swallows them. Do not reorder and do
// not turn this into a map.
var subjectKeywords = []struct {
	root  string
	label string
}{
	{"امازيغ", TamazightSubject},
	{"فرنسي", "اللغة الفرنسية"},
	{"اسلامي", "التربية الإسلامية"},
	{"مدني", "التربية المدنية"},
	{"تاريخ", "التاريخ والجغرافيا"},
	{"جغراف", "التاريخ والجغرافيا"},
	{"بيولوج", "التربية العلمية (البعد البيولوجي)"},
	{"تكنولوج", "التربية العلمية (البعد التكنولوجي)"},
	{"علمي", "التربية العلمية"},
	{"علوم", "التربية العلمية"},
	{"عربي", "اللغة العربية"},
	{"رياض", "الرياضيات"},
	{"حساب", "الرياضيات"},
}

// headerScanRows bounds how deep header discovery looks; omnibus exports
// put at most a few title/merged bands above the header.
const headerScanRows = 10

// minHeaderSubjects is the number of distinct subjects a row must name to
// count as the header, and the number of resolved grades a data row must
// carry to count as a student.
const minHeaderSubjects = 3

// GlobalParseResult is the output of ParseGlobalGrid: the accepted students
// and the canonical subject labels discovered in the header, in sheet
// column order.
type GlobalParseResult struct {
	Students []types.AcqGlobalStudent `json:"students"`
	Subjects []string                 `json:"subjects"`
}

// matchSubject resolves one header cell to a canonical subject label.
func matchSubject(cell string) (string, bool) {
	folded := normalization.NormalizeArabic(cell)
	if folded == "" {
		return "", false
	}
	for _, kw := range subjectKeywords {
		if strings.Contains(folded, kw.root) {
			return kw.label, true
		}
	}
	return "", false
}

// discoverHeader finds the first row naming at least minHeaderSubjects
// distinct subjects and returns its index plus the column map (canonical
// label -> column index of first appearance).
func discoverHeader(rows [][]string) (int, map[string]int, error) {
	limit := headerScanRows
	if limit > len(rows) {
		limit = len(rows)
	}
	for i := 0; i < limit; i++ {
		columns := make(map[string]int)
		for col, cell := range rows[i] {
			label, ok := matchSubject(cell)
			if !ok {
				continue
			}
			if _, seen := columns[label]; !seen {
				columns[label] = col
			}
		}
		if len(columns) >= minHeaderSubjects {
			return i, columns, nil
		}
	}
	return 0, nil, fmt.Errorf("%w: scanned the first %d rows without matching %d subjects", ErrNoHeaderRow, limit, minHeaderSubjects)
}

// ParseGlobalGrid ingests an omnibus spreadsheet where each row is one
// student and each column one subject. Column-to-subject attribution is
// discovered from the header by fuzzy root matching; there is no fixed
// template. Rows resolving fewer than three subject grades are dropped
// silently, as are totals rows.
func ParseGlobalGrid(data []byte) (*GlobalParseResult, error) {
	rows, err := decodeFirstSheet(data)
	if err != nil {
		return nil, err
	}
	headerIdx, columns, err := discoverHeader(rows)
	if err != nil {
		return nil, err
	}

	subjects := make([]string, 0, len(columns))
	for label := range columns {
		subjects = append(subjects, label)
	}
	sort.Slice(subjects, func(a, b int) bool {
		return columns[subjects[a]] < columns[subjects[b]]
	})

	students := make([]types.AcqGlobalStudent, 0, len(rows))
	for _, row := range rows[headerIdx+1:] {
		if len(row) == 0 {
			continue
		}
		if isSummaryText(row[0]) || (len(row) > 1 && isSummaryText(row[1])) {
			continue
		}
		number, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil {
			number = 0
		}

		grades := make(map[string]types.Grade)
		for label, col := range columns {
			if col >= len(row) {
				continue
			}
			if g, ok := RecognizeGrade(row[col]); ok {
				grades[label] = g
			}
		}
		if len(grades) < minHeaderSubjects {
			continue
		}
		students = append(students, types.AcqGlobalStudent{
			ID:       uuid.NewString(),
			Number:   number,
			Subjects: grades,
		})
	}
	return &GlobalParseResult{Students: students, Subjects: subjects}, nil
}
