package acquisitions

import (
	"github.com/google/uuid"

	"github.com/mufattish/backend/internal/types"
)

// ParseDetailedGrid ingests a subject-specific spreadsheet export and emits
// one AcqStudent per row that carries the structural signature of a student.
//
// Rows that do not look like students (title bands, merged headers, footer
// totals) are dropped silently; so are rows with fewer resolved grades than
// the schema's minimum. An unsupported (level, subject) selector yields an
// empty list, not an error — callers wanting a distinct message should
// pre-validate against SupportedSelectors. The only error path is a failed
// workbook decode.
func ParseDetailedGrid(data []byte, level, subject string) ([]types.AcqStudent, error) {
	rows, err := decodeFirstSheet(data)
	if err != nil {
		return nil, err
	}

	def, ok := FindSubjectDefinition(level, subject)
	if !ok {
		return []types.AcqStudent{}, nil
	}

	students := make([]types.AcqStudent, 0, len(rows))
	for _, row := range rows {
		classified, ok := ClassifyRow(row)
		if !ok {
			continue
		}
		if len(classified.Grades) < def.MinGrades {
			continue
		}
		students = append(students, types.AcqStudent{
			ID:       uuid.NewString(),
			FullName: classified.Name,
			Results:  mapGrades(def, classified.Grades),
		})
	}
	return students, nil
}

// mapGrades lays the flat grade run onto the schema positionally: the first
// competency's criteria consume the leading grades in order, then the next
// competency, and so on. Slots past the end of the run stay absent.
func mapGrades(def *SubjectDefinition, grades []types.Grade) map[string]map[int]types.Grade {
	results := make(map[string]map[int]types.Grade, len(def.Competencies))
	idx := 0
	for _, comp := range def.Competencies {
		byCriterion := make(map[int]types.Grade, len(comp.Criteria))
		for _, crit := range comp.Criteria {
			if idx >= len(grades) {
				break
			}
			byCriterion[crit.ID] = grades[idx]
			idx++
		}
		results[comp.ID] = byCriterion
	}
	return results
}
