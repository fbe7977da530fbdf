package types

// AcqStudent is one normalized row of a subject-specific acquisition grid.
// Results is keyed by competency id, then by 1-based criterion id; criteria
// the sheet never graded are simply absent. The struct is plain data and is
// persisted as opaque JSON inside an AcqClassRecord.
type AcqStudent struct {
	ID       string                   `json:"id"`
	FullName string                   `json:"fullName"`
	Results  map[string]map[int]Grade `json:"results"`
}

// GradeAt returns the grade recorded for (competencyID, criterionID), if any.
func (s *AcqStudent) GradeAt(competencyID string, criterionID int) (Grade, bool) {
	crits, ok := s.Results[competencyID]
	if !ok {
		return "", false
	}
	g, ok := crits[criterionID]
	return g, ok
}

// AcqGlobalStudent is one row of an omnibus grid: one grade per discovered
// subject. Number is the roll number the sheet itself carried, not the row's
// position, and downstream ordering must use it.
type AcqGlobalStudent struct {
	ID       string           `json:"id"`
	Number   int              `json:"number"`
	Subjects map[string]Grade `json:"subjects"`
}
