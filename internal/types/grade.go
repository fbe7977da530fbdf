package types

// Grade is one of the four ordinal acquisition grades. A is best, D is worst.
// A cell that does not resolve to one of these carries no grade at all.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
)

// Points maps a grade onto the 0..3 scale used by every composite indicator.
func (g Grade) Points() int {
	switch g {
	case GradeA:
		return 3
	case GradeB:
		return 2
	case GradeC:
		return 1
	default:
		return 0
	}
}

// IsSuccess reports whether the grade counts toward a criterion success rate.
func (g Grade) IsSuccess() bool {
	return g == GradeA || g == GradeB
}
