// Package targetscore computes the scores needed for the top grades of a chart.
package targetscore

// Targets are the minimum scores for each grade, MAX is a perfect score.
type Targets struct {
	AAAMinus int
	AAA      int
	MAXMinus int
	MAX      int
}

// ceilDiv is ceil(a/b) for non-negative a and positive b.
func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Compute returns the targets of a chart with the given note count. notes must
// be known, callers show a placeholder for charts whose note count is -1.
func Compute(notes int) Targets {
	if notes < 0 {
		panic("expected a known note count")
	}

	perfect := notes * 2
	aaa := ceilDiv(perfect*8, 9)
	aa := ceilDiv(perfect*7, 9)

	return Targets{
		AAAMinus: ceilDiv(aa+aaa, 2),
		AAA:      aaa,
		MAXMinus: ceilDiv(aaa+perfect, 2),
		MAX:      perfect,
	}
}
