// Package filter implements the composable cohort filters. Every filter
// returns a boolean mask aligned to its input table plus a human-readable
// description for the exclusion report; masks compose by logical AND.
package filter

// Mask marks which rows of a table stay included.
type Mask []bool

// Count returns the number of included rows.
func (m Mask) Count() int {
	n := 0
	for _, keep := range m {
		if keep {
			n++
		}
	}
	return n
}

// And folds masks with logical AND. All masks must share a length; the fold
// is associative and commutative, so application order never matters.
func And(masks ...Mask) Mask {
	if len(masks) == 0 {
		return nil
	}
	out := make(Mask, len(masks[0]))
	copy(out, masks[0])
	for _, m := range masks[1:] {
		for i, keep := range m {
			out[i] = out[i] && keep
		}
	}
	return out
}
