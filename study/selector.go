package study

import (
	"slices"

	"github.com/erraggy/smdconv/smderrors"
)

// Selector picks studies either by a boolean mask or by a list of zero-based
// indices. The zero value is an absent selector.
type Selector struct {
	mask    []bool
	indices []int
	isIndex bool
}

// Mask returns a selector backed by a per-study boolean mask.
func Mask(m ...bool) Selector {
	return Selector{mask: slices.Clone(m)}
}

// Indices returns a selector backed by zero-based study indices.
func Indices(idx ...int) Selector {
	return Selector{indices: slices.Clone(idx), isIndex: true}
}

// IsZero reports whether the selector was never set.
func (s Selector) IsZero() bool {
	return s.mask == nil && s.indices == nil
}

// IsIndex reports whether the selector is an index list.
func (s Selector) IsIndex() bool {
	return s.isIndex
}

// Len returns the length of the underlying mask or index list.
func (s Selector) Len() int {
	if s.isIndex {
		return len(s.indices)
	}
	return len(s.mask)
}

// Count returns the number of selected entries: true values for a mask, the
// list length for indices.
func (s Selector) Count() int {
	if s.isIndex {
		return len(s.indices)
	}
	n := 0
	for _, b := range s.mask {
		if b {
			n++
		}
	}
	return n
}

// Validate checks the selector against k studies. argument names the input
// in the returned error.
func (s Selector) Validate(argument string, k int) error {
	if s.IsZero() {
		return nil
	}
	if s.Count() > k || s.Len() > k {
		actual := s.Count()
		if s.Len() > actual {
			actual = s.Len()
		}
		return &smderrors.LengthMismatchError{
			Argument: argument,
			Expected: k,
			Actual:   actual,
			Message:  "selector is larger than number of studies",
		}
	}
	for _, i := range s.indices {
		if i < 0 || i >= k {
			return &smderrors.LengthMismatchError{
				Argument: argument,
				Expected: k,
				Actual:   i,
				Message:  "index out of range",
			}
		}
	}
	return nil
}

// Bools expands the selector to a k-length mask. Mask entries past the end of
// a short mask are false. An absent selector returns nil.
func (s Selector) Bools(k int) []bool {
	if s.IsZero() {
		return nil
	}
	out := make([]bool, k)
	if s.isIndex {
		for _, i := range s.indices {
			if i >= 0 && i < k {
				out[i] = true
			}
		}
		return out
	}
	copy(out, s.mask)
	return out
}
