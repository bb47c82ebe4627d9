package tile

import (
	"fmt"

	"github.com/gitrdm/beltcompiler/pkg/cnf"
)

// Literals is a flattened, row-major view over a (possibly
// multi-dimensional) field's literals, paired with the dimensions needed
// to reconstruct indices. A scalar bool field has Dims == nil and a single
// entry in Data.
type Literals struct {
	Dims []int
	Data []cnf.Literal
}

// At returns the literal at the given multi-dimensional index. It panics
// on an out-of-range or dimension-mismatched index — same convention as
// Instance.Get, since an invalid index here is a programming error, not a
// runtime condition.
func (l Literals) At(indices ...int) cnf.Literal {
	offset, ok := rowMajorOffset(l.Dims, indices)
	if !ok {
		panic(fmt.Sprintf("tile: index %v out of range for dims %v", indices, l.Dims))
	}
	return l.Data[offset]
}

// Scalar returns the sole literal of a zero-dimensional (bool) field.
func (l Literals) Scalar() cnf.Literal {
	return l.Data[0]
}

// Negate returns a new Literals with every entry sign-flipped, used to
// realise a "-field" alias term.
func (l Literals) Negate() Literals {
	out := make([]cnf.Literal, len(l.Data))
	for i, v := range l.Data {
		out[i] = -v
	}
	return Literals{Dims: l.Dims, Data: out}
}

func rowMajorOffset(dims []int, indices []int) (int, bool) {
	if len(indices) != len(dims) {
		return 0, false
	}
	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= dims[i] {
			return 0, false
		}
		stride := 1
		for _, d := range dims[i+1:] {
			stride *= d
		}
		offset += idx * stride
	}
	return offset, true
}
