package tile

import (
	"testing"

	"github.com/gitrdm/beltcompiler/pkg/cnf"
)

func TestLiteralsAtPanicsOnOutOfRangeIndex(t *testing.T) {
	l := Literals{Dims: []int{2, 3}, Data: make([]cnf.Literal, 6)}

	defer func() {
		if r := recover(); r == nil {
			t.Error("At with an out-of-range index should panic")
		}
	}()
	l.At(2, 0)
}

func TestLiteralsAtPanicsOnDimensionMismatch(t *testing.T) {
	l := Literals{Dims: []int{2, 3}, Data: make([]cnf.Literal, 6)}

	defer func() {
		if r := recover(); r == nil {
			t.Error("At with the wrong number of indices should panic")
		}
	}()
	l.At(1)
}

func TestLiteralsAtReturnsInRangeLiteral(t *testing.T) {
	data := make([]cnf.Literal, 6)
	for i := range data {
		data[i] = cnf.Literal(i + 1)
	}
	l := Literals{Dims: []int{2, 3}, Data: data}

	if got := l.At(1, 2); got != 6 {
		t.Errorf("At(1, 2) = %d, want 6", got)
	}
}
