// Package exactq implements exact quantile aggregate states: every sample is
// retained and order statistics are produced by partial selection at
// finalization. Three conventions share one sample buffer: nearest rank,
// exclusive interpolation (PERCENTILE.EXC) and inclusive interpolation
// (PERCENTILE.INC).
package exactq

import (
	"io"

	"github.com/pkg/errors"
)

// Policy selects one of the three quantile conventions.
type Policy int

const (
	// Nearest returns an element of the input: the sample whose sort
	// position is floor(level * N), or N-1 at level 1.
	Nearest Policy = iota
	// Exclusive interpolates like Excel PERCENTILE.EXC (R type 6); the
	// levels 0 and 1 are inadmissible.
	Exclusive
	// Inclusive interpolates like Excel PERCENTILE.INC (R type 7); the
	// levels 0 and 1 produce the minimum and maximum.
	Inclusive
)

func (p Policy) String() string {
	switch p {
	case Nearest:
		return "nearest"
	case Exclusive:
		return "exclusive"
	case Inclusive:
		return "inclusive"
	}
	return "unknown"
}

// Quantiler is the aggregate surface the host dispatches through once it has
// resolved the element type and convention of a query. Nearest-rank states
// answer through Get/GetMany and return ErrNotImplemented from
// GetFloat/GetManyFloat. The interpolating states answer through
// GetFloat/GetManyFloat; their Get/GetMany are the nearest-rank reads they
// inherit from Exact.
//
// The interface is sealed: only states from this package can be merged into
// each other.
type Quantiler[T Value] interface {
	Add(x T)
	AddWeighted(x T, weight uint64) error
	Merge(rhs Quantiler[T]) error
	Count() int
	Serialize(w io.Writer) error
	Deserialize(r io.Reader) error
	Finalize(level float64) error
	FinalizeMany(levels []float64, indices []int) error
	Get(level float64) T
	GetMany(levels []float64, indices []int, result []T) error
	GetFloat(level float64) (float64, error)
	GetManyFloat(levels []float64, indices []int, result []float64) error

	samples() []T
}

// New constructs an empty state for the given policy. The zero values of
// Exact, ExactExclusive and ExactInclusive are equally valid starting points
// when the policy is known statically.
func New[T Value](p Policy) (Quantiler[T], error) {
	switch p {
	case Nearest:
		return &Exact[T]{}, nil
	case Exclusive:
		return &ExactExclusive[T]{}, nil
	case Inclusive:
		return &ExactInclusive[T]{}, nil
	}
	return nil, errors.Wrapf(ErrBadArguments, "unknown quantile policy %d", int(p))
}

var (
	_ Quantiler[float64] = (*Exact[float64])(nil)
	_ Quantiler[int32]   = (*ExactExclusive[int32])(nil)
	_ Quantiler[uint16]  = (*ExactInclusive[uint16])(nil)
)
