package exactq

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Value is the set of element types a quantile state can hold: the built-in
// integer types and both IEEE-754 float widths. Ordering is the
// natural total order; NaN samples are rejected at insertion so `<` stays a
// strict weak ordering over everything the buffer retains.
type Value interface {
	constraints.Integer | constraints.Float
}

// isNaN reports whether x is an IEEE-754 NaN. Integer values never are.
func isNaN[T Value](x T) bool {
	return x != x
}

// emptyValue is what a single-level read of an empty state yields: NaN for
// float element types, the zero value for integers. Callers that need to
// tell an empty group from a legitimate zero track the count separately.
func emptyValue[T Value]() T {
	var v T
	switch p := any(&v).(type) {
	case *float64:
		*p = math.NaN()
	case *float32:
		*p = float32(math.NaN())
	}
	return v
}
