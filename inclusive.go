package exactq

import (
	"math"

	"github.com/pkg/errors"
)

// ExactInclusive interpolates between samples the way Excel PERCENTILE.INC,
// R type 7 and SciPy (1, 1) do: the fractional rank is h = level*(N-1)+1, so
// level 0 is the minimum and level 1 the maximum. Accumulation is shared
// with Exact; results are read through GetFloat / GetManyFloat and are
// always float64.
type ExactInclusive[T Value] struct {
	Exact[T]
}

func (q *ExactInclusive[T]) rank(level float64) (float64, error) {
	return level*float64(q.array.len()-1) + 1, nil
}

// Finalize places the samples an interpolated read at level needs.
func (q *ExactInclusive[T]) Finalize(level float64) error {
	if q.array.empty() {
		return nil
	}
	h, _ := q.rank(level)
	placeInterpolants(q.array.slice(), h)
	return nil
}

// FinalizeMany prepares the state for GetManyFloat with the same levels and
// indices.
func (q *ExactInclusive[T]) FinalizeMany(levels []float64, indices []int) error {
	if err := checkLevels(levels, indices); err != nil {
		return err
	}
	if q.array.empty() {
		return nil
	}
	return placeManyInterpolants(q.array.slice(), levels, indices, q.rank)
}

// GetFloat returns the level quantile. The level must be in [0, 1] and the
// state finalized at it. An empty state yields NaN.
func (q *ExactInclusive[T]) GetFloat(level float64) (float64, error) {
	if q.array.empty() {
		return math.NaN(), nil
	}
	h, _ := q.rank(level)
	return interpolate(q.array.slice(), h), nil
}

// GetManyFloat writes the quantile for levels[indices[i]] to
// result[indices[i]]. An empty state fills the result with NaN.
func (q *ExactInclusive[T]) GetManyFloat(levels []float64, indices []int, result []float64) error {
	if err := checkLevels(levels, indices); err != nil {
		return err
	}
	if len(result) != len(levels) {
		return errors.Wrap(ErrBadArguments, "result length does not match levels")
	}
	if q.array.empty() {
		for i := range result {
			result[i] = math.NaN()
		}
		return nil
	}
	return interpolateMany(q.array.slice(), levels, indices, q.rank, result)
}
