package exactq

import (
	"math"

	"github.com/pkg/errors"
)

// ExactExclusive interpolates between samples the way Excel PERCENTILE.EXC,
// R type 6, SAS-4 and SciPy (0, 0) do: the fractional rank is
// h = level*(N+1), so the levels 0 and 1 fall outside the sample and are
// rejected. Accumulation is shared with Exact; results are read through
// GetFloat / GetManyFloat and are always float64.
type ExactExclusive[T Value] struct {
	Exact[T]
}

func (q *ExactExclusive[T]) rank(level float64) (float64, error) {
	if level == 0 || level == 1 {
		return 0, errors.Wrap(ErrBadArguments, "exclusive interpolation cannot produce the percentiles 0 and 1")
	}
	return level * float64(q.array.len()+1), nil
}

// Finalize places the samples an interpolated read at level needs.
func (q *ExactExclusive[T]) Finalize(level float64) error {
	if q.array.empty() {
		return nil
	}
	h, err := q.rank(level)
	if err != nil {
		return err
	}
	placeInterpolants(q.array.slice(), h)
	return nil
}

// FinalizeMany prepares the state for GetManyFloat with the same levels and
// indices.
func (q *ExactExclusive[T]) FinalizeMany(levels []float64, indices []int) error {
	if err := checkLevels(levels, indices); err != nil {
		return err
	}
	if q.array.empty() {
		return nil
	}
	return placeManyInterpolants(q.array.slice(), levels, indices, q.rank)
}

// GetFloat returns the level quantile. The level must be in (0, 1) and the
// state finalized at it. An empty state yields NaN.
func (q *ExactExclusive[T]) GetFloat(level float64) (float64, error) {
	if q.array.empty() {
		return math.NaN(), nil
	}
	h, err := q.rank(level)
	if err != nil {
		return 0, err
	}
	return interpolate(q.array.slice(), h), nil
}

// GetManyFloat writes the quantile for levels[indices[i]] to
// result[indices[i]]. An empty state fills the result with NaN.
func (q *ExactExclusive[T]) GetManyFloat(levels []float64, indices []int, result []float64) error {
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
