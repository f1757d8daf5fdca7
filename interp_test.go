package exactq

import (
	"bytes"
	"math"
	"math/rand"
	"sort"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestInclusiveEvenCount(t *testing.T) {
	assert := assert.New(t)
	q := &ExactInclusive[float64]{}
	for _, v := range []float64{1, 2, 3, 4} {
		q.Add(v)
	}
	assert.NoError(q.Finalize(0.5))
	got, err := q.GetFloat(0.5)
	assert.NoError(err)
	assert.Equal(2.5, got)
}

func TestInclusiveBounds(t *testing.T) {
	assert := assert.New(t)
	q := &ExactInclusive[int64]{}
	for _, v := range []int64{30, 10, 50, 20, 40} {
		q.Add(v)
	}
	assert.NoError(q.Finalize(0))
	got, err := q.GetFloat(0)
	assert.NoError(err)
	assert.Equal(10.0, got)

	assert.NoError(q.Finalize(1))
	got, err = q.GetFloat(1)
	assert.NoError(err)
	assert.Equal(50.0, got)
}

func TestExclusiveRejectsBounds(t *testing.T) {
	assert := assert.New(t)
	q := &ExactExclusive[int64]{}
	for _, v := range []int64{1, 2, 3} {
		q.Add(v)
	}
	err := q.Finalize(0)
	assert.Equal(ErrBadArguments, errors.Cause(err))
	err = q.Finalize(1)
	assert.Equal(ErrBadArguments, errors.Cause(err))
	_, err = q.GetFloat(0)
	assert.Equal(ErrBadArguments, errors.Cause(err))

	err = q.FinalizeMany([]float64{0.5, 1}, []int{0, 1})
	assert.Equal(ErrBadArguments, errors.Cause(err))
}

func TestExclusiveInterior(t *testing.T) {
	assert := assert.New(t)
	q := &ExactExclusive[int64]{}
	for _, v := range []int64{1, 2, 3} {
		q.Add(v)
	}
	// h = 0.25 * 4 = 1, n = 1: exactly the first order statistic.
	assert.NoError(q.Finalize(0.25))
	got, err := q.GetFloat(0.25)
	assert.NoError(err)
	assert.Equal(1.0, got)

	assert.NoError(q.Finalize(0.5))
	got, err = q.GetFloat(0.5)
	assert.NoError(err)
	assert.Equal(2.0, got)
}

func TestExclusiveMatchesReference(t *testing.T) {
	assert := assert.New(t)
	// PERCENTILE.EXC([15, 20, 35, 40, 50], 0.4) = 26
	q := &ExactExclusive[float64]{}
	for _, v := range []float64{35, 50, 15, 40, 20} {
		q.Add(v)
	}
	assert.NoError(q.Finalize(0.4))
	got, err := q.GetFloat(0.4)
	assert.NoError(err)
	assert.InDelta(26.0, got, 1e-9)
}

func TestInterpolationWithinHull(t *testing.T) {
	assert := assert.New(t)
	rng := rand.New(rand.NewSource(23))
	values := make([]float64, 301)
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range values {
		values[i] = rng.NormFloat64() * 50
		lo = math.Min(lo, values[i])
		hi = math.Max(hi, values[i])
	}

	for _, level := range []float64{0.001, 0.1, 0.5, 0.9, 0.999} {
		qe := &ExactExclusive[float64]{}
		qi := &ExactInclusive[float64]{}
		for _, v := range values {
			qe.Add(v)
			qi.Add(v)
		}
		assert.NoError(qe.Finalize(level))
		got, err := qe.GetFloat(level)
		assert.NoError(err)
		assert.True(got >= lo && got <= hi, "exclusive level %v: %v outside [%v, %v]", level, got, lo, hi)

		assert.NoError(qi.Finalize(level))
		got, err = qi.GetFloat(level)
		assert.NoError(err)
		assert.True(got >= lo && got <= hi, "inclusive level %v: %v outside [%v, %v]", level, got, lo, hi)
	}
}

// inclusiveReference computes the R type 7 quantile the direct way, on a
// fully sorted copy.
func inclusiveReference(values []float64, level float64) float64 {
	s := append([]float64(nil), values...)
	sort.Float64s(s)
	h := level*float64(len(s)-1) + 1
	n := int(h)
	switch {
	case n >= len(s):
		return s[len(s)-1]
	case n < 1:
		return s[0]
	}
	return s[n-1] + (h-float64(n))*(s[n]-s[n-1])
}

func TestInclusiveMatchesSortedReference(t *testing.T) {
	assert := assert.New(t)
	rng := rand.New(rand.NewSource(31))
	for _, size := range []int{1, 2, 3, 10, 101, 1000} {
		values := make([]float64, size)
		for i := range values {
			values[i] = rng.Float64() * 1000
		}
		for _, level := range []float64{0, 0.25, 0.5, 0.75, 0.99, 1} {
			q := &ExactInclusive[float64]{}
			for _, v := range values {
				q.Add(v)
			}
			assert.NoError(q.Finalize(level))
			got, err := q.GetFloat(level)
			assert.NoError(err)
			assert.InDelta(inclusiveReference(values, level), got, 1e-9, "size %d level %v", size, level)
		}
	}
}

func TestInterpolatedMultiLevel(t *testing.T) {
	assert := assert.New(t)
	rng := rand.New(rand.NewSource(13))
	values := make([]float64, 500)
	for i := range values {
		values[i] = rng.NormFloat64()
	}
	levels := []float64{0.95, 0.05, 0.5, 0.25, 0.75}
	indices := []int{1, 3, 2, 4, 0}

	q := &ExactInclusive[float64]{}
	for _, v := range values {
		q.Add(v)
	}
	assert.NoError(q.FinalizeMany(levels, indices))
	result := make([]float64, len(levels))
	assert.NoError(q.GetManyFloat(levels, indices, result))

	for i, level := range levels {
		fresh := &ExactInclusive[float64]{}
		for _, v := range values {
			fresh.Add(v)
		}
		assert.NoError(fresh.Finalize(level))
		want, err := fresh.GetFloat(level)
		assert.NoError(err)
		assert.InDelta(want, result[i], 1e-12, "level %v", level)
	}
}

func TestInterpolatedMultiLevelAdjacentRanks(t *testing.T) {
	assert := assert.New(t)
	// Levels dense enough that consecutive targets hit adjacent and equal
	// positions, exercising both skip branches of the interval walk.
	values := []float64{6, 3, 9, 1, 8, 2, 7, 4, 5, 0}
	levels := []float64{0.1, 0.2, 0.21, 0.5, 0.51, 0.52, 0.9}
	indices := []int{0, 1, 2, 3, 4, 5, 6}

	q := &ExactInclusive[float64]{}
	for _, v := range values {
		q.Add(v)
	}
	assert.NoError(q.FinalizeMany(levels, indices))
	result := make([]float64, len(levels))
	assert.NoError(q.GetManyFloat(levels, indices, result))

	for i, level := range levels {
		assert.InDelta(inclusiveReference(values, level), result[i], 1e-9, "level %v", level)
	}
}

func TestInterpolatedSingleSample(t *testing.T) {
	assert := assert.New(t)
	qi := &ExactInclusive[float64]{}
	qi.Add(3.5)
	for _, level := range []float64{0, 0.5, 1} {
		assert.NoError(qi.Finalize(level))
		got, err := qi.GetFloat(level)
		assert.NoError(err)
		assert.Equal(3.5, got, "level %v", level)
	}

	qe := &ExactExclusive[float64]{}
	qe.Add(3.5)
	assert.NoError(qe.Finalize(0.5))
	got, err := qe.GetFloat(0.5)
	assert.NoError(err)
	assert.Equal(3.5, got)
}

func TestInterpolatedEmpty(t *testing.T) {
	assert := assert.New(t)
	q := &ExactInclusive[float64]{}
	assert.NoError(q.Finalize(0.5))
	got, err := q.GetFloat(0.5)
	assert.NoError(err)
	assert.True(math.IsNaN(got))

	// Exclusive does not even validate the level on an empty state.
	qe := &ExactExclusive[float64]{}
	got, err = qe.GetFloat(0)
	assert.NoError(err)
	assert.True(math.IsNaN(got))

	levels := []float64{0.25, 0.75}
	indices := []int{0, 1}
	out := make([]float64, 2)
	assert.NoError(q.FinalizeMany(levels, indices))
	assert.NoError(q.GetManyFloat(levels, indices, out))
	assert.True(math.IsNaN(out[0]) && math.IsNaN(out[1]))
}

func TestInterpolatedIntegerElements(t *testing.T) {
	assert := assert.New(t)
	q := &ExactInclusive[uint8]{}
	for _, v := range []uint8{10, 20, 30, 40} {
		q.Add(v)
	}
	assert.NoError(q.Finalize(0.5))
	got, err := q.GetFloat(0.5)
	assert.NoError(err)
	assert.Equal(25.0, got)
}

func TestInterpolatedSerializeRoundTrip(t *testing.T) {
	assert := assert.New(t)
	q := &ExactInclusive[float64]{}
	for _, v := range []float64{1, 2, 3, 4} {
		q.Add(v)
	}
	var buf bytes.Buffer
	assert.NoError(q.Serialize(&buf))

	fresh := &ExactInclusive[float64]{}
	assert.NoError(fresh.Deserialize(&buf))
	assert.NoError(fresh.Finalize(0.5))
	got, err := fresh.GetFloat(0.5)
	assert.NoError(err)
	assert.Equal(2.5, got)
}
