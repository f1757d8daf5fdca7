package exactq

import (
	"io"
	"math"

	"github.com/pkg/errors"
)

// Exact computes quantiles by collecting every sample into an array and
// applying partial selection (introselect) at finalization. Memory is O(N)
// and identical values are stored as many times as they arrive, but for
// small and medium groups it is very CPU efficient.
//
// Returned quantiles follow the nearest-rank convention: the result is
// always one of the samples. The zero value is an empty state ready to use.
// A state belongs to one goroutine at a time; Merge is the only cross-state
// combinator and needs exclusive access to both operands.
type Exact[T Value] struct {
	array array[T]
}

// Add appends one sample. NaNs are skipped: they are not compatible with
// comparison sorting.
func (q *Exact[T]) Add(x T) {
	if !isNaN(x) {
		q.array.push(x)
	}
}

// AddWeighted is part of the aggregate surface shared with the weighted
// variants. The exact state has no per-sample weights.
func (q *Exact[T]) AddWeighted(x T, weight uint64) error {
	return errors.Wrap(ErrNotImplemented, "add with weight on exact quantile")
}

// Count returns the number of retained samples.
func (q *Exact[T]) Count() int {
	return q.array.len()
}

// samples exposes the retained multiset to Merge. Part of the Quantiler
// surface so only states from this package can be merged into each other.
func (q *Exact[T]) samples() []T {
	return q.array.slice()
}

// Merge appends every sample retained by rhs, leaving rhs untouched. Merge
// is commutative and associative over the retained multiset, with the empty
// state as identity.
func (q *Exact[T]) Merge(rhs Quantiler[T]) error {
	if rhs == nil {
		return errors.Wrap(ErrBadArguments, "merge of nil quantile state")
	}
	q.array.extend(rhs.samples())
	return nil
}

// Serialize writes the state as a varuint sample count followed by the raw
// little-endian sample data.
func (q *Exact[T]) Serialize(w io.Writer) error {
	if err := writeVarUint(w, uint64(q.array.len())); err != nil {
		return err
	}
	return writeRaw(w, q.array.slice())
}

// Deserialize replaces the state with one read from r. The format is only
// exchanged inside a cluster, so samples are not revalidated.
func (q *Exact[T]) Deserialize(r io.Reader) error {
	size, err := readVarUint(r)
	if err != nil {
		return err
	}
	if size > maxWireBytes/uint64(elemSize[T]()) {
		return errors.Wrapf(ErrMemoryLimitExceeded, "deserialize %d samples", size)
	}
	q.array.resize(int(size))
	return readRaw(r, q.array.slice())
}

func (q *Exact[T]) elementNumber(level float64) int {
	if level < 1 {
		return int(level * float64(q.array.len()))
	}
	return q.array.len() - 1
}

// Finalize places the order statistic for level at its sort position. The
// rest of the array ends up partitioned around it, which later finalizations
// at other levels are free to permute further.
func (q *Exact[T]) Finalize(level float64) error {
	if q.array.empty() {
		return nil
	}
	nthElement(q.array.slice(), q.elementNumber(level))
	return nil
}

// FinalizeMany runs one partial selection per requested position, walking
// the levels in the ascending order given by indices so that every selection
// only has to work on the suffix the previous one left unordered.
func (q *Exact[T]) FinalizeMany(levels []float64, indices []int) error {
	if err := checkLevels(levels, indices); err != nil {
		return err
	}
	if q.array.empty() {
		return nil
	}
	a := q.array.slice()
	intervalStart := 0
	for _, idx := range indices {
		n := q.elementNumber(levels[idx])
		// The previous level already placed this position.
		if n+1 == intervalStart {
			continue
		}
		nthElement(a[intervalStart:], n-intervalStart)
		intervalStart = n + 1
	}
	return nil
}

// Get returns the level quantile. The level must be in [0, 1] and the state
// finalized at it. An empty state yields NaN for float element types and the
// zero value for integers.
func (q *Exact[T]) Get(level float64) T {
	if q.array.empty() {
		return emptyValue[T]()
	}
	return q.array.slice()[q.elementNumber(level)]
}

// GetMany writes the quantile for levels[indices[i]] to result[indices[i]].
// The state must have been finalized with the same levels and indices. An
// empty state zero-fills the result.
func (q *Exact[T]) GetMany(levels []float64, indices []int, result []T) error {
	if err := checkLevels(levels, indices); err != nil {
		return err
	}
	if len(result) != len(levels) {
		return errors.Wrap(ErrBadArguments, "result length does not match levels")
	}
	if q.array.empty() {
		var zero T
		for i := range result {
			result[i] = zero
		}
		return nil
	}
	a := q.array.slice()
	for _, idx := range indices {
		result[idx] = a[q.elementNumber(levels[idx])]
	}
	return nil
}

// GetFloat is part of the shared policy surface. The nearest-rank policy has
// no interpolated result channel.
func (q *Exact[T]) GetFloat(level float64) (float64, error) {
	return math.NaN(), errors.Wrap(ErrNotImplemented, "float result on nearest-rank quantile")
}

// GetManyFloat is part of the shared policy surface. See GetFloat.
func (q *Exact[T]) GetManyFloat(levels []float64, indices []int, result []float64) error {
	return errors.Wrap(ErrNotImplemented, "float result on nearest-rank quantile")
}

// checkLevels validates the level permutation shared by the many-level entry
// points: indices must stay in range and order levels non-decreasingly, or
// the interval reuse in FinalizeMany silently produces garbage.
func checkLevels(levels []float64, indices []int) error {
	if len(indices) != len(levels) {
		return errors.Wrap(ErrBadArguments, "indices length does not match levels")
	}
	prev := math.Inf(-1)
	for _, idx := range indices {
		if idx < 0 || idx >= len(levels) {
			return errors.Wrapf(ErrBadArguments, "level index %d out of range", idx)
		}
		if levels[idx] < prev {
			return errors.Wrap(ErrBadArguments, "indices must order levels ascending")
		}
		prev = levels[idx]
	}
	return nil
}
