package exactq

// Machinery shared by the two interpolation conventions. They differ only in
// how a level maps to a fractional rank h (and in whether the bounds 0 and 1
// are admissible); everything from h on is identical: the quantile lies
// between the order statistics at positions n-1 and n where n = floor(h).

// placeInterpolants rearranges a so a read at fractional rank h finds what it
// needs in place: the order statistics at positions n-1 and n for interior
// ranks, the maximum at the back or the minimum at the front otherwise.
// Position n is filled by swapping in the minimum of the suffix, one linear
// scan instead of a second selection.
func placeInterpolants[T Value](a []T, h float64) {
	n := int(h)
	switch {
	case n >= len(a):
		m := maxIndex(a)
		a[m], a[len(a)-1] = a[len(a)-1], a[m]
	case n < 1:
		m := minIndex(a)
		a[0], a[m] = a[m], a[0]
	default:
		nthElement(a, n-1)
		m := n + minIndex(a[n:])
		a[n], a[m] = a[m], a[n]
	}
}

// interpolate reads the quantile at fractional rank h from an array prepared
// by placeInterpolants (or placeManyInterpolants).
func interpolate[T Value](a []T, h float64) float64 {
	n := int(h)
	switch {
	case n >= len(a):
		return float64(a[len(a)-1])
	case n < 1:
		return float64(a[0])
	}
	lo, hi := float64(a[n-1]), float64(a[n])
	return lo + (h-float64(n))*(hi-lo)
}

// placeManyInterpolants prepares a for reads at every requested level. The
// levels arrive ordered by indices, so each interior selection starts past
// the prefix the previous one already ordered.
func placeManyInterpolants[T Value](a []T, levels []float64, indices []int, rank func(float64) (float64, error)) error {
	intervalStart := 0
	for _, idx := range indices {
		h, err := rank(levels[idx])
		if err != nil {
			return err
		}
		n := int(h)
		switch {
		case n >= len(a):
			m := maxIndex(a)
			a[m], a[len(a)-1] = a[len(a)-1], a[m]
		case n < 1:
			m := minIndex(a)
			a[0], a[m] = a[m], a[0]
		default:
			// Positions n-1 and n must end up holding their order statistics;
			// positions intervalStart-2 and intervalStart-1 already do from
			// the previous level.
			if intervalStart == n+1 {
				continue
			}
			if intervalStart != n {
				nthElement(a[intervalStart:], n-1-intervalStart)
			}
			m := n + minIndex(a[n:])
			a[n], a[m] = a[m], a[n]
			intervalStart = n + 1
		}
	}
	return nil
}

func interpolateMany[T Value](a []T, levels []float64, indices []int, rank func(float64) (float64, error), result []float64) error {
	for _, idx := range indices {
		h, err := rank(levels[idx])
		if err != nil {
			return err
		}
		result[idx] = interpolate(a, h)
	}
	return nil
}
