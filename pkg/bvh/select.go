package bvh

import "github.com/chazu/gable/pkg/geom"

// selectNth partially orders items so that items[n] holds the element that
// would be there if the slice were sorted by box centre on axis, with no
// larger element before it and no smaller one after it. Expected linear
// time; the pivot is a median of three.
func selectNth[T any](items []Item[T], n int, axis geom.Axis) {
	key := func(i int) float64 { return items[i].Box.Center().Elem(axis) }
	lo, hi := 0, len(items)-1
	for lo < hi {
		mid := lo + (hi-lo)/2
		// Median of three into position hi.
		if key(mid) < key(lo) {
			items[mid], items[lo] = items[lo], items[mid]
		}
		if key(hi) < key(lo) {
			items[hi], items[lo] = items[lo], items[hi]
		}
		if key(mid) < key(hi) {
			items[mid], items[hi] = items[hi], items[mid]
		}
		pivot := key(hi)

		store := lo
		for i := lo; i < hi; i++ {
			if key(i) < pivot {
				items[i], items[store] = items[store], items[i]
				store++
			}
		}
		items[store], items[hi] = items[hi], items[store]

		switch {
		case n == store:
			return
		case n < store:
			hi = store - 1
		default:
			lo = store + 1
		}
	}
}
