package util

import (
	"iter"
	"sort"
)

// TransformSlice applies the converter to each element in the input slice and returns a new slice.
func TransformSlice[T any, R any](in []T, converter func(T) R) []R {
	out := make([]R, len(in))
	for i, v := range in {
		out[i] = converter(v)
	}
	return out
}

// CanonicalUint32MapIter returns an iterator over m in ascending key order, so
// that result-set walks (deletion filtering, post-filter candidate
// ordering) are deterministic
// regardless of Go's randomized map iteration order.
func CanonicalUint32MapIter[T any](m map[uint32]T) iter.Seq2[uint32, T] {
	return func(yield func(uint32, T) bool) {
		keys := make([]uint32, 0, len(m))
		for k := range m {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

		for _, k := range keys {
			if !yield(k, m[k]) {
				return
			}
		}
	}
}
