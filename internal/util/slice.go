package util

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Min returns the smallest value of s, or 0 for an empty slice
func Min(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	return slices.Min(s)
}

// Max returns the largest value of s, or 0 for an empty slice
func Max(s []float64) float64 {
	if len(s) == 0 {
		return 0
	}
	return slices.Max(s)
}

// SortedKeys returns the keys of input in ascending order
func SortedKeys[T constraints.Ordered, K any](input map[T]K) []T {
	keys := maps.Keys(input)
	slices.Sort(keys)
	return keys
}
