package utils

import "sort"

func Filter[T any](src []T, predicate func(T) bool) []T {
	dst := make([]T, 0, len(src))
	for _, item := range src {
		if predicate(item) {
			dst = append(dst, item)
		}
	}
	return dst
}

func Map[T any, U any](src []T, mapper func(T) U) []U {
	dst := make([]U, 0, len(src))
	for _, item := range src {
		dst = append(dst, mapper(item))
	}
	return dst
}

func GroupBy[T any, K comparable](items []T, keyFunc func(T) K) map[K][]T {
	result := make(map[K][]T)
	for _, item := range items {
		key := keyFunc(item)
		result[key] = append(result[key], item)
	}
	return result
}

// SortedKeys returns the map keys in ascending order, so aggregations built
// from maps come out deterministic.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
