// Package mapper holds small generic helpers for converting between
// domain objects, persistence models and DTOs.
package mapper

// MapSlice applies fn to every element. A nil input yields an empty,
// non-nil slice so JSON encodes it as [].
func MapSlice[T any, R any](items []T, fn func(T) R) []R {
	result := make([]R, 0, len(items))
	for _, item := range items {
		result = append(result, fn(item))
	}
	return result
}

// MapSliceErr is MapSlice for conversions that can fail; it stops at the
// first error.
func MapSliceErr[T any, R any](items []T, fn func(T) (R, error)) ([]R, error) {
	result := make([]R, 0, len(items))
	for _, item := range items {
		r, err := fn(item)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, nil
}
