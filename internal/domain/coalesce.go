package domain

// ValueOr returns the value behind the first non-nil pointer, or fallback
// when every pointer is nil. Partial updates use it to overlay the fields a
// caller supplied onto the stored ones.
func ValueOr[T any](fallback T, ptrs ...*T) T {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}
