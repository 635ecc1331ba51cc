package patch

// Coalesce resolves an optional request field: *ptr when set, fallback when
// the caller omitted it.
func Coalesce[T any](ptr *T, fallback T) T {
	if ptr == nil {
		return fallback
	}
	return *ptr
}
