package domain

// IntFromPtrWithDefault returns the first non-nil *int value, or the fallback.
// Optional day counts (overdue days, risk age) carry nil for "not applicable",
// and callers that rank or render them need a concrete zero.
func IntFromPtrWithDefault(fallback int, ptrs ...*int) int {
	for _, p := range ptrs {
		if p != nil {
			return *p
		}
	}
	return fallback
}
