package risk

import "fmt"

// ValidationError reports malformed input to the scoring engine. It is
// raised synchronously and never coerced into a score.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "VALIDATION: " + e.Message
}

func validationErrorf(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IntegrityError reports that a deal's cached risk fields no longer match
// what recomputation yields. Callers should treat it as a signal to
// recompute rather than trust the cache.
type IntegrityError struct {
	DealID  string
	Message string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("DATA_INTEGRITY: deal %s: %s", e.DealID, e.Message)
}
