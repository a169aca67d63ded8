package errortypes

import "errors"

// Severity represents the severity level of a bid processing error.
type Severity int

const (
	// SeverityUnknown represents an unknown severity level.
	SeverityUnknown Severity = iota

	// SeverityFatal represents an error which removes something from the response: the whole
	// request for request-level errors, or a single candidate for candidate-level errors.
	SeverityFatal

	// SeverityWarning represents a non-fatal error where invalid or missing data was ignored
	// and a fallback was used instead.
	SeverityWarning
)

func isFatal(err error) bool {
	var s Coder
	return !errors.As(err, &s) || s.Severity() == SeverityFatal
}

// IsWarning returns true if an error is labeled with a Severity of SeverityWarning.
func IsWarning(err error) bool {
	var s Coder
	return errors.As(err, &s) && s.Severity() == SeverityWarning
}

// ContainsFatalError checks if the error list contains a fatal error.
func ContainsFatalError(errs []error) bool {
	for _, err := range errs {
		if isFatal(err) {
			return true
		}
	}

	return false
}
