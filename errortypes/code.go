package errortypes

import "errors"

// Defines numeric codes for well-known errors.
const (
	UnknownErrorCode  = 999
	BadInputErrorCode = iota
	MissingBiddingInfoErrorCode
	MissingStrategyErrorCode
	UnknownStrategyErrorCode
	FailedToMarshalErrorCode
	InternalErrorCode
)

// Defines numeric codes for well-known warnings.
const (
	UnknownWarningCode    = 10999
	ParamParseWarningCode = iota + 10000
	ScoreUnavailableWarningCode
)

// Coder provides an error or warning code with severity.
type Coder interface {
	Code() int
	Severity() Severity
}

// ReadCode returns the error or warning code, or UnknownErrorCode if unavailable.
func ReadCode(err error) int {
	var c Coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return UnknownErrorCode
}
