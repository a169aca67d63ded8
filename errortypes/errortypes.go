package errortypes

import "fmt"

// BadInput should be used when the inbound message cannot be decoded.
// It should _not_ be used if the error is a server-side issue.
//
// A BadInput rejects the whole request before any candidate is looked at.
type BadInput struct {
	Message string
}

func (err *BadInput) Error() string {
	return err.Message
}

func (err *BadInput) Code() int {
	return BadInputErrorCode
}

func (err *BadInput) Severity() Severity {
	return SeverityFatal
}

// MissingBiddingInfo flags a candidate which carries no bidding block at all.
// The candidate is dropped from the response; its siblings are still priced.
type MissingBiddingInfo struct {
	LineItemID int64
}

func (err *MissingBiddingInfo) Error() string {
	return fmt.Sprintf("no bidding found in adcandidate for line item %d", err.LineItemID)
}

func (err *MissingBiddingInfo) Code() int {
	return MissingBiddingInfoErrorCode
}

func (err *MissingBiddingInfo) Severity() Severity {
	return SeverityFatal
}

// MissingStrategyDescriptor flags a candidate whose bidding block has no custom strategy name.
type MissingStrategyDescriptor struct {
	LineItemID int64
}

func (err *MissingStrategyDescriptor) Error() string {
	return fmt.Sprintf("no custom strategy found for line item %d", err.LineItemID)
}

func (err *MissingStrategyDescriptor) Code() int {
	return MissingStrategyErrorCode
}

func (err *MissingStrategyDescriptor) Severity() Severity {
	return SeverityFatal
}

// UnknownStrategy flags a candidate whose custom strategy name matches no registered strategy.
type UnknownStrategy struct {
	LineItemID int64
	Name       string
}

func (err *UnknownStrategy) Error() string {
	return fmt.Sprintf("unsupported custom strategy %q for line item %d", err.Name, err.LineItemID)
}

func (err *UnknownStrategy) Code() int {
	return UnknownStrategyErrorCode
}

func (err *UnknownStrategy) Severity() Severity {
	return SeverityFatal
}

// StrategyParamParseFailure is raised when a strategy parameter value does not parse as the
// type the strategy expects. The value is skipped and scanning continues.
type StrategyParamParseFailure struct {
	Key   string
	Value string
	Cause error
}

func (err *StrategyParamParseFailure) Error() string {
	return fmt.Sprintf("invalid value %q for strategy param %s: %v", err.Value, err.Key, err.Cause)
}

func (err *StrategyParamParseFailure) Unwrap() error {
	return err.Cause
}

func (err *StrategyParamParseFailure) Code() int {
	return ParamParseWarningCode
}

func (err *StrategyParamParseFailure) Severity() Severity {
	return SeverityWarning
}

// ScoreUnavailable should be used when a user score cannot be looked up.
// Pricing treats it the same way as a missing user id.
type ScoreUnavailable struct {
	Message string
}

func (err *ScoreUnavailable) Error() string {
	return err.Message
}

func (err *ScoreUnavailable) Code() int {
	return ScoreUnavailableWarningCode
}

func (err *ScoreUnavailable) Severity() Severity {
	return SeverityWarning
}

// FailedToMarshal should be used when the response envelope cannot be encoded.
type FailedToMarshal struct {
	Message string
}

func (err *FailedToMarshal) Error() string {
	return err.Message
}

func (err *FailedToMarshal) Code() int {
	return FailedToMarshalErrorCode
}

func (err *FailedToMarshal) Severity() Severity {
	return SeverityFatal
}

// InternalError wraps any fault which is not one of the recognized kinds above.
// Its message is logged but never sent to the caller.
type InternalError struct {
	Message string
}

func (err *InternalError) Error() string {
	return err.Message
}

func (err *InternalError) Code() int {
	return InternalErrorCode
}

func (err *InternalError) Severity() Severity {
	return SeverityFatal
}
