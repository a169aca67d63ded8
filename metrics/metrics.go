package metrics

import (
	"time"
)

// RequestStatus is the outcome of one bid request.
type RequestStatus string

const (
	RequestStatusOK       RequestStatus = "ok"
	RequestStatusEmpty    RequestStatus = "empty"
	RequestStatusBadInput RequestStatus = "badinput"
	RequestStatusErr      RequestStatus = "err"
)

func RequestStatuses() []RequestStatus {
	return []RequestStatus{
		RequestStatusOK,
		RequestStatusEmpty,
		RequestStatusBadInput,
		RequestStatusErr,
	}
}

// CandidateStatus is what happened to one ad candidate during a decision.
type CandidateStatus string

const (
	CandidateStatusBid             CandidateStatus = "bid"
	CandidateStatusMissingBidding  CandidateStatus = "missing_bidding"
	CandidateStatusMissingStrategy CandidateStatus = "missing_strategy"
	CandidateStatusUnknownStrategy CandidateStatus = "unknown_strategy"
	CandidateStatusNoCreative      CandidateStatus = "no_creative"
)

func CandidateStatuses() []CandidateStatus {
	return []CandidateStatus{
		CandidateStatusBid,
		CandidateStatusMissingBidding,
		CandidateStatusMissingStrategy,
		CandidateStatusUnknownStrategy,
		CandidateStatusNoCreative,
	}
}

// ScoreLookupResult is the outcome of a user score lookup.
type ScoreLookupResult string

const (
	ScoreLookupOK          ScoreLookupResult = "ok"
	ScoreLookupUnavailable ScoreLookupResult = "unavailable"
	ScoreLookupNoUser      ScoreLookupResult = "no_user"
)

func ScoreLookupResults() []ScoreLookupResult {
	return []ScoreLookupResult{
		ScoreLookupOK,
		ScoreLookupUnavailable,
		ScoreLookupNoUser,
	}
}

// MetricsEngine is a generic interface to record metrics into the desired backend.
// The first three metrics function fire off once per incoming request, so it is up to
// the metrics engine to aggregate them.
//
// Implementations must be safe for concurrent use.
type MetricsEngine interface {
	RecordConnectionAccept(success bool)
	RecordConnectionClose(success bool)
	RecordRequest(status RequestStatus)
	RecordRequestTime(status RequestStatus, length time.Duration)
	RecordCandidate(status CandidateStatus)
	// RecordBid records one emitted bid. strategy is the canonical strategy name.
	RecordBid(strategy string, priceMicros int64)
	RecordScoreLookup(result ScoreLookupResult)
}
