package metrics

import (
	"time"

	"github.com/stretchr/testify/mock"
)

// MetricsEngineMock is mock for the MetricsEngine interface
type MetricsEngineMock struct {
	mock.Mock
}

// RecordConnectionAccept mock
func (me *MetricsEngineMock) RecordConnectionAccept(success bool) {
	me.Called(success)
}

// RecordConnectionClose mock
func (me *MetricsEngineMock) RecordConnectionClose(success bool) {
	me.Called(success)
}

// RecordRequest mock
func (me *MetricsEngineMock) RecordRequest(status RequestStatus) {
	me.Called(status)
}

// RecordRequestTime mock
func (me *MetricsEngineMock) RecordRequestTime(status RequestStatus, length time.Duration) {
	me.Called(status, length)
}

// RecordCandidate mock
func (me *MetricsEngineMock) RecordCandidate(status CandidateStatus) {
	me.Called(status)
}

// RecordBid mock
func (me *MetricsEngineMock) RecordBid(strategy string, priceMicros int64) {
	me.Called(strategy, priceMicros)
}

// RecordScoreLookup mock
func (me *MetricsEngineMock) RecordScoreLookup(result ScoreLookupResult) {
	me.Called(result)
}
