package metrics

import (
	"time"

	"github.com/rcrowley/go-metrics"
)

// Metrics is the go-metrics implementation of MetricsEngine. Its registry is what the
// /var endpoint serves.
type Metrics struct {
	MetricsRegistry            metrics.Registry
	ConnectionCounter          metrics.Counter
	ConnectionAcceptErrorMeter metrics.Meter
	ConnectionCloseErrorMeter  metrics.Meter
	RequestStatuses            map[RequestStatus]metrics.Meter
	RequestTimer               map[RequestStatus]metrics.Timer
	CandidateStatuses          map[CandidateStatus]metrics.Meter
	ScoreLookups               map[ScoreLookupResult]metrics.Meter

	// Keyed by strategy name. Bids from strategies not given to NewMetrics are dropped.
	BidPrices map[string]metrics.Histogram
	BidMeters map[string]metrics.Meter
}

// NewBlankMetrics creates a new Metrics object with all blank metrics object. This may also be useful for
// testing routines to ensure that no metrics are written anywhere.
func NewBlankMetrics(registry metrics.Registry, strategies []string) *Metrics {
	blankMeter := &metrics.NilMeter{}
	newMetrics := &Metrics{
		MetricsRegistry:            registry,
		ConnectionCounter:          metrics.NilCounter{},
		ConnectionAcceptErrorMeter: blankMeter,
		ConnectionCloseErrorMeter:  blankMeter,
		RequestStatuses:            make(map[RequestStatus]metrics.Meter),
		RequestTimer:               make(map[RequestStatus]metrics.Timer),
		CandidateStatuses:          make(map[CandidateStatus]metrics.Meter),
		ScoreLookups:               make(map[ScoreLookupResult]metrics.Meter),
		BidPrices:                  make(map[string]metrics.Histogram, len(strategies)),
		BidMeters:                  make(map[string]metrics.Meter, len(strategies)),
	}
	for _, s := range RequestStatuses() {
		newMetrics.RequestStatuses[s] = blankMeter
		newMetrics.RequestTimer[s] = &metrics.NilTimer{}
	}
	for _, s := range CandidateStatuses() {
		newMetrics.CandidateStatuses[s] = blankMeter
	}
	for _, r := range ScoreLookupResults() {
		newMetrics.ScoreLookups[r] = blankMeter
	}
	for _, s := range strategies {
		newMetrics.BidPrices[s] = metrics.NilHistogram{}
		newMetrics.BidMeters[s] = blankMeter
	}
	return newMetrics
}

// NewMetrics creates a new Metrics object with every metric registered in registry.
func NewMetrics(registry metrics.Registry, strategies []string) *Metrics {
	newMetrics := NewBlankMetrics(registry, strategies)
	newMetrics.ConnectionCounter = metrics.GetOrRegisterCounter("active_connections", registry)
	newMetrics.ConnectionAcceptErrorMeter = metrics.GetOrRegisterMeter("connection_accept_errors", registry)
	newMetrics.ConnectionCloseErrorMeter = metrics.GetOrRegisterMeter("connection_close_errors", registry)

	for _, s := range RequestStatuses() {
		newMetrics.RequestStatuses[s] = metrics.GetOrRegisterMeter("requests."+string(s), registry)
		newMetrics.RequestTimer[s] = metrics.GetOrRegisterTimer("request_time."+string(s), registry)
	}
	for _, s := range CandidateStatuses() {
		newMetrics.CandidateStatuses[s] = metrics.GetOrRegisterMeter("candidates."+string(s), registry)
	}
	for _, r := range ScoreLookupResults() {
		newMetrics.ScoreLookups[r] = metrics.GetOrRegisterMeter("score_lookups."+string(r), registry)
	}
	for _, s := range strategies {
		newMetrics.BidMeters[s] = metrics.GetOrRegisterMeter("bids."+s, registry)
		newMetrics.BidPrices[s] = metrics.GetOrRegisterHistogram("bid_price_micros."+s, registry, metrics.NewExpDecaySample(1028, 0.015))
	}
	return newMetrics
}

func (me *Metrics) RecordConnectionAccept(success bool) {
	if success {
		me.ConnectionCounter.Inc(1)
	} else {
		me.ConnectionAcceptErrorMeter.Mark(1)
	}
}

func (me *Metrics) RecordConnectionClose(success bool) {
	if success {
		me.ConnectionCounter.Dec(1)
	} else {
		me.ConnectionCloseErrorMeter.Mark(1)
	}
}

func (me *Metrics) RecordRequest(status RequestStatus) {
	if meter, ok := me.RequestStatuses[status]; ok {
		meter.Mark(1)
	}
}

func (me *Metrics) RecordRequestTime(status RequestStatus, length time.Duration) {
	if timer, ok := me.RequestTimer[status]; ok {
		timer.Update(length)
	}
}

func (me *Metrics) RecordCandidate(status CandidateStatus) {
	if meter, ok := me.CandidateStatuses[status]; ok {
		meter.Mark(1)
	}
}

func (me *Metrics) RecordBid(strategy string, priceMicros int64) {
	if meter, ok := me.BidMeters[strategy]; ok {
		meter.Mark(1)
	}
	if histogram, ok := me.BidPrices[strategy]; ok {
		histogram.Update(priceMicros)
	}
}

func (me *Metrics) RecordScoreLookup(result ScoreLookupResult) {
	if meter, ok := me.ScoreLookups[result]; ok {
		meter.Mark(1)
	}
}
