package config

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	gometrics "github.com/rcrowley/go-metrics"

	mainConfig "github.com/BeeswaxIO/hexbid/config"
	"github.com/BeeswaxIO/hexbid/metrics"
	prometheusmetrics "github.com/BeeswaxIO/hexbid/metrics/prometheus"
)

// NewMetricsEngine reads the configuration and returns the appropriate metrics engine
// for this instance.
func NewMetricsEngine(cfg *mainConfig.Configuration, strategies []string) *DetailedMetricsEngine {
	// Create a list of metrics engines to use.
	// Capacity of 2, as unlikely to have more than 2 metrics backends, and in the case
	// of 1 we won't use the list so it will be garbage collected.
	engineList := make(MultiMetricsEngine, 0, 2)
	returnEngine := DetailedMetricsEngine{}

	// The go-metrics engine always runs: its registry backs the /var endpoint.
	returnEngine.GoMetrics = metrics.NewMetrics(gometrics.NewRegistry(), strategies)
	engineList = append(engineList, returnEngine.GoMetrics)

	if cfg.Metrics.Prometheus.Port != 0 {
		returnEngine.PrometheusMetrics = prometheusmetrics.NewMetrics(cfg.Metrics.Prometheus, strategies)
		engineList = append(engineList, returnEngine.PrometheusMetrics)
	}

	if len(engineList) > 1 {
		returnEngine.MetricsEngine = &engineList
	} else {
		returnEngine.MetricsEngine = engineList[0]
	}

	return &returnEngine
}

// DetailedMetricsEngine is a MultiMetricsEngine that preserves links to underlying metrics engines.
type DetailedMetricsEngine struct {
	metrics.MetricsEngine
	GoMetrics         *metrics.Metrics
	PrometheusMetrics *prometheusmetrics.Metrics
}

// PrometheusRegistry returns the registry scraped by the Prometheus port, or nil when
// Prometheus is disabled.
func (e *DetailedMetricsEngine) PrometheusRegistry() *prometheus.Registry {
	if e.PrometheusMetrics == nil {
		return nil
	}
	return e.PrometheusMetrics.Registry
}

// MultiMetricsEngine logs metrics to multiple metrics databases. These can be useful in transitioning
// an instance from one engine to another, you can run both in parallel to verify stats match up.
type MultiMetricsEngine []metrics.MetricsEngine

// RecordConnectionAccept across all engines
func (me *MultiMetricsEngine) RecordConnectionAccept(success bool) {
	for _, thisME := range *me {
		thisME.RecordConnectionAccept(success)
	}
}

// RecordConnectionClose across all engines
func (me *MultiMetricsEngine) RecordConnectionClose(success bool) {
	for _, thisME := range *me {
		thisME.RecordConnectionClose(success)
	}
}

// RecordRequest across all engines
func (me *MultiMetricsEngine) RecordRequest(status metrics.RequestStatus) {
	for _, thisME := range *me {
		thisME.RecordRequest(status)
	}
}

// RecordRequestTime across all engines
func (me *MultiMetricsEngine) RecordRequestTime(status metrics.RequestStatus, length time.Duration) {
	for _, thisME := range *me {
		thisME.RecordRequestTime(status, length)
	}
}

// RecordCandidate across all engines
func (me *MultiMetricsEngine) RecordCandidate(status metrics.CandidateStatus) {
	for _, thisME := range *me {
		thisME.RecordCandidate(status)
	}
}

// RecordBid across all engines
func (me *MultiMetricsEngine) RecordBid(strategy string, priceMicros int64) {
	for _, thisME := range *me {
		thisME.RecordBid(strategy, priceMicros)
	}
}

// RecordScoreLookup across all engines
func (me *MultiMetricsEngine) RecordScoreLookup(result metrics.ScoreLookupResult) {
	for _, thisME := range *me {
		thisME.RecordScoreLookup(result)
	}
}

// DummyMetricsEngine is a Noop metrics engine in case no metrics are configured. (may also be useful for tests)
type DummyMetricsEngine struct{}

// RecordConnectionAccept as a noop
func (me *DummyMetricsEngine) RecordConnectionAccept(success bool) {
}

// RecordConnectionClose as a noop
func (me *DummyMetricsEngine) RecordConnectionClose(success bool) {
}

// RecordRequest as a noop
func (me *DummyMetricsEngine) RecordRequest(status metrics.RequestStatus) {
}

// RecordRequestTime as a noop
func (me *DummyMetricsEngine) RecordRequestTime(status metrics.RequestStatus, length time.Duration) {
}

// RecordCandidate as a noop
func (me *DummyMetricsEngine) RecordCandidate(status metrics.CandidateStatus) {
}

// RecordBid as a noop
func (me *DummyMetricsEngine) RecordBid(strategy string, priceMicros int64) {
}

// RecordScoreLookup as a noop
func (me *DummyMetricsEngine) RecordScoreLookup(result metrics.ScoreLookupResult) {
}
