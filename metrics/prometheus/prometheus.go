package prometheusmetrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/BeeswaxIO/hexbid/config"
	"github.com/BeeswaxIO/hexbid/metrics"
)

// Metrics defines the Prometheus metrics backing the MetricsEngine implementation.
type Metrics struct {
	Registry *prometheus.Registry

	// General Metrics
	connectionsClosed prometheus.Counter
	connectionsError  *prometheus.CounterVec
	connectionsOpened prometheus.Counter
	requests          *prometheus.CounterVec
	requestsTimer     *prometheus.HistogramVec

	// Decision Metrics
	candidates   *prometheus.CounterVec
	bids         *prometheus.CounterVec
	bidPrices    *prometheus.HistogramVec
	scoreLookups *prometheus.CounterVec
}

const (
	candidateStatusLabel = "candidate_status"
	connectionErrorLabel = "connection_error"
	requestStatusLabel   = "request_status"
	scoreResultLabel     = "score_result"
	strategyLabel        = "strategy"
)

const (
	connectionAcceptError = "accept"
	connectionCloseError  = "close"
)

// NewMetrics initializes a new Prometheus metrics instance with preloaded label values.
func NewMetrics(cfg config.PrometheusMetrics, strategies []string) *Metrics {
	requestTimeBuckets := []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5}
	// micro-units: 0.1 to 50 currency units
	priceBuckets := []float64{100000, 250000, 500000, 1000000, 2500000, 5000000, 10000000, 25000000, 50000000}

	metrics := Metrics{}
	metrics.Registry = prometheus.NewRegistry()

	metrics.connectionsClosed = newCounterWithoutLabels(cfg, metrics.Registry,
		"connections_closed",
		"Count of successful connections closed to the bidder.")

	metrics.connectionsError = newCounter(cfg, metrics.Registry,
		"connections_error",
		"Count of errors for connection open and close attempts to the bidder labeled by type.",
		[]string{connectionErrorLabel})

	metrics.connectionsOpened = newCounterWithoutLabels(cfg, metrics.Registry,
		"connections_opened",
		"Count of successful connections opened to the bidder.")

	metrics.requests = newCounter(cfg, metrics.Registry,
		"requests",
		"Count of total bid requests labeled by status.",
		[]string{requestStatusLabel})

	metrics.requestsTimer = newHistogramVec(cfg, metrics.Registry,
		"request_time_seconds",
		"Seconds to answer bid requests labeled by status.",
		[]string{requestStatusLabel},
		requestTimeBuckets)

	metrics.candidates = newCounter(cfg, metrics.Registry,
		"candidates",
		"Count of ad candidates evaluated labeled by outcome.",
		[]string{candidateStatusLabel})

	metrics.bids = newCounter(cfg, metrics.Registry,
		"bids",
		"Count of bids emitted labeled by pricing strategy.",
		[]string{strategyLabel})

	metrics.bidPrices = newHistogramVec(cfg, metrics.Registry,
		"bid_price_micros",
		"Bid prices in micro-units labeled by pricing strategy.",
		[]string{strategyLabel},
		priceBuckets)

	metrics.scoreLookups = newCounter(cfg, metrics.Registry,
		"score_lookups",
		"Count of user score lookups labeled by result.",
		[]string{scoreResultLabel})

	preloadLabelValues(&metrics, strategies)

	return &metrics
}

func newCounter(cfg config.PrometheusMetrics, registry *prometheus.Registry, name, help string, labels []string) *prometheus.CounterVec {
	opts := prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      name,
		Help:      help,
	}
	counter := prometheus.NewCounterVec(opts, labels)
	registry.MustRegister(counter)
	return counter
}

func newCounterWithoutLabels(cfg config.PrometheusMetrics, registry *prometheus.Registry, name, help string) prometheus.Counter {
	opts := prometheus.CounterOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      name,
		Help:      help,
	}
	counter := prometheus.NewCounter(opts)
	registry.MustRegister(counter)
	return counter
}

func newHistogramVec(cfg config.PrometheusMetrics, registry *prometheus.Registry, name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	opts := prometheus.HistogramOpts{
		Namespace: cfg.Namespace,
		Subsystem: cfg.Subsystem,
		Name:      name,
		Help:      help,
		Buckets:   buckets,
	}
	histogram := prometheus.NewHistogramVec(opts, labels)
	registry.MustRegister(histogram)
	return histogram
}

func (m *Metrics) RecordConnectionAccept(success bool) {
	if success {
		m.connectionsOpened.Inc()
	} else {
		m.connectionsError.With(prometheus.Labels{
			connectionErrorLabel: connectionAcceptError,
		}).Inc()
	}
}

func (m *Metrics) RecordConnectionClose(success bool) {
	if success {
		m.connectionsClosed.Inc()
	} else {
		m.connectionsError.With(prometheus.Labels{
			connectionErrorLabel: connectionCloseError,
		}).Inc()
	}
}

func (m *Metrics) RecordRequest(status metrics.RequestStatus) {
	m.requests.With(prometheus.Labels{
		requestStatusLabel: string(status),
	}).Inc()
}

func (m *Metrics) RecordRequestTime(status metrics.RequestStatus, length time.Duration) {
	m.requestsTimer.With(prometheus.Labels{
		requestStatusLabel: string(status),
	}).Observe(length.Seconds())
}

func (m *Metrics) RecordCandidate(status metrics.CandidateStatus) {
	m.candidates.With(prometheus.Labels{
		candidateStatusLabel: string(status),
	}).Inc()
}

func (m *Metrics) RecordBid(strategy string, priceMicros int64) {
	labels := prometheus.Labels{
		strategyLabel: strategy,
	}
	m.bids.With(labels).Inc()
	m.bidPrices.With(labels).Observe(float64(priceMicros))
}

func (m *Metrics) RecordScoreLookup(result metrics.ScoreLookupResult) {
	m.scoreLookups.With(prometheus.Labels{
		scoreResultLabel: string(result),
	}).Inc()
}
