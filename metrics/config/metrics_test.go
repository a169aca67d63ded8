package config

import (
	"testing"
	"time"

	gometrics "github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"

	mainConfig "github.com/BeeswaxIO/hexbid/config"
	"github.com/BeeswaxIO/hexbid/metrics"
)

var strategies = []string{"FLAT_PRICE_STRATEGY", "RANDOM_PRICE_STRATEGY", "RETARGETING_STRATEGY"}

func TestGoMetricsEngineOnly(t *testing.T) {
	cfg := mainConfig.Configuration{}
	testEngine := NewMetricsEngine(&cfg, strategies)

	_, ok := testEngine.MetricsEngine.(*metrics.Metrics)
	assert.True(t, ok, "Expected a go-metrics Metrics as MetricsEngine")
	assert.NotNil(t, testEngine.GoMetrics)
	assert.Nil(t, testEngine.PrometheusMetrics)
	assert.Nil(t, testEngine.PrometheusRegistry())
}

func TestPrometheusEnabled(t *testing.T) {
	cfg := mainConfig.Configuration{}
	cfg.Metrics.Prometheus.Port = 9100
	cfg.Metrics.Prometheus.Namespace = "hexbid"
	testEngine := NewMetricsEngine(&cfg, strategies)

	multi, ok := testEngine.MetricsEngine.(*MultiMetricsEngine)
	assert.True(t, ok, "Expected a MultiMetricsEngine")
	assert.Len(t, *multi, 2)
	assert.NotNil(t, testEngine.PrometheusRegistry())
}

// Test the multiengine
func TestMultiMetricsEngine(t *testing.T) {
	goEngine := metrics.NewMetrics(gometrics.NewPrefixedRegistry("hexbid."), strategies)
	engineList := make(MultiMetricsEngine, 2)
	engineList[0] = goEngine
	engineList[1] = &DummyMetricsEngine{}
	var metricsEngine metrics.MetricsEngine
	metricsEngine = &engineList

	for i := 0; i < 5; i++ {
		metricsEngine.RecordRequest(metrics.RequestStatusOK)
		metricsEngine.RecordRequestTime(metrics.RequestStatusOK, time.Millisecond)
		metricsEngine.RecordCandidate(metrics.CandidateStatusBid)
		metricsEngine.RecordBid("RETARGETING_STRATEGY", 2000)
	}
	metricsEngine.RecordRequest(metrics.RequestStatusEmpty)
	metricsEngine.RecordScoreLookup(metrics.ScoreLookupNoUser)
	metricsEngine.RecordConnectionAccept(true)
	metricsEngine.RecordConnectionClose(false)

	VerifyMetrics(t, "Requests.ok", goEngine.RequestStatuses[metrics.RequestStatusOK].Count(), 5)
	VerifyMetrics(t, "Requests.empty", goEngine.RequestStatuses[metrics.RequestStatusEmpty].Count(), 1)
	VerifyMetrics(t, "RequestTime.ok", goEngine.RequestTimer[metrics.RequestStatusOK].Count(), 5)
	VerifyMetrics(t, "Candidates.bid", goEngine.CandidateStatuses[metrics.CandidateStatusBid].Count(), 5)
	VerifyMetrics(t, "Bids.retargeting", goEngine.BidMeters["RETARGETING_STRATEGY"].Count(), 5)
	VerifyMetrics(t, "ScoreLookups.no_user", goEngine.ScoreLookups[metrics.ScoreLookupNoUser].Count(), 1)
	VerifyMetrics(t, "ActiveConnections", goEngine.ConnectionCounter.Count(), 1)
	VerifyMetrics(t, "ConnectionCloseErrors", goEngine.ConnectionCloseErrorMeter.Count(), 1)
}

func VerifyMetrics(t *testing.T, name string, actual int64, expected int64) {
	t.Helper()
	if expected != actual {
		t.Errorf("Error in metric %s: got %d, expected %d.", name, actual, expected)
	}
}
