package prometheusmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

func preloadLabelValues(m *Metrics, strategies []string) {
	var (
		connectionErrorValues = []string{connectionAcceptError, connectionCloseError}
		requestStatusValues   = requestStatusesAsString()
		candidateStatusValues = candidateStatusesAsString()
		scoreResultValues     = scoreLookupResultsAsString()
	)

	preloadLabelValuesForCounter(m.connectionsError, map[string][]string{
		connectionErrorLabel: connectionErrorValues,
	})

	preloadLabelValuesForCounter(m.requests, map[string][]string{
		requestStatusLabel: requestStatusValues,
	})

	preloadLabelValuesForHistogram(m.requestsTimer, map[string][]string{
		requestStatusLabel: requestStatusValues,
	})

	preloadLabelValuesForCounter(m.candidates, map[string][]string{
		candidateStatusLabel: candidateStatusValues,
	})

	preloadLabelValuesForCounter(m.bids, map[string][]string{
		strategyLabel: strategies,
	})

	preloadLabelValuesForHistogram(m.bidPrices, map[string][]string{
		strategyLabel: strategies,
	})

	preloadLabelValuesForCounter(m.scoreLookups, map[string][]string{
		scoreResultLabel: scoreResultValues,
	})
}

func preloadLabelValuesForCounter(counter *prometheus.CounterVec, labelsWithValues map[string][]string) {
	registerLabelPermutations(labelsWithValues, func(labels prometheus.Labels) {
		counter.With(labels)
	})
}

func preloadLabelValuesForHistogram(histogram *prometheus.HistogramVec, labelsWithValues map[string][]string) {
	registerLabelPermutations(labelsWithValues, func(labels prometheus.Labels) {
		histogram.With(labels)
	})
}

func registerLabelPermutations(labelsWithValues map[string][]string, register func(prometheus.Labels)) {
	if len(labelsWithValues) == 0 {
		return
	}

	keys := make([]string, 0, len(labelsWithValues))
	values := make([][]string, 0, len(labelsWithValues))
	for k, v := range labelsWithValues {
		keys = append(keys, k)
		values = append(values, v)
	}

	labels := prometheus.Labels{}
	registerLabelPermutationsRecursive(0, keys, values, labels, register)
}

func registerLabelPermutationsRecursive(depth int, keys []string, values [][]string, labels prometheus.Labels, register func(prometheus.Labels)) {
	if depth == len(keys) {
		register(labels)
		return
	}

	label := keys[depth]
	for _, value := range values[depth] {
		labels[label] = value
		registerLabelPermutationsRecursive(depth+1, keys, values, labels, register)
	}
}
