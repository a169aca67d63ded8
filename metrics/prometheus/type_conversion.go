package prometheusmetrics

import (
	"github.com/BeeswaxIO/hexbid/metrics"
)

func requestStatusesAsString() []string {
	values := metrics.RequestStatuses()
	valuesAsString := make([]string, len(values))
	for i, v := range values {
		valuesAsString[i] = string(v)
	}
	return valuesAsString
}

func candidateStatusesAsString() []string {
	values := metrics.CandidateStatuses()
	valuesAsString := make([]string, len(values))
	for i, v := range values {
		valuesAsString[i] = string(v)
	}
	return valuesAsString
}

func scoreLookupResultsAsString() []string {
	values := metrics.ScoreLookupResults()
	valuesAsString := make([]string, len(values))
	for i, v := range values {
		valuesAsString[i] = string(v)
	}
	return valuesAsString
}
