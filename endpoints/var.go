package endpoints

import (
	"net/http"

	gometrics "github.com/rcrowley/go-metrics"
)

// NewVarEndpoint serves a JSON snapshot of the request and bid counters in registry.
func NewVarEndpoint(registry gometrics.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		gometrics.WriteJSONOnce(registry, w)
	}
}
