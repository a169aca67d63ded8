package endpoints

import (
	"net/http"
)

// NewHealthEndpoint answers liveness probes with a fixed body.
func NewHealthEndpoint(response string) http.HandlerFunc {
	body := []byte(response)
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write(body)
	}
}
