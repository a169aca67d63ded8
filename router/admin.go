package router

import (
	"net/http"
	"net/http/pprof"

	"github.com/BeeswaxIO/hexbid/endpoints"
)

// Admin returns the handler of the admin port.
func Admin(version, revision string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/version", endpoints.NewVersionEndpoint(version, revision))
	mux.HandleFunc("/health", endpoints.NewHealthEndpoint(healthResponse))
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}
