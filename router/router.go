package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang/glog"
	"github.com/julienschmidt/httprouter"

	"github.com/BeeswaxIO/hexbid/bidder"
	"github.com/BeeswaxIO/hexbid/config"
	"github.com/BeeswaxIO/hexbid/endpoints"
	"github.com/BeeswaxIO/hexbid/logger"
	metricsConf "github.com/BeeswaxIO/hexbid/metrics/config"
	"github.com/BeeswaxIO/hexbid/scoring"
	"github.com/BeeswaxIO/hexbid/strategy"
	"github.com/BeeswaxIO/hexbid/util/randomutil"
)

const (
	healthResponse   = "ok"
	notFoundResponse = "page not found"
)

// NoCache Middleware prevents clients from caching the results
type NoCache struct {
	Handler http.Handler
}

func (m NoCache) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Add("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Add("Pragma", "no-cache")
	w.Header().Add("Expires", "0")
	m.Handler.ServeHTTP(w, r)
}

// TrimTrailingSlash routes "/bid/" the same way as "/bid".
type TrimTrailingSlash struct {
	Handler http.Handler
}

func (m TrimTrailingSlash) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if path := r.URL.Path; len(path) > 1 && strings.HasSuffix(path, "/") {
		r.URL.Path = strings.TrimRight(path, "/")
		if r.URL.Path == "" {
			r.URL.Path = "/"
		}
	}
	m.Handler.ServeHTTP(w, r)
}

// Router is the main handler of the bidder. It owns every long-lived component.
type Router struct {
	*httprouter.Router
	MetricsEngine *metricsConf.DetailedMetricsEngine
	Shutdown      func()
}

// New builds every component from cfg and registers the bid, health and var routes.
func New(cfg *config.Configuration) (r *Router, err error) {
	r = &Router{
		Router: httprouter.New(),
	}
	r.RedirectTrailingSlash = false
	r.NotFound = http.HandlerFunc(notFound)

	log := logger.NewGlogLogger()

	r.MetricsEngine = metricsConf.NewMetricsEngine(cfg, strategy.NamesAsString())

	scorer, shutdownScorer, err := scoring.NewScorer(cfg.Scoring, log.With("component", "scoring"))
	if err != nil {
		return nil, fmt.Errorf("could not create the user scorer: %v", err)
	}
	r.Shutdown = func() {
		if err := shutdownScorer(); err != nil {
			glog.Errorf("Failed to release the user scorer: %v", err)
		}
	}

	random := randomutil.New(cfg.Random.Seed)
	resolver := strategy.NewResolver(strategy.Deps{
		Logger:  log.With("component", "strategy"),
		Random:  random,
		Scorer:  scorer,
		Metrics: r.MetricsEngine,
	})
	decider := bidder.NewBidder(resolver, random, cfg.Agent, log.With("component", "bidder"), r.MetricsEngine)
	bidHandler := endpoints.NewBidHandler(decider, log.With("component", "bid_handler"), r.MetricsEngine, cfg.MaxRequestSize)

	r.POST("/bid", bidHandler.Serve)
	r.GET("/health", adapt(endpoints.NewHealthEndpoint(healthResponse)))
	r.GET("/var", adapt(endpoints.NewVarEndpoint(r.MetricsEngine.GoMetrics.MetricsRegistry)))

	return r, nil
}

// Handler wraps the router in the middleware every main port response goes through.
func (r *Router) Handler() http.Handler {
	return NoCache{Handler: TrimTrailingSlash{Handler: r.Router}}
}

func adapt(h http.HandlerFunc) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		h(w, r)
	}
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(notFoundResponse))
}
