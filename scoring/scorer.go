// Package scoring provides the user score lookup consumed by the retargeting strategy.
package scoring

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/BeeswaxIO/hexbid/config"
	"github.com/BeeswaxIO/hexbid/logger"
	"github.com/BeeswaxIO/hexbid/util/task"
)

// Scorer returns the score of a user. Implementations must be safe for concurrent use
// and must return promptly: the lookup runs inside the bid request.
//
// Any error means the score is unavailable for this request. It never fails the request.
type Scorer interface {
	Score(userID string) (int64, error)
}

// LengthScorer scores a user by the number of characters in its id.
//
// It stands in for a real key-value lookup and carries no business meaning.
type LengthScorer struct{}

func (LengthScorer) Score(userID string) (int64, error) {
	return int64(utf8.RuneCountInString(userID)), nil
}

// NewScorer builds the scorer selected by configuration, wrapped in an in-process cache
// when one is configured. A Redis scorer is also probed every health check interval.
// The returned function stops the probe and releases any connection held by the scorer.
func NewScorer(cfg config.Scoring, log logger.Logger) (Scorer, func() error, error) {
	var scorer Scorer
	shutdown := func() error { return nil }

	switch cfg.Type {
	case config.ScoringTypeLength:
		scorer = LengthScorer{}
	case config.ScoringTypeRedis:
		redisScorer := NewRedisScorer(cfg.Redis, time.Duration(cfg.TimeoutMs)*time.Millisecond)
		scorer = redisScorer
		shutdown = redisScorer.Close
		if cfg.HealthCheckIntervalSeconds > 0 {
			healthTask := task.NewTickerTask(time.Duration(cfg.HealthCheckIntervalSeconds)*time.Second,
				NewHealthCheck(redisScorer, log.With("score_store", cfg.Redis.Addr)))
			healthTask.Start()
			shutdown = func() error {
				healthTask.Stop()
				return redisScorer.Close()
			}
		}
	default:
		return nil, nil, fmt.Errorf("unknown scoring.type: %q", cfg.Type)
	}

	if cfg.Cache.SizeBytes > 0 {
		scorer = NewCachedScorer(scorer, cfg.Cache.SizeBytes, cfg.Cache.TTLSeconds, log.With("score_cache", true))
	}
	return scorer, shutdown, nil
}
