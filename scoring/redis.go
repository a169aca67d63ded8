package scoring

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/BeeswaxIO/hexbid/config"
	"github.com/BeeswaxIO/hexbid/errortypes"
)

const defaultLookupTimeout = 20 * time.Millisecond

// RedisScorer reads integer scores stored under keyPrefix+userID.
type RedisScorer struct {
	client    *redis.Client
	timeout   time.Duration
	keyPrefix string
}

// NewRedisScorer builds a Redis-backed Scorer. Every lookup is bounded by timeout
// and is never retried.
func NewRedisScorer(cfg config.RedisScoring, timeout time.Duration) *RedisScorer {
	if timeout <= 0 {
		timeout = defaultLookupTimeout
	}

	opts := &redis.Options{
		Addr:         cfg.Addr,
		DB:           cfg.DB,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DialTimeout:  timeout,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
		PoolSize:     cfg.PoolSize,
		MaxRetries:   -1,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	return &RedisScorer{
		client:    redis.NewClient(opts),
		timeout:   timeout,
		keyPrefix: cfg.KeyPrefix,
	}
}

// Score returns the stored score of userID. A missing key, a non-integer value or any
// transport failure is reported as *errortypes.ScoreUnavailable.
func (s *RedisScorer) Score(userID string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	score, err := s.client.Get(ctx, s.keyPrefix+userID).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, &errortypes.ScoreUnavailable{Message: "no score stored for user"}
		}
		return 0, &errortypes.ScoreUnavailable{Message: fmt.Sprintf("redis score lookup failed: %v", err)}
	}
	return score, nil
}

// Ping checks if Redis is reachable.
func (s *RedisScorer) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.client.Ping(pingCtx).Err()
}

// Close releases Redis resources.
func (s *RedisScorer) Close() error {
	return s.client.Close()
}
