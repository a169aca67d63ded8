package scoring

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/coocood/freecache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeeswaxIO/hexbid/config"
	"github.com/BeeswaxIO/hexbid/errortypes"
	"github.com/BeeswaxIO/hexbid/logger"
)

type countingScorer struct {
	mu     sync.Mutex
	calls  int
	scores map[string]int64
	err    error
}

func (s *countingScorer) Score(userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return 0, s.err
	}
	return s.scores[userID], nil
}

func TestLengthScorer(t *testing.T) {
	testCases := []struct {
		description string
		userID      string
		expected    int64
	}{
		{"empty id", "", 0},
		{"ascii id", "user-1234", 9},
		{"multi-byte characters count once", "ユーザー", 4},
	}

	for _, test := range testCases {
		score, err := LengthScorer{}.Score(test.userID)
		assert.NoError(t, err, test.description)
		assert.Equal(t, test.expected, score, test.description)
	}
}

func TestCachedScorerServesRepeatsFromCache(t *testing.T) {
	backend := &countingScorer{scores: map[string]int64{"u1": 17, "u2": -3}}
	cached := NewCachedScorer(backend, 1024*1024, 60, logger.NewRecordingLogger())

	for i := 0; i < 3; i++ {
		score, err := cached.Score("u1")
		require.NoError(t, err)
		assert.Equal(t, int64(17), score)
	}
	score, err := cached.Score("u2")
	require.NoError(t, err)
	assert.Equal(t, int64(-3), score)

	assert.Equal(t, 2, backend.calls)
}

func TestCachedScorerDoesNotCacheFailures(t *testing.T) {
	backend := &countingScorer{err: &errortypes.ScoreUnavailable{Message: "down"}}
	cached := NewCachedScorer(backend, 1024*1024, 60, logger.NewRecordingLogger())

	_, err := cached.Score("u1")
	assert.Error(t, err)
	_, err = cached.Score("u1")
	assert.Error(t, err)
	assert.Equal(t, 2, backend.calls)
}

func TestCachedScorerLogsSetFailures(t *testing.T) {
	userID := strings.Repeat("u", 70000)
	backend := &countingScorer{scores: map[string]int64{userID: 5}}
	log := logger.NewRecordingLogger()
	cached := NewCachedScorer(backend, 1024*1024, 60, log)

	for i := 0; i < 2; i++ {
		score, err := cached.Score(userID)
		require.NoError(t, err)
		assert.Equal(t, int64(5), score)
	}

	assert.Equal(t, 2, backend.calls, "keys too large for the cache always reach the backend")
	debug := log.EntriesAt(logger.LevelDebug)
	if assert.Len(t, debug, 2) {
		assert.Equal(t, freecache.ErrLargeKey.Error(), debug[0].Fields["error"])
		assert.Equal(t, 70000, debug[0].Fields["user_id_bytes"])
	}
}

func TestRedisScorerUnreachableIsUnavailable(t *testing.T) {
	scorer := NewRedisScorer(config.RedisScoring{Addr: "127.0.0.1:1", KeyPrefix: "hexbid:score:", PoolSize: 1}, 50*time.Millisecond)
	defer scorer.Close()

	start := time.Now()
	_, err := scorer.Score("user-1")
	elapsed := time.Since(start)

	var unavailable *errortypes.ScoreUnavailable
	assert.True(t, errors.As(err, &unavailable), "expected ScoreUnavailable, got %v", err)
	assert.Less(t, elapsed, time.Second, "lookup must be bounded by the configured timeout")
}

func TestNewScorer(t *testing.T) {
	log := logger.NewRecordingLogger()
	scorer, shutdown, err := NewScorer(config.Scoring{Type: config.ScoringTypeLength}, log)
	require.NoError(t, err)
	assert.IsType(t, LengthScorer{}, scorer)
	assert.NoError(t, shutdown())

	scorer, shutdown, err = NewScorer(config.Scoring{
		Type:      config.ScoringTypeRedis,
		TimeoutMs: 10,
		Redis:     config.RedisScoring{Addr: "127.0.0.1:1"},
		Cache:     config.ScoreCache{SizeBytes: 1024 * 1024, TTLSeconds: 30},
	}, log)
	require.NoError(t, err)
	cached, ok := scorer.(*CachedScorer)
	require.True(t, ok)
	assert.IsType(t, &RedisScorer{}, cached.next)
	assert.NoError(t, shutdown())

	_, _, err = NewScorer(config.Scoring{Type: "bogus"}, log)
	assert.Error(t, err)
}

type fakePinger struct {
	mu  sync.Mutex
	err error
}

func (p *fakePinger) Ping(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}

func (p *fakePinger) setErr(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func TestHealthCheckLogsTransitions(t *testing.T) {
	pinger := &fakePinger{}
	log := logger.NewRecordingLogger()
	check := NewHealthCheck(pinger, log)

	assert.True(t, check.Healthy())
	assert.NoError(t, check.Run())
	assert.Empty(t, log.Entries())

	pinger.setErr(errors.New("connection refused"))
	assert.Error(t, check.Run())
	assert.Error(t, check.Run())
	assert.False(t, check.Healthy())
	assert.Len(t, log.EntriesAt(logger.LevelWarn), 1, "only the transition is logged")

	pinger.setErr(nil)
	assert.NoError(t, check.Run())
	assert.True(t, check.Healthy())
	assert.Len(t, log.EntriesAt(logger.LevelInfo), 1)
}

func TestNewScorerWithHealthCheck(t *testing.T) {
	log := logger.NewRecordingLogger()
	_, shutdown, err := NewScorer(config.Scoring{
		Type:                       config.ScoringTypeRedis,
		TimeoutMs:                  10,
		Redis:                      config.RedisScoring{Addr: "127.0.0.1:1"},
		HealthCheckIntervalSeconds: 60,
	}, log)
	require.NoError(t, err)

	// The first probe runs during construction and the store is unreachable.
	warnings := log.EntriesAt(logger.LevelWarn)
	require.Len(t, warnings, 1)
	assert.Equal(t, "127.0.0.1:1", warnings[0].Fields["score_store"])
	assert.NoError(t, shutdown())
}
