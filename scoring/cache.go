package scoring

import (
	"encoding/binary"

	"github.com/coocood/freecache"

	"github.com/BeeswaxIO/hexbid/logger"
)

// CachedScorer keeps recent scores in a freecache LRU in front of another Scorer.
// Failed lookups are not cached, so an unavailable store is retried on the next request.
type CachedScorer struct {
	next       Scorer
	lru        *freecache.Cache
	ttlSeconds int
	log        logger.Logger
}

// NewCachedScorer wraps next with a cache of sizeBytes. freecache enforces a minimum of 512KB.
func NewCachedScorer(next Scorer, sizeBytes, ttlSeconds int, log logger.Logger) *CachedScorer {
	return &CachedScorer{
		next:       next,
		lru:        freecache.NewCache(sizeBytes),
		ttlSeconds: ttlSeconds,
		log:        log,
	}
}

func (c *CachedScorer) Score(userID string) (int64, error) {
	key := []byte(userID)
	if b, err := c.lru.Get(key); err == nil && len(b) == 8 {
		return int64(binary.BigEndian.Uint64(b)), nil
	}

	score, err := c.next.Score(userID)
	if err != nil {
		return 0, err
	}

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(score))
	// The score is still valid when it cannot be cached.
	if err := c.lru.Set(key, buf[:], c.ttlSeconds); err != nil {
		c.log.Debug("Score not cached", "error", err.Error(), "user_id_bytes", len(key))
	}
	return score, nil
}
