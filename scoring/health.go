package scoring

import (
	"context"
	"sync/atomic"

	"github.com/BeeswaxIO/hexbid/logger"
)

// Pinger is a remote score store which can be probed for reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthCheck probes a score store and logs when it becomes unreachable or recovers.
// It is run periodically by a task.TickerTask.
type HealthCheck struct {
	pinger  Pinger
	log     logger.Logger
	healthy atomic.Bool
}

func NewHealthCheck(pinger Pinger, log logger.Logger) *HealthCheck {
	h := &HealthCheck{
		pinger: pinger,
		log:    log,
	}
	h.healthy.Store(true)
	return h
}

func (h *HealthCheck) Run() error {
	if err := h.pinger.Ping(context.Background()); err != nil {
		if h.healthy.Swap(false) {
			h.log.Warn("Score store unreachable, retargeting bids will price at 0", "error", err.Error())
		}
		return err
	}
	if !h.healthy.Swap(true) {
		h.log.Info("Score store reachable again")
	}
	return nil
}

// Healthy reports the result of the last probe. It is true before the first one.
func (h *HealthCheck) Healthy() bool {
	return h.healthy.Load()
}
