// Package strategy prices ad candidates. Each candidate names its pricing strategy in its
// bidding block; the Resolver maps that name onto one of a closed set of strategies.
package strategy

import (
	"github.com/BeeswaxIO/hexbid/bidproto"
	"github.com/BeeswaxIO/hexbid/logger"
	"github.com/BeeswaxIO/hexbid/metrics"
	"github.com/BeeswaxIO/hexbid/scoring"
	"github.com/BeeswaxIO/hexbid/util/randomutil"
)

// Name is the canonical name of a registered strategy. Candidates may spell it in any case.
type Name string

const (
	FlatPrice   Name = "FLAT_PRICE_STRATEGY"
	RandomPrice Name = "RANDOM_PRICE_STRATEGY"
	Retargeting Name = "RETARGETING_STRATEGY"
)

// Names returns every registered strategy name.
func Names() []Name {
	return []Name{
		FlatPrice,
		RandomPrice,
		Retargeting,
	}
}

// NamesAsString is Names for callers keyed by plain strings, such as metrics.
func NamesAsString() []string {
	names := Names()
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = string(n)
	}
	return out
}

func (n Name) String() string {
	return string(n)
}

// Strategy computes the bid price of a candidate in micro-units.
//
// A strategy never fails: when its parameters are missing or unusable it logs the
// reason and prices the candidate at 0.
type Strategy interface {
	Name() Name
	BidPriceMicros(candidate *bidproto.Adcandidate, auction *bidproto.BidRequest) int64
}

// Deps are the collaborators shared by every strategy.
type Deps struct {
	Logger  logger.Logger
	Random  randomutil.RandomGenerator
	Scorer  scoring.Scorer
	Metrics metrics.MetricsEngine
}
