package strategy

import (
	"strings"

	"github.com/BeeswaxIO/hexbid/bidproto"
	"github.com/BeeswaxIO/hexbid/errortypes"
	"github.com/BeeswaxIO/hexbid/logger"
	metricsConf "github.com/BeeswaxIO/hexbid/metrics/config"
	"github.com/BeeswaxIO/hexbid/scoring"
	"github.com/BeeswaxIO/hexbid/util/randomutil"
)

type builder func(deps Deps) Strategy

var registry = map[Name]builder{
	FlatPrice:   newFlatPriceStrategy,
	RandomPrice: newRandomPriceStrategy,
	Retargeting: newRetargetingStrategy,
}

// Resolver maps a candidate's strategy descriptor to one of the registered strategies.
// Strategies are built once and shared by every request.
type Resolver struct {
	strategies []Strategy
}

// NewResolver builds every registered strategy. Missing dependencies fall back to the
// glog logger, the global random source, the length scorer and a no-op metrics engine.
func NewResolver(deps Deps) *Resolver {
	if deps.Logger == nil {
		deps.Logger = logger.NewGlogLogger()
	}
	if deps.Random == nil {
		deps.Random = randomutil.RandomNumberGenerator{}
	}
	if deps.Scorer == nil {
		deps.Scorer = scoring.LengthScorer{}
	}
	if deps.Metrics == nil {
		deps.Metrics = &metricsConf.DummyMetricsEngine{}
	}

	r := &Resolver{strategies: make([]Strategy, 0, len(registry))}
	for _, name := range Names() {
		r.strategies = append(r.strategies, registry[name](deps))
	}
	return r
}

// Resolve returns the strategy named by the candidate's bidding block.
//
// The error is one of *errortypes.MissingBiddingInfo, *errortypes.MissingStrategyDescriptor
// or *errortypes.UnknownStrategy.
func (r *Resolver) Resolve(candidate *bidproto.Adcandidate) (Strategy, error) {
	bidding := candidate.GetBidding()
	if bidding == nil {
		return nil, &errortypes.MissingBiddingInfo{LineItemID: candidate.LineItemID}
	}

	name := bidding.GetCustomStrategy().GetName()
	if name == "" {
		return nil, &errortypes.MissingStrategyDescriptor{LineItemID: candidate.LineItemID}
	}

	for _, s := range r.strategies {
		if strings.EqualFold(name, string(s.Name())) {
			return s, nil
		}
	}
	return nil, &errortypes.UnknownStrategy{LineItemID: candidate.LineItemID, Name: name}
}
