// Package bidder turns the ad candidates of one auction into bids.
package bidder

import (
	"errors"
	"sort"

	"github.com/BeeswaxIO/hexbid/bidproto"
	"github.com/BeeswaxIO/hexbid/config"
	"github.com/BeeswaxIO/hexbid/errortypes"
	"github.com/BeeswaxIO/hexbid/logger"
	"github.com/BeeswaxIO/hexbid/metrics"
	"github.com/BeeswaxIO/hexbid/strategy"
	"github.com/BeeswaxIO/hexbid/util/randomutil"
)

const versionParamKey = "version"

// StrategyResolver finds the pricing strategy of a candidate.
type StrategyResolver interface {
	Resolve(candidate *bidproto.Adcandidate) (strategy.Strategy, error)
}

// Bidder prices every candidate independently. A candidate that cannot be priced is
// dropped from the result without affecting its siblings.
//
// Bidder holds no per-request state and is safe for concurrent use.
type Bidder struct {
	resolver    StrategyResolver
	random      randomutil.RandomGenerator
	log         logger.Logger
	metrics     metrics.MetricsEngine
	agentID     string
	agentParams []bidproto.AgentParam
}

func NewBidder(resolver StrategyResolver, random randomutil.RandomGenerator, cfg config.Agent, log logger.Logger, me metrics.MetricsEngine) *Bidder {
	return &Bidder{
		resolver:    resolver,
		random:      random,
		log:         log,
		metrics:     me,
		agentID:     cfg.ID,
		agentParams: agentParams(cfg),
	}
}

// agentParams returns the version param first, followed by the configured params sorted by key.
func agentParams(cfg config.Agent) []bidproto.AgentParam {
	params := []bidproto.AgentParam{{Key: versionParamKey, StringValue: cfg.Version}}

	keys := make([]string, 0, len(cfg.Params))
	for k := range cfg.Params {
		if k == versionParamKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		params = append(params, bidproto.AgentParam{Key: k, StringValue: cfg.Params[k]})
	}
	return params
}

// ComputeBids returns one bid per candidate that resolves to a strategy and has at least one
// creative, in input order.
func (b *Bidder) ComputeBids(candidates []*bidproto.Adcandidate, auction *bidproto.BidRequest) []*bidproto.Bid {
	bids := make([]*bidproto.Bid, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate == nil {
			continue
		}
		if bid := b.computeBid(candidate, auction); bid != nil {
			bids = append(bids, bid)
		}
	}
	return bids
}

func (b *Bidder) computeBid(candidate *bidproto.Adcandidate, auction *bidproto.BidRequest) *bidproto.Bid {
	s, err := b.resolver.Resolve(candidate)
	if err != nil {
		b.metrics.RecordCandidate(candidateStatus(err))
		b.log.Warn("Dropping candidate", "line_item_id", candidate.LineItemID, "error", err.Error(), "code", errortypes.ReadCode(err))
		return nil
	}

	if len(candidate.CreativeIDs) == 0 {
		b.metrics.RecordCandidate(metrics.CandidateStatusNoCreative)
		b.log.Warn("Dropping candidate without creatives", "line_item_id", candidate.LineItemID)
		return nil
	}

	creativeID := candidate.CreativeIDs[b.random.IntN(len(candidate.CreativeIDs))]
	price := s.BidPriceMicros(candidate, auction)

	b.metrics.RecordCandidate(metrics.CandidateStatusBid)
	b.metrics.RecordBid(s.Name().String(), price)
	b.log.Debug("Bid computed", "line_item_id", candidate.LineItemID, "creative_id", creativeID,
		"strategy", s.Name(), "bid_price_micros", price)

	return &bidproto.Bid{
		LineItemID:     candidate.LineItemID,
		Creative:       &bidproto.Creative{ID: creativeID},
		BidPriceMicros: price,
		AgentData:      b.agentData(),
	}
}

func (b *Bidder) agentData() *bidproto.AgentData {
	params := make([]bidproto.AgentParam, len(b.agentParams))
	copy(params, b.agentParams)
	return &bidproto.AgentData{
		AgentID: b.agentID,
		Params:  params,
	}
}

func candidateStatus(err error) metrics.CandidateStatus {
	var missingBidding *errortypes.MissingBiddingInfo
	var missingStrategy *errortypes.MissingStrategyDescriptor
	switch {
	case errors.As(err, &missingBidding):
		return metrics.CandidateStatusMissingBidding
	case errors.As(err, &missingStrategy):
		return metrics.CandidateStatusMissingStrategy
	default:
		return metrics.CandidateStatusUnknownStrategy
	}
}
