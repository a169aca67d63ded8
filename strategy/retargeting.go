package strategy

import (
	"math"

	"github.com/BeeswaxIO/hexbid/bidproto"
	"github.com/BeeswaxIO/hexbid/errortypes"
	"github.com/BeeswaxIO/hexbid/logger"
	"github.com/BeeswaxIO/hexbid/metrics"
	"github.com/BeeswaxIO/hexbid/scoring"
)

const basePriceKey = "base_price_micros_usd"

// retargetingStrategy bids the user's score times a base price.
type retargetingStrategy struct {
	log     logger.Logger
	scorer  scoring.Scorer
	metrics metrics.MetricsEngine
}

func newRetargetingStrategy(deps Deps) Strategy {
	return &retargetingStrategy{
		log:     deps.Logger.With("strategy", Retargeting),
		scorer:  deps.Scorer,
		metrics: deps.Metrics,
	}
}

func (s *retargetingStrategy) Name() Name {
	return Retargeting
}

func (s *retargetingStrategy) BidPriceMicros(candidate *bidproto.Adcandidate, auction *bidproto.BidRequest) int64 {
	params := candidate.GetBidding().GetCustomStrategy().GetParams()
	basePrice, ok := firstParsedParam(s.log, params, basePriceKey, parseInt64)
	if !ok {
		s.log.Warn("No base price found, setting price to 0", "line_item_id", candidate.LineItemID)
		return 0
	}

	score, ok := s.userScore(auction)
	if !ok {
		s.log.Warn("No user score available, setting price to 0", "line_item_id", candidate.LineItemID)
		return 0
	}
	price, ok := multiplyPrice(score, basePrice)
	if !ok {
		s.log.Warn("Score times base price overflows, setting price to 0",
			"line_item_id", candidate.LineItemID, "score", score, "base_price_micros", basePrice)
		return 0
	}
	return price
}

// multiplyPrice returns a*b and false when the product does not fit in an int64.
func multiplyPrice(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	product := a * b
	if product/b != a {
		return 0, false
	}
	return product, true
}

// userScore looks up the score of the auction's user. A failed lookup is reported the
// same way as a missing user id.
func (s *retargetingStrategy) userScore(auction *bidproto.BidRequest) (int64, bool) {
	userID, ok := auction.UserID()
	if !ok {
		s.metrics.RecordScoreLookup(metrics.ScoreLookupNoUser)
		return 0, false
	}

	score, err := s.scorer.Score(userID)
	if err != nil {
		s.metrics.RecordScoreLookup(metrics.ScoreLookupUnavailable)
		s.log.Warn("User score lookup failed", "error", err.Error(), "code", errortypes.ReadCode(err))
		return 0, false
	}
	s.metrics.RecordScoreLookup(metrics.ScoreLookupOK)
	return score, true
}
