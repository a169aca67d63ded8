package strategy

import (
	"github.com/BeeswaxIO/hexbid/bidproto"
	"github.com/BeeswaxIO/hexbid/logger"
)

const flatPriceKey = "flat_price_micros_usd"

// flatPriceStrategy bids the configured price as-is.
type flatPriceStrategy struct {
	log logger.Logger
}

func newFlatPriceStrategy(deps Deps) Strategy {
	return &flatPriceStrategy{
		log: deps.Logger.With("strategy", FlatPrice),
	}
}

func (s *flatPriceStrategy) Name() Name {
	return FlatPrice
}

func (s *flatPriceStrategy) BidPriceMicros(candidate *bidproto.Adcandidate, _ *bidproto.BidRequest) int64 {
	params := candidate.GetBidding().GetCustomStrategy().GetParams()
	if price, ok := firstParsedParam(s.log, params, flatPriceKey, parseInt64); ok {
		return price
	}

	s.log.Warn("No flat price found, setting price to 0", "line_item_id", candidate.LineItemID)
	return 0
}
