package strategy

import (
	"errors"

	"github.com/BeeswaxIO/hexbid/bidproto"
	"github.com/BeeswaxIO/hexbid/logger"
	"github.com/BeeswaxIO/hexbid/util/randomutil"
)

const maxPriceKey = "max_price_micros_usd"

var errNonPositiveMax = errors.New("max price must be positive")

// randomPriceStrategy bids a uniform price in [1, max].
type randomPriceStrategy struct {
	log    logger.Logger
	random randomutil.RandomGenerator
}

func newRandomPriceStrategy(deps Deps) Strategy {
	return &randomPriceStrategy{
		log:    deps.Logger.With("strategy", RandomPrice),
		random: deps.Random,
	}
}

func (s *randomPriceStrategy) Name() Name {
	return RandomPrice
}

func (s *randomPriceStrategy) BidPriceMicros(candidate *bidproto.Adcandidate, _ *bidproto.BidRequest) int64 {
	params := candidate.GetBidding().GetCustomStrategy().GetParams()
	if maxPrice, ok := firstParsedParam(s.log, params, maxPriceKey, parsePositiveInt64); ok {
		return 1 + s.random.Int64N(maxPrice)
	}

	s.log.Warn("No max price found, setting price to 0", "line_item_id", candidate.LineItemID)
	return 0
}

// A non-positive max is skipped like a value that does not parse, so a later valid one can still be used.
func parsePositiveInt64(value string) (int64, error) {
	v, err := parseInt64(value)
	if err != nil {
		return 0, err
	}
	if v <= 0 {
		return 0, errNonPositiveMax
	}
	return v, nil
}
