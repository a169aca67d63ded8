package strategy

import (
	"strconv"
	"strings"

	"github.com/BeeswaxIO/hexbid/bidproto"
	"github.com/BeeswaxIO/hexbid/errortypes"
	"github.com/BeeswaxIO/hexbid/logger"
)

type paramParser func(value string) (int64, error)

func parseInt64(value string) (int64, error) {
	return strconv.ParseInt(value, 10, 64)
}

// firstParsedParam walks params in order and returns the first value under key
// (compared case-insensitively) that parses. Values that do not parse are logged and skipped.
func firstParsedParam(log logger.Logger, params []bidproto.Param, key string, parse paramParser) (int64, bool) {
	for _, p := range params {
		if !strings.EqualFold(p.Key, key) {
			continue
		}
		v, err := parse(p.Value)
		if err != nil {
			failure := &errortypes.StrategyParamParseFailure{Key: p.Key, Value: p.Value, Cause: err}
			log.Warn("Skipping strategy param", "error", failure.Error(), "code", failure.Code())
			continue
		}
		return v, true
	}
	return 0, false
}
