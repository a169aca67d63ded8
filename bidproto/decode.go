package bidproto

import (
	"fmt"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"
)

// fieldDecoder consumes the value of one field from b and reports how many bytes it used.
// Returning 0 without an error means the field is not known (or has an unexpected wire
// type) and is skipped, the same way protobuf treats unknown fields.
type fieldDecoder func(num protowire.Number, typ protowire.Type, b []byte) (int, error)

// UnmarshalRequest decodes a BidAgentRequest from its binary encoding.
func UnmarshalRequest(b []byte) (*BidAgentRequest, error) {
	req := &BidAgentRequest{}
	if err := req.unmarshal(b); err != nil {
		return nil, fmt.Errorf("bidproto: decode BidAgentRequest: %w", err)
	}
	return req, nil
}

// UnmarshalResponse decodes a BidAgentResponse from its binary encoding.
func UnmarshalResponse(b []byte) (*BidAgentResponse, error) {
	resp := &BidAgentResponse{}
	if err := resp.unmarshal(b); err != nil {
		return nil, fmt.Errorf("bidproto: decode BidAgentResponse: %w", err)
	}
	return resp, nil
}

func consumeMessage(b []byte, decode fieldDecoder) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return protowire.ParseError(n)
		}
		b = b[n:]

		used, err := decode(num, typ, b)
		if err != nil {
			return fmt.Errorf("field %d: %w", num, err)
		}
		if used == 0 {
			used = protowire.ConsumeFieldValue(num, typ, b)
			if used < 0 {
				return fmt.Errorf("field %d: %w", num, protowire.ParseError(used))
			}
		}
		b = b[used:]
	}
	return nil
}

func consumeBytes(b []byte) ([]byte, int, error) {
	v, n := protowire.ConsumeBytes(b)
	if n < 0 {
		return nil, 0, protowire.ParseError(n)
	}
	return v, n, nil
}

func consumeString(b []byte) (string, int, error) {
	v, n, err := consumeBytes(b)
	if err != nil {
		return "", 0, err
	}
	if !utf8.Valid(v) {
		return "", 0, errInvalidUTF8
	}
	return string(v), n, nil
}

func consumeInt64(b []byte) (int64, int, error) {
	v, n := protowire.ConsumeVarint(b)
	if n < 0 {
		return 0, 0, protowire.ParseError(n)
	}
	return int64(v), n, nil
}

// consumePackedInt64 appends every varint of a packed repeated field to dst.
func consumePackedInt64(dst []int64, b []byte) ([]int64, int, error) {
	v, n, err := consumeBytes(b)
	if err != nil {
		return dst, 0, err
	}
	for len(v) > 0 {
		x, m, err := consumeInt64(v)
		if err != nil {
			return dst, 0, err
		}
		dst = append(dst, x)
		v = v[m:]
	}
	return dst, n, nil
}

func (m *BidAgentRequest) unmarshal(b []byte) error {
	return consumeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		v, n, err := consumeBytes(b)
		if err != nil {
			return 0, err
		}
		switch num {
		case 1:
			if m.BidRequest == nil {
				m.BidRequest = &BidRequest{}
			}
			return n, m.BidRequest.unmarshal(v)
		case 2:
			c := &Adcandidate{}
			if err := c.unmarshal(v); err != nil {
				return 0, err
			}
			m.Adcandidates = append(m.Adcandidates, c)
			return n, nil
		}
		return 0, nil
	})
}

func (m *BidRequest) unmarshal(b []byte) error {
	return consumeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			s, n, err := consumeString(b)
			m.ID = s
			return n, err
		case 2:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}
			if m.User == nil {
				m.User = &User{}
			}
			return n, m.User.unmarshal(v)
		}
		return 0, nil
	})
}

func (m *User) unmarshal(b []byte) error {
	return consumeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			s, n, err := consumeString(b)
			if err != nil {
				return 0, err
			}
			m.ID = &s
			return n, nil
		case 2:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}
			if m.Ext == nil {
				m.Ext = &UserExt{}
			}
			return n, m.Ext.unmarshal(v)
		}
		return 0, nil
	})
}

func (m *UserExt) unmarshal(b []byte) error {
	return consumeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 || typ != protowire.BytesType {
			return 0, nil
		}
		s, n, err := consumeString(b)
		if err != nil {
			return 0, err
		}
		m.UserID = &s
		return n, nil
	})
}

func (m *Adcandidate) unmarshal(b []byte) error {
	return consumeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n, err := consumeInt64(b)
			m.LineItemID = v
			return n, err
		case num == 2 && typ == protowire.VarintType:
			v, n, err := consumeInt64(b)
			if err != nil {
				return 0, err
			}
			m.CreativeIDs = append(m.CreativeIDs, v)
			return n, nil
		case num == 2 && typ == protowire.BytesType:
			ids, n, err := consumePackedInt64(m.CreativeIDs, b)
			m.CreativeIDs = ids
			return n, err
		case num == 3 && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}
			if m.Bidding == nil {
				m.Bidding = &Bidding{}
			}
			return n, m.Bidding.unmarshal(v)
		}
		return 0, nil
	})
}

func (m *Bidding) unmarshal(b []byte) error {
	return consumeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 || typ != protowire.BytesType {
			return 0, nil
		}
		v, n, err := consumeBytes(b)
		if err != nil {
			return 0, err
		}
		if m.CustomStrategy == nil {
			m.CustomStrategy = &CustomStrategy{}
		}
		return n, m.CustomStrategy.unmarshal(v)
	})
}

func (m *CustomStrategy) unmarshal(b []byte) error {
	return consumeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			s, n, err := consumeString(b)
			m.Name = s
			return n, err
		case 2:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}
			key, value, err := unmarshalPair(v)
			if err != nil {
				return 0, err
			}
			m.Params = append(m.Params, Param{Key: key, Value: value})
			return n, nil
		}
		return 0, nil
	})
}

// unmarshalPair decodes the two-string messages Param and AgentParam, which share field numbers.
func unmarshalPair(b []byte) (key, value string, err error) {
	err = consumeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			s, n, err := consumeString(b)
			key = s
			return n, err
		case 2:
			s, n, err := consumeString(b)
			value = s
			return n, err
		}
		return 0, nil
	})
	return key, value, err
}

func (m *BidAgentResponse) unmarshal(b []byte) error {
	return consumeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 || typ != protowire.BytesType {
			return 0, nil
		}
		v, n, err := consumeBytes(b)
		if err != nil {
			return 0, err
		}
		bid := &Bid{}
		if err := bid.unmarshal(v); err != nil {
			return 0, err
		}
		m.Bids = append(m.Bids, bid)
		return n, nil
	})
}

func (m *Bid) unmarshal(b []byte) error {
	return consumeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch {
		case num == 1 && typ == protowire.VarintType:
			v, n, err := consumeInt64(b)
			m.LineItemID = v
			return n, err
		case num == 2 && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}
			if m.Creative == nil {
				m.Creative = &Creative{}
			}
			return n, m.Creative.unmarshal(v)
		case num == 3 && typ == protowire.VarintType:
			v, n, err := consumeInt64(b)
			m.BidPriceMicros = v
			return n, err
		case num == 4 && typ == protowire.BytesType:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}
			if m.AgentData == nil {
				m.AgentData = &AgentData{}
			}
			return n, m.AgentData.unmarshal(v)
		}
		return 0, nil
	})
}

func (m *Creative) unmarshal(b []byte) error {
	return consumeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num != 1 || typ != protowire.VarintType {
			return 0, nil
		}
		v, n, err := consumeInt64(b)
		m.ID = v
		return n, err
	})
}

func (m *AgentData) unmarshal(b []byte) error {
	return consumeMessage(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if typ != protowire.BytesType {
			return 0, nil
		}
		switch num {
		case 1:
			s, n, err := consumeString(b)
			m.AgentID = s
			return n, err
		case 2:
			v, n, err := consumeBytes(b)
			if err != nil {
				return 0, err
			}
			key, value, err := unmarshalPair(v)
			if err != nil {
				return 0, err
			}
			m.Params = append(m.Params, AgentParam{Key: key, StringValue: value})
			return n, nil
		}
		return 0, nil
	})
}
