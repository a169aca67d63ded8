package bidproto

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"
)

var errInvalidUTF8 = errors.New("string field contains invalid UTF-8")

// Marshal encodes the response envelope. Zero-valued scalars are omitted, as in proto3.
func (m *BidAgentResponse) Marshal() ([]byte, error) {
	var b []byte
	for i, bid := range m.Bids {
		var err error
		b, err = appendMessage(b, 1, bid.appendTo)
		if err != nil {
			return nil, fmt.Errorf("bidproto: encode bid %d: %w", i, err)
		}
	}
	return b, nil
}

// Marshal encodes the request. The service only decodes requests; this exists for
// clients and tests.
func (m *BidAgentRequest) Marshal() ([]byte, error) {
	var b []byte
	var err error
	if m.BidRequest != nil {
		if b, err = appendMessage(b, 1, m.BidRequest.appendTo); err != nil {
			return nil, fmt.Errorf("bidproto: encode bid request: %w", err)
		}
	}
	for i, c := range m.Adcandidates {
		if b, err = appendMessage(b, 2, c.appendTo); err != nil {
			return nil, fmt.Errorf("bidproto: encode adcandidate %d: %w", i, err)
		}
	}
	return b, nil
}

// appendMessage appends a length-delimited sub-message produced by encode.
func appendMessage(b []byte, num protowire.Number, encode func([]byte) ([]byte, error)) ([]byte, error) {
	inner, err := encode(nil)
	if err != nil {
		return b, err
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner), nil
}

func appendString(b []byte, num protowire.Number, s string) ([]byte, error) {
	if !utf8.ValidString(s) {
		return b, errInvalidUTF8
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s), nil
}

func appendNonEmptyString(b []byte, num protowire.Number, s string) ([]byte, error) {
	if s == "" {
		return b, nil
	}
	return appendString(b, num, s)
}

func appendInt64(b []byte, num protowire.Number, v int64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func appendPair(key, value string) func([]byte) ([]byte, error) {
	return func(b []byte) ([]byte, error) {
		b, err := appendNonEmptyString(b, 1, key)
		if err != nil {
			return b, err
		}
		return appendNonEmptyString(b, 2, value)
	}
}

func (m *BidRequest) appendTo(b []byte) ([]byte, error) {
	b, err := appendNonEmptyString(b, 1, m.ID)
	if err != nil {
		return b, err
	}
	if m.User != nil {
		return appendMessage(b, 2, m.User.appendTo)
	}
	return b, nil
}

func (m *User) appendTo(b []byte) ([]byte, error) {
	var err error
	if m.ID != nil {
		if b, err = appendString(b, 1, *m.ID); err != nil {
			return b, err
		}
	}
	if m.Ext != nil {
		return appendMessage(b, 2, m.Ext.appendTo)
	}
	return b, nil
}

func (m *UserExt) appendTo(b []byte) ([]byte, error) {
	if m.UserID != nil {
		return appendString(b, 1, *m.UserID)
	}
	return b, nil
}

func (m *Adcandidate) appendTo(b []byte) ([]byte, error) {
	b = appendInt64(b, 1, m.LineItemID)
	if len(m.CreativeIDs) > 0 {
		var packed []byte
		for _, id := range m.CreativeIDs {
			packed = protowire.AppendVarint(packed, uint64(id))
		}
		b = protowire.AppendTag(b, 2, protowire.BytesType)
		b = protowire.AppendBytes(b, packed)
	}
	if m.Bidding != nil {
		return appendMessage(b, 3, m.Bidding.appendTo)
	}
	return b, nil
}

func (m *Bidding) appendTo(b []byte) ([]byte, error) {
	if m.CustomStrategy != nil {
		return appendMessage(b, 1, m.CustomStrategy.appendTo)
	}
	return b, nil
}

func (m *CustomStrategy) appendTo(b []byte) ([]byte, error) {
	b, err := appendNonEmptyString(b, 1, m.Name)
	if err != nil {
		return b, err
	}
	for _, p := range m.Params {
		if b, err = appendMessage(b, 2, appendPair(p.Key, p.Value)); err != nil {
			return b, err
		}
	}
	return b, nil
}

func (m *Bid) appendTo(b []byte) ([]byte, error) {
	var err error
	b = appendInt64(b, 1, m.LineItemID)
	if m.Creative != nil {
		if b, err = appendMessage(b, 2, m.Creative.appendTo); err != nil {
			return b, err
		}
	}
	b = appendInt64(b, 3, m.BidPriceMicros)
	if m.AgentData != nil {
		return appendMessage(b, 4, m.AgentData.appendTo)
	}
	return b, nil
}

func (m *Creative) appendTo(b []byte) ([]byte, error) {
	return appendInt64(b, 1, m.ID), nil
}

func (m *AgentData) appendTo(b []byte) ([]byte, error) {
	b, err := appendNonEmptyString(b, 1, m.AgentID)
	if err != nil {
		return b, err
	}
	for _, p := range m.Params {
		if b, err = appendMessage(b, 2, appendPair(p.Key, p.StringValue)); err != nil {
			return b, err
		}
	}
	return b, nil
}
