// Package bidproto holds the messages exchanged with the auction platform and their
// protocol-buffers binary encoding. See bid.proto for the schema.
//
// Optional sub-messages and optional strings are pointers; nil means absent.
// Getters are nil-safe, so callers can walk nested paths without checks at
// every level.
package bidproto

// BidAgentRequest is the inbound message: the auction context plus the candidates to price.
type BidAgentRequest struct {
	BidRequest   *BidRequest
	Adcandidates []*Adcandidate
}

// BidRequest is the auction context shared by every candidate of a request.
type BidRequest struct {
	ID   string
	User *User
}

type User struct {
	ID  *string
	Ext *UserExt
}

type UserExt struct {
	UserID *string
}

// Adcandidate is one line item eligible to bid on the impression.
type Adcandidate struct {
	LineItemID  int64
	CreativeIDs []int64
	Bidding     *Bidding
}

type Bidding struct {
	CustomStrategy *CustomStrategy
}

// CustomStrategy names the pricing strategy of a candidate and carries its parameters.
type CustomStrategy struct {
	Name   string
	Params []Param
}

type Param struct {
	Key   string
	Value string
}

// BidAgentResponse is the outbound message.
type BidAgentResponse struct {
	Bids []*Bid
}

type Bid struct {
	LineItemID     int64
	Creative       *Creative
	BidPriceMicros int64
	AgentData      *AgentData
}

type Creative struct {
	ID int64
}

// AgentData is opaque auditing metadata; it is logged by the platform but never used for pricing.
type AgentData struct {
	AgentID string
	Params  []AgentParam
}

type AgentParam struct {
	Key         string
	StringValue string
}

func (m *BidAgentRequest) GetBidRequest() *BidRequest {
	if m == nil {
		return nil
	}
	return m.BidRequest
}

func (m *BidAgentRequest) GetAdcandidates() []*Adcandidate {
	if m == nil {
		return nil
	}
	return m.Adcandidates
}

func (m *BidRequest) GetUser() *User {
	if m == nil {
		return nil
	}
	return m.User
}

func (m *User) GetExt() *UserExt {
	if m == nil {
		return nil
	}
	return m.Ext
}

// UserID returns user.ext.user_id and whether every level of that path is present.
func (m *BidRequest) UserID() (string, bool) {
	ext := m.GetUser().GetExt()
	if ext == nil || ext.UserID == nil {
		return "", false
	}
	return *ext.UserID, true
}

func (m *Adcandidate) GetBidding() *Bidding {
	if m == nil {
		return nil
	}
	return m.Bidding
}

func (m *Bidding) GetCustomStrategy() *CustomStrategy {
	if m == nil {
		return nil
	}
	return m.CustomStrategy
}

func (m *CustomStrategy) GetName() string {
	if m == nil {
		return ""
	}
	return m.Name
}

func (m *CustomStrategy) GetParams() []Param {
	if m == nil {
		return nil
	}
	return m.Params
}

// String returns a pointer to s, for populating optional string fields.
func String(s string) *string {
	return &s
}
