package endpoints

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gofrs/uuid"
	"github.com/julienschmidt/httprouter"

	"github.com/BeeswaxIO/hexbid/bidproto"
	"github.com/BeeswaxIO/hexbid/errortypes"
	"github.com/BeeswaxIO/hexbid/logger"
	"github.com/BeeswaxIO/hexbid/metrics"
)

const (
	protobufContentType = "application/x-protobuf"
	requestIDHeader     = "X-Request-Id"

	badRequestBody      = "Bad request"
	internalErrorBody   = "Internal error when setting bid"
	requestTooLargeBody = "Request too large"
)

// Outcome is the result class of one bid request.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeEmpty
	OutcomeBadInput
	OutcomeInternalError
)

// StatusCode maps the outcome onto its HTTP status.
func (o Outcome) StatusCode() int {
	switch o {
	case OutcomeOK:
		return http.StatusOK
	case OutcomeEmpty:
		return http.StatusNoContent
	case OutcomeBadInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeEmpty:
		return "empty"
	case OutcomeBadInput:
		return "bad_input"
	default:
		return "internal_error"
	}
}

func (o Outcome) requestStatus() metrics.RequestStatus {
	switch o {
	case OutcomeOK:
		return metrics.RequestStatusOK
	case OutcomeEmpty:
		return metrics.RequestStatusEmpty
	case OutcomeBadInput:
		return metrics.RequestStatusBadInput
	default:
		return metrics.RequestStatusErr
	}
}

// Decider computes the bids of one auction.
type Decider interface {
	ComputeBids(candidates []*bidproto.Adcandidate, auction *bidproto.BidRequest) []*bidproto.Bid
}

// BidHandler decodes a bid request, runs the decision engine and encodes the response.
// It never lets a fault escape: anything unexpected becomes OutcomeInternalError.
type BidHandler struct {
	decider        Decider
	log            logger.Logger
	metrics        metrics.MetricsEngine
	maxRequestSize int64
}

func NewBidHandler(decider Decider, log logger.Logger, me metrics.MetricsEngine, maxRequestSize int64) *BidHandler {
	return &BidHandler{
		decider:        decider,
		log:            log,
		metrics:        me,
		maxRequestSize: maxRequestSize,
	}
}

// Handle processes one raw request. The body is only set for OutcomeOK; it may encode
// zero bids.
func (h *BidHandler) Handle(raw []byte) (Outcome, []byte) {
	return h.handle(newRequestID(), raw)
}

func (h *BidHandler) handle(requestID string, raw []byte) (outcome Outcome, body []byte) {
	start := time.Now()
	log := h.log.With("request_id", requestID)

	defer func() {
		if r := recover(); r != nil {
			log.Error("Recovered panic while setting bid", "panic", fmt.Sprint(r), "stack", string(debug.Stack()))
			outcome, body = OutcomeInternalError, nil
		}
		h.metrics.RecordRequest(outcome.requestStatus())
		h.metrics.RecordRequestTime(outcome.requestStatus(), time.Since(start))
	}()

	req, err := bidproto.UnmarshalRequest(raw)
	if err != nil {
		badInput := &errortypes.BadInput{Message: fmt.Sprintf("failed to decode bid request: %v", err)}
		log.Warn("Rejecting bid request", "error", badInput.Error(), "code", badInput.Code())
		return OutcomeBadInput, nil
	}

	candidates := req.GetAdcandidates()
	if len(candidates) == 0 {
		log.Debug("No ad candidates in bid request")
		return OutcomeEmpty, nil
	}

	bids := h.decider.ComputeBids(candidates, req.GetBidRequest())
	resp := &bidproto.BidAgentResponse{Bids: bids}
	body, err = resp.Marshal()
	if err != nil {
		marshalErr := &errortypes.FailedToMarshal{Message: err.Error()}
		log.Error("Failed to encode bid response", "error", marshalErr.Error(), "code", marshalErr.Code())
		return OutcomeInternalError, nil
	}

	log.Debug("Bid request answered", "candidates", len(candidates), "bids", len(bids))
	return OutcomeOK, body
}

// Serve is the httprouter adapter of Handle.
func (h *BidHandler) Serve(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := r.Header.Get(requestIDHeader)
	if requestID == "" {
		requestID = newRequestID()
	}

	raw, err := h.readBody(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.log.Warn("Rejecting oversized bid request", "request_id", requestID, "limit", tooLarge.Limit)
			h.metrics.RecordRequest(metrics.RequestStatusBadInput)
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			w.Write([]byte(requestTooLargeBody))
			return
		}
		h.log.Warn("Failed to read bid request body", "request_id", requestID, "error", err.Error())
		h.metrics.RecordRequest(metrics.RequestStatusBadInput)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(badRequestBody))
		return
	}

	outcome, body := h.handle(requestID, raw)
	switch outcome {
	case OutcomeOK:
		w.Header().Set("Content-Type", protobufContentType)
		w.WriteHeader(outcome.StatusCode())
		w.Write(body)
	case OutcomeEmpty:
		w.WriteHeader(outcome.StatusCode())
	case OutcomeBadInput:
		w.WriteHeader(outcome.StatusCode())
		w.Write([]byte(badRequestBody))
	default:
		w.WriteHeader(outcome.StatusCode())
		w.Write([]byte(internalErrorBody))
	}
}

func (h *BidHandler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()

	body := r.Body
	if h.maxRequestSize > 0 {
		body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)
	}
	return io.ReadAll(body)
}

func newRequestID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return "unknown"
	}
	return id.String()
}
