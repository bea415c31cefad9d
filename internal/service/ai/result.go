package ai

import (
	"context"
	stderrors "errors"
)

// FailureReason names why a generation produced its empty value.
type FailureReason string

const (
	ReasonNone         FailureReason = ""
	ReasonCircuitOpen  FailureReason = "circuit_open"
	ReasonTransport    FailureReason = "transport"
	ReasonEmpty        FailureReason = "empty_response"
	ReasonInvalidJSON  FailureReason = "invalid_json"
	ReasonNoMedia      FailureReason = "no_media"
	ReasonCanceled     FailureReason = "canceled"
	ReasonPollLimit    FailureReason = "poll_limit"
	ReasonInvalidInput FailureReason = "invalid_input"
)

// Result carries a generated value. On failure Value is the empty value of
// its shape ([] or {}), Err is set and Reason names the cause.
type Result[T any] struct {
	Value    T                 `json:"value"`
	Err      error             `json:"-"`
	Reason   FailureReason     `json:"reason,omitempty"`
	Metadata *GenerateMetadata `json:"-"`
}

func (r Result[T]) OK() bool {
	return r.Err == nil
}

func succeed[T any](v T, meta *GenerateMetadata) Result[T] {
	return Result[T]{Value: v, Metadata: meta}
}

func fail[T any](empty T, err error) Result[T] {
	return Result[T]{Value: empty, Err: err, Reason: reasonFor(err)}
}

func reasonFor(err error) FailureReason {
	switch {
	case err == nil:
		return ReasonNone
	case stderrors.Is(err, ErrCircuitOpen):
		return ReasonCircuitOpen
	case stderrors.Is(err, ErrInvalidJSON):
		return ReasonInvalidJSON
	case stderrors.Is(err, ErrEmptyResponse):
		return ReasonEmpty
	case stderrors.Is(err, ErrNoMedia):
		return ReasonNoMedia
	case stderrors.Is(err, ErrPollLimit):
		return ReasonPollLimit
	case stderrors.Is(err, ErrInvalidInput):
		return ReasonInvalidInput
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		return ReasonCanceled
	default:
		return ReasonTransport
	}
}
