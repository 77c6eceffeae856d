package bussystem

import "fmt"

type ErrorCode string

const (
	ErrorCodeTimeout    ErrorCode = "timeout"
	ErrorCodeNetwork    ErrorCode = "network"
	ErrorCodeHTTP       ErrorCode = "http"
	ErrorCodeParse      ErrorCode = "parse"
	ErrorCodeAuth       ErrorCode = "auth"
	ErrorCodeProvider   ErrorCode = "provider"
	ErrorCodeValidation ErrorCode = "validation"
	ErrorCodeSuperseded ErrorCode = "superseded"
	ErrorCodeCancelled  ErrorCode = "cancelled"
)

// Known-fatal provider sentinel values. These must never be retried.
const (
	SentinelDealerNoActiv = "dealer_no_activ"
	SentinelInvalidFormat = "invalid_format"
)

// Error is the typed failure every provider call resolves to. Retryable is
// decided once, here, so callers never inspect message strings.
type Error struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Retryable bool      `json:"-"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("bussystem: %s: %s", e.Code, e.Message)
}

func NewValidationError(message string) *Error {
	return &Error{Code: ErrorCodeValidation, Message: message}
}

func newProviderError(value string) *Error {
	switch value {
	case SentinelDealerNoActiv:
		return &Error{Code: ErrorCodeAuth, Message: value}
	default:
		return &Error{Code: ErrorCodeProvider, Message: value}
	}
}

// AsError maps any error into a *Error, defaulting unknown failures to the
// network code so the envelope layer always has a typed value to surface.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}

	if typed, ok := err.(*Error); ok {
		return typed
	}

	return &Error{Code: ErrorCodeNetwork, Message: err.Error()}
}
