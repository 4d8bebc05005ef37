package oauth

import (
	"context"
	"errors"
	"time"
)

// DashboardRedirectDelay is how long the success page waits before moving
// the browser to the dashboard.
const DashboardRedirectDelay = 3 * time.Second

type CallbackStatus string

const (
	CallbackPending CallbackStatus = "pending"
	CallbackSuccess CallbackStatus = "success"
	CallbackError   CallbackStatus = "error"
)

// CallbackReason says which transition ended the callback. Pages map it to a
// localized message.
type CallbackReason string

const (
	ReasonConnected          CallbackReason = "connected"
	ReasonAuthorizationError CallbackReason = "authorization_error"
	ReasonStateMismatch      CallbackReason = "state_mismatch"
	ReasonMissingCode        CallbackReason = "missing_code"
	ReasonExchangeFailed     CallbackReason = "exchange_failed"
	ReasonNetworkError       CallbackReason = "network_error"
)

type CodeExchanger interface {
	ExchangeCode(ctx context.Context, code string) (*Token, error)
}

// CallbackRequest holds the redirect query and the state stored before the
// browser left for PagBank.
type CallbackRequest struct {
	Code        string
	State       string
	Error       string
	StoredState string
}

type CallbackResult struct {
	Status CallbackStatus
	Reason CallbackReason
	// Detail is the upstream error code or message, empty on success.
	Detail        string
	Token         *Token
	RedirectTo    string
	RedirectAfter time.Duration
}

// HandleCallback runs the callback transitions once. The state comparison
// happens before the code is looked at, and the exchanger is only reached
// when both state and code are valid.
func HandleCallback(ctx context.Context, exchanger CodeExchanger, req CallbackRequest) CallbackResult {
	if req.Error != "" {
		return failed(ReasonAuthorizationError, req.Error)
	}

	if req.StoredState == "" || req.State != req.StoredState {
		return failed(ReasonStateMismatch, "")
	}

	if req.Code == "" {
		return failed(ReasonMissingCode, "")
	}

	token, err := exchanger.ExchangeCode(ctx, req.Code)
	if err != nil {
		var upstream *UpstreamError
		switch {
		case errors.As(err, &upstream):
			return failed(ReasonExchangeFailed, upstream.Message)
		case errors.Is(err, ErrNotConfigured):
			return failed(ReasonExchangeFailed, "Server configuration error")
		default:
			return failed(ReasonNetworkError, "")
		}
	}

	return CallbackResult{
		Status:        CallbackSuccess,
		Reason:        ReasonConnected,
		Token:         token,
		RedirectTo:    "/dashboard",
		RedirectAfter: DashboardRedirectDelay,
	}
}

func failed(reason CallbackReason, detail string) CallbackResult {
	return CallbackResult{
		Status: CallbackError,
		Reason: reason,
		Detail: detail,
	}
}
