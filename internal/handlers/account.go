package handlers

import (
	"errors"
	"net/http"

	"github.com/dimitrije/pagbank-connect/internal/middleware"
	"github.com/dimitrije/pagbank-connect/internal/oauth"
	"github.com/dimitrije/pagbank-connect/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

const (
	AccessTokenHeader = "access_token"
	AccountIDHeader   = "account_id"
)

type AccountHandler struct {
	provider PagBankProviderInterface
	log      *zap.Logger
}

func NewAccountHandler(provider PagBankProviderInterface, log *zap.Logger) *AccountHandler {
	return &AccountHandler{provider: provider, log: log}
}

// Info relays GET /accounts for the caller's access token. Headers win; the
// session cookie is only consulted when neither header was sent.
func (h *AccountHandler) Info(c *drift.Context) {
	accessToken := c.GetHeader(AccessTokenHeader)
	accountID := c.GetHeader(AccountIDHeader)

	if accessToken == "" && accountID == "" {
		if claims := middleware.GetSession(c); claims != nil {
			accessToken = claims.AccessToken
			accountID = claims.AccountID
		}
	}

	if accessToken == "" || accountID == "" {
		jsonError(c, http.StatusUnauthorized, "Authorization token required")
		return
	}

	account, err := h.provider.GetAccount(c.Request.Context(), accessToken, accountID)
	if err != nil {
		var upstream *oauth.UpstreamError
		switch {
		case errors.Is(err, oauth.ErrNotConfigured):
			jsonError(c, http.StatusInternalServerError, "Server configuration error")
		case errors.Is(err, oauth.ErrMissingCredentials):
			jsonError(c, http.StatusUnauthorized, "Authorization token required")
		case errors.As(err, &upstream):
			jsonError(c, upstream.StatusCode, "Failed to fetch account information")
		default:
			h.log.Error("account info request failed",
				zap.String("request_id", middleware.GetRequestID(c)),
				zap.Error(err),
			)
			jsonError(c, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	_ = c.JSON(http.StatusOK, dto.AccountInfoResponse{
		ID:     account.ID,
		Name:   account.Name,
		Email:  account.Email,
		Status: account.Status,
	})
}

func jsonError(c *drift.Context, status int, message string) {
	_ = c.JSON(status, dto.ErrorResponse{Error: message})
}
