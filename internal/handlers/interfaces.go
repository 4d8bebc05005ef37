package handlers

import (
	"context"
	"time"

	"github.com/dimitrije/pagbank-connect/internal/oauth"
	"github.com/dimitrije/pagbank-connect/internal/services"
)

// PagBankProviderInterface defines the methods used by handlers from PagBankProvider
type PagBankProviderInterface interface {
	GetConsentURL(state string) (string, error)
	ExchangeCode(ctx context.Context, code string) (*oauth.Token, error)
	GetAccount(ctx context.Context, accessToken, accountID string) (*oauth.AccountInfo, error)
}

// SessionServiceInterface defines the methods used by handlers from SessionService
type SessionServiceInterface interface {
	Issue(token *oauth.Token) (string, time.Duration, error)
	Validate(tokenString string) (*services.SessionClaims, error)
}
