package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/dimitrije/pagbank-connect/internal/oauth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const sessionIssuer = "pagbank-connect"

var ErrInvalidSession = errors.New("invalid session")

// SessionService signs the PagBank token into the session cookie value. The
// server keeps no copy; the cookie is the only place the token lives.
type SessionService struct {
	secret []byte
	maxTTL time.Duration
}

type SessionClaims struct {
	AccountID   string `json:"account_id"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope,omitempty"`
	jwt.RegisteredClaims
}

func NewSessionService(secret string, maxTTL time.Duration) *SessionService {
	return &SessionService{
		secret: []byte(secret),
		maxTTL: maxTTL,
	}
}

// Issue returns the signed session and its lifetime. The lifetime follows
// the token's expires_in, capped at the configured maximum.
func (s *SessionService) Issue(token *oauth.Token) (string, time.Duration, error) {
	if token == nil || token.AccessToken == "" || token.AccountID == "" {
		return "", 0, fmt.Errorf("cannot issue session: %w", oauth.ErrMissingCredentials)
	}

	ttl := s.maxTTL
	if token.ExpiresIn > 0 {
		if tokenTTL := time.Duration(token.ExpiresIn) * time.Second; tokenTTL < ttl {
			ttl = tokenTTL
		}
	}

	now := time.Now()
	claims := SessionClaims{
		AccountID:   token.AccountID,
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		Scope:       token.Scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    sessionIssuer,
			Subject:   token.AccountID,
			ID:        uuid.New().String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", 0, fmt.Errorf("failed to sign session: %w", err)
	}

	return signed, ttl, nil
}

func (s *SessionService) Validate(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(sessionIssuer))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.AccessToken == "" || claims.AccountID == "" {
		return nil, ErrInvalidSession
	}

	return claims, nil
}
