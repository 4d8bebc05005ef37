package services

import (
	"testing"
	"time"

	"github.com/dimitrije/pagbank-connect/internal/oauth"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testToken() *oauth.Token {
	return &oauth.Token{
		AccountID:   "ACCO_123",
		AccessToken: "access-123",
		TokenType:   "Bearer",
		ExpiresIn:   3600,
		Scope:       "accounts.read",
	}
}

func TestSessionService_IssueAndValidate(t *testing.T) {
	svc := NewSessionService("test-secret", 24*time.Hour)

	signed, ttl, err := svc.Issue(testToken())
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.Equal(t, time.Hour, ttl)

	claims, err := svc.Validate(signed)
	require.NoError(t, err)

	assert.Equal(t, "ACCO_123", claims.AccountID)
	assert.Equal(t, "access-123", claims.AccessToken)
	assert.Equal(t, "Bearer", claims.TokenType)
	assert.Equal(t, "accounts.read", claims.Scope)
	assert.Equal(t, "pagbank-connect", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestSessionService_Issue_CapsLifetime(t *testing.T) {
	svc := NewSessionService("test-secret", time.Hour)

	token := testToken()
	token.ExpiresIn = 31536000

	_, ttl, err := svc.Issue(token)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, ttl)
}

func TestSessionService_Issue_NoExpiry(t *testing.T) {
	svc := NewSessionService("test-secret", 2*time.Hour)

	token := testToken()
	token.ExpiresIn = 0

	_, ttl, err := svc.Issue(token)
	require.NoError(t, err)
	assert.Equal(t, 2*time.Hour, ttl)
}

func TestSessionService_Issue_MissingAccount(t *testing.T) {
	svc := NewSessionService("test-secret", time.Hour)

	token := testToken()
	token.AccountID = ""

	_, _, err := svc.Issue(token)
	assert.ErrorIs(t, err, oauth.ErrMissingCredentials)
}

func TestSessionService_Validate_WrongSecret(t *testing.T) {
	svc1 := NewSessionService("secret-1", time.Hour)
	svc2 := NewSessionService("secret-2", time.Hour)

	signed, _, err := svc1.Issue(testToken())
	require.NoError(t, err)

	_, err = svc2.Validate(signed)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionService_Validate_Expired(t *testing.T) {
	svc := NewSessionService("test-secret", time.Millisecond)

	signed, _, err := svc.Issue(testToken())
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = svc.Validate(signed)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionService_Validate_Garbage(t *testing.T) {
	svc := NewSessionService("test-secret", time.Hour)

	_, err := svc.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionService_Validate_WrongIssuer(t *testing.T) {
	svc := NewSessionService("test-secret", time.Hour)

	claims := SessionClaims{
		AccountID:   "ACCO_123",
		AccessToken: "access-123",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "someone-else",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.Validate(signed)
	assert.ErrorIs(t, err, ErrInvalidSession)
}
