package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SESSION_SECRET", "test-session-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "en-US", cfg.DefaultLocale)
	assert.Equal(t, "https://connect.sandbox.pagbank.com.br/oauth2/authorize", cfg.PagBank.AuthorizeURL)
	assert.Equal(t, "https://sandbox.api.pagseguro.com", cfg.PagBank.APIURL)
	assert.Equal(t, DefaultScopes, cfg.PagBank.Scopes)
	assert.Equal(t, AccountLookupByID, cfg.PagBank.AccountLookup)
	assert.Equal(t, NameSourcePerson, cfg.PagBank.NameSource)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_PagBankVariables(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PAGBANK_CLIENT_ID", "client-id")
	t.Setenv("PAGBANK_CLIENT_SECRET", "client-secret")
	t.Setenv("PAGBANK_REDIRECT_URI", "http://localhost:8080/auth/callback")
	t.Setenv("TOKEN", "static-token")
	t.Setenv("PAGBANK_SCOPES", "accounts.read payments.read")
	t.Setenv("PAGBANK_ACCOUNT_LOOKUP", "me")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "client-id", cfg.PagBank.ClientID)
	assert.Equal(t, "client-secret", cfg.PagBank.ClientSecret)
	assert.Equal(t, "static-token", cfg.PagBank.Token)
	assert.Equal(t, []string{"accounts.read", "payments.read"}, cfg.PagBank.Scopes)
	assert.Equal(t, AccountLookupMe, cfg.PagBank.AccountLookup)
}

func TestLoad_MissingSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
}

func TestLoad_InvalidAccountLookup(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PAGBANK_ACCOUNT_LOOKUP", "email")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAGBANK_ACCOUNT_LOOKUP")
}

func TestLoad_InvalidNameSource(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PAGBANK_ACCOUNT_NAME_SOURCE", "nested")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAGBANK_ACCOUNT_NAME_SOURCE")
}

func TestConfig_ConsentClientID(t *testing.T) {
	cfg := &Config{PagBank: PagBankConfig{ClientID: "server-id"}}
	assert.Equal(t, "server-id", cfg.ConsentClientID())

	cfg.PagBank.PublicClientID = "public-id"
	assert.Equal(t, "public-id", cfg.ConsentClientID())
}

func TestConfig_ConsentRedirectURI(t *testing.T) {
	cfg := &Config{BaseURL: "http://localhost:8080/"}
	assert.Equal(t, "http://localhost:8080/auth/callback", cfg.ConsentRedirectURI())

	cfg.PagBank.RedirectURI = "https://app.example.com/auth/callback"
	assert.Equal(t, "https://app.example.com/auth/callback", cfg.ConsentRedirectURI())

	cfg.PagBank.PublicRedirectURI = "https://public.example.com/auth/callback"
	assert.Equal(t, "https://public.example.com/auth/callback", cfg.ConsentRedirectURI())
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{Env: "production"}
	assert.True(t, cfg.IsProduction())
}
