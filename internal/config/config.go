package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	AccountLookupByID = "id"
	AccountLookupMe   = "me"

	NameSourcePerson = "person"
	NameSourceFlat   = "flat"
)

var DefaultScopes = []string{
	"payments.read",
	"payments.create",
	"payments.refund",
	"accounts.read",
	"payments.split.read",
	"checkout.create",
	"checkout.view",
	"checkout.update",
}

type Config struct {
	Port    string `env:"PORT" envDefault:"8080"`
	Env     string `env:"ENV" envDefault:"development"`
	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	DefaultLocale string `env:"DEFAULT_LOCALE" envDefault:"en-US"`

	PagBank PagBankConfig
	Session SessionConfig
	Logging LoggingConfig
}

type PagBankConfig struct {
	ClientID     string `env:"PAGBANK_CLIENT_ID"`
	ClientSecret string `env:"PAGBANK_CLIENT_SECRET"`
	RedirectURI  string `env:"PAGBANK_REDIRECT_URI"`
	Token        string `env:"TOKEN"`

	PublicClientID    string `env:"NEXT_PUBLIC_PAGBANK_CLIENT_ID"`
	PublicRedirectURI string `env:"NEXT_PUBLIC_REDIRECT_URI"`

	AuthorizeURL string   `env:"PAGBANK_AUTHORIZE_URL" envDefault:"https://connect.sandbox.pagbank.com.br/oauth2/authorize"`
	APIURL       string   `env:"PAGBANK_API_URL" envDefault:"https://sandbox.api.pagseguro.com"`
	Scopes       []string `env:"PAGBANK_SCOPES" envSeparator:" "`

	AccountLookup string `env:"PAGBANK_ACCOUNT_LOOKUP" envDefault:"id"`
	NameSource    string `env:"PAGBANK_ACCOUNT_NAME_SOURCE" envDefault:"person"`
}

type SessionConfig struct {
	Secret string        `env:"SESSION_SECRET"`
	TTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
}

type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"console"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if len(cfg.PagBank.Scopes) == 0 {
		cfg.PagBank.Scopes = DefaultScopes
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks settings the process cannot start without. Missing PagBank
// credentials are not fatal here: the relays report them per request.
func (c *Config) Validate() error {
	if c.Session.Secret == "" {
		return fmt.Errorf("required environment variable not set: SESSION_SECRET")
	}

	switch c.PagBank.AccountLookup {
	case AccountLookupByID, AccountLookupMe:
	default:
		return fmt.Errorf("invalid PAGBANK_ACCOUNT_LOOKUP %q: want %q or %q",
			c.PagBank.AccountLookup, AccountLookupByID, AccountLookupMe)
	}

	switch c.PagBank.NameSource {
	case NameSourcePerson, NameSourceFlat:
	default:
		return fmt.Errorf("invalid PAGBANK_ACCOUNT_NAME_SOURCE %q: want %q or %q",
			c.PagBank.NameSource, NameSourcePerson, NameSourceFlat)
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// ConsentClientID is the client id placed in the authorize URL.
func (c *Config) ConsentClientID() string {
	if c.PagBank.PublicClientID != "" {
		return c.PagBank.PublicClientID
	}
	return c.PagBank.ClientID
}

// ConsentRedirectURI is the redirect URI placed in the authorize URL.
func (c *Config) ConsentRedirectURI() string {
	if c.PagBank.PublicRedirectURI != "" {
		return c.PagBank.PublicRedirectURI
	}
	if c.PagBank.RedirectURI != "" {
		return c.PagBank.RedirectURI
	}
	return strings.TrimRight(c.BaseURL, "/") + "/auth/callback"
}
