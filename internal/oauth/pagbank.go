package oauth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dimitrije/pagbank-connect/internal/config"
	"golang.org/x/oauth2"
)

const (
	tokenPath      = "/oauth2/token"
	accountsPath   = "/accounts/"
	accountsMePath = "/accounts/me"

	defaultTokenError = "Token exchange failed"
	notAvailable      = "N/A"
	defaultStatus     = "active"
)

type PagBankProvider struct {
	cfg        config.PagBankConfig
	consent    *oauth2.Config
	httpClient *http.Client
}

// NewPagBankProvider builds the provider client. httpClient is the base
// transport for outbound calls; nil means http.DefaultClient.
func NewPagBankProvider(cfg *config.Config, httpClient *http.Client) *PagBankProvider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &PagBankProvider{
		cfg: cfg.PagBank,
		consent: &oauth2.Config{
			ClientID:    cfg.ConsentClientID(),
			RedirectURL: cfg.ConsentRedirectURI(),
			Scopes:      cfg.PagBank.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.PagBank.AuthorizeURL,
				TokenURL: strings.TrimRight(cfg.PagBank.APIURL, "/") + tokenPath,
			},
		},
		httpClient: httpClient,
	}
}

func (p *PagBankProvider) Name() string {
	return "pagbank"
}

// GetConsentURL builds the authorize URL carrying response_type, client_id,
// redirect_uri, scope and state.
func (p *PagBankProvider) GetConsentURL(state string) (string, error) {
	if p.consent.ClientID == "" || p.consent.Endpoint.AuthURL == "" {
		return "", ErrNotConfigured
	}
	return p.consent.AuthCodeURL(state), nil
}

// ExchangeCode trades an authorization code for a token. PagBank expects a
// JSON body and client credentials in headers, so oauth2.Config.Exchange
// cannot be used here.
func (p *PagBankProvider) ExchangeCode(ctx context.Context, code string) (*Token, error) {
	if code == "" {
		return nil, ErrMissingCode
	}
	if p.cfg.ClientID == "" || p.cfg.ClientSecret == "" || p.cfg.RedirectURI == "" || p.cfg.Token == "" {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(map[string]string{
		"grant_type":    "authorization_code",
		"client_secret": p.cfg.ClientSecret,
		"code":          code,
		"redirect_uri":  p.cfg.RedirectURI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.consent.Endpoint.TokenURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	// Set directly so the underscore names reach PagBank as written.
	req.Header["X_CLIENT_ID"] = []string{p.cfg.ClientID}
	req.Header["client_id"] = []string{p.cfg.ClientID}
	req.Header["client-secret"] = []string{p.cfg.ClientSecret}
	req.Header["X_CLIENT_SECRET"] = []string{p.cfg.ClientSecret}

	resp, err := p.client(ctx).Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var upstream struct {
			ErrorDescription string `json:"error_description"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&upstream)

		msg := upstream.ErrorDescription
		if msg == "" {
			msg = defaultTokenError
		}
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: msg}
	}

	var token Token
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}

	return &token, nil
}

// GetAccount loads the account the token was issued for. Both values are
// required even when the lookup uses /accounts/me.
func (p *PagBankProvider) GetAccount(ctx context.Context, accessToken, accountID string) (*AccountInfo, error) {
	if p.cfg.Token == "" {
		return nil, ErrNotConfigured
	}
	if accessToken == "" || accountID == "" {
		return nil, ErrMissingCredentials
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.accountURL(accountID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build account request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-client-token", accessToken)

	resp, err := p.client(ctx).Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get account info: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	var payload accountPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode account info: %w", err)
	}

	info := normalizeAccount(payload, p.cfg.NameSource)
	return &info, nil
}

func (p *PagBankProvider) accountURL(accountID string) string {
	base := strings.TrimRight(p.cfg.APIURL, "/")
	if p.cfg.AccountLookup == config.AccountLookupMe {
		return base + accountsMePath
	}
	return base + accountsPath + url.PathEscape(accountID)
}

// client wraps the base client so every call carries the static bearer TOKEN.
func (p *PagBankProvider) client(ctx context.Context) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	return oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: p.cfg.Token,
		TokenType:   "Bearer",
	}))
}

type accountPayload struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Status string `json:"status"`
	Person *struct {
		Name string `json:"name"`
	} `json:"person"`
}

// normalizeAccount projects either upstream shape onto AccountInfo. The name
// is read from nameSource first and the other shape second.
func normalizeAccount(payload accountPayload, nameSource string) AccountInfo {
	nested := ""
	if payload.Person != nil {
		nested = payload.Person.Name
	}

	name := firstNonEmpty(nested, payload.Name)
	if nameSource == config.NameSourceFlat {
		name = firstNonEmpty(payload.Name, nested)
	}

	status := payload.Status
	if status == "" {
		status = defaultStatus
	}

	return AccountInfo{
		ID:     firstNonEmpty(payload.ID, notAvailable),
		Name:   firstNonEmpty(name, notAvailable),
		Email:  firstNonEmpty(payload.Email, notAvailable),
		Status: status,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
