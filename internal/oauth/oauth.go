package oauth

import (
	"crypto/rand"
	"errors"
	"fmt"
)

const (
	stateAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	StateLength   = 32
)

var (
	ErrNotConfigured      = errors.New("pagbank credentials are not configured")
	ErrMissingCode        = errors.New("authorization code is required")
	ErrMissingCredentials = errors.New("access token and account id are required")
)

// UpstreamError is a non-success answer from the PagBank API.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("pagbank returned status %d: %s", e.StatusCode, e.Message)
}

// Token is the token endpoint payload, kept verbatim.
type Token struct {
	AccountID   string `json:"account_id"`
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope"`
}

type AccountInfo struct {
	ID     string
	Name   string
	Email  string
	Status string
}

// GenerateState returns StateLength characters drawn uniformly from
// [A-Za-z0-9].
func GenerateState() (string, error) {
	const maxByte = 256 - (256 % len(stateAlphabet))

	out := make([]byte, 0, StateLength)
	buf := make([]byte, StateLength*2)
	for len(out) < StateLength {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if int(b) >= maxByte {
				continue
			}
			out = append(out, stateAlphabet[int(b)%len(stateAlphabet)])
			if len(out) == StateLength {
				break
			}
		}
	}
	return string(out), nil
}
