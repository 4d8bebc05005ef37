package middleware

import (
	"github.com/dimitrije/pagbank-connect/internal/services"
	"github.com/m1z23r/drift/pkg/drift"
)

const (
	SessionCookieName = "pagbank_session"
	SessionKey        = "session"
)

type SessionValidator interface {
	Validate(tokenString string) (*services.SessionClaims, error)
}

// Session loads the signed session cookie when one is present. Requests
// without a valid session pass through untouched; handlers decide whether
// they need one.
func Session(sessions SessionValidator) drift.HandlerFunc {
	return func(c *drift.Context) {
		cookie, err := c.Request.Cookie(SessionCookieName)
		if err == nil && cookie.Value != "" {
			if claims, err := sessions.Validate(cookie.Value); err == nil {
				c.Set(SessionKey, claims)
			}
		}

		c.Next()
	}
}

func GetSession(c *drift.Context) *services.SessionClaims {
	if v, ok := c.Get(SessionKey); ok {
		if claims, ok := v.(*services.SessionClaims); ok {
			return claims
		}
	}
	return nil
}
