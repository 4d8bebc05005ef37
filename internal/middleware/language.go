package middleware

import (
	"github.com/dimitrije/pagbank-connect/internal/i18n"
	"github.com/m1z23r/drift/pkg/drift"
	"golang.org/x/text/language"
)

const LanguageKey = "language"

// Language resolves the UI language once per request and remembers an
// explicit ?lang= choice in a cookie.
func Language(bundle *i18n.Bundle) drift.HandlerFunc {
	return func(c *drift.Context) {
		tag, persist := bundle.Resolve(c.Request)
		if persist {
			i18n.SetLanguageCookie(c.Response, tag)
		}

		c.Set(LanguageKey, tag)
		c.Next()
	}
}

func GetLanguage(c *drift.Context) language.Tag {
	if v, ok := c.Get(LanguageKey); ok {
		if tag, ok := v.(language.Tag); ok {
			return tag
		}
	}
	return language.Und
}
