package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func loadBundle(t *testing.T) *Bundle {
	t.Helper()
	b, err := Load("en-US")
	require.NoError(t, err)
	return b
}

func TestLoad_EmbeddedCatalogs(t *testing.T) {
	b := loadBundle(t)

	assert.Equal(t, language.MustParse("en-US"), b.Default())
	assert.Len(t, b.Supported(), 2)
	assert.Equal(t, language.MustParse("en-US"), b.Supported()[0])
}

func TestLoad_UnknownDefault(t *testing.T) {
	_, err := Load("fr-FR")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not defined")
}

func TestLoadFromFS_Errors(t *testing.T) {
	_, err := LoadFromFS(fstest.MapFS{}, "en-US")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no catalog files")

	_, err = LoadFromFS(fstest.MapFS{
		"locales/en-US.yaml": {Data: []byte("locale: en-US\nmessages: {}\n")},
	}, "en-US")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "messages map is required")

	_, err = LoadFromFS(fstest.MapFS{
		"locales/en-US.yaml": {Data: []byte("locale: [\n")},
	}, "en-US")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse catalog")
}

func TestTranslator(t *testing.T) {
	b := loadBundle(t)

	en := b.Translator(language.MustParse("en-US"))
	pt := b.Translator(language.MustParse("pt-BR"))

	assert.Equal(t, "Refresh", en("dashboard.refresh"))
	assert.Equal(t, "Atualizar", pt("dashboard.refresh"))
	assert.Equal(t, "Authorization failed: access_denied", en("callback.authorization_error", "access_denied"))
	assert.Equal(t, "Falha na autorização: access_denied", pt("callback.authorization_error", "access_denied"))
}

func TestResolve(t *testing.T) {
	b := loadBundle(t)

	tests := []struct {
		name        string
		setup       func(r *http.Request)
		expected    string
		fromQueryOK bool
	}{
		{
			name:     "default",
			setup:    func(r *http.Request) {},
			expected: "en-US",
		},
		{
			name: "query param wins",
			setup: func(r *http.Request) {
				q := r.URL.Query()
				q.Set(LangParam, "pt-BR")
				r.URL.RawQuery = q.Encode()
				r.Header.Set("Accept-Language", "en-US")
			},
			expected:    "pt-BR",
			fromQueryOK: true,
		},
		{
			name: "cookie",
			setup: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: LangCookieName, Value: "pt-BR"})
			},
			expected: "pt-BR",
		},
		{
			name: "accept language base match",
			setup: func(r *http.Request) {
				r.Header.Set("Accept-Language", "pt;q=0.9, fr;q=0.5")
			},
			expected: "pt-BR",
		},
		{
			name: "unsupported query param ignored",
			setup: func(r *http.Request) {
				q := r.URL.Query()
				q.Set(LangParam, "de")
				r.URL.RawQuery = q.Encode()
			},
			expected: "en-US",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(req)

			tag, persist := b.Resolve(req)
			assert.Equal(t, tt.expected, tag.String())
			assert.Equal(t, tt.fromQueryOK, persist)
		})
	}
}

func TestSetLanguageCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	SetLanguageCookie(rec, language.MustParse("pt-BR"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, LangCookieName, cookies[0].Name)
	assert.Equal(t, "pt-BR", cookies[0].Value)
}

func TestOptions(t *testing.T) {
	b := loadBundle(t)

	options := b.Options(language.MustParse("pt-BR"))
	require.Len(t, options, 2)
	assert.Equal(t, LanguageOption{Tag: "en-US", Label: "English", Active: false}, options[0])
	assert.Equal(t, LanguageOption{Tag: "pt-BR", Label: "Português", Active: true}, options[1])
}
