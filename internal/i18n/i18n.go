package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

const (
	// LangParam is the query parameter used to select a language.
	LangParam = "lang"
	// LangCookieName stores the user's language preference.
	LangCookieName = "pagbank_lang"
)

//go:embed locales/*.yaml
var localeFS embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Label    string            `yaml:"label"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds every UI string, keyed by locale and message key.
type Bundle struct {
	catalog  *catalog.Builder
	tags     []language.Tag
	labels   map[language.Tag]string
	matcher  language.Matcher
	fallback language.Tag
}

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Tag    string
	Label  string
	Active bool
}

// Load reads the embedded locale files.
func Load(defaultLocale string) (*Bundle, error) {
	return LoadFromFS(localeFS, defaultLocale)
}

func LoadFromFS(fsys fs.FS, defaultLocale string) (*Bundle, error) {
	fallback, err := language.Parse(defaultLocale)
	if err != nil {
		return nil, fmt.Errorf("parse default locale %q: %w", defaultLocale, err)
	}

	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{
		catalog:  catalog.NewBuilder(catalog.Fallback(fallback)),
		labels:   map[language.Tag]string{},
		fallback: fallback,
	}

	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}

		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}

		tag, err := language.Parse(strings.TrimSpace(file.Locale))
		if err != nil {
			return nil, fmt.Errorf("catalog %s: invalid locale %q: %w", path, file.Locale, err)
		}
		if len(file.Messages) == 0 {
			return nil, fmt.Errorf("catalog %s: messages map is required", path)
		}

		for key, value := range file.Messages {
			if err := b.catalog.SetString(tag, key, value); err != nil {
				return nil, fmt.Errorf("catalog %s: key %q: %w", path, key, err)
			}
		}

		b.tags = append(b.tags, tag)
		b.labels[tag] = file.Label
	}

	if _, ok := b.labels[fallback]; !ok {
		return nil, fmt.Errorf("default locale %s is not defined in catalogs", fallback)
	}

	// The matcher falls back to its first tag.
	ordered := []language.Tag{fallback}
	for _, tag := range b.tags {
		if tag != fallback {
			ordered = append(ordered, tag)
		}
	}
	b.tags = ordered
	b.matcher = language.NewMatcher(ordered)

	return b, nil
}

func (b *Bundle) Default() language.Tag {
	return b.fallback
}

func (b *Bundle) Supported() []language.Tag {
	return append([]language.Tag(nil), b.tags...)
}

// Match maps any requested tags onto a supported one.
func (b *Bundle) Match(tags ...language.Tag) language.Tag {
	if len(tags) == 0 {
		return b.fallback
	}
	_, index, confidence := b.matcher.Match(tags...)
	if confidence == language.No {
		return b.fallback
	}
	return b.tags[index]
}

// Parse returns the supported tag for value, if value names one.
func (b *Bundle) Parse(value string) (language.Tag, bool) {
	tag, err := language.Parse(strings.TrimSpace(value))
	if err != nil {
		return language.Und, false
	}
	matched := b.Match(tag)
	base, _ := tag.Base()
	matchedBase, _ := matched.Base()
	return matched, base == matchedBase
}

// Resolve picks the language for a request from the lang query param, the
// language cookie and Accept-Language, in that order. The bool reports
// whether the query param chose it and should be persisted.
func (b *Bundle) Resolve(r *http.Request) (language.Tag, bool) {
	if r == nil {
		return b.fallback, false
	}

	if value := strings.TrimSpace(r.URL.Query().Get(LangParam)); value != "" {
		if tag, ok := b.Parse(value); ok {
			return tag, true
		}
	}

	if cookie, err := r.Cookie(LangCookieName); err == nil {
		if tag, ok := b.Parse(cookie.Value); ok {
			return tag, false
		}
	}

	if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
		if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
			return b.Match(tags...), false
		}
	}

	return b.fallback, false
}

// SetLanguageCookie persists the selected language on the response.
func SetLanguageCookie(w http.ResponseWriter, tag language.Tag) {
	http.SetCookie(w, &http.Cookie{
		Name:     LangCookieName,
		Value:    tag.String(),
		Path:     "/",
		MaxAge:   int((365 * 24 * time.Hour).Seconds()),
		SameSite: http.SameSiteLaxMode,
	})
}

func (b *Bundle) Printer(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(b.catalog))
}

// Translator returns a lookup function bound to tag, for templates.
func (b *Bundle) Translator(tag language.Tag) func(key string, args ...any) string {
	p := b.Printer(tag)
	return func(key string, args ...any) string {
		return p.Sprintf(key, args...)
	}
}

func (b *Bundle) Options(active language.Tag) []LanguageOption {
	options := make([]LanguageOption, 0, len(b.tags))
	for _, tag := range b.tags {
		options = append(options, LanguageOption{
			Tag:    tag.String(),
			Label:  b.labels[tag],
			Active: tag == active,
		})
	}
	return options
}
