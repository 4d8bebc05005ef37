package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/dimitrije/pagbank-connect/internal/i18n"
	"golang.org/x/text/language"
)

const (
	PageHome      = "home"
	PageConnect   = "connect"
	PageCallback  = "callback"
	PageDashboard = "dashboard"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer turns page data into localized HTML.
type Renderer struct {
	bundle *i18n.Bundle
	pages  map[string]*template.Template
}

// View is what every template receives. Data is page specific.
type View struct {
	T            func(key string, args ...any) string
	Lang         string
	Languages    []i18n.LanguageOption
	RefreshTo    string
	RefreshAfter int
	Data         any
}

func NewRenderer(bundle *i18n.Bundle) (*Renderer, error) {
	r := &Renderer{
		bundle: bundle,
		pages:  make(map[string]*template.Template),
	}

	for _, name := range []string{PageHome, PageConnect, PageCallback, PageDashboard} {
		tmpl, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		r.pages[name] = tmpl
	}

	return r, nil
}

func (r *Renderer) Translator(tag language.Tag) func(key string, args ...any) string {
	return r.bundle.Translator(r.normalize(tag))
}

// Render executes page in tag's language. view.T, Lang and Languages are
// filled in here.
func (r *Renderer) Render(tag language.Tag, page string, view View) (string, error) {
	tmpl, ok := r.pages[page]
	if !ok {
		return "", fmt.Errorf("unknown page %q", page)
	}

	tag = r.normalize(tag)
	view.T = r.bundle.Translator(tag)
	view.Lang = tag.String()
	view.Languages = r.bundle.Options(tag)

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", view); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", page, err)
	}
	return buf.String(), nil
}

func (r *Renderer) normalize(tag language.Tag) language.Tag {
	if tag == language.Und {
		return r.bundle.Default()
	}
	return r.bundle.Match(tag)
}
