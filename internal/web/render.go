package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"tracker/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = []string{"index.html", "login.html", "register.html", "notfound.html"}

// PageData is the payload every page template receives. Username is empty for
// anonymous visitors.
type PageData struct {
	Username string
	Notes    []models.Note
	Flash    *Flash
}

type Renderer struct {
	templates map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	const op = "web.NewRenderer"

	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.ParseFS(templatesFS, "templates/base.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("%s: parse %s: %w", op, page, err)
		}
		templates[page] = tmpl
	}
	return &Renderer{templates: templates}, nil
}

func (rd *Renderer) Render(w http.ResponseWriter, status int, page string, data PageData) error {
	const op = "web.Render"

	tmpl, ok := rd.templates[page]
	if !ok {
		return fmt.Errorf("%s: unknown page %s", op, page)
	}

	// Render to a buffer first so a template failure never leaks a half page.
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("%s: execute %s: %w", op, page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
