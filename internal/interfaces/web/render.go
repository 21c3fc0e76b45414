package web

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/riskibarqy/rankks/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

const (
	pageHome   = "home"
	pageLeague = "league"
	pageError  = "error"
)

const siteTitle = "RANKKS"

// pageView is the data every page template receives.
type pageView struct {
	Title     string
	MainNav   []usecase.NavLink
	Shortcuts []usecase.LeagueLink
	Page      *usecase.LeaguePage
	Message   string
}

// Renderer holds one parsed template set per page, each sharing the layout.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template, 3)
	for _, name := range []string{pageHome, pageLeague, pageError} {
		tmpl, err := template.New(name).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

// Render executes the page into a pooled buffer and writes it only once
// execution succeeded.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, view pageView) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page template %q", name)
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := tmpl.ExecuteTemplate(buf, "layout", view); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

func staticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
