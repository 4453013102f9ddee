package httpserver

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"moviecatalog/movie"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var pages = []string{"movielist", "moviedetails", "addmovie", "404", "error"}

var templateFuncs = template.FuncMap{
	"movieURL": movieURL,
	"join":     strings.Join,
}

// TemplateRenderer renders every page inside the shared layout.
type TemplateRenderer struct {
	templates map[string]*template.Template
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	r := &TemplateRenderer{templates: make(map[string]*template.Template, len(pages))}
	for _, page := range pages {
		t, err := template.New(page).
			Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		r.templates[page] = t
	}
	return r, nil
}

func MustTemplateRenderer() *TemplateRenderer {
	r, err := NewTemplateRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

func movieURL(m movie.Movie) string {
	u := "/movies/" + url.PathEscape(m.ID)
	if m.Slug != "" {
		u += "/" + url.PathEscape(m.Slug)
	}
	return u
}

func (s *Server) RegisterStaticRoutes() {
	s.Router.StaticFS("/static", echo.MustSubFS(staticFS, "static"))
}

type detailPage struct {
	Title string
	Movie movie.Movie
}

type formPage struct {
	Title      string
	Years      []string
	Categories []string
}

type errorPage struct {
	Title   string
	Status  int
	Message string
}
