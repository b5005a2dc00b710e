package web

import (
	"embed"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/pxlit-projects/project-IanNotermansPXL/internal/blog"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer adapts the embedded html/template set to echo's Renderer
// interface.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	templates, err := template.New("").Funcs(template.FuncMap{
		"formatDate":  formatDate,
		"statusClass": statusClass,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	return &Renderer{templates: templates}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006, 3:04 PM")
}

func statusClass(status blog.PostStatus) string {
	switch status {
	case blog.StatusApproved:
		return "status-approved"
	case blog.StatusConcept:
		return "status-concept"
	case blog.StatusRejected:
		return "status-rejected"
	default:
		return ""
	}
}
