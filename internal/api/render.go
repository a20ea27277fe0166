package api

import (
	"embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// TemplateRenderer satisfies echo.Renderer with the embedded portal pages.
type TemplateRenderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded template set. Parse failures are programmer
// errors, hence the panic via template.Must.
func NewRenderer() *TemplateRenderer {
	return &TemplateRenderer{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

// Render satisfies the echo.Renderer interface.
func (r *TemplateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
