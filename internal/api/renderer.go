package api

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html static/*.css
var assets embed.FS

// Renderer satisfies echo.Renderer over the embedded page templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses all embedded templates. Panics on a malformed template:
// these ship with the binary, so failing at boot is the right time.
func NewRenderer() *Renderer {
	funcs := template.FuncMap{
		"money": func(v float64) string {
			return fmt.Sprintf("$%.2f", v)
		},
		"datetime": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Format("Jan 2, 2006, 15:04")
		},
		"add": func(a, b int) int { return a + b },
	}
	t := template.Must(template.New("").Funcs(funcs).ParseFS(assets, "templates/*.html"))
	return &Renderer{templates: t}
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
