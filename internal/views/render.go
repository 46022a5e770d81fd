// Package views renderiza las páginas HTML con html/template.
// Los templates y assets estáticos viajan embebidos en el binario.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"rescue-revolution/internal/domain/toasts"
	"rescue-revolution/internal/platform/logger"
	"rescue-revolution/internal/ports/backend"
)

//go:embed templates static
var assets embed.FS

// Base es el chrome común de toda página: título, usuario de la sesión
// (nil si anónimo) y los toasts activos. Cada página embebe Base en su
// struct de datos.
type Base struct {
	Title  string
	User   *backend.User
	Toasts []toasts.Toast
}

// NotFoundPage es la vista compartida para entidad inexistente; las vistas
// de detalle la usan tanto para 404 como para fallos de red.
type NotFoundPage struct {
	Base
	Heading   string
	Detail    string
	BackURL   string
	BackLabel string
}

type Renderer struct {
	pages map[string]*template.Template
	log   logger.Logger
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"capitalize": capitalize,
		"label":      label,
		"date":       formatDate,
	}
}

func New(log logger.Logger) (*Renderer, error) {
	layout, err := template.New("layout.html").Funcs(funcMap()).ParseFS(assets, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("views: parse layout: %w", err)
	}

	entries, err := fs.ReadDir(assets, "templates/pages")
	if err != nil {
		return nil, fmt.Errorf("views: read pages: %w", err)
	}

	pages := make(map[string]*template.Template, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		base, err := layout.Clone()
		if err != nil {
			return nil, fmt.Errorf("views: clone layout: %w", err)
		}
		t, err := base.ParseFS(assets, path.Join("templates/pages", e.Name()))
		if err != nil {
			return nil, fmt.Errorf("views: parse %s: %w", e.Name(), err)
		}
		pages[e.Name()] = t
	}

	return &Renderer{pages: pages, log: log}, nil
}

// Render ejecuta la página contra un buffer antes de escribir, para no
// mandar HTML a medias si el template falla.
func (re *Renderer) Render(w http.ResponseWriter, status int, page string, data any) {
	t, ok := re.pages[page]
	if !ok {
		re.log.Error("render: unknown page", logger.Fields{"page": page})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		re.log.Error("render: execute failed", logger.Fields{"page": page, "err": err.Error()})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// Static sirve los assets embebidos bajo /static/.
func Static() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// label convierte valores de enum a texto: "lost_pet" => "Lost Pet".
func label(s string) string {
	parts := strings.Split(s, "_")
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

// formatDate interpreta los timestamps isoformat del backend; si no
// parsean, se muestran tal cual.
func formatDate(s string) string {
	for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("Jan 2, 2006")
		}
	}
	return s
}
