package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/oceanoetiquetas/oceano-backend/internal/navigation"
	"github.com/oceanoetiquetas/oceano-backend/pkg/db/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// HomeData feeds the home template.
type HomeData struct {
	Menu       navigation.Menu
	ContatoZap string
}

// ProdutoData feeds the product detail template.
type ProdutoData struct {
	Menu           navigation.Menu
	Produto        *models.Produto
	Especificacoes map[string]any
	ContatoZap     string
}

// Renderer renders the storefront pages from embedded templates.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded page templates.
func NewRenderer() (*Renderer, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{templates: templates}, nil
}

func (r *Renderer) Home(w http.ResponseWriter, data HomeData) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return r.templates.ExecuteTemplate(w, "home.html", data)
}

func (r *Renderer) Produto(w http.ResponseWriter, data ProdutoData) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return r.templates.ExecuteTemplate(w, "produto.html", data)
}

func (r *Renderer) NotFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_ = r.templates.ExecuteTemplate(w, "404.html", nil)
}

// StaticFallback serves unmatched GET paths from the static directory. A
// path whose basename has no extension is assumed to be a (missing) page and
// gets the 404 page directly; everything else is tried as a file first.
func (r *Renderer) StaticFallback(staticDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet && req.Method != http.MethodHead {
			r.NotFound(w)
			return
		}

		cleaned := filepath.Clean(strings.TrimPrefix(req.URL.Path, "/"))
		if cleaned == "." || strings.HasPrefix(cleaned, "..") {
			r.NotFound(w)
			return
		}
		if !strings.Contains(filepath.Base(cleaned), ".") {
			r.NotFound(w)
			return
		}

		full := filepath.Join(staticDir, cleaned)
		info, err := os.Stat(full)
		if err != nil || info.IsDir() {
			r.NotFound(w)
			return
		}
		http.ServeFile(w, req, full)
	}
}
