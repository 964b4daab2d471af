package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	catalogsvc "github.com/oceanoetiquetas/oceano-backend/internal/catalog"
	"github.com/oceanoetiquetas/oceano-backend/internal/navigation"
	"github.com/oceanoetiquetas/oceano-backend/internal/web"
	"github.com/oceanoetiquetas/oceano-backend/pkg/config"
	pkgerrors "github.com/oceanoetiquetas/oceano-backend/pkg/errors"
	"github.com/oceanoetiquetas/oceano-backend/pkg/logger"
)

// HomePage renders the storefront landing page with the navigation menu.
func HomePage(renderer *web.Renderer, nav *navigation.Builder, site config.SiteConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := web.HomeData{
			Menu:       nav.Build(r.Context()),
			ContatoZap: site.ContatoZap,
		}
		if err := renderer.Home(w, data); err != nil && logg != nil {
			logg.Error(r.Context(), "page.home.render", err)
		}
	}
}

// ProdutoPage renders the product detail page, resolving legacy slug
// variants, or the 404 page when nothing matches.
func ProdutoPage(renderer *web.Renderer, svc catalogsvc.Service, nav *navigation.Builder, site config.SiteConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		detail, err := svc.Detail(r.Context(), slug)
		if err != nil {
			if appErr := pkgerrors.As(err); appErr != nil && appErr.Code() == pkgerrors.CodeNotFound {
				renderer.NotFound(w)
				return
			}
			if logg != nil {
				logg.Error(r.Context(), "page.produto.lookup", err)
			}
			renderer.NotFound(w)
			return
		}

		data := web.ProdutoData{
			Menu:           nav.Build(r.Context()),
			Produto:        detail.Produto,
			Especificacoes: detail.Especificacoes,
			ContatoZap:     site.ContatoZap,
		}
		if err := renderer.Produto(w, data); err != nil && logg != nil {
			logg.Error(r.Context(), "page.produto.render", err)
		}
	}
}
