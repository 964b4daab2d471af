package controllers

import (
	"net/http"

	"github.com/oceanoetiquetas/oceano-backend/api/responses"
	catalogsvc "github.com/oceanoetiquetas/oceano-backend/internal/catalog"
	"github.com/oceanoetiquetas/oceano-backend/pkg/logger"
)

// PublicProducts serves the storefront listing. The response is a bare JSON
// array (no envelope); the storefront scripts consume it that way.
func PublicProducts(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoria := r.URL.Query().Get("categoria")

		rows, err := svc.List(r.Context(), categoria)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteRaw(w, http.StatusOK, rows)
	}
}
