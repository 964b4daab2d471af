package controllers

import (
	"net/http"

	"github.com/oceanoetiquetas/oceano-backend/api/responses"
	"github.com/oceanoetiquetas/oceano-backend/api/validators"
	quotesvc "github.com/oceanoetiquetas/oceano-backend/internal/quotes"
	"github.com/oceanoetiquetas/oceano-backend/pkg/logger"
)

// PublicQuote accepts an anonymous quote submission from the storefront form.
// When the submission provisions a new customer, the generated access code is
// returned once so the storefront can show it to the visitor.
func PublicQuote(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload quotesvc.PublicInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CreatePublic(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		body := map[string]any{
			"message":   "orçamento recebido com sucesso",
			"orcamento": result.Orcamento,
			"cliente": map[string]any{
				"id":   result.Cliente.ID,
				"nome": result.Cliente.Nome,
			},
		}
		if result.ClienteProvisionado {
			body["codigo_acesso"] = result.CodigoAcessoGerado
			body["cliente_provisionado"] = true
		}
		// The storefront form predates the success envelope and reads
		// the fields from the top level.
		responses.WriteRaw(w, http.StatusCreated, body)
	}
}
