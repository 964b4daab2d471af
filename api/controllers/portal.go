package controllers

import (
	"net/http"

	"github.com/oceanoetiquetas/oceano-backend/api/middleware"
	"github.com/oceanoetiquetas/oceano-backend/api/responses"
	"github.com/oceanoetiquetas/oceano-backend/api/validators"
	ordersvc "github.com/oceanoetiquetas/oceano-backend/internal/orders"
	quotesvc "github.com/oceanoetiquetas/oceano-backend/internal/quotes"
	pkgerrors "github.com/oceanoetiquetas/oceano-backend/pkg/errors"
	"github.com/oceanoetiquetas/oceano-backend/pkg/logger"
)

const dashboardRecentes = 5

// ClienteDashboard summarizes the authenticated customer's activity: totals
// per collection plus the most recent entries of each.
func ClienteDashboard(quotes quotesvc.Service, orders ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clienteID := middleware.ActorIDFromContext(r.Context())
		if clienteID == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "identidade do cliente ausente"))
			return
		}

		orcamentos, err := quotes.ListForCliente(r.Context(), clienteID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		pedidos, err := orders.ListForCliente(r.Context(), clienteID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		recentesOrcamentos := orcamentos
		if len(recentesOrcamentos) > dashboardRecentes {
			recentesOrcamentos = recentesOrcamentos[:dashboardRecentes]
		}
		recentesPedidos := pedidos
		if len(recentesPedidos) > dashboardRecentes {
			recentesPedidos = recentesPedidos[:dashboardRecentes]
		}

		responses.WriteSuccess(w, map[string]any{
			"nome": middleware.ActorNomeFromContext(r.Context()),
			"totais": map[string]int{
				"orcamentos": len(orcamentos),
				"pedidos":    len(pedidos),
			},
			"orcamentos_recentes": recentesOrcamentos,
			"pedidos_recentes":    recentesPedidos,
		})
	}
}

// ClienteQuotes lists the authenticated customer's quotes.
func ClienteQuotes(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clienteID := middleware.ActorIDFromContext(r.Context())
		if clienteID == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "identidade do cliente ausente"))
			return
		}

		orcamentos, err := svc.ListForCliente(r.Context(), clienteID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, orcamentos)
	}
}

// ClienteNewQuote creates a quote owned by the authenticated customer.
func ClienteNewQuote(svc quotesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clienteID := middleware.ActorIDFromContext(r.Context())
		if clienteID == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "identidade do cliente ausente"))
			return
		}

		var payload quotesvc.CreateInput
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orcamento, err := svc.Create(r.Context(), clienteID, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"message":   "orçamento enviado com sucesso",
			"orcamento": orcamento,
		})
	}
}
