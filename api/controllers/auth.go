package controllers

import (
	"net/http"

	"github.com/oceanoetiquetas/oceano-backend/api/responses"
	"github.com/oceanoetiquetas/oceano-backend/api/validators"
	authsvc "github.com/oceanoetiquetas/oceano-backend/internal/auth"
	"github.com/oceanoetiquetas/oceano-backend/pkg/logger"
)

type adminLoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type clienteLoginRequest struct {
	CodigoAcesso string `json:"codigo_acesso" validate:"required"`
}

// AdminLogin authenticates a panel account and mints an admin token.
func AdminLogin(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload adminLoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AdminLogin(r.Context(), payload.Username, payload.Password)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// Legacy panel clients read the token from the top level.
		responses.WriteRaw(w, http.StatusOK, map[string]any{
			"message": "login realizado com sucesso",
			"token":   result.Token,
			"admin": map[string]any{
				"id":       result.AdminID,
				"username": result.Username,
			},
		})
	}
}

// ClienteLogin authenticates a portal customer by access code.
func ClienteLogin(svc authsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload clienteLoginRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ClienteLogin(r.Context(), payload.CodigoAcesso)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteRaw(w, http.StatusOK, map[string]any{
			"message": "login realizado com sucesso",
			"token":   result.Token,
			"cliente": map[string]any{
				"id":   result.ClienteID,
				"nome": result.Nome,
			},
		})
	}
}
