package controllers

import (
	"net/http"

	"github.com/oceanoetiquetas/oceano-backend/api/middleware"
	"github.com/oceanoetiquetas/oceano-backend/api/responses"
	"github.com/oceanoetiquetas/oceano-backend/api/validators"
	chatsvc "github.com/oceanoetiquetas/oceano-backend/internal/chat"
	pkgerrors "github.com/oceanoetiquetas/oceano-backend/pkg/errors"
	"github.com/oceanoetiquetas/oceano-backend/pkg/logger"
)

type chatRequest struct {
	Message string                 `json:"message" validate:"required"`
	History []chatsvc.HistoryEntry `json:"history" validate:"dive"`
}

// Chat forwards an authenticated customer's message to the assistant and
// returns the reply.
func Chat(svc chatsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clienteID := middleware.ActorIDFromContext(r.Context())
		if clienteID == 0 {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "identidade do cliente ausente"))
			return
		}

		var payload chatRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reply, err := svc.Send(r.Context(), clienteID, payload.Message, payload.History)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"reply": reply})
	}
}
