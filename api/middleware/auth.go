package middleware

import (
	"net/http"
	"strings"

	"github.com/oceanoetiquetas/oceano-backend/api/responses"
	pkgAuth "github.com/oceanoetiquetas/oceano-backend/pkg/auth"
	"github.com/oceanoetiquetas/oceano-backend/pkg/config"
	"github.com/oceanoetiquetas/oceano-backend/pkg/enums"
	pkgerrors "github.com/oceanoetiquetas/oceano-backend/pkg/errors"
	"github.com/oceanoetiquetas/oceano-backend/pkg/logger"
)

// RequireAdmin validates a bearer token minted for the admin panel.
func RequireAdmin(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return requireRole(cfg, logg, enums.ActorRoleAdmin)
}

// RequireCliente validates a bearer token minted for the customer portal.
func RequireCliente(cfg config.JWTConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return requireRole(cfg, logg, enums.ActorRoleCliente)
}

// requireRole rejects missing, malformed, expired and wrong-role tokens with
// 401, then seeds the request context with the authenticated identity.
func requireRole(cfg config.JWTConfig, logg *logger.Logger, role enums.ActorRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			if raw == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "token não informado"))
				return
			}

			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "token não informado"))
				return
			}

			claims, err := pkgAuth.ParseAccessToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "token inválido ou expirado"))
				return
			}

			if claims.Role != role {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "token não autorizado para esta área"))
				return
			}

			ctx := WithActor(r.Context(), claims.ActorID, string(claims.Role), claims.Nome)

			if logg != nil {
				switch role {
				case enums.ActorRoleAdmin:
					ctx = logg.WithAdminID(ctx, claims.ActorID)
				case enums.ActorRoleCliente:
					ctx = logg.WithClienteID(ctx, claims.ActorID)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
