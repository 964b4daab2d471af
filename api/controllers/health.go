package controllers

import (
	"context"
	"net/http"

	"go.uber.org/multierr"

	"github.com/oceanoetiquetas/oceano-backend/api/responses"
	"github.com/oceanoetiquetas/oceano-backend/pkg/config"
	pkgerrors "github.com/oceanoetiquetas/oceano-backend/pkg/errors"
	"github.com/oceanoetiquetas/oceano-backend/pkg/logger"
)

// Pinger is the health-check surface of a backing dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Oceano-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the database and, when configured, Redis. Failures from
// both are combined so the probe reports every broken dependency at once.
func HealthReady(cfg *config.Config, database Pinger, redis Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Oceano-Env", cfg.App.Env)

		var errs error
		if database != nil {
			if err := database.Ping(r.Context()); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
		if redis != nil {
			if err := redis.Ping(r.Context()); err != nil {
				errs = multierr.Append(errs, err)
			}
		}
		if errs != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, errs, "readiness check"))
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
