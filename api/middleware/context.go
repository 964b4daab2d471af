package middleware

import "context"

type contextKey string

const (
	ctxActorID   contextKey = "actor_id"
	ctxActorRole contextKey = "actor_role"
	ctxActorNome contextKey = "actor_nome"
)

// ActorIDFromContext returns the authenticated admin or client id.
func ActorIDFromContext(ctx context.Context) int64 {
	if ctx == nil {
		return 0
	}
	if v, ok := ctx.Value(ctxActorID).(int64); ok {
		return v
	}
	return 0
}

func ActorRoleFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxActorRole).(string); ok {
		return v
	}
	return ""
}

func ActorNomeFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxActorNome).(string); ok {
		return v
	}
	return ""
}

// WithActor injects the authenticated identity; middlewares and tests use it.
func WithActor(ctx context.Context, id int64, role, nome string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxActorID, id)
	ctx = context.WithValue(ctx, ctxActorRole, role)
	return context.WithValue(ctx, ctxActorNome, nome)
}
