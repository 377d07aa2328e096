package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/voucher_engine/internal/core/domain"
)

// actorKey is the key used to store the authenticated actor in the request context.
const actorKey = contextKey("actor")

// WithActor returns a copy of ctx carrying actor.
func WithActor(ctx context.Context, actor domain.Actor) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// GetActorFromCtx retrieves the authenticated actor from a standard context.
func GetActorFromCtx(ctx context.Context) (domain.Actor, bool) {
	actor, ok := ctx.Value(actorKey).(domain.Actor)
	if !ok || actor.UserID == "" {
		return domain.Actor{}, false
	}
	return actor, true
}

// GetActorFromContext retrieves the authenticated actor from the Gin request.
// It returns the actor and a boolean indicating if it was found.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	return GetActorFromCtx(c.Request.Context())
}
