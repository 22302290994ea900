// Package ctxutil bridges the gin request context and the persistence
// layer's context keys so SQL logs carry the request ID.
package ctxutil

import (
	"context"

	"commerce/api/response"
	"commerce/infrastructure/persistence"

	"github.com/gin-gonic/gin"
)

func WithRequestID(ctx *gin.Context) context.Context {
	requestID := response.GetRequestID(ctx)
	return persistence.ContextWithRequestID(ctx.Request.Context(), requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	return persistence.RequestIDFromContext(ctx)
}
