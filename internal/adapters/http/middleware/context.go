// Package middleware provides HTTP middleware for the Gin framework.
package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	appctx "github.com/jsamuelsen/book-rental/internal/app/context"
	"github.com/jsamuelsen/book-rental/internal/platform/logging"
)

// RequestScope seeds every request context with the base logger and a fresh
// request-scoped lookup cache. The ID middleware that runs after it enriches
// the same logger.
func RequestScope(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		if logger != nil {
			ctx = logging.WithContext(ctx, logger)
		}

		ctx = appctx.WithContext(ctx, appctx.New())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
