package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/book-rental/internal/adapters/http/dto"
	"github.com/jsamuelsen/book-rental/internal/platform/logging"
)

// Recovery returns middleware that recovers from panics.
// The panic is logged with its stack trace and the client receives a 500
// with the standard error envelope. Apply it first in the chain.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = slog.Default()
	}

	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			ctxLogger, ok := logging.Lookup(c.Request.Context())
			if !ok {
				ctxLogger = logger
			}

			traceID := dto.GetTraceID(c)

			ctxLogger.ErrorContext(c.Request.Context(), "panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("path", c.Request.URL.Path),
				slog.String("method", c.Request.Method),
				slog.String("trace_id", traceID),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(dto.ErrorCodeInternal, "an internal error occurred").WithTraceID(traceID))
		}()

		c.Next()
	}
}
