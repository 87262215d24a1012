package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/book-rental/internal/platform/logging"
)

const (
	// HeaderRequestID carries the per-request identifier.
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID carries an identifier shared by every call made on
	// behalf of one client transaction.
	HeaderCorrelationID = "X-Correlation-ID"

	// ContextKeyRequestID is the gin key holding the request ID.
	ContextKeyRequestID = "request_id"

	// ContextKeyCorrelationID is the gin key holding the correlation ID.
	ContextKeyCorrelationID = "correlation_id"

	// maxIDLength bounds caller-supplied IDs before they reach the logs.
	maxIDLength = 128
)

type idSource struct {
	header string
	key    string
	enrich func(ctx context.Context, id string) context.Context
}

// RequestID returns middleware that accepts the caller's X-Request-ID or
// generates a UUID. The ID is echoed in the response and added to the
// request logger.
func RequestID() gin.HandlerFunc {
	return propagateID(idSource{
		header: HeaderRequestID,
		key:    ContextKeyRequestID,
		enrich: logging.WithRequestID,
	})
}

// CorrelationID is RequestID for X-Correlation-ID. A request without one
// starts a new transaction.
func CorrelationID() gin.HandlerFunc {
	return propagateID(idSource{
		header: HeaderCorrelationID,
		key:    ContextKeyCorrelationID,
		enrich: logging.WithCorrelationID,
	})
}

func propagateID(src idSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(src.header)
		if !acceptableID(id) {
			id = uuid.NewString()
		}

		c.Set(src.key, id)
		c.Header(src.header, id)
		c.Request = c.Request.WithContext(src.enrich(c.Request.Context(), id))

		c.Next()
	}
}

// acceptableID reports whether a caller-supplied ID is short printable ASCII.
func acceptableID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}

	for i := range len(id) {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}

	return true
}

// GetRequestID returns the request ID, or "" outside the middleware.
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the correlation ID, or "" outside the middleware.
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}
