// Package dto provides Data Transfer Objects for HTTP request/response handling.
package dto

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/book-rental/internal/domain"
	"github.com/jsamuelsen/book-rental/internal/platform/logging"
)

// ErrorResponse is the standard error envelope for all error responses.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	TraceID string      `json:"traceId,omitempty"`
}

// ErrorDetail contains the error information.
type ErrorDetail struct {
	// Code is a machine-readable error code (e.g., "NOT_FOUND", "VALIDATION_ERROR").
	Code string `json:"code"`

	// Message is a human-readable error message.
	Message string `json:"message"`

	// Details holds field-level messages for validation and format errors.
	Details map[string]string `json:"details,omitempty"`

	// Violations lists every refused book of an eligibility rejection.
	Violations []ViolationResponse `json:"violations,omitempty"`
}

// ViolationResponse is one refused book.
type ViolationResponse struct {
	BookTitle string `json:"book_title"`
	AgeRating int    `json:"age_rating"`
	UserAge   int    `json:"user_age"`
	Message   string `json:"message"`
}

// Error codes for machine-readable error identification.
const (
	// ErrorCodeNotFound indicates the requested resource was not found.
	ErrorCodeNotFound = "NOT_FOUND"

	// ErrorCodeConflict indicates a state conflict.
	ErrorCodeConflict = "CONFLICT"

	// ErrorCodeValidation indicates request validation failed.
	ErrorCodeValidation = "VALIDATION_ERROR"

	// ErrorCodeInvalidFormat indicates a malformed identity number.
	ErrorCodeInvalidFormat = "INVALID_FORMAT"

	// ErrorCodeEligibility indicates the user is too young for at least one book.
	ErrorCodeEligibility = "ELIGIBILITY_VIOLATION"

	// ErrorCodeUnavailable indicates a dependency is unavailable.
	ErrorCodeUnavailable = "SERVICE_UNAVAILABLE"

	// ErrorCodeInternal indicates an internal server error.
	ErrorCodeInternal = "INTERNAL_ERROR"

	// ErrorCodeTimeout indicates the request timed out.
	ErrorCodeTimeout = "TIMEOUT"

	// ErrorCodeBadRequest indicates the request was malformed.
	ErrorCodeBadRequest = "BAD_REQUEST"
)

// NewErrorResponse creates a new error response with the given code and message.
func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	}
}

// NewErrorResponseWithDetails creates an error response with additional details.
func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	return &ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

// WithTraceID adds a trace ID to the error response.
func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

// HTTPStatusFromCode maps error codes to HTTP status codes.
func HTTPStatusFromCode(code string) int {
	switch code {
	case ErrorCodeNotFound:
		return http.StatusNotFound
	case ErrorCodeConflict:
		return http.StatusConflict
	case ErrorCodeValidation, ErrorCodeInvalidFormat, ErrorCodeBadRequest:
		return http.StatusBadRequest
	case ErrorCodeEligibility:
		return http.StatusUnprocessableEntity
	case ErrorCodeUnavailable:
		return http.StatusServiceUnavailable
	case ErrorCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// MapDomainError maps a domain error to an HTTP status code and error response.
// The message is taken from the innermost domain error so executor and
// concurrency wrappers stay out of API responses.
// Unknown errors are mapped to 500 with a generic message.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	var (
		formatErr      *domain.FormatError
		validationErr  *domain.ValidationError
		notFoundErr    *domain.NotFoundError
		eligibilityErr *domain.EligibilityError
		conflictErr    *domain.ConflictError
		unavailableErr *domain.UnavailableError
	)

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, NewErrorResponse(ErrorCodeTimeout, "request timeout exceeded")

	case errors.As(err, &formatErr):
		return http.StatusBadRequest, NewErrorResponseWithDetails(ErrorCodeInvalidFormat, formatErr.Error(),
			map[string]string{formatErr.Field: formatErr.Reason})

	case errors.As(err, &validationErr):
		resp := NewErrorResponse(ErrorCodeValidation, validationErr.Error())
		if validationErr.Field != "" {
			resp.Error.Details = map[string]string{validationErr.Field: validationErr.Message}
		}

		return http.StatusBadRequest, resp

	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, notFoundErr.Error())

	case errors.As(err, &eligibilityErr):
		resp := NewErrorResponse(ErrorCodeEligibility, "the user is too young for one or more books")
		resp.Error.Violations = make([]ViolationResponse, len(eligibilityErr.Violations))

		for i, v := range eligibilityErr.Violations {
			resp.Error.Violations[i] = ViolationResponse{
				BookTitle: v.BookTitle,
				AgeRating: v.AgeRating,
				UserAge:   v.UserAge,
				Message:   v.Message(),
			}
		}

		return http.StatusUnprocessableEntity, resp

	case errors.As(err, &conflictErr):
		return http.StatusConflict, NewErrorResponse(ErrorCodeConflict, conflictErr.Error())

	case errors.As(err, &unavailableErr):
		return http.StatusServiceUnavailable, NewErrorResponse(ErrorCodeUnavailable, unavailableErr.Error())

	case domain.IsValidation(err):
		return http.StatusBadRequest, NewErrorResponse(ErrorCodeValidation, err.Error())

	case domain.IsNotFound(err):
		return http.StatusNotFound, NewErrorResponse(ErrorCodeNotFound, err.Error())

	default:
		return http.StatusInternalServerError, NewErrorResponse(ErrorCodeInternal, "an internal error occurred")
	}
}

// TraceIDKey is the gin context key holding a trace ID set by middleware.
const TraceIDKey = "trace_id"

// GetTraceID returns the trace ID of the request span, falling back to the
// value stored under TraceIDKey.
func GetTraceID(c *gin.Context) string {
	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		return span.SpanContext().TraceID().String()
	}

	if id, ok := c.Get(TraceIDKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}

	return ""
}

// HandleError writes the error response for err.
// Internal errors are logged with full details.
func HandleError(c *gin.Context, err error) {
	status, resp := MapDomainError(err)
	resp.TraceID = GetTraceID(c)

	if status == http.StatusInternalServerError {
		logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "internal error",
			"error", err.Error(),
			"trace_id", resp.TraceID,
		)
	}

	c.JSON(status, resp)
}

// AbortWithErrorCode aborts the request chain with a specific error code.
func AbortWithErrorCode(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(HTTPStatusFromCode(code), NewErrorResponse(code, message).WithTraceID(GetTraceID(c)))
}

// RespondWithBindingError writes a 400 for a request that failed to bind or validate.
func RespondWithBindingError(c *gin.Context, err error) {
	if IsValidationError(err) {
		c.JSON(http.StatusBadRequest, NewErrorResponseWithDetails(
			ErrorCodeValidation,
			"request validation failed",
			ValidationErrors(err),
		).WithTraceID(GetTraceID(c)))

		return
	}

	c.JSON(http.StatusBadRequest, NewErrorResponse(ErrorCodeBadRequest, "malformed request body").WithTraceID(GetTraceID(c)))
}
