// Package response writes admin API error envelopes:
// {"errors": [{"type": "...", "message": "..."}]}.
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"

	"newsletter-admin-go/pkg/db"
	"newsletter-admin-go/pkg/services"
)

// Error types returned in the envelope.
const (
	TypeValidation   = "ValidationError"
	TypeNotFound     = "NotFoundError"
	TypeUnauthorized = "UnauthorizedError"
	TypeInternal     = "InternalServerError"
)

// APIError is one entry of the envelope.
type APIError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Envelope is the body of every error response.
type Envelope struct {
	Errors []APIError `json:"errors"`
}

// Abort writes a single error and stops the handler chain.
func Abort(c *gin.Context, status int, errType, message string) {
	c.AbortWithStatusJSON(status, Envelope{Errors: []APIError{{Type: errType, Message: message}}})
}

// Validation aborts with 422.
func Validation(c *gin.Context, message string) {
	Abort(c, http.StatusUnprocessableEntity, TypeValidation, message)
}

// NotFound aborts with 404.
func NotFound(c *gin.Context, message string) {
	Abort(c, http.StatusNotFound, TypeNotFound, message)
}

// Unauthorized aborts with 401.
func Unauthorized(c *gin.Context, message string) {
	Abort(c, http.StatusUnauthorized, TypeUnauthorized, message)
}

// Internal aborts with 500 without leaking the cause.
func Internal(c *gin.Context) {
	Abort(c, http.StatusInternalServerError, TypeInternal, "An unexpected error occurred")
}

// FromError maps a service error onto the envelope. Unknown errors are
// attached to the context for the access log and reported as 500.
func FromError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		Validation(c, verr.Error())
	case errors.Is(err, db.ErrNotFound):
		NotFound(c, "Resource not found")
	default:
		_ = c.Error(err)
		Internal(c)
	}
}
