// Package response writes the uniform JSON envelope used by every endpoint:
// {success, message?, <payload fields>, errors?}.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/studyhub/studyhub/backend/go-services/internal/apperr"
	"github.com/studyhub/studyhub/backend/go-services/pkg/logger"
)

const (
	MsgValidationFailed = "Validation failed"
	MsgTooLarge         = "Content too large. Maximum size is 100KB"
	MsgServerError      = "Server error"
	MsgRouteNotFound    = "API endpoint not found"
	MsgUnexpected       = "Something went wrong!"
)

// FieldError is one itemized validation failure.
type FieldError struct {
	Field   string      `json:"field"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Messages carries the resource specific texts used when mapping errors.
type Messages struct {
	NotFound  string
	Forbidden string
}

// Success writes a successful envelope merged with payload.
func Success(c *gin.Context, status int, message string, payload gin.H) {
	body := gin.H{"success": true}
	if message != "" {
		body["message"] = message
	}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// Fail aborts the request with an error envelope.
func Fail(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}

// Invalid aborts with 400 and the itemized field errors.
func Invalid(c *gin.Context, message string, errs []FieldError) {
	if message == "" {
		message = MsgValidationFailed
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "message": message, "errors": errs})
}

// FromError maps a service error to its envelope. Unknown errors are logged
// with op and reported as a generic server error.
func FromError(c *gin.Context, op string, err error, m Messages) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		Fail(c, http.StatusNotFound, orDefault(m.NotFound, "Not found"))
	case errors.Is(err, apperr.ErrForbidden):
		Fail(c, http.StatusForbidden, orDefault(m.Forbidden, "Forbidden"))
	case errors.Is(err, apperr.ErrContentTooLarge):
		Fail(c, http.StatusRequestEntityTooLarge, MsgTooLarge)
	case errors.Is(err, apperr.ErrInvalidInput):
		Invalid(c, "", []FieldError{{Field: "body", Message: err.Error()}})
	default:
		logger.L().Error().Err(err).Str("op", op).Str("path", c.Request.URL.Path).Msg("request failed")
		Fail(c, http.StatusInternalServerError, MsgServerError)
	}
}

func orDefault(s, d string) string {
	if s == "" {
		return d
	}
	return s
}
