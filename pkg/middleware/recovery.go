package middleware

import (
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/studyhub/studyhub/backend/go-services/pkg/logger"
	"github.com/studyhub/studyhub/backend/go-services/pkg/response"
)

// Recovery turns a panic in a handler into a generic 500 envelope. The panic
// value is logged but never sent to the client.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, rec interface{}) {
		logger.L().Error().Interface("panic", rec).Str("method", c.Request.Method).Str("path", c.Request.URL.Path).
			Bytes("stack", debug.Stack()).Msg("handler panicked")
		response.Fail(c, http.StatusInternalServerError, response.MsgUnexpected)
	})
}
