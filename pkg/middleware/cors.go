package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/studyhub/studyhub/backend/go-services/pkg/logger"
	"github.com/studyhub/studyhub/backend/go-services/pkg/metrics"
	"github.com/studyhub/studyhub/backend/go-services/pkg/response"
)

const MsgCORSRejected = "Not allowed by CORS"

// OriginAllowed reports whether origin may call the API. An empty origin
// (same-origin or non-browser caller) is always allowed. Entries match
// exactly, or as "*.example.com", which admits example.com and any of its
// subdomains.
func OriginAllowed(origin string, allowed []string) bool {
	if origin == "" {
		return true
	}
	for _, entry := range allowed {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if entry == origin {
			return true
		}
		if strings.HasPrefix(entry, "*.") {
			domain := entry[2:]
			if origin == domain || strings.HasSuffix(origin, "."+domain) {
				return true
			}
		}
	}
	return false
}

// CORSMiddleware rejects requests from origins outside allowed with 403 and
// sets the CORS response headers for the others. Preflight requests end here
// with 204.
func CORSMiddleware(allowed []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if !OriginAllowed(origin, allowed) {
			logger.L().Warn().Str("origin", origin).Strs("allowed", allowed).Msg("origin rejected by CORS")
			metrics.CORSRejected.Inc()
			response.Fail(c, http.StatusForbidden, MsgCORSRejected)
			return
		}
		if origin != "" {
			h := c.Writer.Header()
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
			h.Set("Access-Control-Max-Age", "86400")
			h.Add("Vary", "Origin")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
