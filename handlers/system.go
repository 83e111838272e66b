package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/studyhub/studyhub/backend/go-services/internal/database"
	"github.com/studyhub/studyhub/backend/go-services/pkg/logger"
	"github.com/studyhub/studyhub/backend/go-services/pkg/response"
)

const readyTimeout = 2 * time.Second

// RegisterSystemRoutes adds the liveness and readiness probes. Liveness never
// touches the database; readiness pings it and answers 503 when unreachable.
func RegisterSystemRoutes(r gin.IRouter, db database.Pinger) {
	r.GET("/api/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "Server is running", nil)
	})

	r.GET("/api/ready", func(c *gin.Context) {
		if db == nil {
			response.Fail(c, http.StatusServiceUnavailable, "Database not configured")
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			logger.Warnf("readiness: database ping failed: %v", err)
			response.Fail(c, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		response.Success(c, http.StatusOK, "Ready", nil)
	})
}
