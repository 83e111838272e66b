// Package server assembles the HTTP surface: middleware chain, resource
// routes, system routes and the listener lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/studyhub/studyhub/backend/go-services/handlers"
	"github.com/studyhub/studyhub/backend/go-services/internal/config"
	"github.com/studyhub/studyhub/backend/go-services/internal/database"
	doubthandler "github.com/studyhub/studyhub/backend/go-services/internal/doubt/handler"
	doubtservice "github.com/studyhub/studyhub/backend/go-services/internal/doubt/service"
	"github.com/studyhub/studyhub/backend/go-services/internal/identity"
	notehandler "github.com/studyhub/studyhub/backend/go-services/internal/note/handler"
	noteservice "github.com/studyhub/studyhub/backend/go-services/internal/note/service"
	timetablehandler "github.com/studyhub/studyhub/backend/go-services/internal/timetable/handler"
	timetableservice "github.com/studyhub/studyhub/backend/go-services/internal/timetable/service"
	"github.com/studyhub/studyhub/backend/go-services/pkg/metrics"
	"github.com/studyhub/studyhub/backend/go-services/pkg/middleware"
	"github.com/studyhub/studyhub/backend/go-services/pkg/response"
	"go.mongodb.org/mongo-driver/mongo"
)

// Deps are the collaborators the router is built from. DB and Redis may be nil.
type Deps struct {
	Config    *config.Config
	Notes     notehandler.Service
	Doubts    doubthandler.Service
	Timetable timetablehandler.Service
	DB        database.Pinger
	Redis     *redis.Client
}

// MongoDeps wires the Mongo-backed services on db.
func MongoDeps(cfg *config.Config, db *mongo.Database, ids identity.Provider) Deps {
	return Deps{
		Config:    cfg,
		Notes:     noteservice.NewMongoService(db.Collection(database.NotesCollection), ids),
		Doubts:    doubtservice.NewMongoService(db.Collection(database.DoubtsCollection), ids),
		Timetable: timetableservice.NewMongoService(db.Collection(database.TimetablesCollection), ids),
		DB:        database.ClientPinger{Client: db.Client()},
	}
}

// MemoryDeps wires in-memory services, for tests and database-less runs.
func MemoryDeps(cfg *config.Config, ids identity.Provider) Deps {
	return Deps{
		Config:    cfg,
		Notes:     noteservice.NewMemoryService(ids),
		Doubts:    doubtservice.NewMemoryService(ids),
		Timetable: timetableservice.NewMemoryService(ids),
	}
}

var registerMetrics sync.Once

// NewRouter builds the gin engine serving the whole API.
func NewRouter(d Deps) *gin.Engine {
	cfg := d.Config
	if cfg.Server.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(), middleware.Recovery(), middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))

	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && d.Redis != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(d.Redis, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	handlers.RegisterSystemRoutes(r, d.DB)
	handlers.RegisterSwagger(r)
	notehandler.RegisterNoteRoutes(r, d.Notes)
	doubthandler.RegisterDoubtRoutes(r, d.Doubts)
	timetablehandler.RegisterTimetableRoutes(r, d.Timetable)

	registerMetrics.Do(func() { metrics.RegisterCollectors(prometheus.DefaultRegisterer) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, response.MsgRouteNotFound)
	})
	return r
}

// NewHTTPServer wraps h in an http.Server configured from cfg.
func NewHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:           h,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}
}

// Run listens on srv.Addr and serves until ctx is cancelled, then shuts down
// gracefully. See Serve.
func Run(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", srv.Addr, err)
	}
	return Serve(ctx, srv, ln, shutdownTimeout)
}

// Serve serves on ln until ctx is cancelled. In-flight requests then get up
// to shutdownTimeout to finish. A clean shutdown returns nil.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
