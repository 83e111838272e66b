package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/studyhub/studyhub/backend/go-services/internal/config"
	"github.com/studyhub/studyhub/backend/go-services/internal/database"
	"github.com/studyhub/studyhub/backend/go-services/internal/identity"
	"github.com/studyhub/studyhub/backend/go-services/internal/server"
	"github.com/studyhub/studyhub/backend/go-services/pkg/logger"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	mongoConnectAttempts = 5
	mongoConnectBackoff  = time.Second
)

var serveInMemory bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the StudyHub API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveInMemory, "memory", false, "keep data in memory instead of MongoDB (local development only)")
}

func runServe(parent context.Context) error {
	cfg := mustLoadConfig(serveInMemory)
	logger.Infof("allowed origins for CORS: %v", cfg.CORS.AllowedOrigins)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ids := identity.Placeholder()
	var deps server.Deps
	var mongoClient *mongo.Client
	if serveInMemory {
		logger.Warnf("serving from memory: data is lost on exit")
		deps = server.MemoryDeps(cfg, ids)
	} else {
		client, err := database.ConnectWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, mongoConnectAttempts, mongoConnectBackoff)
		if err != nil {
			return fmt.Errorf("connect to MongoDB: %w", err)
		}
		logger.Infof("connected to MongoDB (database %q)", cfg.MongoDB.Database)
		mongoClient = client
		deps = server.MongoDeps(cfg, client.Database(cfg.MongoDB.Database), ids)
	}
	deps.Redis = connectRedis(ctx, cfg)

	srv := server.NewHTTPServer(cfg, server.NewRouter(deps))
	logger.L().Info().
		Str("addr", srv.Addr).
		Str("environment", cfg.Server.Environment).
		Str("health", fmt.Sprintf("http://localhost:%s/api/health", cfg.Server.Port)).
		Msg("StudyHub backend started")

	runErr := server.Run(ctx, srv, cfg.Server.ShutdownTimeout)

	logger.Infof("shutting down gracefully...")
	closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if mongoClient != nil {
		if err := mongoClient.Disconnect(closeCtx); err != nil {
			logger.Warnf("mongo disconnect: %v", err)
		} else {
			logger.Infof("MongoDB disconnected")
		}
	}
	if deps.Redis != nil {
		_ = deps.Redis.Close()
	}

	if errors.Is(runErr, syscall.EADDRINUSE) {
		logger.Errorf("port %s is already in use.", cfg.Server.Port)
		logger.Errorf("- On Unix/Mac: run `lsof -ti:%s | xargs kill -9`", cfg.Server.Port)
		logger.Errorf("- On Windows: run `netstat -ano | findstr :%s`, then `taskkill /PID <PID> /F`", cfg.Server.Port)
		logger.Errorf("- Or set PORT in .env to a different value.")
	}
	return runErr
}

// connectRedis returns a client when Redis is configured and reachable.
// Redis is optional: failures only disable the features that use it.
func connectRedis(ctx context.Context, cfg *config.Config) *redis.Client {
	if cfg.Redis.Host == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
		_ = client.Close()
		return nil
	}
	logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
	return client
}
