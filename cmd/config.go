package cmd

import (
	"errors"

	"github.com/studyhub/studyhub/backend/go-services/internal/config"
	"github.com/studyhub/studyhub/backend/go-services/pkg/logger"
)

// mustLoadConfig loads the configuration or exits with setup instructions.
// allowNoMongo lets database-less commands run without MONGODB_URI.
func mustLoadConfig(allowNoMongo bool) *config.Config {
	cfg, err := config.LoadConfig()
	switch {
	case err == nil:
	case errors.Is(err, config.ErrMissingMongoURI) && allowNoMongo:
	case errors.Is(err, config.ErrMissingMongoURI):
		logger.Errorf("Missing required environment variable: MONGODB_URI")
		logger.Errorf("Quick setup:")
		logger.Errorf("  1. Copy the example file: cp .env.example .env")
		logger.Errorf("  2. Edit .env and set MONGODB_URI to your MongoDB connection string")
		logger.Errorf("  3. Restart the server")
		logger.Fatalf("cannot start without a database")
	case errors.Is(err, config.ErrMissingAllowedOrigins):
		logger.Errorf("ALLOWED_ORIGINS must be set in production for CORS configuration.")
		logger.Errorf("Example: ALLOWED_ORIGINS=https://yourdomain.com,https://www.yourdomain.com")
		logger.Fatalf("refusing to start with an open CORS policy")
	default:
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Init(cfg.LogLevel)
	if cfg.Server.IsProduction() {
		logger.SetFormat(true)
	}
	return cfg
}
