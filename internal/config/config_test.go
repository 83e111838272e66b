package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	t.Setenv("MONGODB_DATABASE", "studyhub_test")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("ALLOWED_ORIGINS", " https://app.example.com , *.example.org,, ")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "mongodb://localhost:27017/testdb", cfg.MongoDB.URI)
	require.Equal(t, "studyhub_test", cfg.MongoDB.Database)
	require.Equal(t, 10*time.Second, cfg.MongoDB.Timeout)
	require.Equal(t, "localhost", cfg.Redis.Host)
	require.Equal(t, []string{"https://app.example.com", "*.example.org"}, cfg.CORS.AllowedOrigins)
	require.Equal(t, "5000", cfg.Server.Port)
	require.False(t, cfg.Server.IsProduction())
}

func TestLoadConfig_PortAlias(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("PORT", "8088")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "8088", cfg.Server.Port)
}

func TestLoadConfig_MissingMongoURI(t *testing.T) {
	t.Setenv("MONGODB_URI", "")

	_, err := LoadConfig()
	require.True(t, errors.Is(err, ErrMissingMongoURI), "got %v", err)
}

func TestLoadConfig_DefaultOriginsOutsideProduction(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("SERVER_ENVIRONMENT", "development")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, DefaultAllowedOrigins, cfg.CORS.AllowedOrigins)
}

func TestLoadConfig_ProductionRequiresOrigins(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("SERVER_ENVIRONMENT", "production")

	_, err := LoadConfig()
	require.ErrorIs(t, err, ErrMissingAllowedOrigins)
}

func TestLoadConfig_MissingMongoURIKeepsDefaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("SERVER_ENVIRONMENT", "development")

	cfg, err := LoadConfig()
	require.ErrorIs(t, err, ErrMissingMongoURI)
	require.Equal(t, DefaultAllowedOrigins, cfg.CORS.AllowedOrigins)
}

func TestLoadConfig_MongoCheckedBeforeOrigins(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("APP_ENV", "production")
	t.Setenv("SERVER_ENVIRONMENT", "")

	_, err := LoadConfig()
	require.ErrorIs(t, err, ErrMissingMongoURI)
}
