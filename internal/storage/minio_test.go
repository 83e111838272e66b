package storage

import (
	"context"
	"testing"

	"github.com/studyhub/studyhub/backend/go-services/internal/config"
	"github.com/stretchr/testify/require"
)

func TestNewMinIOStorage_RequiresEndpoint(t *testing.T) {
	_, err := NewMinIOStorage(context.Background(), config.MinIOConfig{Bucket: "studyhub-backups"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "MINIO_ENDPOINT")
}

func TestNewMinIOStorage_InvalidEndpoint(t *testing.T) {
	_, err := NewMinIOStorage(context.Background(), config.MinIOConfig{Endpoint: "http://has-a-scheme:9000", Bucket: "b"})
	require.Error(t, err)
}
