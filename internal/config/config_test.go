package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017/testdb")
	t.Setenv("MONGODB_DATABASE", "gurujee_test")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("JWT_SECRET", "testsecret123456789012345678901234")
	t.Setenv("MINIO_PUBLIC_BASE_URL", "https://cdn.example.com/media/")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "mongodb://localhost:27017/testdb", cfg.MongoDB.URI)
	require.Equal(t, "gurujee_test", cfg.MongoDB.Database)
	require.Equal(t, "localhost:6380", cfg.Redis.Addr())
	require.Equal(t, "https://cdn.example.com/media", cfg.MinIO.PublicBaseURL)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("REDIS_HOST", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	require.Equal(t, "5001", cfg.Server.Port)
	require.Equal(t, "business_gurujee", cfg.MongoDB.Database)
	require.Equal(t, 15*time.Minute, cfg.JWT.AccessTokenTTL)
	require.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTokenTTL)
	require.Equal(t, int64(5<<20), cfg.Uploads.MaxBytes)
	require.Equal(t, 1, cfg.Listing.FreeBusinessLimit)
	require.Equal(t, "gurujee", cfg.NATS.SubjectPrefix)
	require.Empty(t, cfg.Redis.Addr())
	require.False(t, cfg.IsProduction())
}

func TestLoadConfig_ProductionNeedsSecret(t *testing.T) {
	t.Setenv("SERVER_ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.ErrorContains(t, err, "JWT_SECRET")
}
