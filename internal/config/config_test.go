package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "rutea", cfg.Database.DBName)
	assert.False(t, cfg.Database.AutoMigrate)
	assert.False(t, cfg.Events.Enabled)
	assert.Equal(t, "stream:rutea:changes", cfg.Events.Stream)
	assert.Equal(t, "rutea-activity-workers", cfg.Worker.ConsumerGroup)
	assert.Equal(t, int64(50), cfg.Worker.BatchSize)
	assert.Equal(t, 5*time.Second, cfg.Worker.StreamReadTimeout)
	assert.Equal(t, 10, cfg.Security.BcryptCost)
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Tracing.Enabled())
	assert.Equal(t, 1.0, cfg.Tracing.SampleRatio)
}

func TestLoadFile_EnvFileAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "API_PORT=9090\nDB_NAME=rutea_dev\nEVENTS_ENABLED=true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("DB_NAME", "from_env")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Events.Enabled)
	assert.Equal(t, "from_env", cfg.Database.DBName)
}

func TestLoadFile_InvalidValues(t *testing.T) {
	t.Setenv("BCRYPT_COST", "2")
	t.Setenv("WORKER_BATCH_SIZE", "0")

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BCRYPT_COST")
	assert.Contains(t, err.Error(), "WORKER_BATCH_SIZE")
}

func TestLoadFile_Tracing(t *testing.T) {
	t.Setenv("TRACING_PROVIDER", "OTLP")
	t.Setenv("TRACING_ENDPOINT", "collector:4318")
	t.Setenv("TRACING_SAMPLE_RATIO", "0.25")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.True(t, cfg.Tracing.Enabled())
	assert.Equal(t, "otlp", cfg.Tracing.Provider)
	assert.Equal(t, "collector:4318", cfg.Tracing.Endpoint)
	assert.Equal(t, 0.25, cfg.Tracing.SampleRatio)
}

func TestLoadFile_InvalidTracing(t *testing.T) {
	t.Setenv("TRACING_PROVIDER", "zipkin")
	t.Setenv("TRACING_SAMPLE_RATIO", "2")

	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TRACING_PROVIDER")
	assert.Contains(t, err.Error(), "TRACING_SAMPLE_RATIO")
}

func TestConfig_Addresses(t *testing.T) {
	cfg := &Config{
		Server: ServerConfig{Host: "127.0.0.1", Port: 8080},
		Database: DatabaseConfig{
			Host: "db", Port: 5432, User: "rutea", Password: "p@ss word",
			DBName: "rutea", SSLMode: "disable",
		},
		Redis: RedisConfig{Host: "cache", Port: 6379},
	}

	assert.Equal(t, "127.0.0.1:8080", cfg.GetServerAddr())
	assert.Equal(t, "cache:6379", cfg.GetRedisAddr())
	assert.Equal(t, "host=db port=5432 user=rutea password=p@ss word dbname=rutea sslmode=disable", cfg.GetDatabaseDSN())
	assert.Equal(t, "postgres://rutea:p%40ss%20word@db:5432/rutea?sslmode=disable", cfg.GetDatabaseURL())
}
