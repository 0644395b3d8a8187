package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "SERVER_PORT", "DATABASE_URL", "DATABASE_DSN", "REDIS_ADDR",
		"SESSION_STORE", "STORAGE_DRIVER", "MINIO_ENDPOINT", "MINIO_BUCKET",
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "ADMIN_USER", "ADMIN_PASSWORD_HASH",
		"LOG_LEVEL", "LOG_FORMAT", "SUBMISSION_CHANNELS", "SUBMISSION_TIMEOUT",
	} {
		// empty values are treated as unset
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":3040", cfg.Server.Addr())
	assert.Equal(t, SessionStoreMemory, cfg.Session.Store)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, StorageLocal, cfg.Storage.Driver)
	assert.Equal(t, []string{"admin"}, cfg.Submission.Channels)
	assert.Equal(t, 15*time.Second, cfg.Submission.Timeout)
	assert.Equal(t, 3*time.Second, cfg.Pricing.FetchTimeout)
	assert.False(t, cfg.Telegram.Enabled())
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8081")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x?sslmode=disable")
	t.Setenv("SESSION_STORE", "redis")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("SUBMISSION_CHANNELS", "admin,customer")
	t.Setenv("SUBMISSION_TIMEOUT", "5s")
	t.Setenv("TELEGRAM_BOT_TOKEN", "tok")
	t.Setenv("TELEGRAM_CHAT_ID", "42")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, "postgres://u:p@db:5432/x?sslmode=disable", cfg.Database.DSN)
	assert.Equal(t, SessionStoreRedis, cfg.Session.Store)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, []string{"admin", "customer"}, cfg.Submission.Channels)
	assert.Equal(t, 5*time.Second, cfg.Submission.Timeout)
	assert.True(t, cfg.Telegram.Enabled())
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	yaml := `
server:
  port: 9000
storage:
  driver: minio
minio:
  endpoint: minio:9000
  bucket: leads
log:
  level: debug
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, StorageMinIO, cfg.Storage.Driver)
	assert.Equal(t, "minio:9000", cfg.MinIO.Endpoint)
	assert.Equal(t, "leads", cfg.MinIO.Bucket)
	assert.Equal(t, "debug", cfg.Log.Level)

	t.Setenv("LOG_LEVEL", "warn")
	cfg, err = Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"session store", map[string]string{"SESSION_STORE": "disk"}, "session.store"},
		{"storage driver", map[string]string{"STORAGE_DRIVER": "ftp"}, "storage.driver"},
		{"minio without endpoint", map[string]string{"STORAGE_DRIVER": "minio"}, "minio.endpoint"},
		{"log format", map[string]string{"LOG_FORMAT": "xml"}, "log.format"},
		{"channel", map[string]string{"SUBMISSION_CHANNELS": "sms"}, "submission channel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
