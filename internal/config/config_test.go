package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("UPLOAD_ROOT", "/srv/uploads")
	t.Setenv("BODY_LIMIT_MB", "20")
	t.Setenv("MINIO_USE_SSL", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/srv/uploads", cfg.UploadRoot)
	assert.Equal(t, 20, cfg.BodyLimitMB)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, BackendLocal, cfg.StorageBackend)
	assert.Equal(t, filepath.Join("/srv/uploads", "documents", "categories.json"), cfg.CategoriesPath())
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
port: "8081"
upload_root: /data
storage_backend: minio
minio:
  endpoint: minio:9000
  bucket: uploads
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("CONFIG_FILE", path)

	t.Run("file values applied", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "8081", cfg.Port)
		assert.Equal(t, "/data", cfg.UploadRoot)
		assert.Equal(t, BackendMinIO, cfg.StorageBackend)
		assert.Equal(t, "minio:9000", cfg.MinIO.Endpoint)
		assert.Equal(t, "uploads", cfg.MinIO.Bucket)
		// untouched keys keep their defaults
		assert.Equal(t, "documents", cfg.DocumentsDir)
	})

	t.Run("env overrides file", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("MINIO_BUCKET", "other")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Port)
		assert.Equal(t, "other", cfg.MinIO.Bucket)
	})
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing config file", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("malformed config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("port: [unterminated"), 0o644))
		t.Setenv("CONFIG_FILE", path)
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("STORAGE_BACKEND", "ftp")
		_, err := Load()
		assert.ErrorContains(t, err, "unsupported storage backend")
	})
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	t.Setenv(key, "value")

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	t.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	t.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	t.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	t.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	t.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
