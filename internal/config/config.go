package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Supported values for AppConfig.StorageBackend.
const (
	BackendLocal = "local"
	BackendMinIO = "minio"
)

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// AppConfig is the centralized configuration struct for the application.
// Values come from built-in defaults, then an optional YAML file named by CONFIG_FILE,
// then environment variables.
type AppConfig struct {
	Port             string      `yaml:"port"`
	UploadRoot       string      `yaml:"upload_root"`
	DocumentsDir     string      `yaml:"documents_dir"`
	CategoriesFile   string      `yaml:"categories_file"`
	BodyLimitMB      int         `yaml:"body_limit_mb"`
	ReadTimeoutSec   int         `yaml:"read_timeout_sec"`
	WriteTimeoutSec  int         `yaml:"write_timeout_sec"`
	LogLevel         string      `yaml:"log_level"`
	Timezone         string      `yaml:"timezone"`
	CORSAllowOrigins string      `yaml:"cors_allow_origins"`
	StorageBackend   string      `yaml:"storage_backend"`
	PresignExpirySec int         `yaml:"presign_expiry_sec"`
	MinIO            MinIOConfig `yaml:"minio"`
}

// CategoriesPath is the location of the persisted document category list on local disk.
// The file always lives on disk, whatever storage backend holds the uploads.
func (c *AppConfig) CategoriesPath() string {
	return filepath.Join(c.UploadRoot, c.DocumentsDir, c.CategoriesFile)
}

func defaults() *AppConfig {
	return &AppConfig{
		Port:             "3000",
		UploadRoot:       "uploads",
		DocumentsDir:     "documents",
		CategoriesFile:   "categories.json",
		BodyLimitMB:      50,
		ReadTimeoutSec:   30,
		WriteTimeoutSec:  30,
		LogLevel:         "info",
		Timezone:         "UTC",
		CORSAllowOrigins: "*",
		StorageBackend:   BackendLocal,
		PresignExpirySec: 900,
	}
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// Real environment variables take precedence over the YAML file.
func Load() (*AppConfig, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.UploadRoot = getEnv("UPLOAD_ROOT", cfg.UploadRoot)
	cfg.DocumentsDir = getEnv("DOCUMENTS_DIR", cfg.DocumentsDir)
	cfg.CategoriesFile = getEnv("CATEGORIES_FILE", cfg.CategoriesFile)
	cfg.BodyLimitMB = getEnvInt("BODY_LIMIT_MB", cfg.BodyLimitMB)
	cfg.ReadTimeoutSec = getEnvInt("READ_TIMEOUT_SEC", cfg.ReadTimeoutSec)
	cfg.WriteTimeoutSec = getEnvInt("WRITE_TIMEOUT_SEC", cfg.WriteTimeoutSec)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.Timezone = getEnv("TZ_NAME", cfg.Timezone)
	cfg.CORSAllowOrigins = getEnv("CORS_ALLOW_ORIGINS", cfg.CORSAllowOrigins)
	cfg.StorageBackend = getEnv("STORAGE_BACKEND", cfg.StorageBackend)
	cfg.PresignExpirySec = getEnvInt("PRESIGN_EXPIRY_SEC", cfg.PresignExpirySec)
	cfg.MinIO = MinIOConfig{
		Endpoint:  getEnv("MINIO_ENDPOINT", cfg.MinIO.Endpoint),
		AccessKey: getEnv("MINIO_ACCESS_KEY", cfg.MinIO.AccessKey),
		SecretKey: getEnv("MINIO_SECRET_KEY", cfg.MinIO.SecretKey),
		Bucket:    getEnv("MINIO_BUCKET", cfg.MinIO.Bucket),
		UseSSL:    getEnvBool("MINIO_USE_SSL", cfg.MinIO.UseSSL),
	}

	switch cfg.StorageBackend {
	case BackendLocal, BackendMinIO:
	default:
		return nil, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}
	if cfg.CategoriesFile == "" || cfg.DocumentsDir == "" {
		return nil, fmt.Errorf("documents dir and categories file are required")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
