// Package config loads server settings from the environment, with a
// .env file picked up when present.
package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	defaultHost           = "0.0.0.0"
	defaultPort           = 5000
	defaultUploadDir      = "uploads"
	defaultMaxUploadBytes = 16 << 20 // 16MB
	defaultDeleteUploads  = true

	envHost           = "HOST"
	envPort           = "PORT"
	envUploadDir      = "UPLOAD_DIR"
	envMaxUploadBytes = "MAX_UPLOAD_BYTES"
	envDeleteUploads  = "DELETE_AFTER_PARSE"
)

// Config holds the server runtime settings.
type Config struct {
	Host           string
	Port           int
	UploadDir      string
	MaxUploadBytes int
	DeleteUploads  bool
}

// Addr returns the listen address in host:port form.
func (c *Config) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// Load reads configuration from the environment, falling back to
// defaults and warning on unparseable values.
func Load(logger *slog.Logger) *Config {
	if logger == nil {
		logger = slog.Default()
	}
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("could not load .env file", "error", err)
	}

	cfg := &Config{
		Host:           defaultHost,
		Port:           defaultPort,
		UploadDir:      defaultUploadDir,
		MaxUploadBytes: defaultMaxUploadBytes,
		DeleteUploads:  defaultDeleteUploads,
	}

	if v := os.Getenv(envHost); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv(envUploadDir); v != "" {
		cfg.UploadDir = v
	}
	if v := os.Getenv(envPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil || port <= 0 {
			logger.Warn("invalid PORT value, using default", "value", v, "default", defaultPort)
		} else {
			cfg.Port = port
		}
	}
	if v := os.Getenv(envMaxUploadBytes); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			logger.Warn("invalid MAX_UPLOAD_BYTES value, using default", "value", v, "default", defaultMaxUploadBytes)
		} else {
			cfg.MaxUploadBytes = n
		}
	}
	if v := os.Getenv(envDeleteUploads); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			logger.Warn("invalid DELETE_AFTER_PARSE value, using default", "value", v, "default", defaultDeleteUploads)
		} else {
			cfg.DeleteUploads = b
		}
	}

	return cfg
}
