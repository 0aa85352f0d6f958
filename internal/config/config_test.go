package config

import (
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOST", "")
	t.Setenv("PORT", "")
	t.Setenv("UPLOAD_DIR", "")
	t.Setenv("MAX_UPLOAD_BYTES", "")
	t.Setenv("DELETE_AFTER_PARSE", "")

	cfg := Load(nil)
	if cfg.Host != defaultHost {
		t.Errorf("Host: got %q, want %q", cfg.Host, defaultHost)
	}
	if cfg.Port != defaultPort {
		t.Errorf("Port: got %d, want %d", cfg.Port, defaultPort)
	}
	if cfg.MaxUploadBytes != defaultMaxUploadBytes {
		t.Errorf("MaxUploadBytes: got %d, want %d", cfg.MaxUploadBytes, defaultMaxUploadBytes)
	}
	if !cfg.DeleteUploads {
		t.Error("DeleteUploads: got false, want true")
	}
	if got := cfg.Addr(); got != "0.0.0.0:5000" {
		t.Errorf("Addr: got %q", got)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "8080")
	t.Setenv("UPLOAD_DIR", "/tmp/statements")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("DELETE_AFTER_PARSE", "false")

	cfg := Load(nil)
	if cfg.Host != "127.0.0.1" || cfg.Port != 8080 {
		t.Errorf("got %s:%d, want 127.0.0.1:8080", cfg.Host, cfg.Port)
	}
	if cfg.UploadDir != "/tmp/statements" {
		t.Errorf("UploadDir: got %q", cfg.UploadDir)
	}
	if cfg.MaxUploadBytes != 1<<20 {
		t.Errorf("MaxUploadBytes: got %d", cfg.MaxUploadBytes)
	}
	if cfg.DeleteUploads {
		t.Error("DeleteUploads: got true, want false")
	}
}

func TestLoadInvalidValues(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("MAX_UPLOAD_BYTES", "-5")
	t.Setenv("DELETE_AFTER_PARSE", "maybe")

	cfg := Load(nil)
	if cfg.Port != defaultPort {
		t.Errorf("Port: got %d, want default %d", cfg.Port, defaultPort)
	}
	if cfg.MaxUploadBytes != defaultMaxUploadBytes {
		t.Errorf("MaxUploadBytes: got %d, want default %d", cfg.MaxUploadBytes, defaultMaxUploadBytes)
	}
	if !cfg.DeleteUploads {
		t.Error("DeleteUploads: got false, want default true")
	}
}
