package config

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "fsti-hub")
	t.Setenv("APP_ENV", "development")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "access")
	t.Setenv("JWT_REFRESH_SECRET", "refresh")
}

func TestFromEnv_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	_, err := FromEnv()
	if !errors.Is(err, errMissingRequiredEnv) {
		t.Fatalf("expected errMissingRequiredEnv, got %v", err)
	}
	for _, key := range []string{"APP_NAME", "HTTP_PORT", "JWT_ACCESS_SECRET"} {
		if !strings.Contains(err.Error(), key) {
			t.Fatalf("expected %s in error, got %q", key, err.Error())
		}
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequired(t)
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.bi, https://b.bi,")
	t.Setenv("SMTP_HOST", "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if cfg.JWT.AccessExpiresIn != 15*time.Minute {
		t.Fatalf("unexpected access ttl %s", cfg.JWT.AccessExpiresIn)
	}
	if len(cfg.App.CORSOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.App.CORSOrigins)
	}
	if cfg.SMTP.Port != 465 {
		t.Fatalf("expected implicit TLS port, got %d", cfg.SMTP.Port)
	}
	if cfg.SMTP.Enabled() {
		t.Fatalf("smtp should be disabled without host")
	}
	if !cfg.IsDevelopment() {
		t.Fatalf("expected development environment")
	}
	if cfg.Storage.MaxFileBytes != 10<<20 {
		t.Fatalf("unexpected max file bytes %d", cfg.Storage.MaxFileBytes)
	}
}

func TestFromEnv_InvalidDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_ACCESS_EXPIRES_IN", "soon")

	_, err := FromEnv()
	if err == nil || !strings.Contains(err.Error(), "JWT_ACCESS_EXPIRES_IN") {
		t.Fatalf("expected invalid duration error, got %v", err)
	}
}
