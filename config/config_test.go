package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "5005" {
		t.Fatalf("expected default port 5005, got %q", cfg.Port)
	}
	if cfg.Environment != "development" {
		t.Fatalf("expected development environment, got %q", cfg.Environment)
	}
	if len(cfg.AllowedOrigins) != 3 {
		t.Fatalf("expected 3 default origins, got %v", cfg.AllowedOrigins)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Fatalf("expected port 9000, got %q", cfg.Port)
	}
	if cfg.Environment != "production" {
		t.Fatalf("expected production, got %q", cfg.Environment)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if cfg.JWTSecret != "s3cret" {
		t.Fatalf("unexpected secret: %q", cfg.JWTSecret)
	}
}
