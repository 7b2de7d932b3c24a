package config

import (
	"testing"
	"time"
)

func TestSplitAndTrim(t *testing.T) {
	got := splitAndTrim(" http://a.example , http://b.example ,, ")
	if len(got) != 2 || got[0] != "http://a.example" || got[1] != "http://b.example" {
		t.Fatalf("unexpected origins %v", got)
	}

	if got := splitAndTrim("  ,  "); len(got) != 1 || got[0] != "*" {
		t.Fatalf("expected wildcard fallback, got %v", got)
	}
}

func TestDuration(t *testing.T) {
	if got := duration("TEST_DURATION_UNSET", time.Hour); got != time.Hour {
		t.Fatalf("expected default, got %v", got)
	}

	t.Setenv("TEST_DURATION", "90m")
	if got := duration("TEST_DURATION", time.Hour); got != 90*time.Minute {
		t.Fatalf("expected 90m, got %v", got)
	}

	t.Setenv("TEST_DURATION", "not-a-duration")
	if got := duration("TEST_DURATION", time.Hour); got != time.Hour {
		t.Fatalf("expected fallback to default, got %v", got)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/app_test")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Fatalf("expected default port, got %q", cfg.Port)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Fatalf("expected 24h token ttl, got %v", cfg.JWTTTL)
	}
	if cfg.PasswordResetTTL != time.Hour {
		t.Fatalf("expected 1h reset ttl, got %v", cfg.PasswordResetTTL)
	}
	if cfg.SMTPPort != 587 {
		t.Fatalf("expected default smtp port, got %d", cfg.SMTPPort)
	}
	if cfg.RecaptchaMinScore != 0.5 {
		t.Fatalf("expected default min score, got %v", cfg.RecaptchaMinScore)
	}
}
