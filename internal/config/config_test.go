package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("YOUSIGN_API_KEY", "key")
	t.Setenv("UPSTASH_REDIS_REST_URL", "https://store.example")
	t.Setenv("UPSTASH_REDIS_REST_TOKEN", "token")
	t.Setenv("NDA_TEMPLATE_PATH", "/tmp/nda.pdf")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected addr %q", cfg.HTTPAddr)
	}
	if cfg.YousignBaseURL != "https://api-sandbox.yousign.app/v3" {
		t.Fatalf("unexpected base URL %q", cfg.YousignBaseURL)
	}
	if cfg.PollMaxAttempts != 20 || cfg.PollInterval != 5*time.Second {
		t.Fatalf("unexpected polling bounds: %d x %s", cfg.PollMaxAttempts, cfg.PollInterval)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("YOUSIGN_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected an error for a missing API key")
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("POLL_MAX_ATTEMPTS", "3")
	t.Setenv("POLL_INTERVAL", "250ms")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.PollMaxAttempts != 3 || cfg.PollInterval != 250*time.Millisecond {
		t.Fatalf("overrides not applied: %d x %s", cfg.PollMaxAttempts, cfg.PollInterval)
	}
}
