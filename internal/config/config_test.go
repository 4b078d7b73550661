package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Address != ":8080" {
		t.Fatalf("unexpected default address: %s", cfg.Server.Address)
	}
	if cfg.Clients.Core.Timeout != 5*time.Second {
		t.Fatalf("unexpected default core timeout: %v", cfg.Clients.Core.Timeout)
	}
	if cfg.Mock.Force {
		t.Fatalf("mock must be off by default")
	}
	if cfg.Cache.ResponseTTL != 30*time.Second {
		t.Fatalf("unexpected default response TTL: %v", cfg.Cache.ResponseTTL)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := `
server:
  address: ":9090"
clients:
  core:
    baseURL: "https://insight.internal"
  archive:
    baseURL: "https://archive.internal"
    apiKey: "k"
mock:
  force: true
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Address != ":9090" {
		t.Fatalf("unexpected address: %s", cfg.Server.Address)
	}
	if cfg.Clients.Core.BaseURL != "https://insight.internal" {
		t.Fatalf("unexpected core base URL: %s", cfg.Clients.Core.BaseURL)
	}
	if !cfg.Mock.Force {
		t.Fatalf("expected mock force from file")
	}
	// Unset fields keep their defaults.
	if cfg.Server.MetricsAddress != ":2112" {
		t.Fatalf("unexpected metrics address: %s", cfg.Server.MetricsAddress)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("INSIGHT_CORE_BASE_URL", "https://core.env")
	t.Setenv("INSIGHT_ARCHIVE_BASE_URL", "https://archive.env")
	t.Setenv("INSIGHT_ARCHIVE_API_KEY", "env-key")
	t.Setenv("USE_MOCK_DATA", "true")
	t.Setenv("PULSE_AGG_SERVER_ADDRESS", ":7070")
	t.Setenv("PULSE_AGG_CACHE_RESPONSE_TTL", "45s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Clients.Core.BaseURL != "https://core.env" {
		t.Fatalf("core base URL override missing: %s", cfg.Clients.Core.BaseURL)
	}
	if cfg.Clients.Archive.APIKey != "env-key" {
		t.Fatalf("archive key override missing")
	}
	if !cfg.Mock.Force {
		t.Fatalf("USE_MOCK_DATA=true must force mock")
	}
	if cfg.Server.Address != ":7070" {
		t.Fatalf("address override missing: %s", cfg.Server.Address)
	}
	if cfg.Cache.ResponseTTL != 45*time.Second {
		t.Fatalf("response TTL override missing: %v", cfg.Cache.ResponseTTL)
	}
}

func TestUseMockDataAcceptsNumericTrue(t *testing.T) {
	t.Setenv("USE_MOCK_DATA", "1")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Mock.Force {
		t.Fatalf("USE_MOCK_DATA=1 must force mock")
	}
}
