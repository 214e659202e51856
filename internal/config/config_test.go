package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing config file should not error: %v", err)
	}
	if cfg.FeedAddr != ":8081" {
		t.Errorf("unexpected default feed addr %q", cfg.FeedAddr)
	}
	if cfg.RefreshInterval.Std() != 5*time.Minute {
		t.Errorf("unexpected default refresh interval %v", cfg.RefreshInterval)
	}
	if cfg.PoolSize != 50 || cfg.ForwardLimit != 2 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedsim.yaml")
	yaml := "feed_addr: \":9000\"\npool_size: 10\nrefresh_interval: 1m\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.FeedAddr != ":9000" {
		t.Errorf("yaml feed_addr should win, got %q", cfg.FeedAddr)
	}
	if cfg.PoolSize != 10 {
		t.Errorf("yaml pool_size should win, got %d", cfg.PoolSize)
	}
	if cfg.RefreshInterval.Std() != time.Minute {
		t.Errorf("yaml refresh_interval should win, got %v", cfg.RefreshInterval)
	}
	// Untouched keys keep their defaults.
	if cfg.AgentAddr != ":8085" {
		t.Errorf("unset keys should default, got %q", cfg.AgentAddr)
	}
}

func TestLoad_EnvBeatsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedsim.yaml")
	if err := os.WriteFile(path, []byte("pool_size: 10\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FEEDSIM_POOL_SIZE", "7")
	t.Setenv("FEEDSIM_POSTGRES_DSN", "postgres://feedsim@localhost/reports")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.PoolSize != 7 {
		t.Errorf("env should beat yaml, got %d", cfg.PoolSize)
	}
	if cfg.PostgresDSN != "postgres://feedsim@localhost/reports" {
		t.Errorf("env DSN should apply, got %q", cfg.PostgresDSN)
	}
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feedsim.yaml")
	if err := os.WriteFile(path, []byte("feed_addr: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed yaml should error")
	}
}
