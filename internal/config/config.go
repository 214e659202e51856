// Package config loads feedsim settings from an optional YAML file, a
// .env file, and FEEDSIM_* environment variables, in increasing priority.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where Load looks when no config file is given.
const DefaultPath = "feedsim.yaml"

// Duration wraps time.Duration so YAML accepts "5m"-style strings.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds every tunable of the feed service, the forwarder, and the
// agent receiver.
type Config struct {
	FeedAddr  string `yaml:"feed_addr"`
	AgentAddr string `yaml:"agent_addr"`

	// FeedURL and AgentURL are where the forwarder reaches the two
	// servers; they default to the listen addresses on localhost.
	FeedURL  string `yaml:"feed_url"`
	AgentURL string `yaml:"agent_url"`

	PostgresDSN string `yaml:"postgres_dsn"`

	RefreshInterval Duration `yaml:"refresh_interval"`
	PoolSize        int      `yaml:"pool_size"`

	ForwardLimit int      `yaml:"forward_limit"`
	ForwardDelay Duration `yaml:"forward_delay"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		FeedAddr:        ":8081",
		AgentAddr:       ":8085",
		FeedURL:         "http://127.0.0.1:8081",
		AgentURL:        "http://127.0.0.1:8085/agent",
		RefreshInterval: Duration(5 * time.Minute),
		PoolSize:        50,
		ForwardLimit:    2,
		ForwardDelay:    Duration(10 * time.Second),
	}
}

// Load reads path (when it exists) over the defaults, then applies .env
// and environment overrides. A missing config file is not an error.
func Load(path string) (Config, error) {
	// A .env file is optional; ignore its absence.
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return Config{}, err
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	envStr("FEEDSIM_FEED_ADDR", &c.FeedAddr)
	envStr("FEEDSIM_AGENT_ADDR", &c.AgentAddr)
	envStr("FEEDSIM_FEED_URL", &c.FeedURL)
	envStr("FEEDSIM_AGENT_URL", &c.AgentURL)
	envStr("FEEDSIM_POSTGRES_DSN", &c.PostgresDSN)
	envDuration("FEEDSIM_REFRESH_INTERVAL", &c.RefreshInterval)
	envInt("FEEDSIM_POOL_SIZE", &c.PoolSize)
	envInt("FEEDSIM_FORWARD_LIMIT", &c.ForwardLimit)
	envDuration("FEEDSIM_FORWARD_DELAY", &c.ForwardDelay)
}

func envStr(name string, dst *string) {
	if v := os.Getenv(name); v != "" {
		*dst = v
	}
}

func envInt(name string, dst *int) {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func envDuration(name string, dst *Duration) {
	if v := os.Getenv(name); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = Duration(d)
		}
	}
}
