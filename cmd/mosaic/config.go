package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the optional YAML configuration for the server commands.
// Flags set explicitly on the command line override config file values.
type Config struct {
	Port   string `yaml:"port"`
	Window string `yaml:"window"` // e.g. "100ms"

	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		Prefix   string `yaml:"prefix"`
		TTL      string `yaml:"ttl"` // e.g. "24h", empty = no expiry
	} `yaml:"redis"`

	// EncryptionKeyFile points at a file holding a 32-byte AES-256 key
	// (hex encoded). When set, snapshots are encrypted at rest.
	EncryptionKeyFile string `yaml:"encryption_key_file"`
}

func defaultConfig() *Config {
	cfg := &Config{
		Port:   "8080",
		Window: "100ms",
	}
	cfg.Redis.Prefix = "mosaic:session:"
	return cfg
}

func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func (c *Config) window() (time.Duration, error) {
	if c.Window == "" {
		return 100 * time.Millisecond, nil
	}
	d, err := time.ParseDuration(c.Window)
	if err != nil {
		return 0, fmt.Errorf("invalid window %q: %w", c.Window, err)
	}
	return d, nil
}

func (c *Config) redisTTL() (time.Duration, error) {
	if c.Redis.TTL == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Redis.TTL)
	if err != nil {
		return 0, fmt.Errorf("invalid redis ttl %q: %w", c.Redis.TTL, err)
	}
	return d, nil
}
