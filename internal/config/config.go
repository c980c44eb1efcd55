// Package config loads the serve configuration from a YAML file, with flags
// layered on top by the command layer.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the serve configuration.
//
// Addr defaults to loopback. Binding any other interface exposes an
// unauthenticated API; adding authentication in front of it is the
// operator's responsibility.
type Config struct {
	Addr               string    `yaml:"addr"`
	PollIntervalMs     int       `yaml:"poll_interval_ms"`
	GestureExtraWaitMs int       `yaml:"gesture_extra_wait_ms"`
	ADB                ADBConfig `yaml:"adb"`
}

// ADBConfig locates the adb binary and selects a device.
type ADBConfig struct {
	Path   string `yaml:"path"`
	Serial string `yaml:"serial"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:               "127.0.0.1:8080",
		PollIntervalMs:     800,
		GestureExtraWaitMs: 1500,
		ADB:                ADBConfig{Path: "adb"},
	}
}

// Load reads path over the defaults. A missing file is an error; call with
// "" to get Default unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Addr == "" {
		cfg.Addr = Default().Addr
	}
	return cfg, nil
}

// PollInterval returns the hierarchy poll interval as a duration.
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMs) * time.Millisecond
}

// GestureExtraWait returns the gesture completion slack as a duration.
func (c Config) GestureExtraWait() time.Duration {
	return time.Duration(c.GestureExtraWaitMs) * time.Millisecond
}
