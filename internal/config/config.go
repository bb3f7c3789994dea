// Package config loads and validates the wgboard YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"wgboard/internal/peer"
)

const (
	DefaultListen     = "127.0.0.1:8090"
	DefaultTimeoutSec = 10
)

// Config holds router access, dashboard and classification settings.
type Config struct {
	Router    RouterConfig    `yaml:"router"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Rules     RulesConfig     `yaml:"rules"`
}

// RouterConfig describes how to reach the router's REST API.
type RouterConfig struct {
	Address    string `yaml:"address"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	Insecure   bool   `yaml:"insecure,omitempty"`
	TimeoutSec int    `yaml:"timeout_sec,omitempty"`
}

// Timeout returns the per-request timeout as a duration.
func (r RouterConfig) Timeout() time.Duration {
	return time.Duration(r.TimeoutSec) * time.Second
}

// DashboardConfig is used by the serve command.
type DashboardConfig struct {
	Listen             string `yaml:"listen"`
	SnapshotPath       string `yaml:"snapshot_path,omitempty"`
	RefreshIntervalSec int    `yaml:"refresh_interval_sec,omitempty"`
}

// RulesConfig is the on-disk form of the classification tables.
type RulesConfig struct {
	PoolCapacity    int            `yaml:"pool_capacity"`
	ReservedIDs     []int          `yaml:"reserved_ids,omitempty"`
	StaticOverrides map[int]string `yaml:"static_overrides,omitempty"`
	InfraPrefixes   []string       `yaml:"infra_prefixes,omitempty"`
}

// Rules converts the on-disk form into the immutable tables the pipeline
// takes at construction time.
func (r RulesConfig) Rules() peer.Rules {
	rules := peer.Rules{
		Reserved:      make(map[int]struct{}, len(r.ReservedIDs)),
		Static:        make(map[int]string, len(r.StaticOverrides)),
		PoolCapacity:  r.PoolCapacity,
		InfraPrefixes: r.InfraPrefixes,
	}
	for _, id := range r.ReservedIDs {
		rules.Reserved[id] = struct{}{}
	}
	for id, addr := range r.StaticOverrides {
		rules.Static[id] = addr
	}
	return rules
}

// Load reads and parses a YAML config file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}

	ApplyDefaults(&cfg)
	return cfg, nil
}

// Save writes a YAML config file to disk. Mode 0600 since the file carries
// router credentials.
func Save(path string, cfg Config) error {
	ApplyDefaults(&cfg)
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Validate performs minimal validation for required fields.
func Validate(cfg Config) error {
	if cfg.Router.Address == "" {
		return fmt.Errorf("router.address is required")
	}
	if cfg.Router.Username == "" {
		return fmt.Errorf("router.username is required")
	}
	if cfg.Rules.PoolCapacity < 0 {
		return fmt.Errorf("rules.pool_capacity must not be negative")
	}
	return nil
}

// ApplyDefaults fills in default values when empty.
func ApplyDefaults(cfg *Config) {
	if cfg.Dashboard.Listen == "" {
		cfg.Dashboard.Listen = DefaultListen
	}
	if cfg.Router.TimeoutSec == 0 {
		cfg.Router.TimeoutSec = DefaultTimeoutSec
	}
	if cfg.Rules.PoolCapacity == 0 {
		cfg.Rules.PoolCapacity = peer.DefaultPoolCapacity
	}
	if cfg.Rules.InfraPrefixes == nil {
		cfg.Rules.InfraPrefixes = peer.DefaultInfraPrefixes
	}
}
