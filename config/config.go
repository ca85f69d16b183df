// Package config provides the ambient configuration HexVault's
// optional observability and sink packages read: logging level,
// metrics namespace, and sink endpoints. The core Vault/Cell/Stack/
// Edge/Primitives packages take no config and touch neither the
// filesystem nor the environment.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level ambient configuration structure.
type Config struct {
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Metrics MetricsConfig `yaml:"metrics" json:"metrics"`
	Sinks   SinksConfig   `yaml:"sinks" json:"sinks"`
}

// LoggingConfig configures internal/logger.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level"` // debug, info, warn, error
}

// MetricsConfig configures internal/metrics.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled" json:"enabled"`
	Namespace string `yaml:"namespace" json:"namespace"`
}

// SinksConfig configures the optional reference sinks under sinks/.
// Each sub-config is consumed only if its required fields are set;
// a zero-value FileSinkConfig/PostgresSinkConfig/WebsocketSinkConfig
// means that sink is not constructed.
type SinksConfig struct {
	File      FileSinkConfig      `yaml:"file" json:"file"`
	Postgres  PostgresSinkConfig  `yaml:"postgres" json:"postgres"`
	Websocket WebsocketSinkConfig `yaml:"websocket" json:"websocket"`
}

// FileSinkConfig configures sinks/filesink.
type FileSinkConfig struct {
	Path string `yaml:"path" json:"path"`
}

// PostgresSinkConfig configures sinks/pgsink.
type PostgresSinkConfig struct {
	DSN   string `yaml:"dsn" json:"dsn"`
	Table string `yaml:"table" json:"table"`
}

// WebsocketSinkConfig configures sinks/wsink.
type WebsocketSinkConfig struct {
	URL string `yaml:"url" json:"url"`
}

// LoadFromFile loads configuration from a YAML file, applying
// environment substitution and defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	SubstituteEnvVarsInConfig(cfg)
	setDefaults(cfg)
	return cfg, nil
}

// SaveToFile writes cfg as YAML to path.
func SaveToFile(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func setDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "hexvault"
	}
	if cfg.Sinks.Postgres.Table == "" {
		cfg.Sinks.Postgres.Table = "audit_records"
	}
}
