package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// LoaderOptions configures the configuration loader.
type LoaderOptions struct {
	// ConfigDir is the directory containing config files (default: ./config).
	ConfigDir string
	// Environment overrides automatic environment detection.
	Environment string
	// SkipEnvSubstitution disables environment variable substitution.
	SkipEnvSubstitution bool
	// SkipValidation disables configuration validation.
	SkipValidation bool
	// DotEnvPath, if set, is loaded into the process environment
	// before substitution runs (missing file is not an error).
	DotEnvPath string
}

// loadDotEnv loads path into the process environment without
// overriding variables already set, for local/integration environments
// that keep secrets in a .env file. A missing file is silently
// ignored since DotEnvPath is optional.
func loadDotEnv(path string) {
	if path == "" {
		return
	}
	_ = godotenv.Load(path)
}

// DefaultLoaderOptions returns default loader options.
func DefaultLoaderOptions() LoaderOptions {
	return LoaderOptions{
		ConfigDir:           "config",
		Environment:         "",
		SkipEnvSubstitution: false,
		SkipValidation:      false,
	}
}

// Load loads configuration with automatic environment detection,
// falling back through <env>.yaml, default.yaml, config.yaml, and
// finally a bare defaulted Config if none of those exist.
func Load(opts ...LoaderOptions) (*Config, error) {
	options := DefaultLoaderOptions()
	if len(opts) > 0 {
		options = opts[0]
	}

	loadDotEnv(options.DotEnvPath)

	env := options.Environment
	if env == "" {
		env = GetEnvironment()
	}

	envConfigPath := filepath.Join(options.ConfigDir, fmt.Sprintf("%s.yaml", env))
	cfg, err := loadConfigFile(envConfigPath)
	if err != nil {
		defaultConfigPath := filepath.Join(options.ConfigDir, "default.yaml")
		cfg, err = loadConfigFile(defaultConfigPath)
		if err != nil {
			configPath := filepath.Join(options.ConfigDir, "config.yaml")
			cfg, err = loadConfigFile(configPath)
			if err != nil {
				cfg = &Config{}
			}
		}
	}

	setDefaults(cfg)

	if !options.SkipEnvSubstitution {
		SubstituteEnvVarsInConfig(cfg)
	}

	applyEnvironmentOverrides(cfg)

	if !options.SkipValidation {
		if issues := Validate(cfg); len(issues) > 0 {
			return nil, fmt.Errorf("configuration validation failed: %s", issues[0])
		}
	}

	return cfg, nil
}

// loadConfigFile loads a single config file.
func loadConfigFile(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	return LoadFromFile(path)
}

// applyEnvironmentOverrides overrides config fields with environment
// variables, taking priority over both file values and defaults.
func applyEnvironmentOverrides(cfg *Config) {
	if logLevel := os.Getenv("HEXVAULT_LOG_LEVEL"); logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if ns := os.Getenv("HEXVAULT_METRICS_NAMESPACE"); ns != "" {
		cfg.Metrics.Namespace = ns
	}
	if os.Getenv("HEXVAULT_METRICS_ENABLED") == "true" {
		cfg.Metrics.Enabled = true
	}
	if os.Getenv("HEXVAULT_METRICS_ENABLED") == "false" {
		cfg.Metrics.Enabled = false
	}
	if dsn := os.Getenv("HEXVAULT_POSTGRES_DSN"); dsn != "" {
		cfg.Sinks.Postgres.DSN = dsn
	}
	if path := os.Getenv("HEXVAULT_FILE_SINK_PATH"); path != "" {
		cfg.Sinks.File.Path = path
	}
	if url := os.Getenv("HEXVAULT_WEBSOCKET_URL"); url != "" {
		cfg.Sinks.Websocket.URL = url
	}
}

// LoadForEnvironment loads configuration for a specific environment.
func LoadForEnvironment(environment string) (*Config, error) {
	return Load(LoaderOptions{
		ConfigDir:   "config",
		Environment: environment,
	})
}

// MustLoad loads configuration or panics on error.
func MustLoad(opts ...LoaderOptions) *Config {
	cfg, err := Load(opts...)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}
	return cfg
}
