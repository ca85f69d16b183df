package config

import (
	"os"
	"regexp"
	"strings"
)

// envVarPattern matches ${VAR} or ${VAR:-default}.
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// SubstituteEnvVars replaces ${VAR} or ${VAR:-default} with environment
// variable values.
func SubstituteEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		if len(parts) < 2 {
			return match
		}

		varName := parts[1]
		defaultValue := ""
		if len(parts) > 2 {
			defaultValue = parts[2]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}

// SubstituteEnvVarsInConfig recursively substitutes environment
// variables across every string field that plausibly carries a
// secret or endpoint: sink DSNs/URLs/paths and the logging level.
func SubstituteEnvVarsInConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	cfg.Logging.Level = SubstituteEnvVars(cfg.Logging.Level)
	cfg.Metrics.Namespace = SubstituteEnvVars(cfg.Metrics.Namespace)
	cfg.Sinks.File.Path = SubstituteEnvVars(cfg.Sinks.File.Path)
	cfg.Sinks.Postgres.DSN = SubstituteEnvVars(cfg.Sinks.Postgres.DSN)
	cfg.Sinks.Postgres.Table = SubstituteEnvVars(cfg.Sinks.Postgres.Table)
	cfg.Sinks.Websocket.URL = SubstituteEnvVars(cfg.Sinks.Websocket.URL)
}

// GetEnvironment returns the current environment from HEXVAULT_ENV or
// ENVIRONMENT, defaulting to "development".
func GetEnvironment() string {
	env := os.Getenv("HEXVAULT_ENV")
	if env == "" {
		env = os.Getenv("ENVIRONMENT")
	}
	if env == "" {
		env = "development"
	}
	return strings.ToLower(env)
}

// IsProduction reports whether GetEnvironment is "production".
func IsProduction() bool {
	return GetEnvironment() == "production"
}
