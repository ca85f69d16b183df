package config

import "fmt"

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
	"fatal": true,
}

// Validate checks cfg for invalid values and returns a list of
// human-readable issues. An empty slice means cfg is valid.
func Validate(cfg *Config) []string {
	var issues []string
	if cfg == nil {
		return []string{"config is nil"}
	}

	if !validLogLevels[cfg.Logging.Level] {
		issues = append(issues, fmt.Sprintf("logging.level: invalid value %q", cfg.Logging.Level))
	}

	if cfg.Sinks.Postgres.DSN != "" && cfg.Sinks.Postgres.Table == "" {
		issues = append(issues, "sinks.postgres.table: required when sinks.postgres.dsn is set")
	}

	return issues
}
