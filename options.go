package hexvault

import "github.com/Z3DDIEZ/HexVault/internal/logger"

// VaultOption configures optional, non-core behavior of a Vault.
// Omitting every option yields the bare contract described by
// NewVault's doc comment with no logging. The package-level counters
// and histograms in internal/metrics are updated either way.
type VaultOption func(*Vault)

// WithLogger attaches a structured logger. Every mutating operation
// logs its outcome through it; errors log at Warn, successes at Info.
func WithLogger(l logger.Logger) VaultOption {
	return func(v *Vault) {
		v.logger = l
	}
}
