package hexvault

import (
	"crypto/rand"
	"fmt"
)

// GenerateMasterKey returns a fresh, cryptographically random 32-byte
// master key suitable for NewVault.
func GenerateMasterKey() ([32]byte, error) {
	var key [32]byte
	if _, err := rand.Read(key[:]); err != nil {
		return key, fmt.Errorf("hexvault: generate master key: %w", err)
	}
	return key, nil
}
