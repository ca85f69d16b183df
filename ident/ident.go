// Package ident validates the opaque identifiers HexVault threads
// through key derivation: cell ids, payload names, access policy ids
// and session ids. All of them share one rule: non-empty UTF-8 with
// no ':' or '|', since those characters are the fixed separators used
// to build HKDF info strings.
package ident

import (
	"strings"

	"github.com/Z3DDIEZ/HexVault/errs"
)

const (
	layerSeparator   = ":"
	contextSeparator = "|"
)

// Validate returns an InvalidIdentifier error if id is empty or
// contains a reserved separator character. op is the calling
// operation's name, used only for the error message.
func Validate(op, id string) error {
	if id == "" {
		return errs.New(errs.InvalidIdentifier, op, "identifier must not be empty")
	}
	if strings.Contains(id, layerSeparator) || strings.Contains(id, contextSeparator) {
		return errs.New(errs.InvalidIdentifier, op, "identifier must not contain ':' or '|'")
	}
	return nil
}
