// Package layer defines the fixed three-layer encryption stack and the
// context a caller must supply to reach each layer. The ordinal order
// is closed by design: AtRest(0) < AccessGated(1) < SessionBound(2),
// and nothing outside this package may extend it.
package layer

import "github.com/Z3DDIEZ/HexVault/ident"

// Layer is a closed, ordered tag participating in key derivation and
// in seal/peel sequencing.
type Layer int

const (
	AtRest Layer = iota
	AccessGated
	SessionBound
)

// Tag returns the fixed string used as part of an HKDF info string.
func (l Layer) Tag() string {
	switch l {
	case AtRest:
		return "at_rest"
	case AccessGated:
		return "access_gated"
	case SessionBound:
		return "session_bound"
	default:
		return "unknown"
	}
}

func (l Layer) String() string { return l.Tag() }

// Ordinal returns the layer's position in the stack (0, 1 or 2).
func (l Layer) Ordinal() int { return int(l) }

// Context carries the optional identifiers a caller supplies to reach
// a given layer. An empty string means "not supplied": identifiers
// are required to be non-empty (see package ident), so the zero value
// doubles as "absent" without an extra boolean per field.
type Context struct {
	AccessPolicyID string
	SessionID      string
}

// Validate rejects identifiers containing the reserved separators.
// kdf.Derive calls it before building each HKDF info string, so
// malformed input never reaches HKDF.
func (c Context) Validate(op string) error {
	if c.AccessPolicyID != "" {
		if err := ident.Validate(op, c.AccessPolicyID); err != nil {
			return err
		}
	}
	if c.SessionID != "" {
		if err := ident.Validate(op, c.SessionID); err != nil {
			return err
		}
	}
	return nil
}

// Satisfies reports whether c supplies every identifier required by
// target and every layer below it: AtRest requires nothing,
// AccessGated requires AccessPolicyID, SessionBound requires both.
func (c Context) Satisfies(target Layer) bool {
	switch target {
	case AtRest:
		return true
	case AccessGated:
		return c.AccessPolicyID != ""
	case SessionBound:
		return c.AccessPolicyID != "" && c.SessionID != ""
	default:
		return false
	}
}

// ContextID returns the context_id component of the HKDF info string
// for the given layer, per §4.2:
//
//	Layer 0: ""
//	Layer 1: access_policy_id
//	Layer 2: access_policy_id || "|" || session_id
func (c Context) ContextID(l Layer) string {
	switch l {
	case AtRest:
		return ""
	case AccessGated:
		return c.AccessPolicyID
	case SessionBound:
		return c.AccessPolicyID + "|" + c.SessionID
	default:
		return ""
	}
}

// HighestSatisfied returns the highest layer c supplies a full context
// for. Used by callers that want the sealing convenience described in
// §4.3 ("target layer defaults to SessionBound when the caller
// provides a full context").
func (c Context) HighestSatisfied() Layer {
	if c.Satisfies(SessionBound) {
		return SessionBound
	}
	if c.Satisfies(AccessGated) {
		return AccessGated
	}
	return AtRest
}
