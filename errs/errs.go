// Package errs defines the error taxonomy shared across HexVault's
// packages: a closed set of error kinds plus a value type that carries
// enough context for callers to branch on the kind without ever
// exposing plaintext, key bytes, nonces or ciphertext in the message.
package errs

import (
	"errors"
	"fmt"
)

// Kind identifies the class of failure. It is intentionally a closed
// set; new failure modes should map onto one of these, not grow the
// enum, since callers switch on Kind.
type Kind int

const (
	// InvalidMasterKeyLength means the master key was not exactly 32 bytes.
	InvalidMasterKeyLength Kind = iota
	// InvalidIdentifier means an identifier was empty or contained a
	// reserved separator character (':' or '|').
	InvalidIdentifier
	// DuplicateCell means a cell id is already registered in the vault.
	DuplicateCell
	// DuplicatePayload means a payload name already exists in the target cell.
	DuplicatePayload
	// PayloadNotFound means the named payload is absent from the cell.
	PayloadNotFound
	// MissingContext means the supplied context does not satisfy the
	// requested target layer.
	MissingContext
	// AuthenticationFailed means AEAD tag verification failed while peeling.
	AuthenticationFailed
	// CryptoBackendFailure means an underlying primitive misbehaved
	// (e.g. the RNG failed to fill a nonce).
	CryptoBackendFailure
	// SelfTraversal means a traversal's source and destination cell were
	// the same cell; rejected per the open question in the design notes.
	SelfTraversal
	// SinkError is raised only to sink-installed callbacks; it never
	// aborts a traversal and is never returned from a core operation.
	SinkError
)

func (k Kind) String() string {
	switch k {
	case InvalidMasterKeyLength:
		return "InvalidMasterKeyLength"
	case InvalidIdentifier:
		return "InvalidIdentifier"
	case DuplicateCell:
		return "DuplicateCell"
	case DuplicatePayload:
		return "DuplicatePayload"
	case PayloadNotFound:
		return "PayloadNotFound"
	case MissingContext:
		return "MissingContext"
	case AuthenticationFailed:
		return "AuthenticationFailed"
	case CryptoBackendFailure:
		return "CryptoBackendFailure"
	case SelfTraversal:
		return "SelfTraversal"
	case SinkError:
		return "SinkError"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned by every HexVault operation.
type Error struct {
	Kind Kind
	// Op names the operation that failed (e.g. "Vault.Seal").
	Op string
	// Layer carries the offending layer tag for MissingContext and
	// AuthenticationFailed; empty otherwise.
	Layer string
	msg   string
	err   error
}

func (e *Error) Error() string {
	if e.Layer != "" {
		return fmt.Sprintf("%s: %s (layer=%s): %s", e.Op, e.Kind, e.Layer, e.msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Op, e.Kind, e.msg)
}

func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is an *Error with the same Kind, so callers
// can use errors.Is(err, errs.New(errs.PayloadNotFound, "", "")) sparingly,
// though checking via errs.KindOf is preferred.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an *Error of the given kind.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, msg: msg}
}

// Wrap builds an *Error of the given kind that wraps an underlying error.
func Wrap(kind Kind, op, msg string, err error) *Error {
	return &Error{Kind: kind, Op: op, msg: msg, err: err}
}

// WithLayer attaches a layer tag to an *Error (used for MissingContext
// and AuthenticationFailed) and returns the receiver for chaining.
func (e *Error) WithLayer(layerTag string) *Error {
	e.Layer = layerTag
	return e
}

// KindOf extracts the Kind from err if it is (or wraps) an *Error,
// returning ok=false otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
