// Package kdf derives per-cell, per-layer keys on demand from a
// caller-supplied master key, using HKDF-SHA256: independent info
// strings yield independent key streams from a single master, so
// isolation holds without ever storing a key.
package kdf

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/Z3DDIEZ/HexVault/errs"
	"github.com/Z3DDIEZ/HexVault/ident"
	"github.com/Z3DDIEZ/HexVault/layer"
)

// Size is the derived key length in bytes (AES-256).
const Size = 32

// Key is a 32-byte AES key derived for one (cellID, layer, context)
// triple. It holds only the key bytes: the triple itself is not stored
// on the Key. It is never persisted; Release overwrites the backing
// array with zeros so the bytes don't outlive the caller that asked
// for them.
type Key struct {
	buf      [Size]byte
	released bool
}

// Bytes returns the key material. The slice aliases the Key's internal
// array and becomes invalid after Release.
func (k *Key) Bytes() []byte { return k.buf[:] }

// Release overwrites the key with zeros. Safe to call more than once.
func (k *Key) Release() {
	if k.released {
		return
	}
	for i := range k.buf {
		k.buf[i] = 0
	}
	k.released = true
}

// Derive computes derive_key(master, cellID, l, ctx) per §4.2: HKDF-
// SHA256 with empty salt and
//
//	info = cellID || ":" || layer.Tag() || ":" || ctx.ContextID(l)
//
// cellID must already have passed identifier validation; Derive
// re-validates it here since it is the caller-facing entry point for
// every seal/peel step.
func Derive(master []byte, cellID string, l layer.Layer, ctx layer.Context) (*Key, error) {
	const op = "kdf.Derive"
	if err := ident.Validate(op, cellID); err != nil {
		return nil, err
	}
	if err := ctx.Validate(op); err != nil {
		return nil, err
	}

	info := cellID + ":" + l.Tag() + ":" + ctx.ContextID(l)

	r := hkdf.New(sha256.New, master, nil, []byte(info))
	k := &Key{}
	if _, err := io.ReadFull(r, k.buf[:]); err != nil {
		return nil, errs.Wrap(errs.CryptoBackendFailure, op, "hkdf expand failed", err)
	}
	return k, nil
}
