// Package stack implements the fixed layer ordering and the bottom-up
// seal / top-down peel sequencing over it. It is the only package that
// knows the cascade order; Vault just calls Seal and Peel, and Cell
// only stores their output.
package stack

import (
	"github.com/Z3DDIEZ/HexVault/errs"
	"github.com/Z3DDIEZ/HexVault/kdf"
	"github.com/Z3DDIEZ/HexVault/layer"
	"github.com/Z3DDIEZ/HexVault/primitives"
)

// Seal encrypts plaintext through layers 0..=target inclusive,
// bottom-up. Each layer prepends its 12-byte nonce to its
// ciphertext+tag, so the result has the recursive shape described in
// §6: N_T || AEAD_T(N_T, "", SEALED_{T-1}).
func Seal(master []byte, cellID string, plaintext []byte, target layer.Layer, ctx layer.Context) ([]byte, error) {
	const op = "stack.Seal"
	if !ctx.Satisfies(target) {
		return nil, errs.New(errs.MissingContext, op, "context does not satisfy target layer").WithLayer(target.Tag())
	}

	buf := append([]byte(nil), plaintext...)
	for l := layer.AtRest; l <= target; l++ {
		k, err := kdf.Derive(master, cellID, l, ctx)
		if err != nil {
			return nil, err
		}
		nonce, err := primitives.RandomNonce()
		if err != nil {
			k.Release()
			return nil, err
		}
		ct, err := primitives.Seal(k.Bytes(), nonce, nil, buf)
		k.Release()
		if err != nil {
			return nil, err
		}
		buf = append(append([]byte(nil), nonce[:]...), ct...)
	}
	return buf, nil
}

// Peel decrypts sealed from layer target down to layer 0, top-down.
// Failure to verify the tag at any layer is reported as
// AuthenticationFailed tagged with that layer, indistinguishable to
// the caller from "wrong key" or "wrong context" for layers >= 1.
func Peel(master []byte, cellID string, sealed []byte, target layer.Layer, ctx layer.Context) ([]byte, error) {
	const op = "stack.Peel"
	if !ctx.Satisfies(target) {
		return nil, errs.New(errs.MissingContext, op, "context does not satisfy target layer").WithLayer(target.Tag())
	}

	buf := sealed
	for l := target; ; l-- {
		if len(buf) < primitives.NonceSize {
			return nil, errs.New(errs.AuthenticationFailed, op, "sealed payload shorter than a nonce").WithLayer(l.Tag())
		}
		var nonce [primitives.NonceSize]byte
		copy(nonce[:], buf[:primitives.NonceSize])
		ct := buf[primitives.NonceSize:]

		k, err := kdf.Derive(master, cellID, l, ctx)
		if err != nil {
			return nil, err
		}
		pt, err := primitives.Open(k.Bytes(), nonce, nil, ct)
		k.Release()
		if err != nil {
			return nil, errs.New(errs.AuthenticationFailed, op, "tag verification failed").WithLayer(l.Tag())
		}
		buf = pt
		if l == layer.AtRest {
			break
		}
	}
	return buf, nil
}
