// Package primitives is the thin contract over the AEAD and random
// source the rest of HexVault builds on: AES-256-GCM with a 128-bit
// tag and a cryptographically secure 96-bit nonce source. It owns no
// policy; callers decide key scoping and layering.
package primitives

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"io"

	"github.com/Z3DDIEZ/HexVault/errs"
)

// KeySize is the AES-256 key length in bytes.
const KeySize = 32

// NonceSize is the GCM nonce length in bytes (96 bits).
const NonceSize = 12

// TagSize is the GCM authentication tag length in bytes (128 bits).
const TagSize = 16

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, errs.New(errs.CryptoBackendFailure, "primitives.newGCM", "key must be 32 bytes")
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errs.Wrap(errs.CryptoBackendFailure, "primitives.newGCM", "aes.NewCipher", err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, NonceSize)
	if err != nil {
		return nil, errs.Wrap(errs.CryptoBackendFailure, "primitives.newGCM", "cipher.NewGCM", err)
	}
	return gcm, nil
}

// Seal authenticates and encrypts plaintext under key/nonce/aad,
// returning ciphertext with the 16-byte tag appended. aad may be nil.
func Seal(key []byte, nonce [NonceSize]byte, aad, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	return gcm.Seal(nil, nonce[:], plaintext, aad), nil
}

// Open verifies and decrypts ciphertextWithTag under key/nonce/aad.
// It returns AuthenticationFailed if the tag does not verify.
func Open(key []byte, nonce [NonceSize]byte, aad, ciphertextWithTag []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	plaintext, err := gcm.Open(nil, nonce[:], ciphertextWithTag, aad)
	if err != nil {
		return nil, errs.New(errs.AuthenticationFailed, "primitives.Open", "tag verification failed")
	}
	return plaintext, nil
}

// RandomNonce returns a cryptographically secure, uniformly random
// 96-bit nonce.
func RandomNonce() ([NonceSize]byte, error) {
	var n [NonceSize]byte
	if _, err := io.ReadFull(rand.Reader, n[:]); err != nil {
		return n, errs.Wrap(errs.CryptoBackendFailure, "primitives.RandomNonce", "rng read failed", err)
	}
	return n, nil
}
