package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessageExcludesPayload(t *testing.T) {
	e := New(AuthenticationFailed, "Stack.Peel", "tag verification failed").WithLayer("session_bound")
	msg := e.Error()
	assert.Contains(t, msg, "AuthenticationFailed")
	assert.Contains(t, msg, "session_bound")
	assert.NotContains(t, msg, "plaintext")
}

func TestIsAndKindOf(t *testing.T) {
	e := New(DuplicatePayload, "Cell.Insert", "p1")
	assert.True(t, Is(e, DuplicatePayload))
	assert.False(t, Is(e, PayloadNotFound))

	k, ok := KindOf(e)
	assert.True(t, ok)
	assert.Equal(t, DuplicatePayload, k)

	_, ok = KindOf(errors.New("plain error"))
	assert.False(t, ok)
}

func TestWrapUnwrap(t *testing.T) {
	root := errors.New("gcm open failed")
	e := Wrap(CryptoBackendFailure, "Primitives.Open", "aead open", root)
	assert.ErrorIs(t, e, root)
}

func TestErrorsIsMatchesSameKind(t *testing.T) {
	a := New(MissingContext, "Stack.Seal", "ctx")
	b := New(MissingContext, "Vault.Seal", "ctx")
	assert.True(t, errors.Is(a, b))
}
