package kdf

import (
	"testing"

	"github.com/Z3DDIEZ/HexVault/errs"
	"github.com/Z3DDIEZ/HexVault/layer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func master() []byte {
	m := make([]byte, 32)
	for i := range m {
		m[i] = byte(i)
	}
	return m
}

func TestDeriveIsDeterministic(t *testing.T) {
	ctx := layer.Context{AccessPolicyID: "pol-1", SessionID: "sess-1"}
	k1, err := Derive(master(), "cell-a", layer.SessionBound, ctx)
	require.NoError(t, err)
	k2, err := Derive(master(), "cell-a", layer.SessionBound, ctx)
	require.NoError(t, err)
	assert.Equal(t, k1.Bytes(), k2.Bytes())
}

func TestDeriveIsolatesByCell(t *testing.T) {
	ctx := layer.Context{AccessPolicyID: "pol-1", SessionID: "sess-1"}
	ka, err := Derive(master(), "cell-a", layer.SessionBound, ctx)
	require.NoError(t, err)
	kb, err := Derive(master(), "cell-b", layer.SessionBound, ctx)
	require.NoError(t, err)
	assert.NotEqual(t, ka.Bytes(), kb.Bytes())
}

func TestDeriveIsolatesByLayer(t *testing.T) {
	ctx := layer.Context{AccessPolicyID: "pol-1", SessionID: "sess-1"}
	k0, err := Derive(master(), "cell-a", layer.AtRest, ctx)
	require.NoError(t, err)
	k2, err := Derive(master(), "cell-a", layer.SessionBound, ctx)
	require.NoError(t, err)
	assert.NotEqual(t, k0.Bytes(), k2.Bytes())
}

func TestDeriveIsolatesByContext(t *testing.T) {
	k1, err := Derive(master(), "cell-a", layer.SessionBound, layer.Context{AccessPolicyID: "pol-1", SessionID: "sess-1"})
	require.NoError(t, err)
	k2, err := Derive(master(), "cell-a", layer.SessionBound, layer.Context{AccessPolicyID: "pol-1", SessionID: "sess-2"})
	require.NoError(t, err)
	assert.NotEqual(t, k1.Bytes(), k2.Bytes())
}

func TestDeriveRejectsBadIdentifiers(t *testing.T) {
	_, err := Derive(master(), "cell:a", layer.AtRest, layer.Context{})
	assert.True(t, errs.Is(err, errs.InvalidIdentifier))

	_, err = Derive(master(), "cell-a", layer.AccessGated, layer.Context{AccessPolicyID: "pol|1"})
	assert.True(t, errs.Is(err, errs.InvalidIdentifier))
}

func TestReleaseZeroes(t *testing.T) {
	k, err := Derive(master(), "cell-a", layer.AtRest, layer.Context{})
	require.NoError(t, err)
	k.Release()
	for _, b := range k.Bytes() {
		assert.Equal(t, byte(0), b)
	}
	k.Release() // idempotent
}
