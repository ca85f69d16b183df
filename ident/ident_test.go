package ident

import (
	"testing"

	"github.com/Z3DDIEZ/HexVault/errs"
	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate("Test", "cell-a"))

	err := Validate("Test", "")
	assert.True(t, errs.Is(err, errs.InvalidIdentifier))

	err = Validate("Test", "pol:1")
	assert.True(t, errs.Is(err, errs.InvalidIdentifier))

	err = Validate("Test", "sess|1")
	assert.True(t, errs.Is(err, errs.InvalidIdentifier))
}
