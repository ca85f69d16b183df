package layer

import (
	"testing"

	"github.com/Z3DDIEZ/HexVault/errs"
	"github.com/stretchr/testify/assert"
)

func TestSatisfies(t *testing.T) {
	none := Context{}
	assert.True(t, none.Satisfies(AtRest))
	assert.False(t, none.Satisfies(AccessGated))
	assert.False(t, none.Satisfies(SessionBound))

	withPolicy := Context{AccessPolicyID: "pol-1"}
	assert.True(t, withPolicy.Satisfies(AccessGated))
	assert.False(t, withPolicy.Satisfies(SessionBound))

	full := Context{AccessPolicyID: "pol-1", SessionID: "sess-1"}
	assert.True(t, full.Satisfies(SessionBound))
}

func TestContextID(t *testing.T) {
	full := Context{AccessPolicyID: "pol-1", SessionID: "sess-1"}
	assert.Equal(t, "", full.ContextID(AtRest))
	assert.Equal(t, "pol-1", full.ContextID(AccessGated))
	assert.Equal(t, "pol-1|sess-1", full.ContextID(SessionBound))
}

func TestHighestSatisfied(t *testing.T) {
	assert.Equal(t, AtRest, Context{}.HighestSatisfied())
	assert.Equal(t, AccessGated, Context{AccessPolicyID: "p"}.HighestSatisfied())
	assert.Equal(t, SessionBound, Context{AccessPolicyID: "p", SessionID: "s"}.HighestSatisfied())
}

func TestValidateRejectsSeparators(t *testing.T) {
	err := Context{AccessPolicyID: "pol:1"}.Validate("Test")
	assert.True(t, errs.Is(err, errs.InvalidIdentifier))

	err = Context{AccessPolicyID: "pol-1", SessionID: "s|1"}.Validate("Test")
	assert.True(t, errs.Is(err, errs.InvalidIdentifier))

	assert.NoError(t, Context{AccessPolicyID: "pol-1", SessionID: "sess-1"}.Validate("Test"))
}

func TestTagOrdering(t *testing.T) {
	assert.Equal(t, "at_rest", AtRest.Tag())
	assert.Equal(t, "access_gated", AccessGated.Tag())
	assert.Equal(t, "session_bound", SessionBound.Tag())
	assert.Less(t, AtRest.Ordinal(), AccessGated.Ordinal())
	assert.Less(t, AccessGated.Ordinal(), SessionBound.Ordinal())
}
