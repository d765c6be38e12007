package fault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindPredicates(t *testing.T) {
	assert.True(t, IsValidation(Validation("bad input")))
	assert.True(t, IsNotFound(NotFound("missing")))
	assert.True(t, IsConflict(Conflict("busy")))
	assert.True(t, IsTransient(Transient(errors.New("timeout"), "store unreachable")))

	assert.False(t, IsConflict(Validation("bad input")))
	assert.False(t, IsValidation(errors.New("plain error")))
	assert.Empty(t, KindOf(nil))
}

func TestKindSurvivesWrapping(t *testing.T) {
	inner := Conflict("shift %s already has an active assignment", "s1")
	wrapped := fmt.Errorf("failed to create assignment: %w", inner)

	assert.True(t, IsConflict(wrapped))
	assert.Equal(t, KindConflict, KindOf(wrapped))
}

func TestTransientUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := Transient(cause, "store call failed")

	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "store call failed")
	assert.Contains(t, err.Error(), "connection reset")
}
