package insuranceform

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitions(t *testing.T) {
	all := []State{StateIdle, StateEditing, StateValidating, StateSaving, StateError}
	allowed := map[[2]State]bool{
		{StateIdle, StateEditing}:       true,
		{StateEditing, StateValidating}: true,
		{StateEditing, StateIdle}:       true,
		{StateValidating, StateEditing}: true,
		{StateValidating, StateSaving}:  true,
		{StateSaving, StateIdle}:        true,
		{StateSaving, StateError}:       true,
		{StateError, StateEditing}:      true,
		{StateError, StateIdle}:         true,
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]State{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestStateManagerHappyPath(t *testing.T) {
	sm := NewStateManager()
	assert.Equal(t, StateIdle, sm.Current())

	for _, s := range []State{StateEditing, StateValidating, StateSaving, StateIdle} {
		require.NoError(t, sm.Transition(s))
	}
	assert.Equal(t, []State{StateIdle, StateEditing, StateValidating, StateSaving, StateIdle}, sm.History())
}

func TestStateManagerRejectsInvalidTransition(t *testing.T) {
	sm := NewStateManager()

	err := sm.Transition(StateSaving)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.Equal(t, StateIdle, sm.Current(), "state is unchanged after a rejected transition")
}

func TestStateManagerResetFromError(t *testing.T) {
	sm := NewStateManager()
	for _, s := range []State{StateEditing, StateValidating, StateSaving, StateError} {
		require.NoError(t, sm.Transition(s))
	}

	require.NoError(t, sm.Reset())
	assert.Equal(t, StateIdle, sm.Current())
	assert.Error(t, sm.Reset(), "idle cannot reset to idle")
}
