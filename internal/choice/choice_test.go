package choice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuspendParksAChoiceUntilResolved(t *testing.T) {
	m := NewManager()
	var resolvedWith string
	req := NewRequest("p1", "Choose a target", "TestAbility", []Option{
		{ID: "a", Description: "Goofy"},
		{ID: "b", Description: "Mickey"},
	})

	m.Suspend(req, func(optionID string) { resolvedWith = optionID })
	require.True(t, m.IsPaused())

	ok := m.Resolve("p1", req.ChoiceID, "b")
	assert.True(t, ok)
	assert.Equal(t, "b", resolvedWith)
	assert.False(t, m.IsPaused())
}

func TestResolveRejectsWrongPlayer(t *testing.T) {
	m := NewManager()
	req := NewRequest("p1", "Choose", "", []Option{{ID: "a"}})
	m.Suspend(req, func(string) {})

	assert.False(t, m.Resolve("p2", req.ChoiceID, "a"))
	assert.True(t, m.IsPaused(), "a rejected resolution leaves the choice pending")
}

func TestResolveRejectsUnknownOption(t *testing.T) {
	m := NewManager()
	req := NewRequest("p1", "Choose", "", []Option{{ID: "a"}})
	m.Suspend(req, func(string) {})

	assert.False(t, m.Resolve("p1", req.ChoiceID, "does-not-exist"))
	assert.True(t, m.IsPaused())
}

func TestSuspendPanicsWhenAlreadyPending(t *testing.T) {
	m := NewManager()
	req := NewRequest("p1", "Choose", "", []Option{{ID: "a"}})
	m.Suspend(req, func(string) {})

	assert.Panics(t, func() {
		m.Suspend(req, func(string) {})
	})
}
