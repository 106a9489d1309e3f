// Package choice implements the suspension/resumption protocol used
// when an ability needs a player decision mid-resolution (e.g. "choose
// a character to deal damage to", "discard a card to gain lore").
package choice

import "github.com/google/uuid"

// Option is one selectable outcome of a choice.
type Option struct {
	ID          string
	Description string
	// TargetInstanceID is set when the option refers to a specific
	// card instance (a target choice); empty for non-target choices
	// (e.g. "yes/no" or "pick a mode").
	TargetInstanceID string
}

// Request describes a pending decision the engine is waiting on.
type Request struct {
	ChoiceID    string
	PlayerID    string
	Prompt      string
	Options     []Option
	AbilityName string
}

// NewRequest builds a choice request with a fresh ID.
func NewRequest(playerID, prompt, abilityName string, options []Option) Request {
	return Request{
		ChoiceID:    uuid.NewString(),
		PlayerID:    playerID,
		Prompt:      prompt,
		Options:     options,
		AbilityName: abilityName,
	}
}

// Manager tracks at most one outstanding choice at a time — the
// engine is single-threaded and cooperative, so only one suspension
// point is ever live.
type Manager struct {
	pending *Request
	resolve func(optionID string) // set alongside pending, cleared on resolution
}

// NewManager constructs an empty choice manager.
func NewManager() *Manager {
	return &Manager{}
}

// Suspend parks a choice request and the continuation to invoke once
// it is answered. It panics if a choice is already pending — the
// engine never issues a second choice before the first resolves.
func (m *Manager) Suspend(req Request, onResolve func(optionID string)) {
	if m.pending != nil {
		panic("choice: a choice is already pending")
	}
	m.pending = &req
	m.resolve = onResolve
}

// Pending returns the current outstanding request, or nil.
func (m *Manager) Pending() *Request {
	return m.pending
}

// IsPaused reports whether a choice is outstanding.
func (m *Manager) IsPaused() bool {
	return m.pending != nil
}

// Resolve answers the pending choice. It rejects (returns false)
// without changing state if no choice is pending, the player does not
// match, or the option ID is unknown — the game stays paused for the
// correct choice.
func (m *Manager) Resolve(playerID, choiceID, optionID string) bool {
	if m.pending == nil || m.pending.ChoiceID != choiceID || m.pending.PlayerID != playerID {
		return false
	}
	found := false
	for _, o := range m.pending.Options {
		if o.ID == optionID {
			found = true
			break
		}
	}
	if !found {
		return false
	}
	resolve := m.resolve
	m.pending = nil
	m.resolve = nil
	resolve(optionID)
	return true
}
