// Package ability implements the composable Trigger -> TargetSelector
// -> Effect algebra that every named and keyword ability is built
// from, plus the static, read-only ability registry.
package ability

import (
	"github.com/inkforge/engine/internal/card"
	"github.com/inkforge/engine/internal/choice"
	"github.com/inkforge/engine/internal/events"
	"github.com/inkforge/engine/internal/state"
)

// Action is a single queued unit of work: apply one effect to one set
// of targets, in the context of the ability/card that caused it.
type Action struct {
	Effect     Effect
	Targets    []*card.Instance
	SourceID   string
	Controller string
	// SuppressEvents, when true, skips publishing the events the
	// effect returns once applied. Left false (the default) for every
	// ordinary action; only used when an outer action already owns
	// publishing its children's events.
	SuppressEvents bool
}

// ResolveContext is threaded through every effect/trigger/target
// evaluation. It never holds a stale pointer to a card or player —
// Source/Controller are resolved by ID through State at invocation
// time, matching the "no cyclic references" design rule.
type ResolveContext struct {
	State   *state.State
	Bus     *events.Bus
	Choices *choice.Manager
	// Enqueue appends an action to the action queue, so further effects
	// are queued rather than applied inline.
	Enqueue func(Action)
}

// SourceInstance resolves the card.Instance for a stable instance ID,
// or nil if it cannot be found (e.g. it left play already).
func (rc *ResolveContext) SourceInstance(id string) *card.Instance {
	return rc.State.FindInstance(id)
}
