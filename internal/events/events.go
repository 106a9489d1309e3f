// Package events implements the synchronous, in-order event bus that
// drives triggered abilities and keyword hooks.
package events

import (
	"sync"

	"github.com/google/uuid"
)

// Type is the closed set of event kinds the engine can emit.
type Type string

const (
	// Character lifecycle
	CharacterPlayed    Type = "CHARACTER_PLAYED"
	CharacterEntered   Type = "CHARACTER_ENTERS_PLAY"
	CharacterLeft      Type = "CHARACTER_LEAVES_PLAY"
	CharacterBanished  Type = "CHARACTER_BANISHED"
	CharacterDamaged   Type = "CHARACTER_DAMAGED"
	CharacterHealed    Type = "CHARACTER_HEALED"
	CharacterExerted   Type = "CHARACTER_EXERTED"
	CharacterReadied   Type = "CHARACTER_READIED"
	CharacterChallenged Type = "CHARACTER_CHALLENGED"

	// Action/card flow
	CharacterQuests Type = "CHARACTER_QUESTS"
	ActionPlayed    Type = "ACTION_PLAYED"
	SongPlayed      Type = "SONG_PLAYED"
	SongSung        Type = "SONG_SUNG"
	ItemPlayed      Type = "ITEM_PLAYED"
	CardDiscarded   Type = "CARD_DISCARDED"
	CardReturned    Type = "CARD_RETURNED_TO_HAND"

	// Turn structure
	TurnBegins       Type = "TURN_BEGINS"
	TurnEnds         Type = "TURN_ENDS"
	PhaseBegins      Type = "PHASE_BEGINS"
	PhaseEnds        Type = "PHASE_ENDS"
	ReadyStep        Type = "READY_STEP"
	SetStep          Type = "SET_STEP"
	DrawStep         Type = "DRAW_STEP"
	MainPhaseBegins  Type = "MAIN_PHASE_BEGINS"

	// Resources
	CardDrawn Type = "CARD_DRAWN"
	InkPlayed Type = "INK_PLAYED"
	LoreGained Type = "LORE_GAINED"
	LoreLost   Type = "LORE_LOST"

	// Game
	GameBegins Type = "GAME_BEGINS"
	GameEnds   Type = "GAME_ENDS"
)

// Context carries the information any listener needs to react to an
// event. Source/Target/Player are stable IDs, never direct pointers,
// so listeners always resolve current state rather than holding a
// stale reference across turns.
type Context struct {
	ID         string
	Type       Type
	SourceID   string
	TargetID   string
	PlayerID   string
	Amount     int
	Payload    map[string]any
}

// New builds an event context with a fresh ID and an initialized payload.
func New(t Type, sourceID, targetID, playerID string) Context {
	return Context{
		ID:       uuid.NewString(),
		Type:     t,
		SourceID: sourceID,
		TargetID: targetID,
		PlayerID: playerID,
		Payload:  make(map[string]any),
	}
}

// WithAmount returns a copy of the context carrying a numeric amount
// (damage dealt, cards drawn, lore gained, ...).
func (c Context) WithAmount(amount int) Context {
	c.Amount = amount
	return c
}

// Listener reacts to a published event. It must not mutate game state
// directly; side effects are expressed by enqueuing actions on the
// queue passed in through the engine, never by writing state inline.
type Listener func(Context)

// Interceptor inspects an event before dispatch and decides whether
// processing should continue immediately or be suspended. Only one
// interceptor ever gets to decide the fate of a given event: the first
// one (in registration order) that returns false pauses the event and
// no further interceptors are consulted for it.
type Interceptor func(Context) bool

type registration struct {
	id       int
	forType  Type
	anyType  bool
	listener Listener
}

// Bus is a synchronous, in-order, registration-ordered publish/
// subscribe event dispatcher. Unlike a map-backed registry, listeners
// are kept in a slice so dispatch order is always the order of
// registration — required for deterministic replays.
type Bus struct {
	mu           sync.Mutex
	regs         []registration
	nextHandle   int
	interceptors []Interceptor
	pending      []Context
}

// NewBus constructs an empty event bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a listener for every event type and returns a
// handle usable with Unsubscribe.
func (b *Bus) Subscribe(listener Listener) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	h := b.nextHandle
	b.nextHandle++
	b.regs = append(b.regs, registration{id: h, anyType: true, listener: listener})
	return h
}

// SubscribeTyped registers a listener for a single event type.
func (b *Bus) SubscribeTyped(t Type, listener Listener) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	h := b.nextHandle
	b.nextHandle++
	b.regs = append(b.regs, registration{id: h, forType: t, listener: listener})
	return h
}

// Unsubscribe removes the registration identified by handle.
func (b *Bus) Unsubscribe(handle int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, r := range b.regs {
		if r.id == handle {
			b.regs = append(b.regs[:i], b.regs[i+1:]...)
			return
		}
	}
}

// Reset clears every registration. Called whenever the play-zone
// composition changes, so listener sets never drift from what is
// actually in play.
func (b *Bus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.regs = nil
}

// AddInterceptor appends an interceptor, consulted in registration
// order before any listener sees the event.
func (b *Bus) AddInterceptor(i Interceptor) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.interceptors = append(b.interceptors, i)
}

// Publish dispatches an event synchronously to every matching
// listener, in registration order. If an interceptor suspends the
// event it is parked and Publish returns immediately without invoking
// any listener.
func (b *Bus) Publish(ctx Context) {
	b.mu.Lock()
	for _, i := range b.interceptors {
		if !i(ctx) {
			b.pending = append(b.pending, ctx)
			b.mu.Unlock()
			return
		}
	}
	regs := make([]registration, len(b.regs))
	copy(regs, b.regs)
	b.mu.Unlock()

	for _, r := range regs {
		if r.anyType || r.forType == ctx.Type {
			r.listener(ctx)
		}
	}
}

// ResumePending re-publishes every parked event, in the order they
// were suspended, bypassing interceptors (they already had their say).
func (b *Bus) ResumePending() {
	b.mu.Lock()
	pending := b.pending
	b.pending = nil
	regs := make([]registration, len(b.regs))
	copy(regs, b.regs)
	b.mu.Unlock()

	for _, ctx := range pending {
		for _, r := range regs {
			if r.anyType || r.forType == ctx.Type {
				r.listener(ctx)
			}
		}
	}
}

// PendingCount reports how many events are currently parked.
func (b *Bus) PendingCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}
