// Package state holds the two-player game snapshot the rest of the
// engine operates over.
package state

import (
	"math/rand"

	"github.com/inkforge/engine/internal/card"
	"github.com/inkforge/engine/internal/zone"
)

// Phase is one of the five phases of a turn.
type Phase string

const (
	PhaseReady Phase = "READY"
	PhaseSet   Phase = "SET"
	PhaseDraw  Phase = "DRAW"
	PhaseMain  Phase = "MAIN"
	PhaseEnd   Phase = "END_OF_TURN"
)

// Config holds the tunable constants that would otherwise be magic
// numbers scattered through the engine — loaded once at startup from
// internal/config and passed down into State construction.
type Config struct {
	StartingHandSize int
	DeckSize         int
	MaxCopiesPerCard int
	LoreToWin        int
}

// DefaultConfig matches the printed rules: 7-card opening hand,
// 60-card deck, 4 copies max, 20 lore to win.
func DefaultConfig() Config {
	return Config{StartingHandSize: 7, DeckSize: 60, MaxCopiesPerCard: 4, LoreToWin: 20}
}

// State is the full two-player snapshot.
type State struct {
	Config Config

	Players           [2]*zone.Player
	CurrentPlayerIdx  int
	TurnNumber        int
	Phase             Phase

	GameOver bool
	WinnerID string // empty string means a draw when GameOver is true
	Drawn    bool   // true when GameOver is a draw rather than a win

	LastEventID string
}

// New constructs a game from two already-populated decks (in shuffle
// order expected to have been randomized by the caller via Shuffle).
// Turn 1 starts in player 0's Ready phase, matching spec's opening
// sequence.
func New(cfg Config, p0, p1 *zone.Player) *State {
	return &State{
		Config:           cfg,
		Players:          [2]*zone.Player{p0, p1},
		CurrentPlayerIdx: 0,
		TurnNumber:       1,
		Phase:            PhaseReady,
	}
}

// Shuffle randomizes a deck in place using the supplied deterministic
// random source — callers seed it explicitly so identical seeds always
// produce identical shuffles (required for the engine's determinism
// property).
func Shuffle(deck []*card.Instance, rng *rand.Rand) {
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
}

// CurrentPlayer returns the player whose turn it is.
func (s *State) CurrentPlayer() *zone.Player {
	return s.Players[s.CurrentPlayerIdx]
}

// Opponent returns the non-active player.
func (s *State) Opponent() *zone.Player {
	return s.Players[1-s.CurrentPlayerIdx]
}

// PlayerByID finds a player by stable ID. Abilities resolve their
// controller this way at invocation time rather than holding a
// pointer, so there is never a stale-controller reference across
// turns.
func (s *State) PlayerByID(id string) *zone.Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// FindInstance locates a card instance anywhere in either player's
// zones by its InstanceID.
func (s *State) FindInstance(instanceID string) *card.Instance {
	for _, p := range s.Players {
		for _, zoneList := range [][]*card.Instance{p.Deck, p.Hand, p.Inkwell, p.Play, p.Discard} {
			for _, c := range zoneList {
				if c.InstanceID == instanceID {
					return c
				}
			}
		}
	}
	return nil
}

// CheckVictory evaluates the lore-to-win condition and sets GameOver/
// WinnerID if met. Called by the engine after every step, per spec.
func (s *State) CheckVictory() {
	if s.GameOver {
		return
	}
	for _, p := range s.Players {
		if p.Lore >= s.Config.LoreToWin {
			s.GameOver = true
			s.WinnerID = p.ID
			return
		}
	}
}

// EndInDraw marks the game over with no winner — used for the
// simultaneous-deck-exhaustion edge case.
func (s *State) EndInDraw() {
	s.GameOver = true
	s.Drawn = true
	s.WinnerID = ""
}
