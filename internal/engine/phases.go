package engine

import (
	"github.com/inkforge/engine/internal/ability"
	"github.com/inkforge/engine/internal/card"
	"github.com/inkforge/engine/internal/events"
	"github.com/inkforge/engine/internal/state"
)

// runReadyStep dries ink, readies every character and inkwell card for
// the active player, and clears the once-per-turn acted flag. Ink
// dries in exactly one transition: a character played last turn
// becomes dry the very next time its controller enters this step.
func (e *Engine) runReadyStep() {
	p := e.State.CurrentPlayer()
	for _, c := range p.CharactersInPlay() {
		c.IsDry = true
		c.Ready()
		c.ActedThisTurn = false
	}
	for _, c := range p.Inkwell {
		c.Ready()
	}
	e.Bus.Publish(events.New(events.ReadyStep, "", "", p.ID))
}

// runSetStep fires "at start of turn" triggers; nothing else happens
// automatically here.
func (e *Engine) runSetStep() {
	p := e.State.CurrentPlayer()
	e.Bus.Publish(events.New(events.TurnBegins, "", "", p.ID))
	e.Bus.Publish(events.New(events.SetStep, "", "", p.ID))
}

// runDrawStep draws one card for the active player, except on the
// very first turn of the game for the player who went first (the
// spec's explicit first-turn asymmetry: p0 draws 0 cards on turn 1,
// p1 still draws its normal 1).
func (e *Engine) runDrawStep() {
	p := e.State.CurrentPlayer()
	e.Bus.Publish(events.New(events.DrawStep, "", "", p.ID))
	if e.State.TurnNumber == 1 && e.State.CurrentPlayerIdx == 0 {
		return
	}
	e.Queue.Enqueue(ability.Action{
		Effect: ability.DrawCards{Count: 1}, SourceID: "", Controller: p.ID,
	})
}

// runMainPhaseEntry fires the main-phase-begins event; no automatic
// state change otherwise, the engine simply starts waiting for moves.
func (e *Engine) runMainPhaseEntry() {
	p := e.State.CurrentPlayer()
	e.Bus.Publish(events.New(events.MainPhaseBegins, "", "", p.ID))
}

// endTurn runs end-of-turn cleanup, advances to the next player and
// resets phase to Ready for them.
func (e *Engine) endTurn() {
	p := e.State.CurrentPlayer()
	e.Bus.Publish(events.New(events.TurnEnds, "", "", p.ID))

	for _, c := range p.CharactersInPlay() {
		c.ClearBonuses(card.ThisTurn)
	}
	p.ResetTurnFlags()

	e.State.CurrentPlayerIdx = 1 - e.State.CurrentPlayerIdx
	if e.State.CurrentPlayerIdx == 0 {
		e.State.TurnNumber++
	}
	e.State.Phase = state.PhaseReady
}

// advanceAutomaticPhases drives the engine through every phase that
// requires no player input (Ready, Set, Draw), stopping the instant
// the queue has something to drain or a choice comes up, and finally
// landing in Main. The caller re-checks queue/choice state after each
// call since a single automatic phase can itself enqueue actions
// (e.g. the draw step's DrawCards).
func (e *Engine) advanceAutomaticPhases() {
	for !e.Queue.HasPending() && !e.Choices.IsPaused() && !e.State.GameOver {
		switch e.State.Phase {
		case state.PhaseReady:
			e.runReadyStep()
			e.State.Phase = state.PhaseSet
		case state.PhaseSet:
			e.runSetStep()
			e.State.Phase = state.PhaseDraw
		case state.PhaseDraw:
			e.runDrawStep()
			e.State.Phase = state.PhaseMain
			e.runMainPhaseEntry()
			return
		case state.PhaseMain:
			return
		case state.PhaseEnd:
			e.endTurn()
		default:
			return
		}
	}
}
