// Package engine implements the pull-style message loop: the sole
// observable surface of the rules engine.
package engine

import (
	"github.com/inkforge/engine/internal/choice"
	"github.com/inkforge/engine/internal/events"
	"github.com/inkforge/engine/internal/state"
	"github.com/inkforge/engine/internal/validator"
)

// MessageKind discriminates the closed set of messages NextMessage
// can return.
type MessageKind string

const (
	KindActionRequired  MessageKind = "ACTION_REQUIRED"
	KindChoiceRequired  MessageKind = "CHOICE_REQUIRED"
	KindStepExecuted    MessageKind = "STEP_EXECUTED"
	KindPhaseTransition MessageKind = "PHASE_TRANSITION"
	KindGameOver        MessageKind = "GAME_OVER"
)

// Message is the single JSON-serializable value type the engine ever
// returns. Every field is a plain value type (no pointers into engine
// internals) so a caller can safely retain, log or transmit it.
type Message struct {
	Kind MessageKind

	// ActionRequired
	PlayerToAct string
	LegalMoves  []validator.Move

	// ChoiceRequired
	Choice *choice.Request

	// StepExecuted
	Events []events.Context

	// PhaseTransition
	Phase      state.Phase
	TurnNumber int

	// GameOver
	WinnerID string
	Draw     bool
}

func actionRequired(playerID string, moves []validator.Move) Message {
	return Message{Kind: KindActionRequired, PlayerToAct: playerID, LegalMoves: moves}
}

func choiceRequired(req choice.Request) Message {
	return Message{Kind: KindChoiceRequired, Choice: &req, PlayerToAct: req.PlayerID}
}

func stepExecuted(produced []events.Context) Message {
	return Message{Kind: KindStepExecuted, Events: produced}
}

func phaseTransition(phase state.Phase, turn int) Message {
	return Message{Kind: KindPhaseTransition, Phase: phase, TurnNumber: turn}
}

func gameOver(winnerID string, draw bool) Message {
	return Message{Kind: KindGameOver, WinnerID: winnerID, Draw: draw}
}
