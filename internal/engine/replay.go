package engine

import (
	"github.com/inkforge/engine/internal/events"
	"github.com/inkforge/engine/internal/validator"
)

// Replay is the deterministic record of a single game: the exact
// sequence of submitted moves and the events each queued action
// produced. Given the same starting seed and the same recorded move
// sequence, replaying it against a fresh engine reproduces the same
// transcript byte-for-byte — the engine makes no ambient-time or
// random choice after the initial shuffle.
type Replay struct {
	Moves      []validator.Move
	Transcript [][]events.Context
}

func newReplay() *Replay {
	return &Replay{}
}

// RecordMove appends a submitted, validated move to the log.
func (r *Replay) RecordMove(m validator.Move) {
	r.Moves = append(r.Moves, m)
}

// RecordStep appends one queue-drain's worth of produced events, even
// when empty, so the transcript index lines up with StepsExecuted.
func (r *Replay) RecordStep(produced []events.Context) {
	r.Transcript = append(r.Transcript, produced)
}

// Replay exposes the recorded moves for a caller that wants to rerun
// them through a fresh engine instance.
func (e *Engine) Replay() *Replay {
	return e.replay
}

// Analytics exposes the accumulated counters for a caller that wants
// to report on a finished or in-progress game.
func (e *Engine) Analytics() *Analytics {
	return e.metrics
}
