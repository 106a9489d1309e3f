// Package queue implements the action queue: the single linearization
// point through which every effect resolution mutates game state.
package queue

import (
	"go.uber.org/zap"

	"github.com/inkforge/engine/internal/ability"
	"github.com/inkforge/engine/internal/events"
)

// Queue is a strict FIFO of pending actions. Enqueue never resolves
// anything immediately — cascading effects from ProcessNext land at
// the back of the same queue, guaranteeing breadth-first, registration
// -order resolution across a chain of triggers.
type Queue struct {
	items  []ability.Action
	logger *zap.Logger
}

// New constructs an empty action queue.
func New(logger *zap.Logger) *Queue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Queue{logger: logger}
}

// Enqueue appends an action to the back of the queue. This is exposed
// to effect resolution as rc.Enqueue so effects can only cause further
// mutation by going through the same single write path.
func (q *Queue) Enqueue(a ability.Action) {
	q.items = append(q.items, a)
}

// HasPending reports whether any action is waiting to be processed.
func (q *Queue) HasPending() bool {
	return len(q.items) > 0
}

// Len reports the number of actions currently queued.
func (q *Queue) Len() int {
	return len(q.items)
}

// ProcessNext pops the front action, applies its effect, and
// publishes the resulting events on the bus (unless the action opted
// out via SuppressEvents). It returns the events produced so the
// caller can fold them into a step message.
func (q *Queue) ProcessNext(rc *ability.ResolveContext) []events.Context {
	if len(q.items) == 0 {
		return nil
	}
	a := q.items[0]
	q.items = q.items[1:]

	if a.Effect == nil {
		return nil
	}
	produced := a.Effect.Apply(rc, a)
	q.logger.Debug("processed queued action",
		zap.String("source", a.SourceID), zap.Int("targets", len(a.Targets)), zap.Int("events", len(produced)))

	if !a.SuppressEvents {
		for _, e := range produced {
			rc.Bus.Publish(e)
		}
	}
	return produced
}
