package engine

// Analytics accumulates coarse, in-memory counters over the life of a
// single game: how many moves were applied, how many queued steps ran,
// and how many choices were resolved. The counters are totals for the
// whole game; they are not broken down per turn. It has no persistence or export format of
// its own — a caller that wants these numbers elsewhere reads the
// fields directly after the game ends.
type Analytics struct {
	ActionsSubmitted int
	StepsExecuted    int
	ChoicesResolved  int
}

func newAnalytics() *Analytics {
	return &Analytics{}
}

// RecordAction counts one validated, applied player move.
func (a *Analytics) RecordAction() {
	a.ActionsSubmitted++
}

// RecordStep counts one action drained from the queue.
func (a *Analytics) RecordStep() {
	a.StepsExecuted++
}

// RecordChoice counts one resolved choice request.
func (a *Analytics) RecordChoice() {
	a.ChoicesResolved++
}
