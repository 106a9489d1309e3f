package engine

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/inkforge/engine/internal/ability"
	"github.com/inkforge/engine/internal/card"
	"github.com/inkforge/engine/internal/choice"
	"github.com/inkforge/engine/internal/events"
	"github.com/inkforge/engine/internal/queue"
	"github.com/inkforge/engine/internal/state"
	"github.com/inkforge/engine/internal/validator"
	"github.com/inkforge/engine/internal/zone"
)

// Engine drives the single-threaded, step-by-step message loop. It
// holds every subsystem (state, event bus, action queue, choice
// manager, move validator, ability registry) and is the only type a
// caller needs to construct to play a game.
type Engine struct {
	State     *state.State
	Bus       *events.Bus
	Queue     *queue.Queue
	Choices   *choice.Manager
	Validator *validator.Validator
	Registry  *ability.Registry

	rc      *ability.ResolveContext
	logger  *zap.Logger
	replay  *Replay
	metrics *Analytics
}

// New constructs an engine around an already-built game state and
// ability registry. Call Start once before the first NextMessage call.
func New(s *state.State, registry *ability.Registry, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{
		State:     s,
		Bus:       events.NewBus(),
		Queue:     queue.New(logger),
		Choices:   choice.NewManager(),
		Validator: &validator.Validator{Registry: registry},
		Registry:  registry,
		logger:    logger,
		replay:    newReplay(),
		metrics:   newAnalytics(),
	}
	e.rc = &ability.ResolveContext{
		State:   s,
		Bus:     e.Bus,
		Choices: e.Choices,
		Enqueue: func(a ability.Action) { e.Queue.Enqueue(a) },
	}
	return e
}

// Start registers every character currently in play and fires the
// game-begins event. Must be called once before the first
// NextMessage.
func (e *Engine) Start() {
	e.rebuildListeners()
	e.Bus.Publish(events.New(events.GameBegins, "", "", ""))
}

// rebuildListeners discards and re-registers every ability listener
// from scratch based on what's currently in play. This is simple and
// always correct; incrementally patching the listener set would only
// be worth it if profiling showed this being a bottleneck, which it
// isn't for a two-player, battlefield-sized play zone.
func (e *Engine) rebuildListeners() {
	e.Bus.Reset()
	for _, p := range e.State.Players {
		for _, c := range p.CharactersInPlay() {
			e.registerInstanceAbilities(c)
		}
	}
}

func (e *Engine) registerInstanceAbilities(inst *card.Instance) {
	built := e.Registry.Build(inst.Def)
	inst.Abilities = inst.Abilities[:0]
	for _, ab := range built {
		ab := ab
		handle := e.Bus.Subscribe(func(ctx events.Context) {
			if ab.Trigger == nil || !ab.Trigger(ctx, e.rc, inst.InstanceID) {
				return
			}
			e.resolveAbility(ab, inst)
		})
		inst.Abilities = append(inst.Abilities, card.ResolvedAbility{Recipe: card.AbilityRecipe{Name: ab.Name}, Handle: handle})
	}
}

func (e *Engine) resolveAbility(ab ability.Ability, source *card.Instance) {
	if ab.Effect == nil {
		return
	}
	enqueue := func(targets []*card.Instance) {
		e.Queue.Enqueue(ability.Action{
			Effect: ab.Effect, Targets: targets, SourceID: source.InstanceID, Controller: source.Controller,
		})
	}
	if ab.Target == nil {
		enqueue(nil)
		return
	}
	ab.Target.Resolve(e.rc, source.InstanceID, source.Controller, enqueue)
}

// NextMessage is the engine's sole observable surface. Passing nil
// requests the next message with no move submitted (used to drain
// queued steps or advance automatic phases); passing a non-nil move
// submits it for validation and application first.
func (e *Engine) NextMessage(move *validator.Move) (Message, error) {
	if move != nil {
		if err := e.applyMove(*move); err != nil {
			return Message{}, err
		}
		e.rebuildListeners()
	}

	if e.State.GameOver {
		return gameOver(e.State.WinnerID, e.State.Drawn), nil
	}

	if e.Queue.HasPending() {
		produced := e.Queue.ProcessNext(e.rc)
		e.rebuildListeners()
		e.metrics.RecordStep()
		e.replay.RecordStep(produced)
		e.State.CheckVictory()
		if e.State.GameOver {
			return gameOver(e.State.WinnerID, e.State.Drawn), nil
		}
		return stepExecuted(produced), nil
	}

	if e.Choices.IsPaused() {
		return choiceRequired(*e.Choices.Pending()), nil
	}

	before := e.State.Phase
	e.advanceAutomaticPhases()
	e.State.CheckVictory()
	if e.State.GameOver {
		return gameOver(e.State.WinnerID, e.State.Drawn), nil
	}
	if e.Queue.HasPending() || e.Choices.IsPaused() {
		return e.NextMessage(nil)
	}
	if before != e.State.Phase {
		return phaseTransition(e.State.Phase, e.State.TurnNumber), nil
	}

	return actionRequired(e.State.CurrentPlayer().ID, e.Validator.LegalMoves(e.State, e.Choices)), nil
}

func (e *Engine) applyMove(m validator.Move) error {
	if m.Kind == validator.KindChoice {
		if !e.Choices.IsPaused() {
			return fmt.Errorf("engine: invalid move: no choice is pending")
		}
		req := e.Choices.Pending()
		if !e.Choices.Resolve(req.PlayerID, m.ChoiceID, m.OptionID) {
			return fmt.Errorf("engine: malformed choice: unknown option %q", m.OptionID)
		}
		e.metrics.RecordChoice()
		e.replay.RecordMove(m)
		return nil
	}

	if !e.Validator.Validate(e.State, e.Choices, m) {
		return fmt.Errorf("engine: invalid move: %+v is not legal in the current state", m)
	}
	e.replay.RecordMove(m)
	e.metrics.RecordAction()

	p := e.State.CurrentPlayer()
	switch m.Kind {
	case validator.KindInk:
		e.applyInk(p, m)
	case validator.KindPlay:
		e.applyPlay(p, m)
	case validator.KindQuest:
		e.applyQuest(p, m)
	case validator.KindChallenge:
		e.applyChallenge(p, m)
	case validator.KindSing:
		e.applySing(p, m)
	case validator.KindActivate:
		e.applyActivate(p, m)
	case validator.KindMoveToLocation:
		e.applyMoveToLocation(p, m)
	case validator.KindPass:
		e.State.Phase = state.PhaseEnd
	default:
		return fmt.Errorf("engine: unknown move kind %q", m.Kind)
	}
	return nil
}

func (e *Engine) findInHand(p *zone.Player, instanceID string) *card.Instance {
	for _, c := range p.Hand {
		if c.InstanceID == instanceID {
			return c
		}
	}
	return nil
}

func (e *Engine) findInPlay(p *zone.Player, instanceID string) *card.Instance {
	for _, c := range p.Play {
		if c.InstanceID == instanceID {
			return c
		}
	}
	return nil
}

func (e *Engine) applyInk(p *zone.Player, m validator.Move) {
	inst := e.findInHand(p, m.InstanceID)
	if inst == nil {
		return
	}
	p.Ink(inst)
	e.Bus.Publish(events.New(events.InkPlayed, inst.InstanceID, "", p.ID))
}

func (e *Engine) applyPlay(p *zone.Player, m validator.Move) {
	inst := e.findInHand(p, m.InstanceID)
	if inst == nil {
		return
	}
	cost := int(inst.Def.Cost)
	if shiftValue, ok := inst.Metadata["shift_value"].(int); ok && m.ShiftTargetID != "" {
		cost = shiftValue
	}
	if delta, ok := inst.Metadata["cost_delta"].(int); ok {
		cost += delta
		if cost < 0 {
			cost = 0
		}
	}
	if inst.Metadata["play_for_free"] != true {
		p.SpendInk(cost)
	}

	if m.ShiftTargetID != "" {
		target := e.findInPlay(p, m.ShiftTargetID)
		if target != nil {
			// Shift: the new, higher-cost definition takes over, but the
			// underlying instance (and its damage/bonuses) is preserved.
			target.Def = inst.Def
			p.Hand = removeFromHand(p.Hand, inst)
			e.Bus.Publish(events.New(events.CharacterPlayed, inst.InstanceID, "", p.ID))
			e.registerInstanceAbilities(target)
			return
		}
	}

	switch inst.Def.Type {
	case card.TypeCharacter:
		p.PlayFromHand(inst)
		e.registerInstanceAbilities(inst)
		e.Bus.Publish(events.New(events.CharacterPlayed, inst.InstanceID, "", p.ID))
		e.Bus.Publish(events.New(events.CharacterEntered, inst.InstanceID, "", p.ID))
	case card.TypeItem:
		p.PlayFromHand(inst)
		e.Bus.Publish(events.New(events.ItemPlayed, inst.InstanceID, "", p.ID))
	case card.TypeAction:
		isSong := inst.Def.HasSubtype("Song")
		p.MoveToDiscard(inst)
		if isSong {
			e.Bus.Publish(events.New(events.SongPlayed, inst.InstanceID, "", p.ID))
		} else {
			e.Bus.Publish(events.New(events.ActionPlayed, inst.InstanceID, "", p.ID))
		}
		e.resolveCardEffect(inst, p.ID)
	case card.TypeLocation:
		p.PlayFromHand(inst)
	}
}

func removeFromHand(hand []*card.Instance, inst *card.Instance) []*card.Instance {
	for i, c := range hand {
		if c == inst {
			return append(hand[:i], hand[i+1:]...)
		}
	}
	return hand
}

// resolveCardEffect enqueues the effects of a non-character card
// (action/song) that carries a "when played" ability recipe of
// its own, as opposed to characters whose abilities subscribe to
// CharacterPlayed via the event bus.
func (e *Engine) resolveCardEffect(inst *card.Instance, controllerID string) {
	for _, ab := range e.Registry.Build(inst.Def) {
		if ab.Effect == nil {
			continue
		}
		ab := ab
		enqueue := func(targets []*card.Instance) {
			e.Queue.Enqueue(ability.Action{
				Effect: ab.Effect, Targets: targets, SourceID: inst.InstanceID, Controller: controllerID,
			})
		}
		if ab.Target == nil {
			enqueue(nil)
			continue
		}
		ab.Target.Resolve(e.rc, inst.InstanceID, controllerID, enqueue)
	}
}

func (e *Engine) applyQuest(p *zone.Player, m validator.Move) {
	inst := e.findInPlay(p, m.InstanceID)
	if inst == nil {
		return
	}
	inst.Exert()
	e.Bus.Publish(events.New(events.CharacterQuests, inst.InstanceID, "", p.ID))
	e.Queue.Enqueue(ability.Action{
		Effect: ability.GainLore{Amount: inst.CurrentLore()}, SourceID: inst.InstanceID, Controller: p.ID,
	})
}

func (e *Engine) applyChallenge(p *zone.Player, m validator.Move) {
	attacker := e.findInPlay(p, m.AttackerID)
	opponent := e.State.Opponent()
	defender := e.findInPlay(opponent, m.DefenderID)
	if attacker == nil || defender == nil {
		return
	}
	attacker.Exert()
	e.Bus.Publish(events.New(events.CharacterChallenged, attacker.InstanceID, defender.InstanceID, p.ID))

	// Vanish: the defender is banished before any combat damage is
	// dealt, so it never gets to deal damage back.
	if defender.HasKeyword("Vanish") {
		e.Queue.Enqueue(ability.Action{
			Effect: ability.Banish{}, Targets: []*card.Instance{defender},
			SourceID: attacker.InstanceID, Controller: defender.Controller,
		})
		return
	}

	// Challenger +N: the attacking character's strength is boosted for
	// this challenge only; it never benefits the defender.
	attackStrength := attacker.CurrentStrength() + attacker.KeywordValue("Challenger")

	// Challenge damage is simultaneous: both characters deal their full
	// strength regardless of which one is lethally damaged by the other.
	e.Queue.Enqueue(ability.Action{
		Effect: ability.DealDamage{Amount: attackStrength},
		Targets: []*card.Instance{defender}, SourceID: attacker.InstanceID, Controller: p.ID,
	})
	e.Queue.Enqueue(ability.Action{
		Effect: ability.DealDamage{Amount: defender.CurrentStrength()},
		Targets: []*card.Instance{attacker}, SourceID: defender.InstanceID, Controller: defender.Controller,
	})
}

func (e *Engine) applySing(p *zone.Player, m validator.Move) {
	song := e.findInHand(p, m.InstanceID)
	if song == nil {
		return
	}
	for _, singerID := range m.SingerIDs {
		if singer := e.findInPlay(p, singerID); singer != nil {
			singer.Exert()
			e.Bus.Publish(events.New(events.SongSung, singer.InstanceID, song.InstanceID, p.ID))
		}
	}
	p.MoveToDiscard(song)
	e.Bus.Publish(events.New(events.SongPlayed, song.InstanceID, "", p.ID))
	e.resolveCardEffect(song, p.ID)
}

func (e *Engine) applyActivate(p *zone.Player, m validator.Move) {
	inst := e.findInPlay(p, m.InstanceID)
	if inst == nil {
		return
	}
	factory, ok := e.Registry.Lookup(m.AbilityName)
	if !ok {
		return
	}
	ab := factory(inst.Def, card.AbilityRecipe{Name: m.AbilityName})
	if ab.Cost != nil {
		if !ab.Cost.CanPay(e.rc, p.ID, inst.InstanceID) {
			return
		}
		ab.Cost.Pay(e.rc, p.ID, inst.InstanceID)
	}
	e.resolveAbility(ab, inst)
}

func (e *Engine) applyMoveToLocation(p *zone.Player, m validator.Move) {
	inst := e.findInPlay(p, m.InstanceID)
	loc := e.findInPlay(p, m.LocationInstanceID)
	if inst == nil || loc == nil {
		return
	}
	p.SpendInk(loc.Def.MoveCost)
	inst.AtLocation = loc.InstanceID
}
