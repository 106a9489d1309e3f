package ability

import (
	"github.com/inkforge/engine/internal/card"
	"github.com/inkforge/engine/internal/events"
)

// Effect is the exhaustive, closed set of mutations an ability can
// cause. Every variant is a small struct implementing Apply; there is
// no open interface hierarchy a card author could extend at runtime —
// new behavior means a new variant here, never a duck-typed plugin.
type Effect interface {
	// Apply performs the mutation for the given action and returns the
	// events that should be published as a consequence. It is only
	// ever invoked by the action queue while draining — effects never
	// mutate state outside that single write path.
	Apply(rc *ResolveContext, a Action) []events.Context
}

// --- player-targeted resource effects -------------------------------

// DrawCards makes the controller draw n cards.
type DrawCards struct{ Count int }

func (e DrawCards) Apply(rc *ResolveContext, a Action) []events.Context {
	p := rc.State.PlayerByID(a.Controller)
	if p == nil {
		return nil
	}
	var out []events.Context
	for i := 0; i < e.Count; i++ {
		inst, err := p.Draw()
		if err != nil {
			// Deck exhaustion is not an error condition (spec §7): the
			// drawing player loses instead of the move being rejected.
			rc.State.GameOver = true
			for _, other := range rc.State.Players {
				if other.ID != a.Controller {
					rc.State.WinnerID = other.ID
				}
			}
			break
		}
		out = append(out, events.New(events.CardDrawn, a.SourceID, inst.InstanceID, a.Controller))
	}
	return out
}

// DiscardCards discards up to n cards from the controller's hand
// (used as an effect, e.g. "each opponent discards a card", distinct
// from DiscardCardsCost which pays for an ability).
type DiscardCards struct{ Count int }

func (e DiscardCards) Apply(rc *ResolveContext, a Action) []events.Context {
	p := rc.State.PlayerByID(a.Controller)
	if p == nil {
		return nil
	}
	var out []events.Context
	n := e.Count
	if n > len(p.Hand) {
		n = len(p.Hand)
	}
	for i := 0; i < n; i++ {
		inst := p.Hand[0]
		p.MoveToDiscard(inst)
		out = append(out, events.New(events.CardDiscarded, a.SourceID, inst.InstanceID, a.Controller))
	}
	return out
}

// DiscardTargets discards exactly the given targets from their
// controller's hand — distinct from DiscardCards (count-based, no
// choice involved) for effects whose target selector already resolved
// a specific chosen card.
type DiscardTargets struct{}

func (e DiscardTargets) Apply(rc *ResolveContext, a Action) []events.Context {
	var out []events.Context
	for _, t := range a.Targets {
		owner := rc.State.PlayerByID(t.Controller)
		if owner == nil {
			continue
		}
		owner.MoveToDiscard(t)
		out = append(out, events.New(events.CardDiscarded, a.SourceID, t.InstanceID, a.Controller))
	}
	return out
}

// GainLore grants the controller n lore.
type GainLore struct{ Amount int }

func (e GainLore) Apply(rc *ResolveContext, a Action) []events.Context {
	p := rc.State.PlayerByID(a.Controller)
	if p == nil {
		return nil
	}
	p.GainLore(e.Amount)
	return []events.Context{events.New(events.LoreGained, a.SourceID, "", a.Controller).WithAmount(e.Amount)}
}

// LoseLore takes n lore away from the controller.
type LoseLore struct{ Amount int }

func (e LoseLore) Apply(rc *ResolveContext, a Action) []events.Context {
	p := rc.State.PlayerByID(a.Controller)
	if p == nil {
		return nil
	}
	p.LoseLore(e.Amount)
	return []events.Context{events.New(events.LoreLost, a.SourceID, "", a.Controller).WithAmount(e.Amount)}
}

// --- character-targeted effects -------------------------------------

// DealDamage applies n damage to every target, banishing any that
// die in the same step.
type DealDamage struct{ Amount int }

func (e DealDamage) Apply(rc *ResolveContext, a Action) []events.Context {
	var out []events.Context
	for _, t := range a.Targets {
		amount := e.Amount
		if r := t.KeywordValue("Resist"); r > 0 {
			amount -= r
			if amount < 0 {
				amount = 0
			}
		}
		if prevented, ok := t.Metadata["prevent_damage"].(int); ok {
			amount -= prevented
			if amount < 0 {
				amount = 0
			}
			delete(t.Metadata, "prevent_damage")
		}
		t.ApplyDamage(amount)
		out = append(out, events.New(events.CharacterDamaged, a.SourceID, t.InstanceID, a.Controller).WithAmount(amount))
		if !t.Alive() {
			out = append(out, banishEvents(rc, t, a.SourceID)...)
		}
	}
	return out
}

// Heal removes n damage from every target.
type Heal struct{ Amount int }

func (e Heal) Apply(rc *ResolveContext, a Action) []events.Context {
	var out []events.Context
	for _, t := range a.Targets {
		t.Heal(e.Amount)
		out = append(out, events.New(events.CharacterHealed, a.SourceID, t.InstanceID, a.Controller).WithAmount(e.Amount))
	}
	return out
}

func banishEvents(rc *ResolveContext, t *card.Instance, sourceID string) []events.Context {
	owner := rc.State.PlayerByID(t.Controller)
	if owner != nil {
		owner.Banish(t)
	}
	return []events.Context{
		events.New(events.CharacterLeft, sourceID, t.InstanceID, t.Controller),
		events.New(events.CharacterBanished, sourceID, t.InstanceID, t.Controller),
	}
}

// Banish removes every target from play directly (not via damage).
type Banish struct{}

func (e Banish) Apply(rc *ResolveContext, a Action) []events.Context {
	var out []events.Context
	for _, t := range a.Targets {
		out = append(out, banishEvents(rc, t, a.SourceID)...)
	}
	return out
}

// ReturnToHand returns every target to its controller's hand.
type ReturnToHand struct{}

func (e ReturnToHand) Apply(rc *ResolveContext, a Action) []events.Context {
	var out []events.Context
	for _, t := range a.Targets {
		owner := rc.State.PlayerByID(t.Controller)
		if owner == nil {
			continue
		}
		wasInPlay := t.Location == card.LocPlay
		owner.ReturnToHand(t)
		if wasInPlay {
			out = append(out, events.New(events.CharacterLeft, a.SourceID, t.InstanceID, t.Controller))
		}
		out = append(out, events.New(events.CardReturned, a.SourceID, t.InstanceID, t.Controller))
	}
	return out
}

// ExertEffect exerts every target.
type ExertEffect struct{}

func (e ExertEffect) Apply(rc *ResolveContext, a Action) []events.Context {
	var out []events.Context
	for _, t := range a.Targets {
		t.Exert()
		out = append(out, events.New(events.CharacterExerted, a.SourceID, t.InstanceID, a.Controller))
	}
	return out
}

// ReadyEffect readies every target.
type ReadyEffect struct{}

func (e ReadyEffect) Apply(rc *ResolveContext, a Action) []events.Context {
	var out []events.Context
	for _, t := range a.Targets {
		t.Ready()
		out = append(out, events.New(events.CharacterReadied, a.SourceID, t.InstanceID, a.Controller))
	}
	return out
}

// --- stat bonus effects ----------------------------------------------

// AddStrengthBonus grants every target a strength bonus.
type AddStrengthBonus struct {
	Amount   int
	Duration card.Duration
}

func (e AddStrengthBonus) Apply(rc *ResolveContext, a Action) []events.Context {
	for _, t := range a.Targets {
		t.AddBonus(card.StatBonus{Stat: card.StatStrength, Amount: e.Amount, Duration: e.Duration})
	}
	return nil
}

// AddWillpowerBonus grants every target a willpower bonus.
type AddWillpowerBonus struct {
	Amount   int
	Duration card.Duration
}

func (e AddWillpowerBonus) Apply(rc *ResolveContext, a Action) []events.Context {
	for _, t := range a.Targets {
		t.AddBonus(card.StatBonus{Stat: card.StatWillpower, Amount: e.Amount, Duration: e.Duration})
	}
	return nil
}

// AddLoreBonus grants every target a lore-value bonus (the lore a
// character grants on questing, not player lore).
type AddLoreBonus struct {
	Amount   int
	Duration card.Duration
}

func (e AddLoreBonus) Apply(rc *ResolveContext, a Action) []events.Context {
	for _, t := range a.Targets {
		t.AddBonus(card.StatBonus{Stat: card.StatLore, Amount: e.Amount, Duration: e.Duration})
	}
	return nil
}

// GrantKeyword stamps a keyword ability recipe onto every target. Each
// target gets its own copy of its Definition carrying the extra recipe,
// so other copies of the same card are unaffected. The grant has no
// duration: it lasts as long as the instance keeps that Definition.
type GrantKeyword struct {
	Keyword      string
	KeywordValue int
}

func (e GrantKeyword) Apply(rc *ResolveContext, a Action) []events.Context {
	for _, t := range a.Targets {
		def := *t.Def
		def.Abilities = append(append([]card.AbilityRecipe(nil), t.Def.Abilities...), card.AbilityRecipe{
			Type: card.AbilityKeyword, Keyword: e.Keyword, KeywordValue: e.KeywordValue,
		})
		t.Def = &def
	}
	return nil
}

// PreventDamage marks targets, via the metadata bag, so that the next
// DealDamage hitting them is reduced by up to n. That DealDamage
// consumes the whole mark, even if less than n was prevented; the mark
// does not expire at turn end.
type PreventDamage struct{ Amount int }

func (e PreventDamage) Apply(rc *ResolveContext, a Action) []events.Context {
	for _, t := range a.Targets {
		t.Metadata["prevent_damage"] = e.Amount
	}
	return nil
}

// ModifyCost adjusts the ink cost of every targeted (still-in-hand)
// card by Delta, accumulating on top of any prior modification. The
// delta lives in the card instance's own metadata bag, which is the
// single place the validator's affordability check (LegalMoves) and
// the engine's play-cost calculation (applyPlay) both consult.
type ModifyCost struct {
	Delta int
}

func (e ModifyCost) Apply(rc *ResolveContext, a Action) []events.Context {
	for _, t := range a.Targets {
		delta, _ := t.Metadata["cost_delta"].(int)
		t.Metadata["cost_delta"] = delta + e.Delta
	}
	return nil
}

// PreventEvent names an event type to prevent. Its Apply changes no
// state and emits no events, and no interceptor reads it, so applying
// it has no effect on later events.
type PreventEvent struct{ EventType events.Type }

func (e PreventEvent) Apply(rc *ResolveContext, a Action) []events.Context {
	return nil
}

// LookAtTopN is a no-op state mutation — its targets (the top n cards)
// were already resolved by the TopNCardsOfDeck selector. Its Apply
// changes no state and emits no events.
type LookAtTopN struct{}

func (e LookAtTopN) Apply(rc *ResolveContext, a Action) []events.Context {
	return nil
}

// MoveDamage shifts already-applied damage from one target to
// another; Targets[0] is the source of the damage, Targets[1] the
// destination.
type MoveDamage struct{ Amount int }

func (e MoveDamage) Apply(rc *ResolveContext, a Action) []events.Context {
	if len(a.Targets) < 2 {
		return nil
	}
	from, to := a.Targets[0], a.Targets[1]
	amount := e.Amount
	if amount > from.Damage {
		amount = from.Damage
	}
	from.Heal(amount)
	to.ApplyDamage(amount)
	out := []events.Context{events.New(events.CharacterDamaged, a.SourceID, to.InstanceID, a.Controller).WithAmount(amount)}
	if !to.Alive() {
		out = append(out, banishEvents(rc, to, a.SourceID)...)
	}
	return out
}

// PlayForFree marks the target card instance (still in hand) as
// payable with zero ink via metadata; the validator consults this when
// computing legal PlayMoves. The mark is not cleared at turn end.
type PlayForFree struct{}

func (e PlayForFree) Apply(rc *ResolveContext, a Action) []events.Context {
	for _, t := range a.Targets {
		t.Metadata["play_for_free"] = true
	}
	return nil
}

// Composite applies a fixed sequence of effects to the same targets,
// in order, concatenating their emitted events.
type Composite struct{ Effects []Effect }

func (e Composite) Apply(rc *ResolveContext, a Action) []events.Context {
	var out []events.Context
	for _, sub := range e.Effects {
		out = append(out, sub.Apply(rc, a)...)
	}
	return out
}

// Modal applies exactly one of several effects, chosen ahead of time
// by the caller and stored as Selected (modal choices are resolved by
// a choice request before the Action is ever enqueued).
type Modal struct {
	Selected Effect
}

func (e Modal) Apply(rc *ResolveContext, a Action) []events.Context {
	if e.Selected == nil {
		return nil
	}
	return e.Selected.Apply(rc, a)
}

// Conditional applies Then if Predicate holds for the resolve
// context, otherwise applies Else (which may be nil).
type Conditional struct {
	Predicate func(rc *ResolveContext, a Action) bool
	Then      Effect
	Else      Effect
}

func (e Conditional) Apply(rc *ResolveContext, a Action) []events.Context {
	if e.Predicate(rc, a) {
		return e.Then.Apply(rc, a)
	}
	if e.Else != nil {
		return e.Else.Apply(rc, a)
	}
	return nil
}
