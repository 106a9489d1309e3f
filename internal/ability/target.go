package ability

import (
	"github.com/inkforge/engine/internal/card"
	"github.com/inkforge/engine/internal/choice"
)

// Filter narrows a candidate list for a TargetSelector.
type Filter func(candidate *card.Instance) bool

// Named filters to the character with the given printed name.
func Named(name string) Filter {
	return func(c *card.Instance) bool { return c.Def.Name == name }
}

// WithSubtype filters to characters carrying the given subtype.
func WithSubtype(subtype string) Filter {
	return func(c *card.Instance) bool { return c.Def.HasSubtype(subtype) }
}

// WithCostLeq filters to cards printed at cost <= n.
func WithCostLeq(n uint8) Filter {
	return func(c *card.Instance) bool { return c.Def.Cost <= n }
}

// Damaged filters to instances carrying damage.
func Damaged() Filter {
	return func(c *card.Instance) bool { return c.Damage > 0 }
}

// ExertedFilter filters to exerted instances.
func ExertedFilter() Filter {
	return func(c *card.Instance) bool { return c.Exerted }
}

// And composes filters conjunctively.
func And(filters ...Filter) Filter {
	return func(c *card.Instance) bool {
		for _, f := range filters {
			if !f(c) {
				return false
			}
		}
		return true
	}
}

func applyFilters(candidates []*card.Instance, filters []Filter) []*card.Instance {
	if len(filters) == 0 {
		return candidates
	}
	var out []*card.Instance
	for _, c := range candidates {
		if And(filters...)(c) {
			out = append(out, c)
		}
	}
	return out
}

// Selector resolves to a concrete list of targets, possibly asking the
// controller to choose among candidates first. onResolved is invoked
// exactly once: synchronously when no choice is needed, or later (via
// the choice manager's resumption) when one is.
type Selector interface {
	Resolve(rc *ResolveContext, sourceID, controllerID string, onResolved func([]*card.Instance))
}

type simpleSelector func(rc *ResolveContext, sourceID, controllerID string) []*card.Instance

func (f simpleSelector) Resolve(rc *ResolveContext, sourceID, controllerID string, onResolved func([]*card.Instance)) {
	onResolved(f(rc, sourceID, controllerID))
}

// Self resolves to the source character itself.
func Self() Selector {
	return simpleSelector(func(rc *ResolveContext, sourceID, controllerID string) []*card.Instance {
		if src := rc.SourceInstance(sourceID); src != nil {
			return []*card.Instance{src}
		}
		return nil
	})
}

// ControllerSelf is a marker selector meaning "the controlling
// player", used by player-targeting effects (GainLore, DrawCards) that
// don't need a card.Instance target at all; those effects read
// rc/Controller directly instead of iterating Targets.
func ControllerSelf() Selector {
	return simpleSelector(func(rc *ResolveContext, sourceID, controllerID string) []*card.Instance {
		return nil
	})
}

// AllYourCharacters resolves to every one of the controller's
// characters in play matching the optional filters.
func AllYourCharacters(filters ...Filter) Selector {
	return simpleSelector(func(rc *ResolveContext, sourceID, controllerID string) []*card.Instance {
		p := rc.State.PlayerByID(controllerID)
		if p == nil {
			return nil
		}
		return applyFilters(p.CharactersInPlay(), filters)
	})
}

// EachOpponent resolves to the opposing player's controller ID,
// surfaced as a zero-length target slice with the opponent recorded
// via Controller swap in the caller — engine code special-cases
// player-targeted effects by ID, not by Instance.
func EachOpponent() Selector {
	return simpleSelector(func(rc *ResolveContext, sourceID, controllerID string) []*card.Instance {
		return nil
	})
}

// chosenSelector implements the "chosen" family: gather candidates,
// auto-resolve 0 or 1, otherwise surface a choice.
type chosenSelector struct {
	prompt    string
	abilityName string
	candidates func(rc *ResolveContext, controllerID string) []*card.Instance
}

func (s chosenSelector) Resolve(rc *ResolveContext, sourceID, controllerID string, onResolved func([]*card.Instance)) {
	candidates := s.candidates(rc, controllerID)
	switch len(candidates) {
	case 0:
		onResolved(nil)
	case 1:
		onResolved(candidates)
	default:
		opts := make([]choice.Option, 0, len(candidates))
		byID := make(map[string]*card.Instance, len(candidates))
		for _, c := range candidates {
			opts = append(opts, choice.Option{
				ID: c.InstanceID, Description: c.Def.Name, TargetInstanceID: c.InstanceID,
			})
			byID[c.InstanceID] = c
		}
		req := choice.NewRequest(controllerID, s.prompt, s.abilityName, opts)
		rc.Choices.Suspend(req, func(optionID string) {
			if picked, ok := byID[optionID]; ok {
				onResolved([]*card.Instance{picked})
			} else {
				onResolved(nil)
			}
		})
	}
}

// ChosenCharacter lets the controller pick one of their own characters
// matching the filters (e.g. "choose one of your characters").
func ChosenCharacter(prompt, abilityName string, filters ...Filter) Selector {
	return chosenSelector{
		prompt: prompt, abilityName: abilityName,
		candidates: func(rc *ResolveContext, controllerID string) []*card.Instance {
			p := rc.State.PlayerByID(controllerID)
			if p == nil {
				return nil
			}
			return applyFilters(p.CharactersInPlay(), filters)
		},
	}
}

// ChosenOpposingCharacter lets the controller pick one of the
// opponent's characters matching the filters.
func ChosenOpposingCharacter(prompt, abilityName string, filters ...Filter) Selector {
	return chosenSelector{
		prompt: prompt, abilityName: abilityName,
		candidates: func(rc *ResolveContext, controllerID string) []*card.Instance {
			p := rc.State.PlayerByID(controllerID)
			if p == nil {
				return nil
			}
			opponent := rc.State.Players[0]
			if opponent.ID == p.ID {
				opponent = rc.State.Players[1]
			}
			candidates := applyFilters(opponent.CharactersInPlay(), filters)
			return enforceBodyguard(excludeWarded(candidates))
		},
	}
}

// enforceBodyguard narrows a candidate list of opposing characters
// down to Bodyguard-carrying ones, if any are present and able to be
// challenged/targeted — a Bodyguard character must be targeted ahead
// of any other character on its side, even if it would die as the
// sole legal target.
func enforceBodyguard(candidates []*card.Instance) []*card.Instance {
	var bodyguards []*card.Instance
	for _, c := range candidates {
		if c.HasKeyword("Bodyguard") {
			bodyguards = append(bodyguards, c)
		}
	}
	if len(bodyguards) > 0 {
		return bodyguards
	}
	return candidates
}

// excludeWarded drops Ward-carrying characters from an opposing-target
// candidate list. Ward only protects against ability/effect targeting,
// never against a challenge, so it is consulted here and nowhere near
// the combat-targeting path in the validator.
func excludeWarded(candidates []*card.Instance) []*card.Instance {
	out := candidates[:0:0]
	for _, c := range candidates {
		if !c.HasKeyword("Ward") {
			out = append(out, c)
		}
	}
	return out
}

// ChosenCardInHand lets the controller pick one card from their own
// hand, or decline via a trailing "skip" option — unlike ChosenCharacter,
// a single candidate still surfaces a choice, since a "may discard a
// card" ability must always let the controller decline.
func ChosenCardInHand(prompt, abilityName string, filters ...Filter) Selector {
	return optionalHandSelector{prompt: prompt, abilityName: abilityName, filters: filters}
}

type optionalHandSelector struct {
	prompt      string
	abilityName string
	filters     []Filter
}

func (s optionalHandSelector) Resolve(rc *ResolveContext, sourceID, controllerID string, onResolved func([]*card.Instance)) {
	p := rc.State.PlayerByID(controllerID)
	if p == nil {
		onResolved(nil)
		return
	}
	candidates := applyFilters(p.Hand, s.filters)
	if len(candidates) == 0 {
		onResolved(nil)
		return
	}
	opts := make([]choice.Option, 0, len(candidates)+1)
	byID := make(map[string]*card.Instance, len(candidates))
	for _, c := range candidates {
		opts = append(opts, choice.Option{ID: c.InstanceID, Description: c.Def.Name, TargetInstanceID: c.InstanceID})
		byID[c.InstanceID] = c
	}
	opts = append(opts, choice.Option{ID: "skip", Description: "Decline"})
	req := choice.NewRequest(controllerID, s.prompt, s.abilityName, opts)
	rc.Choices.Suspend(req, func(optionID string) {
		if picked, ok := byID[optionID]; ok {
			onResolved([]*card.Instance{picked})
		} else {
			onResolved(nil)
		}
	})
}

// TopNCardsOfDeck resolves to the top n cards of the controller's own
// deck, without moving them — effects like LookAtTopN read Targets as
// a peek, not a zone change.
func TopNCardsOfDeck(n int) Selector {
	return simpleSelector(func(rc *ResolveContext, sourceID, controllerID string) []*card.Instance {
		p := rc.State.PlayerByID(controllerID)
		if p == nil {
			return nil
		}
		k := n
		if k > len(p.Deck) {
			k = len(p.Deck)
		}
		return append([]*card.Instance(nil), p.Deck[:k]...)
	})
}
