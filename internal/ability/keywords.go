package ability

import (
	"github.com/inkforge/engine/internal/card"
	"github.com/inkforge/engine/internal/events"
)

func never(ctx events.Context, rc *ResolveContext, sourceID string) bool { return false }

func staticKeyword(name string) Factory {
	return func(def *card.Definition, recipe card.AbilityRecipe) Ability {
		return Ability{Name: name, Trigger: never}
	}
}

// RegisterKeywords installs a factory for every keyword in the
// printed keyword table. Most keywords (Ward, Evasive, Bodyguard,
// Rush, Challenger, Reckless, Singer, Vanish) are consulted
// directly as HasKeyword/KeywordValue checks by the validator and
// effect layer rather than driving their own trigger/effect pair. Shift
// is not read that way: a Shift play is offered and priced from the
// hand card's "shift_value" metadata entry, and the Shift keyword's
// own value is not consulted. The
// Python source's event_system.py explicitly routes Rush/Evasive/
// Bodyguard to "affects move validation, not events". Registering a
// no-op static ability for them here means Build never logs a
// spurious "unknown ability" warning for a perfectly legal printed
// keyword, and gives every keyword a uniform home in the registry.
func RegisterKeywords(r *Registry) {
	for _, name := range []string{
		"Resist", "Ward", "Evasive", "Bodyguard", "Rush",
		"Challenger", "Reckless", "Singer", "Shift", "Vanish",
	} {
		r.Register(name, staticKeyword(name))
	}

	// Support is the one keyword that genuinely drives an effect: when
	// the character quests, its current strength is added to the
	// strength of a chosen character of its controller (itself included)
	// for the turn.
	r.Register("Support", func(def *card.Definition, recipe card.AbilityRecipe) Ability {
		return Ability{
			Name:    "Support",
			Trigger: fromSelf(ofType(events.CharacterQuests)),
			Target:  ChosenCharacter("Choose a character to receive Support", "Support"),
			Effect:  supportEffect{},
		}
	})
}

// supportEffect grants the source's current strength, not a fixed
// amount, so it must read the source instance at apply time rather
// than close over a printed value.
type supportEffect struct{}

func (supportEffect) Apply(rc *ResolveContext, a Action) []events.Context {
	src := rc.SourceInstance(a.SourceID)
	if src == nil || len(a.Targets) == 0 {
		return nil
	}
	amount := src.CurrentStrength()
	for _, t := range a.Targets {
		t.AddBonus(card.StatBonus{Stat: card.StatStrength, Amount: amount, Duration: card.ThisTurn})
	}
	return nil
}

// SingTogetherThreshold returns the minimum combined "singer value"
// required to sing a song with the given printed Singer cost via Sing
// Together, per the literal reading adopted for this implementation's
// Open Question 2: the sum of the effective singer values of every
// chosen singer must be >= the song's singer cost.
func SingTogetherThreshold(songSingerCost int) int {
	return songSingerCost
}

// EffectiveSingerValue is a character's contribution toward a Sing
// Together group: its own cost, unless it carries Singer N, in which
// case N is used instead (a Singer N character "sings" as if its cost
// were N for Sing Together purposes).
func EffectiveSingerValue(c *card.Instance) int {
	if c.HasKeyword("Singer") {
		return c.KeywordValue("Singer")
	}
	return int(c.Def.Cost)
}
