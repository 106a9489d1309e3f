package ability

import "github.com/inkforge/engine/internal/events"

// Trigger decides whether an incoming event should fire this
// ability's effect for the given source card.
type Trigger func(ctx events.Context, rc *ResolveContext, sourceID string) bool

func ofType(t events.Type) Trigger {
	return func(ctx events.Context, rc *ResolveContext, sourceID string) bool {
		return ctx.Type == t
	}
}

func fromSelf(base Trigger) Trigger {
	return func(ctx events.Context, rc *ResolveContext, sourceID string) bool {
		return ctx.SourceID == sourceID && base(ctx, rc, sourceID)
	}
}

// WhenPlayed fires when the source card itself is played.
func WhenPlayed() Trigger { return fromSelf(ofType(events.CharacterPlayed)) }

// WhenQuests fires when the source character quests.
func WhenQuests() Trigger { return fromSelf(ofType(events.CharacterQuests)) }

// targetIsSelf matches events that record their affected instance in
// TargetID rather than SourceID (every "something happened to a
// character" event: damaged, healed, banished, exerted, readied,
// returned — the instigator occupies SourceID there, not the
// instance itself).
func targetIsSelf(base Trigger) Trigger {
	return func(ctx events.Context, rc *ResolveContext, sourceID string) bool {
		return ctx.TargetID == sourceID && base(ctx, rc, sourceID)
	}
}

// WhenBanished fires when the source character is banished.
func WhenBanished() Trigger { return targetIsSelf(ofType(events.CharacterBanished)) }

// WhenEntersPlay fires when the source is played as a character; a
// Shift play does not publish CharacterEntered, so it does not fire then.
func WhenEntersPlay() Trigger { return fromSelf(ofType(events.CharacterEntered)) }

// WhenLeavesPlay fires any time the source leaves play for any reason.
func WhenLeavesPlay() Trigger { return targetIsSelf(ofType(events.CharacterLeft)) }

// WheneverOpponentPlaysSong fires when the opponent plays a song.
func WheneverOpponentPlaysSong() Trigger {
	return func(ctx events.Context, rc *ResolveContext, sourceID string) bool {
		if ctx.Type != events.SongPlayed {
			return false
		}
		src := rc.SourceInstance(sourceID)
		return src != nil && ctx.PlayerID != src.Controller
	}
}

// WheneverYouDraw fires when the source's controller draws a card
// (excluding the automatic turn draw is a design choice left to the
// effect text, not the trigger — this fires on every CardDrawn).
func WheneverYouDraw() Trigger {
	return func(ctx events.Context, rc *ResolveContext, sourceID string) bool {
		if ctx.Type != events.CardDrawn {
			return false
		}
		src := rc.SourceInstance(sourceID)
		return src != nil && ctx.PlayerID == src.Controller
	}
}

// WheneverCharacterIsChallenged fires whenever any character the
// source's controller controls is challenged.
func WheneverCharacterIsChallenged() Trigger {
	return func(ctx events.Context, rc *ResolveContext, sourceID string) bool {
		if ctx.Type != events.CharacterChallenged {
			return false
		}
		src := rc.SourceInstance(sourceID)
		target := rc.SourceInstance(ctx.TargetID)
		return src != nil && target != nil && target.Controller == src.Controller
	}
}

// AtStartOfTurn fires on TurnBegins for the active player.
func AtStartOfTurn() Trigger { return ofType(events.TurnBegins) }

// AtEndOfTurn fires on TurnEnds.
func AtEndOfTurn() Trigger { return ofType(events.TurnEnds) }

// DuringYourTurn gates a base trigger so it only fires on the
// source's controller's own turn.
func DuringYourTurn(base Trigger) Trigger {
	return func(ctx events.Context, rc *ResolveContext, sourceID string) bool {
		src := rc.SourceInstance(sourceID)
		if src == nil {
			return false
		}
		if rc.State.CurrentPlayer().ID != src.Controller {
			return false
		}
		return base(ctx, rc, sourceID)
	}
}

// AllOf combines triggers conjunctively.
func AllOf(triggers ...Trigger) Trigger {
	return func(ctx events.Context, rc *ResolveContext, sourceID string) bool {
		for _, t := range triggers {
			if !t(ctx, rc, sourceID) {
				return false
			}
		}
		return true
	}
}

// AnyOf combines triggers disjunctively.
func AnyOf(triggers ...Trigger) Trigger {
	return func(ctx events.Context, rc *ResolveContext, sourceID string) bool {
		for _, t := range triggers {
			if t(ctx, rc, sourceID) {
				return true
			}
		}
		return false
	}
}

// WhenCondition gates a base trigger behind an additional runtime
// predicate over the resolve context (e.g. "only if you have 3 or
// more characters in play").
func WhenCondition(base Trigger, cond func(rc *ResolveContext, sourceID string) bool) Trigger {
	return func(ctx events.Context, rc *ResolveContext, sourceID string) bool {
		return base(ctx, rc, sourceID) && cond(rc, sourceID)
	}
}
