// Package validator implements the pure move validator: legal-move
// enumeration and move-membership validation. It never mutates state.
package validator

// Kind discriminates the closed set of move types a player can submit.
type Kind string

const (
	KindInk            Kind = "INK"
	KindPlay           Kind = "PLAY"
	KindQuest          Kind = "QUEST"
	KindChallenge      Kind = "CHALLENGE"
	KindSing           Kind = "SING"
	KindActivate       Kind = "ACTIVATE"
	KindMoveToLocation Kind = "MOVE_TO_LOCATION"
	KindChoice         Kind = "CHOICE"
	KindPass           Kind = "PASS"
)

// Move is a single player-submitted action. Every field is optional
// except those implied by Kind; validator/engine code switches
// exhaustively on Kind rather than modeling each move as its own type,
// so a move can cross the wire (and round-trip through JSON) as one
// flat, predictable shape.
type Move struct {
	Kind Kind

	InstanceID string // Ink/Play/Quest/Activate/MoveToLocation source, Sing's song card

	// Challenge
	AttackerID string
	DefenderID string

	// Play (Shift): the already-in-play instance being shifted onto.
	ShiftTargetID string

	// Sing / Sing Together
	SingerIDs []string

	// Activate
	AbilityName string

	// MoveToLocation
	LocationInstanceID string

	// Choice
	ChoiceID string
	OptionID string
}

// Ink builds an InkMove.
func Ink(instanceID string) Move { return Move{Kind: KindInk, InstanceID: instanceID} }

// Play builds a PlayMove with no alternate cost.
func Play(instanceID string) Move { return Move{Kind: KindPlay, InstanceID: instanceID} }

// PlayWithShift builds a PlayMove using Shift onto an existing instance.
func PlayWithShift(instanceID, shiftTargetID string) Move {
	return Move{Kind: KindPlay, InstanceID: instanceID, ShiftTargetID: shiftTargetID}
}

// Quest builds a QuestMove.
func Quest(instanceID string) Move { return Move{Kind: KindQuest, InstanceID: instanceID} }

// Challenge builds a ChallengeMove.
func Challenge(attackerID, defenderID string) Move {
	return Move{Kind: KindChallenge, AttackerID: attackerID, DefenderID: defenderID}
}

// Sing builds a SingMove, optionally with additional singers for Sing
// Together (singerIDs includes the primary singer too).
func Sing(songInstanceID string, singerIDs ...string) Move {
	return Move{Kind: KindSing, InstanceID: songInstanceID, SingerIDs: singerIDs}
}

// Activate builds an ActivateMove.
func Activate(instanceID, abilityName string) Move {
	return Move{Kind: KindActivate, InstanceID: instanceID, AbilityName: abilityName}
}

// MoveToLocation builds a MoveToLocationMove.
func MoveToLocation(instanceID, locationInstanceID string) Move {
	return Move{Kind: KindMoveToLocation, InstanceID: instanceID, LocationInstanceID: locationInstanceID}
}

// Choice builds a ChoiceMove.
func Choice(choiceID, optionID string) Move {
	return Move{Kind: KindChoice, ChoiceID: choiceID, OptionID: optionID}
}

// Pass builds a PassMove.
func Pass() Move { return Move{Kind: KindPass} }
