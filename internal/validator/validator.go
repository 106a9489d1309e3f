package validator

import (
	"github.com/inkforge/engine/internal/ability"
	"github.com/inkforge/engine/internal/card"
	"github.com/inkforge/engine/internal/choice"
	"github.com/inkforge/engine/internal/state"
	"github.com/inkforge/engine/internal/zone"
)

// Validator computes and checks legal moves. It never mutates the
// state it's given — every method here is safe to call repeatedly
// while exploring hypothetical moves, which is exactly how the engine
// uses it: once to enumerate legal moves, again to validate the move
// actually submitted.
type Validator struct {
	// Registry resolves an activated ability's name to its cost/effect
	// so LegalMoves can offer only abilities that are actually payable.
	// Left nil in tests that never exercise UseActivatedAbility.
	Registry *ability.Registry
}

// New constructs a move validator.
func New() *Validator {
	return &Validator{}
}

// effectiveCost is a card's printed cost adjusted by any ModifyCost
// effects recorded on its own metadata bag, floored at 0.
func effectiveCost(c *card.Instance) int {
	cost := int(c.Def.Cost)
	if delta, ok := c.Metadata["cost_delta"].(int); ok {
		cost += delta
		if cost < 0 {
			cost = 0
		}
	}
	return cost
}

func otherPlayer(s *state.State, p *zone.Player) *zone.Player {
	for _, other := range s.Players {
		if other.ID != p.ID {
			return other
		}
	}
	return nil
}

// challengeableDefenders returns the opposing characters a challenge
// may legally target: exerted (or Reckless-forced... Reckless affects
// the attacker, not defenders) characters with dry ink are
// challengeable; if any carry Bodyguard, only Bodyguards are legal
// targets even if one would be the sole, already-doomed option.
func challengeableDefenders(opponent *zone.Player) []*card.Instance {
	var candidates []*card.Instance
	for _, c := range opponent.CharactersInPlay() {
		if c.Exerted && c.IsDry {
			candidates = append(candidates, c)
		}
	}
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

// singTogetherMoves enumerates every legal multi-singer grouping for a
// song card: each ready, dry character with Singer contributes its
// effective singer value (ability.EffectiveSingerValue), and a group
// is legal once its total meets ability.SingTogetherThreshold for the
// song's cost. To keep the move list bounded, at most one group is
// offered per starting singer: that singer plus the other singers, in
// play order, added until the total meets the threshold. A singer that
// covers the threshold alone starts no group; not every subset is offered.
func singTogetherMoves(p *zone.Player, song *card.Instance) []Move {
	var singers []*card.Instance
	for _, c := range p.CharactersInPlay() {
		if c.IsDry && !c.Exerted && c.HasKeyword("Singer") {
			singers = append(singers, c)
		}
	}
	threshold := ability.SingTogetherThreshold(int(song.Def.Cost))
	var moves []Move
	for i := range singers {
		total := ability.EffectiveSingerValue(singers[i])
		group := []string{singers[i].InstanceID}
		if total >= threshold {
			continue // a single singer already covers it; handled by the plain Sing move
		}
		for j := range singers {
			if j == i {
				continue
			}
			total += ability.EffectiveSingerValue(singers[j])
			group = append(group, singers[j].InstanceID)
			if total >= threshold {
				break
			}
		}
		if total >= threshold && len(group) > 1 {
			moves = append(moves, Sing(song.InstanceID, group...))
		}
	}
	return moves
}

// LegalMoves enumerates every move usable in the current state. If a
// choice is pending, only ChoiceMoves for the outstanding request (one
// per option) are legal — every other move kind is rejected while a
// choice is outstanding.
func (v *Validator) LegalMoves(s *state.State, choices *choice.Manager) []Move {
	if choices.IsPaused() {
		req := choices.Pending()
		moves := make([]Move, 0, len(req.Options))
		for _, o := range req.Options {
			moves = append(moves, Choice(req.ChoiceID, o.ID))
		}
		return moves
	}
	if s.GameOver {
		return nil
	}
	if s.Phase != state.PhaseMain {
		return nil
	}

	p := s.CurrentPlayer()
	opponent := otherPlayer(s, p)
	var moves []Move

	if !p.Flags.InkedThisTurn {
		for _, c := range p.Hand {
			if c.CanInk() {
				moves = append(moves, Ink(c.InstanceID))
			}
		}
	}

	for _, c := range p.Hand {
		freeToPlay := c.Metadata["play_for_free"] == true
		if effectiveCost(c) <= p.AvailableInk() || freeToPlay {
			moves = append(moves, Play(c.InstanceID))
		}
		if shiftValue, ok := c.Metadata["shift_value"].(int); ok {
			for _, onBoard := range p.CharactersInPlay() {
				if onBoard.Def.Name == c.Def.Name && shiftValue <= p.AvailableInk() {
					moves = append(moves, PlayWithShift(c.InstanceID, onBoard.InstanceID))
				}
			}
		}
	}

	for _, c := range p.CharactersInPlay() {
		if c.CanQuest() {
			moves = append(moves, Quest(c.InstanceID))
		}
	}

	// Reckless forces its character to challenge if able: while any
	// Reckless character has a legal challenge target, Pass is withheld
	// so the turn can't end without addressing it.
	recklessMustChallenge := false

	legalDefenders := challengeableDefenders(opponent)
	for _, attacker := range p.CharactersInPlay() {
		if !attacker.CanChallenge() {
			continue
		}
		for _, defender := range legalDefenders {
			if defender.HasKeyword("Evasive") && !attacker.HasKeyword("Evasive") {
				continue
			}
			moves = append(moves, Challenge(attacker.InstanceID, defender.InstanceID))
			if attacker.HasKeyword("Reckless") {
				recklessMustChallenge = true
			}
		}
	}

	for _, c := range p.Hand {
		if c.Def.Type != card.TypeAction || !c.Def.HasSubtype("Song") {
			continue
		}
		for _, singer := range p.CharactersInPlay() {
			if singer.IsDry && !singer.Exerted && singer.HasKeyword("Singer") &&
				singer.KeywordValue("Singer") >= int(c.Def.Cost) {
				moves = append(moves, Sing(c.InstanceID, singer.InstanceID))
			}
		}
		moves = append(moves, singTogetherMoves(p, c)...)
	}

	moves = append(moves, v.activateMoves(s, p)...)
	moves = append(moves, moveToLocationMoves(p)...)

	if !recklessMustChallenge {
		moves = append(moves, Pass())
	}
	return moves
}

// activateMoves enumerates every UseActivatedAbility move: one per
// printed activated-ability recipe on a character in play whose cost
// is currently payable. Registry may be nil (tests that never build
// one), in which case no activated abilities are ever offered.
func (v *Validator) activateMoves(s *state.State, p *zone.Player) []Move {
	if v.Registry == nil {
		return nil
	}
	rc := &ability.ResolveContext{State: s}
	var moves []Move
	for _, c := range p.CharactersInPlay() {
		for _, recipe := range c.Def.Abilities {
			if recipe.Type != card.AbilityActivated {
				continue
			}
			factory, ok := v.Registry.Lookup(recipe.Name)
			if !ok {
				continue
			}
			built := factory(c.Def, recipe)
			if built.Cost != nil && !built.Cost.CanPay(rc, p.ID, c.InstanceID) {
				continue
			}
			moves = append(moves, Activate(c.InstanceID, recipe.Name))
		}
	}
	return moves
}

// moveToLocationMoves enumerates every legal MoveCharacterToLocation
// move: any character not already there paired with any location in
// play whose move cost is currently affordable.
func moveToLocationMoves(p *zone.Player) []Move {
	var locations []*card.Instance
	for _, c := range p.Play {
		if c.Def.Type == card.TypeLocation {
			locations = append(locations, c)
		}
	}
	if len(locations) == 0 {
		return nil
	}
	var moves []Move
	for _, c := range p.CharactersInPlay() {
		for _, loc := range locations {
			if c.AtLocation == loc.InstanceID {
				continue
			}
			if loc.Def.MoveCost <= p.AvailableInk() {
				moves = append(moves, MoveToLocation(c.InstanceID, loc.InstanceID))
			}
		}
	}
	return moves
}

// Validate reports whether m is present in the current legal-move
// set — the sole legality test the engine needs, since a move that
// doesn't appear in LegalMoves can never be legal by construction.
func (v *Validator) Validate(s *state.State, choices *choice.Manager, m Move) bool {
	for _, legal := range v.LegalMoves(s, choices) {
		if movesEqual(legal, m) {
			return true
		}
	}
	return false
}

// movesEqual compares two moves field by field. Move is not a
// comparable type (SingerIDs is a slice), so equality is spelled out
// rather than using ==; a Sing move matches regardless of singer
// order, since the set of chosen singers is what matters.
func movesEqual(a, b Move) bool {
	if a.Kind != b.Kind || a.InstanceID != b.InstanceID || a.AttackerID != b.AttackerID ||
		a.DefenderID != b.DefenderID || a.ShiftTargetID != b.ShiftTargetID ||
		a.AbilityName != b.AbilityName || a.LocationInstanceID != b.LocationInstanceID ||
		a.ChoiceID != b.ChoiceID || a.OptionID != b.OptionID {
		return false
	}
	if len(a.SingerIDs) != len(b.SingerIDs) {
		return false
	}
	seen := make(map[string]bool, len(a.SingerIDs))
	for _, id := range a.SingerIDs {
		seen[id] = true
	}
	for _, id := range b.SingerIDs {
		if !seen[id] {
			return false
		}
	}
	return true
}
