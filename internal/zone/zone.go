// Package zone implements deck/hand/inkwell/play/discard zones and
// the per-player state that owns them.
package zone

import (
	"errors"

	"github.com/inkforge/engine/internal/card"
)

// ErrEmptyDeck is returned by Draw when a player's deck has no cards
// left. This is not a fatal condition: the caller (the engine) reacts
// to it by ending the game, not by treating it as an error in the
// error-handling sense.
var ErrEmptyDeck = errors.New("zone: deck is empty")

// TurnFlags track once-per-turn resources that the turn-end cleanup
// handler resets.
type TurnFlags struct {
	InkedThisTurn bool
}

// Player owns the five zones and the lore/turn-flag state for one
// side of the game.
type Player struct {
	ID    string
	Name  string
	Lore  int

	Deck    []*card.Instance
	Hand    []*card.Instance
	Inkwell []*card.Instance
	Play    []*card.Instance
	Discard []*card.Instance

	Flags TurnFlags
}

// NewPlayer constructs a player with every zone empty.
func NewPlayer(id, name string) *Player {
	return &Player{ID: id, Name: name}
}

func removeInstance(list []*card.Instance, inst *card.Instance) []*card.Instance {
	for i, c := range list {
		if c == inst {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// Draw moves the top card of the deck into hand and returns it. It
// returns ErrEmptyDeck, not a panic, when the deck is exhausted — the
// engine turns that into a GameOver message rather than propagating
// an error to the move layer.
func (p *Player) Draw() (*card.Instance, error) {
	if len(p.Deck) == 0 {
		return nil, ErrEmptyDeck
	}
	inst := p.Deck[0]
	p.Deck = p.Deck[1:]
	inst.Location = card.LocHand
	p.Hand = append(p.Hand, inst)
	return inst, nil
}

// PlayFromHand moves a card out of hand into the play zone, whatever
// its type; actions and songs are sent to discard by the caller
// instead of through this method.
func (p *Player) PlayFromHand(inst *card.Instance) {
	p.Hand = removeInstance(p.Hand, inst)
	inst.Location = card.LocPlay
	inst.Controller = p.ID
	p.Play = append(p.Play, inst)
}

// MoveToDiscard removes the card from whichever zone it currently
// occupies and appends it to discard.
func (p *Player) MoveToDiscard(inst *card.Instance) {
	p.removeFromCurrentZone(inst)
	inst.Location = card.LocDiscard
	p.Discard = append(p.Discard, inst)
}

// Banish removes a character from play and sends it to discard —
// distinct from MoveToDiscard only in intent (callers should use this
// for character-death bookkeeping so future zone logic can hook it).
func (p *Player) Banish(inst *card.Instance) {
	p.MoveToDiscard(inst)
}

// ReturnToHand removes the card from its current zone and places it
// back in hand.
func (p *Player) ReturnToHand(inst *card.Instance) {
	p.removeFromCurrentZone(inst)
	inst.Location = card.LocHand
	inst.Damage = 0
	inst.Exerted = false
	inst.IsDry = false
	inst.Bonuses = nil
	p.Hand = append(p.Hand, inst)
}

func (p *Player) removeFromCurrentZone(inst *card.Instance) {
	switch inst.Location {
	case card.LocDeck:
		p.Deck = removeInstance(p.Deck, inst)
	case card.LocHand:
		p.Hand = removeInstance(p.Hand, inst)
	case card.LocInkwell:
		p.Inkwell = removeInstance(p.Inkwell, inst)
	case card.LocPlay:
		p.Play = removeInstance(p.Play, inst)
	case card.LocDiscard:
		p.Discard = removeInstance(p.Discard, inst)
	}
}

// Ink moves a card from hand into the inkwell, ready (SpendInk exerts
// inkwell cards to pay; the ready step readies them again), and marks
// the once-per-turn ink flag.
func (p *Player) Ink(inst *card.Instance) {
	p.Hand = removeInstance(p.Hand, inst)
	inst.Location = card.LocInkwell
	p.Inkwell = append(p.Inkwell, inst)
	p.Flags.InkedThisTurn = true
}

// AvailableInk is the number of un-exerted ink in the inkwell — the
// total ink this player can still spend this turn.
func (p *Player) AvailableInk() int {
	n := 0
	for _, c := range p.Inkwell {
		if !c.Exerted {
			n++
		}
	}
	return n
}

// SpendInk exerts n un-exerted inkwell cards to pay a cost. It assumes
// the caller already validated AvailableInk() >= n.
func (p *Player) SpendInk(n int) {
	spent := 0
	for _, c := range p.Inkwell {
		if spent == n {
			break
		}
		if !c.Exerted {
			c.Exerted = true
			spent++
		}
	}
}

// GainLore increases the player's lore. Lore is only ever mutated
// through this method (and LoseLore) so the engine can always emit the
// matching event alongside the mutation.
func (p *Player) GainLore(amount int) {
	p.Lore += amount
}

// LoseLore decreases the player's lore, never below zero.
func (p *Player) LoseLore(amount int) {
	p.Lore -= amount
	if p.Lore < 0 {
		p.Lore = 0
	}
}

// ResetTurnFlags clears once-per-turn state. Called by the engine's
// TurnEnds handler.
func (p *Player) ResetTurnFlags() {
	p.Flags = TurnFlags{}
}

// CharactersInPlay returns the subset of Play that are characters.
func (p *Player) CharactersInPlay() []*card.Instance {
	var out []*card.Instance
	for _, c := range p.Play {
		if c.Def.Type == card.TypeCharacter {
			out = append(out, c)
		}
	}
	return out
}
