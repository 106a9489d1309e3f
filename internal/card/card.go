// Package card implements the card data model: immutable card
// definitions shared across copies, and the mutable runtime instance
// state for a specific copy sitting in a zone.
package card

import "github.com/google/uuid"

// Color is one of the ink colors a card is printed in.
type Color string

const (
	Amber    Color = "AMBER"
	Amethyst Color = "AMETHYST"
	Emerald  Color = "EMERALD"
	Ruby     Color = "RUBY"
	Sapphire Color = "SAPPHIRE"
	Steel    Color = "STEEL"
)

// Rarity is the printed rarity of a card.
type Rarity string

const (
	Common    Rarity = "COMMON"
	Uncommon  Rarity = "UNCOMMON"
	Rare      Rarity = "RARE"
	SuperRare Rarity = "SUPER_RARE"
	Legendary Rarity = "LEGENDARY"
	Enchanted Rarity = "ENCHANTED"
)

// Type is the card's functional type.
type Type string

const (
	TypeCharacter Type = "CHARACTER"
	TypeAction    Type = "ACTION"
	TypeItem      Type = "ITEM"
	TypeLocation  Type = "LOCATION"
)

// AbilityType distinguishes how an ability recipe is invoked.
type AbilityType string

const (
	AbilityKeyword    AbilityType = "keyword"
	AbilityTriggered  AbilityType = "triggered"
	AbilityStatic     AbilityType = "static"
	AbilityActivated  AbilityType = "activated"
)

// AbilityRecipe is the data-driven description of an ability as read
// from a card definition; the ability registry turns the Name into a
// concrete behavior at load time.
type AbilityRecipe struct {
	Name         string
	Type         AbilityType
	Keyword      string
	KeywordValue int
	EffectText   string
	FullText     string
}

// Definition is the immutable, shared description of a card as
// printed. Every Instance of the same printing points at the same
// Definition.
type Definition struct {
	ID       uint32
	Name     string
	Version  string
	FullName string
	Cost     uint8
	Color    Color
	Inkable  bool
	Rarity   Rarity
	SetCode  string
	Number   int
	Story    string
	Type     Type
	Subtypes []string
	Abilities []AbilityRecipe

	// Character-only fields.
	Strength  int
	Willpower int
	Lore      int

	// Location-only fields.
	MoveCost     int // ink cost to move a character to this location
	LocationLore int
}

// HasSubtype reports whether the definition carries the named subtype.
func (d *Definition) HasSubtype(name string) bool {
	for _, s := range d.Subtypes {
		if s == name {
			return true
		}
	}
	return false
}

// Duration describes how long a temporary stat bonus lasts.
type Duration string

const (
	Permanent      Duration = "permanent"
	ThisTurn       Duration = "this_turn"
	ThisChallenge  Duration = "this_challenge"
	UntilNextTurn  Duration = "until_next_turn"
)

// StatBonus is a single temporary or permanent modifier to strength,
// willpower or lore.
type StatBonus struct {
	Stat     Stat
	Amount   int
	Duration Duration
}

// Stat names the attribute a StatBonus applies to.
type Stat string

const (
	StatStrength  Stat = "strength"
	StatWillpower Stat = "willpower"
	StatLore      Stat = "lore"
)

// Location names the zone a card instance currently occupies.
type Location string

const (
	LocDeck     Location = "deck"
	LocHand     Location = "hand"
	LocInkwell  Location = "inkwell"
	LocPlay     Location = "play"
	LocDiscard  Location = "discard"
)

// ResolvedAbility is a composable ability bound to a specific
// instance, built from its recipe the moment it starts being relevant
// (entering play, being registered with the event bus). It is never
// serialized; it is rebuilt from the recipe whenever needed so there
// is no stale-pointer risk across turns.
type ResolvedAbility struct {
	Recipe  AbilityRecipe
	Handle  int // event bus subscription handle (the bus numbers handles from 0)
}

// Instance is the mutable runtime state of one physical copy of a
// card sitting somewhere in a game.
type Instance struct {
	InstanceID   string
	Def          *Definition
	Controller   string
	Location     Location

	Damage       int
	Exerted      bool
	IsDry        bool
	ActedThisTurn bool

	Bonuses      []StatBonus
	Metadata     map[string]any
	Abilities    []ResolvedAbility

	// AtLocation is set when this character has moved to a Location
	// card; empty otherwise.
	AtLocation string
}

// NewInstance creates a fresh, undamaged, ready, wet-ink instance of
// the given definition for the given controller, with a freshly
// generated InstanceID distinguishing it from every other copy of the
// same Definition.
func NewInstance(def *Definition, controller string) *Instance {
	return &Instance{
		InstanceID: uuid.NewString(),
		Def:        def,
		Controller: controller,
		Location:   LocDeck,
		Metadata:   make(map[string]any),
	}
}

func (i *Instance) bonusSum(stat Stat) int {
	total := 0
	for _, b := range i.Bonuses {
		if b.Stat == stat {
			total += b.Amount
		}
	}
	return total
}

// CurrentStrength is the printed strength plus any active bonuses.
func (i *Instance) CurrentStrength() int {
	return i.Def.Strength + i.bonusSum(StatStrength)
}

// CurrentWillpower is the printed willpower plus any active bonuses.
func (i *Instance) CurrentWillpower() int {
	return i.Def.Willpower + i.bonusSum(StatWillpower)
}

// CurrentLore is the printed lore value plus any active bonuses —
// this is the lore a character grants when it quests, not a player's
// total lore.
func (i *Instance) CurrentLore() int {
	return i.Def.Lore + i.bonusSum(StatLore)
}

// Alive reports whether the instance has not taken lethal damage.
func (i *Instance) Alive() bool {
	return i.Damage < i.CurrentWillpower()
}

// HasKeyword reports whether a keyword ability recipe with the given
// name is printed on this instance's definition.
func (i *Instance) HasKeyword(keyword string) bool {
	for _, a := range i.Def.Abilities {
		if a.Type == AbilityKeyword && a.Keyword == keyword {
			return true
		}
	}
	return false
}

// KeywordValue returns the numeric value of a valued keyword (Resist
// N, Challenger +N, Singer N, Shift N), or 0 if absent.
func (i *Instance) KeywordValue(keyword string) int {
	for _, a := range i.Def.Abilities {
		if a.Type == AbilityKeyword && a.Keyword == keyword {
			return a.KeywordValue
		}
	}
	return 0
}

// CanInk reports whether this instance may be placed in the inkwell:
// it must be in hand and printed inkable.
func (i *Instance) CanInk() bool {
	return i.Location == LocHand && i.Def.Inkable
}

// CanQuest reports whether a character can quest: in play, dry ink,
// not exerted, and alive. Reckless characters can never quest.
func (i *Instance) CanQuest() bool {
	return i.Def.Type == TypeCharacter && i.Location == LocPlay &&
		i.IsDry && !i.Exerted && i.Alive() && !i.HasKeyword("Reckless")
}

// CanChallenge reports whether a character can challenge. Rush grants
// an exception to the dry-ink requirement: a Rush character may
// challenge the turn it's played, while its ink is still wet.
func (i *Instance) CanChallenge() bool {
	if i.Def.Type != TypeCharacter || i.Location != LocPlay || i.Exerted || !i.Alive() {
		return false
	}
	if i.IsDry {
		return true
	}
	return i.HasKeyword("Rush")
}

// ApplyDamage adds damage; a zero or negative amount is ignored.
// Resist and damage prevention are not applied here — callers reduce
// the amount before calling.
func (i *Instance) ApplyDamage(amount int) {
	if amount <= 0 {
		return
	}
	i.Damage += amount
}

// Heal removes damage, never taking it below 0.
func (i *Instance) Heal(amount int) {
	i.Damage -= amount
	if i.Damage < 0 {
		i.Damage = 0
	}
}

// Exert marks the instance exerted and records that it acted this turn.
func (i *Instance) Exert() {
	i.Exerted = true
	i.ActedThisTurn = true
}

// Ready clears the exerted flag. It does not clear ActedThisTurn —
// the ready step clears that flag itself.
func (i *Instance) Ready() {
	i.Exerted = false
}

// AddBonus appends a temporary or permanent stat modifier.
func (i *Instance) AddBonus(b StatBonus) {
	i.Bonuses = append(i.Bonuses, b)
}

// ClearBonuses drops every bonus matching the given duration. Called
// by the turn-end cleanup for this-turn bonuses.
func (i *Instance) ClearBonuses(d Duration) {
	kept := i.Bonuses[:0]
	for _, b := range i.Bonuses {
		if b.Duration != d {
			kept = append(kept, b)
		}
	}
	i.Bonuses = kept
}
