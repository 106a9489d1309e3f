package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkforge/engine/internal/ability"
	"github.com/inkforge/engine/internal/card"
	"github.com/inkforge/engine/internal/choice"
	"github.com/inkforge/engine/internal/state"
	"github.com/inkforge/engine/internal/zone"
)

func inPlayChar(name string, controller string, dry bool, exerted bool) *card.Instance {
	def := &card.Definition{Name: name, Type: card.TypeCharacter, Cost: 2, Strength: 2, Willpower: 2, Lore: 1}
	inst := card.NewInstance(def, controller)
	inst.Location = card.LocPlay
	inst.IsDry = dry
	inst.Exerted = exerted
	return inst
}

func newTestState() (*state.State, *zone.Player, *zone.Player) {
	p0 := zone.NewPlayer("p0", "Alice")
	p1 := zone.NewPlayer("p1", "Bob")
	s := state.New(state.DefaultConfig(), p0, p1)
	s.Phase = state.PhaseMain
	return s, p0, p1
}

func TestLegalMovesAlwaysIncludesPass(t *testing.T) {
	s, _, _ := newTestState()
	v := New()
	moves := v.LegalMoves(s, choice.NewManager())
	assert.Contains(t, moves, Pass())
}

func TestLegalMovesExcludesEverythingWhileChoicePending(t *testing.T) {
	s, _, _ := newTestState()
	cm := choice.NewManager()
	req := choice.NewRequest("p0", "Choose", "", []choice.Option{{ID: "a"}, {ID: "b"}})
	cm.Suspend(req, func(string) {})

	v := New()
	moves := v.LegalMoves(s, cm)
	require.Len(t, moves, 2)
	for _, m := range moves {
		assert.Equal(t, KindChoice, m.Kind)
	}
}

func TestChallengeableDefendersEnforcesBodyguard(t *testing.T) {
	_, _, p1 := newTestState()
	plain := inPlayChar("Raider", "p1", true, true)
	guard := inPlayChar("Guardian", "p1", true, true)
	guard.Def.Abilities = append(guard.Def.Abilities, card.AbilityRecipe{Type: card.AbilityKeyword, Keyword: "Bodyguard"})
	p1.Play = append(p1.Play, plain, guard)

	defenders := challengeableDefenders(p1)
	require.Len(t, defenders, 1)
	assert.Same(t, guard, defenders[0])
}

func TestQuestIsOfferedOnlyForReadyDryCharacters(t *testing.T) {
	s, p0, _ := newTestState()
	ready := inPlayChar("Sentry", "p0", true, false)
	wet := inPlayChar("Puppy", "p0", false, false)
	p0.Play = append(p0.Play, ready, wet)

	v := New()
	moves := v.LegalMoves(s, choice.NewManager())

	var questTargets []string
	for _, m := range moves {
		if m.Kind == KindQuest {
			questTargets = append(questTargets, m.InstanceID)
		}
	}
	require.Len(t, questTargets, 1)
	assert.Equal(t, ready.InstanceID, questTargets[0])
}

func TestChallengeExcludesExertedAttackerAndReadyDefender(t *testing.T) {
	s, p0, p1 := newTestState()
	attacker := inPlayChar("Sentry", "p0", true, false)
	readyDefender := inPlayChar("Guardian", "p1", true, false)
	exertedDefender := inPlayChar("Raider", "p1", true, true)
	p0.Play = append(p0.Play, attacker)
	p1.Play = append(p1.Play, readyDefender, exertedDefender)

	v := New()
	moves := v.LegalMoves(s, choice.NewManager())

	var defenders []string
	for _, m := range moves {
		if m.Kind == KindChallenge {
			defenders = append(defenders, m.DefenderID)
		}
	}
	require.Len(t, defenders, 1)
	assert.Equal(t, exertedDefender.InstanceID, defenders[0])
}

func TestValidateRejectsAMoveNotInTheLegalSet(t *testing.T) {
	s, _, _ := newTestState()
	v := New()
	assert.False(t, v.Validate(s, choice.NewManager(), Quest("does-not-exist")))
	assert.True(t, v.Validate(s, choice.NewManager(), Pass()))
}

func TestMovesEqualIgnoresSingerOrder(t *testing.T) {
	a := Sing("song", "s1", "s2")
	b := Sing("song", "s2", "s1")
	assert.True(t, movesEqual(a, b))

	c := Sing("song", "s1", "s3")
	assert.False(t, movesEqual(a, c))
}

func TestInkIsOfferedOnlyOncePerTurn(t *testing.T) {
	s, p0, _ := newTestState()
	inkable := card.NewInstance(&card.Definition{Name: "Puppy", Inkable: true}, "p0")
	inkable.Location = card.LocHand
	p0.Hand = append(p0.Hand, inkable)

	v := New()
	moves := v.LegalMoves(s, choice.NewManager())
	var inkMoves int
	for _, m := range moves {
		if m.Kind == KindInk {
			inkMoves++
		}
	}
	assert.Equal(t, 1, inkMoves)

	p0.Flags.InkedThisTurn = true
	moves = v.LegalMoves(s, choice.NewManager())
	for _, m := range moves {
		assert.NotEqual(t, KindInk, m.Kind, "already inked this turn")
	}
}

func payableInk(p *zone.Player, n int) {
	for i := 0; i < n; i++ {
		inst := card.NewInstance(&card.Definition{Name: "Ink"}, p.ID)
		inst.Location = card.LocInkwell
		p.Inkwell = append(p.Inkwell, inst)
	}
}

func TestLegalMovesOffersActivateOnlyWhenTheAbilityIsPayable(t *testing.T) {
	s, p0, _ := newTestState()
	r := ability.NewRegistry(nil)
	r.Register("Zap", func(def *card.Definition, recipe card.AbilityRecipe) ability.Ability {
		return ability.Ability{Name: "Zap", Cost: ability.PayInk(1)}
	})
	v := &Validator{Registry: r}

	caster := inPlayChar("Caster", "p0", true, false)
	caster.Def.Abilities = append(caster.Def.Abilities, card.AbilityRecipe{Type: card.AbilityActivated, Name: "Zap"})
	p0.Play = append(p0.Play, caster)

	moves := v.LegalMoves(s, choice.NewManager())
	for _, m := range moves {
		assert.NotEqual(t, KindActivate, m.Kind, "no ink in the well yet, so Zap isn't payable")
	}

	payableInk(p0, 1)
	moves = v.LegalMoves(s, choice.NewManager())
	require.Contains(t, moves, Activate(caster.InstanceID, "Zap"))
}

func TestLegalMovesOffersMoveToLocationForAnAffordableLocation(t *testing.T) {
	s, p0, _ := newTestState()
	v := New()

	wanderer := inPlayChar("Wanderer", "p0", true, false)
	p0.Play = append(p0.Play, wanderer)
	locDef := &card.Definition{Name: "Hall", Type: card.TypeLocation, MoveCost: 2}
	loc := card.NewInstance(locDef, "p0")
	loc.Location = card.LocPlay
	p0.Play = append(p0.Play, loc)

	moves := v.LegalMoves(s, choice.NewManager())
	assert.NotContains(t, moves, MoveToLocation(wanderer.InstanceID, loc.InstanceID), "no ink available yet")

	payableInk(p0, 2)
	moves = v.LegalMoves(s, choice.NewManager())
	require.Contains(t, moves, MoveToLocation(wanderer.InstanceID, loc.InstanceID))

	wanderer.AtLocation = loc.InstanceID
	moves = v.LegalMoves(s, choice.NewManager())
	assert.NotContains(t, moves, MoveToLocation(wanderer.InstanceID, loc.InstanceID), "already there")
}

func TestRecklessWithholdsPassWhileAChallengeIsAvailable(t *testing.T) {
	s, p0, p1 := newTestState()
	v := New()

	berserker := inPlayChar("Berserker", "p0", true, false)
	berserker.Def.Abilities = append(berserker.Def.Abilities, card.AbilityRecipe{Type: card.AbilityKeyword, Keyword: "Reckless"})
	p0.Play = append(p0.Play, berserker)
	defender := inPlayChar("Sentry", "p1", true, true)
	p1.Play = append(p1.Play, defender)

	moves := v.LegalMoves(s, choice.NewManager())
	assert.NotContains(t, moves, Pass(), "Reckless must challenge while a legal target exists")

	defender.Exerted = false
	moves = v.LegalMoves(s, choice.NewManager())
	assert.Contains(t, moves, Pass(), "no legal challenge target, so Pass returns")
}
