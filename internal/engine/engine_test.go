package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkforge/engine/internal/ability"
	"github.com/inkforge/engine/internal/card"
	"github.com/inkforge/engine/internal/state"
	"github.com/inkforge/engine/internal/validator"
	"github.com/inkforge/engine/internal/zone"
)

func fillerDef(name string, cost uint8) *card.Definition {
	return &card.Definition{Name: name, Type: card.TypeCharacter, Cost: cost, Inkable: true, Strength: 1, Willpower: 1, Lore: 1}
}

func addFillers(p *zone.Player, n int) {
	for i := 0; i < n; i++ {
		inst := card.NewInstance(fillerDef("Filler", 1), p.ID)
		inst.Location = card.LocDeck
		p.Deck = append(p.Deck, inst)
	}
}

func newTestEngine(p0, p1 *zone.Player) *Engine {
	s := state.New(state.DefaultConfig(), p0, p1)
	r := ability.NewRegistry(nil)
	ability.RegisterKeywords(r)
	return New(s, r, nil)
}

// drain follows StepExecuted/PhaseTransition messages until something
// requiring a decision (or game over) comes back.
func drain(t *testing.T, e *Engine, msg Message) Message {
	t.Helper()
	for msg.Kind == KindStepExecuted || msg.Kind == KindPhaseTransition {
		next, err := e.NextMessage(nil)
		require.NoError(t, err)
		msg = next
	}
	return msg
}

func submit(t *testing.T, e *Engine, m validator.Move) Message {
	t.Helper()
	msg, err := e.NextMessage(&m)
	require.NoError(t, err)
	return drain(t, e, msg)
}

func TestInkDriesOnlyOnTheReadyStepAfterEnteringPlay(t *testing.T) {
	p0 := zone.NewPlayer("p0", "Alice")
	p1 := zone.NewPlayer("p1", "Bob")
	addFillers(p0, 5)
	addFillers(p1, 5)

	sentryDef := &card.Definition{Name: "Sentry", Type: card.TypeCharacter, Cost: 1, Inkable: true, Strength: 2, Willpower: 2, Lore: 1}
	sentry := card.NewInstance(sentryDef, "p0")
	sentry.Location = card.LocHand
	inkFodder := card.NewInstance(fillerDef("Fodder", 1), "p0")
	inkFodder.Location = card.LocHand
	p0.Hand = append(p0.Hand, inkFodder, sentry)

	e := newTestEngine(p0, p1)
	e.Start()

	first, err := e.NextMessage(nil)
	require.NoError(t, err)
	msg := drain(t, e, first)
	require.Equal(t, KindActionRequired, msg.Kind)
	require.Equal(t, "p0", msg.PlayerToAct)

	msg = submit(t, e, validator.Ink(inkFodder.InstanceID))
	require.Equal(t, KindActionRequired, msg.Kind)

	msg = submit(t, e, validator.Play(sentry.InstanceID))
	require.Equal(t, KindActionRequired, msg.Kind)
	assert.False(t, sentry.IsDry)

	questWhileWet := validator.Quest(sentry.InstanceID)
	_, err = e.NextMessage(&questWhileWet)
	assert.Error(t, err, "wet ink must reject QuestMove")

	msg = submit(t, e, validator.Pass())
	require.Equal(t, KindActionRequired, msg.Kind)
	require.Equal(t, "p1", msg.PlayerToAct, "turn passes to player 1")

	msg = submit(t, e, validator.Pass())
	require.Equal(t, KindActionRequired, msg.Kind)
	require.Equal(t, "p0", msg.PlayerToAct, "turn 2 begins for player 0")
	assert.True(t, sentry.IsDry, "ink dries exactly one Ready step after entering play")

	msg = submit(t, e, validator.Quest(sentry.InstanceID))
	require.Equal(t, KindActionRequired, msg.Kind)
	assert.Equal(t, 1, p0.Lore)
}

func TestBodyguardForcesTheChallengeOntoItself(t *testing.T) {
	p0 := zone.NewPlayer("p0", "Alice")
	p1 := zone.NewPlayer("p1", "Bob")

	raider := card.NewInstance(&card.Definition{Name: "Raider", Type: card.TypeCharacter, Strength: 3, Willpower: 3}, "p0")
	raider.Location = card.LocPlay
	raider.IsDry = true
	p0.Play = append(p0.Play, raider)

	guardianDef := &card.Definition{Name: "Guardian", Type: card.TypeCharacter, Strength: 2, Willpower: 2}
	guardianDef.Abilities = append(guardianDef.Abilities, card.AbilityRecipe{Type: card.AbilityKeyword, Keyword: "Bodyguard"})
	guardian := card.NewInstance(guardianDef, "p1")
	guardian.Location = card.LocPlay
	guardian.IsDry = true
	guardian.Exerted = true

	cleric := card.NewInstance(&card.Definition{Name: "Cleric", Type: card.TypeCharacter, Strength: 2, Willpower: 2}, "p1")
	cleric.Location = card.LocPlay
	cleric.IsDry = true
	cleric.Exerted = true

	p1.Play = append(p1.Play, cleric, guardian)

	e := newTestEngine(p0, p1)
	e.State.Phase = state.PhaseMain
	e.Start()

	first, err := e.NextMessage(nil)
	require.NoError(t, err)
	msg := drain(t, e, first)
	require.Equal(t, KindActionRequired, msg.Kind)

	var defenders []string
	for _, m := range msg.LegalMoves {
		if m.Kind == validator.KindChallenge {
			defenders = append(defenders, m.DefenderID)
		}
	}
	require.Len(t, defenders, 1)
	assert.Equal(t, guardian.InstanceID, defenders[0])

	challengeCleric := validator.Challenge(raider.InstanceID, cleric.InstanceID)
	_, err = e.NextMessage(&challengeCleric)
	assert.Error(t, err, "the Bodyguard must absorb the challenge")

	msg = submit(t, e, validator.Challenge(raider.InstanceID, guardian.InstanceID))
	require.Equal(t, KindActionRequired, msg.Kind)

	assert.Equal(t, 2, raider.Damage, "raider takes the guardian's full strength")
	assert.NotContains(t, p1.Play, guardian, "lethal damage banishes the guardian")
	assert.Contains(t, p1.Discard, guardian)
}

func TestChallengerAddsStrengthOnlyWhileAttacking(t *testing.T) {
	p0 := zone.NewPlayer("p0", "Alice")
	p1 := zone.NewPlayer("p1", "Bob")

	brawlerDef := &card.Definition{Name: "Brawler", Type: card.TypeCharacter, Strength: 2, Willpower: 5}
	brawlerDef.Abilities = append(brawlerDef.Abilities, card.AbilityRecipe{Type: card.AbilityKeyword, Keyword: "Challenger", KeywordValue: 3})
	brawler := card.NewInstance(brawlerDef, "p0")
	brawler.Location = card.LocPlay
	brawler.IsDry = true
	p0.Play = append(p0.Play, brawler)

	target := card.NewInstance(&card.Definition{Name: "Target", Type: card.TypeCharacter, Strength: 1, Willpower: 10}, "p1")
	target.Location = card.LocPlay
	target.IsDry = true
	target.Exerted = true
	p1.Play = append(p1.Play, target)

	e := newTestEngine(p0, p1)
	e.State.Phase = state.PhaseMain
	e.Start()

	first, err := e.NextMessage(nil)
	require.NoError(t, err)
	msg := drain(t, e, first)
	require.Equal(t, KindActionRequired, msg.Kind)

	msg = submit(t, e, validator.Challenge(brawler.InstanceID, target.InstanceID))
	require.Equal(t, KindActionRequired, msg.Kind)

	assert.Equal(t, 5, target.Damage, "the defender takes Brawler's printed strength plus its Challenger +3")
	assert.Equal(t, 1, brawler.Damage, "the attacker still only takes the defender's own strength, no bonus")
}

func TestVanishBanishesTheDefenderBeforeItDealsAnyDamageBack(t *testing.T) {
	p0 := zone.NewPlayer("p0", "Alice")
	p1 := zone.NewPlayer("p1", "Bob")

	attacker := card.NewInstance(&card.Definition{Name: "Hunter", Type: card.TypeCharacter, Strength: 3, Willpower: 3}, "p0")
	attacker.Location = card.LocPlay
	attacker.IsDry = true
	p0.Play = append(p0.Play, attacker)

	ghostDef := &card.Definition{Name: "Ghost", Type: card.TypeCharacter, Strength: 5, Willpower: 5}
	ghostDef.Abilities = append(ghostDef.Abilities, card.AbilityRecipe{Type: card.AbilityKeyword, Keyword: "Vanish"})
	ghost := card.NewInstance(ghostDef, "p1")
	ghost.Location = card.LocPlay
	ghost.IsDry = true
	ghost.Exerted = true
	p1.Play = append(p1.Play, ghost)

	e := newTestEngine(p0, p1)
	e.State.Phase = state.PhaseMain
	e.Start()

	first, err := e.NextMessage(nil)
	require.NoError(t, err)
	msg := drain(t, e, first)
	require.Equal(t, KindActionRequired, msg.Kind)

	msg = submit(t, e, validator.Challenge(attacker.InstanceID, ghost.InstanceID))
	require.Equal(t, KindActionRequired, msg.Kind)

	assert.NotContains(t, p1.Play, ghost, "Vanish banishes the defender outright")
	assert.Contains(t, p1.Discard, ghost)
	assert.Zero(t, attacker.Damage, "a banished Vanish defender never deals its combat damage back")
}

func TestSupportGrantsItsStrengthToAChosenFriendlyOnQuest(t *testing.T) {
	p0 := zone.NewPlayer("p0", "Alice")
	p1 := zone.NewPlayer("p1", "Bob")

	helperDef := &card.Definition{Name: "Helper", Type: card.TypeCharacter, Strength: 2, Willpower: 3, Lore: 1}
	helperDef.Abilities = append(helperDef.Abilities, card.AbilityRecipe{Name: "Support", Type: card.AbilityKeyword, Keyword: "Support"})
	helper := card.NewInstance(helperDef, "p0")
	helper.Location = card.LocPlay
	helper.IsDry = true

	allyDef := &card.Definition{Name: "Ally", Type: card.TypeCharacter, Strength: 1, Willpower: 2, Lore: 1}
	ally := card.NewInstance(allyDef, "p0")
	ally.Location = card.LocPlay
	ally.IsDry = true

	p0.Play = append(p0.Play, helper, ally)

	e := newTestEngine(p0, p1)
	e.State.Phase = state.PhaseMain
	e.Start()

	first, err := e.NextMessage(nil)
	require.NoError(t, err)
	msg := drain(t, e, first)
	require.Equal(t, KindActionRequired, msg.Kind)

	msg = submit(t, e, validator.Quest(helper.InstanceID))
	require.Equal(t, KindChoiceRequired, msg.Kind, "two friendlies (Helper and Ally) are candidates, so a choice is required")

	var allyOption string
	for _, opt := range msg.Choice.Options {
		if opt.TargetInstanceID == ally.InstanceID {
			allyOption = opt.ID
		}
	}
	require.NotEmpty(t, allyOption)

	msg = submit(t, e, validator.Choice(msg.Choice.ChoiceID, allyOption))
	require.Equal(t, KindActionRequired, msg.Kind)

	assert.Equal(t, 3, ally.CurrentStrength(), "ally gains Helper's printed strength for the turn")
	assert.Equal(t, 1, p0.Lore, "Helper's own quest granted its printed lore")
}

func TestNamedBanishTriggerDrawsACardForItsController(t *testing.T) {
	p0 := zone.NewPlayer("p0", "Alice")
	p1 := zone.NewPlayer("p1", "Bob")
	addFillers(p1, 3)

	raider := card.NewInstance(&card.Definition{Name: "Raider", Type: card.TypeCharacter, Strength: 5, Willpower: 5}, "p0")
	raider.Location = card.LocPlay
	raider.IsDry = true
	p0.Play = append(p0.Play, raider)

	diabloDef := &card.Definition{Name: "Diablo", Type: card.TypeCharacter, Strength: 1, Willpower: 2}
	diabloDef.Abilities = append(diabloDef.Abilities, card.AbilityRecipe{Name: "FLY, MY PET!"})
	diablo := card.NewInstance(diabloDef, "p1")
	diablo.Location = card.LocPlay
	diablo.IsDry = true
	diablo.Exerted = true
	p1.Play = append(p1.Play, diablo)

	e := newTestEngine(p0, p1)
	e.Registry.Register("FLY, MY PET!", func(def *card.Definition, recipe card.AbilityRecipe) ability.Ability {
		return ability.Ability{Name: "FLY, MY PET!", Trigger: ability.WhenBanished(), Effect: ability.DrawCards{Count: 1}}
	})
	e.State.Phase = state.PhaseMain
	e.Start()

	first, err := e.NextMessage(nil)
	require.NoError(t, err)
	msg := drain(t, e, first)
	require.Equal(t, KindActionRequired, msg.Kind)

	handSizeBefore := len(p1.Hand)
	msg = submit(t, e, validator.Challenge(raider.InstanceID, diablo.InstanceID))
	require.Equal(t, KindActionRequired, msg.Kind)

	assert.NotContains(t, p1.Play, diablo, "Diablo was banished")
	assert.Contains(t, p1.Discard, diablo)
	assert.Equal(t, handSizeBefore+1, len(p1.Hand), "the banish trigger drew player 1 a card")
}

func TestOptionalDiscardChoiceStaysPendingUntilResolved(t *testing.T) {
	p0 := zone.NewPlayer("p0", "Alice")
	p1 := zone.NewPlayer("p1", "Bob")

	cobraDef := &card.Definition{Name: "Giant Cobra", Type: card.TypeCharacter, Cost: 1, Inkable: true, Strength: 1, Willpower: 1}
	cobraDef.Abilities = append(cobraDef.Abilities, card.AbilityRecipe{Name: "MYSTERIOUS ADVANTAGE"})
	cobra := card.NewInstance(cobraDef, "p0")
	cobra.Location = card.LocHand

	cardA := card.NewInstance(fillerDef("Card A", 2), "p0")
	cardA.Location = card.LocHand
	cardB := card.NewInstance(fillerDef("Card B", 2), "p0")
	cardB.Location = card.LocHand
	p0.Hand = append(p0.Hand, cobra, cardA, cardB)

	// enough ink in a pre-filled inkwell to pay the Cobra's cost
	for i := 0; i < 3; i++ {
		ink := card.NewInstance(fillerDef("Ink", 1), "p0")
		ink.Location = card.LocInkwell
		p0.Inkwell = append(p0.Inkwell, ink)
	}

	e := newTestEngine(p0, p1)
	e.Registry.Register("MYSTERIOUS ADVANTAGE", func(def *card.Definition, recipe card.AbilityRecipe) ability.Ability {
		return ability.Ability{
			Name:    "MYSTERIOUS ADVANTAGE",
			Trigger: ability.WhenPlayed(),
			Target:  ability.ChosenCardInHand("Discard a card from your hand to gain 1 lore?", "MYSTERIOUS ADVANTAGE"),
			Effect: ability.Conditional{
				Predicate: func(rc *ability.ResolveContext, a ability.Action) bool { return len(a.Targets) > 0 },
				Then:      ability.Composite{Effects: []ability.Effect{ability.DiscardTargets{}, ability.GainLore{Amount: 1}}},
			},
		}
	})
	e.State.Phase = state.PhaseMain
	e.Start()

	first, err := e.NextMessage(nil)
	require.NoError(t, err)
	msg := drain(t, e, first)
	require.Equal(t, KindActionRequired, msg.Kind)

	msg = submit(t, e, validator.Play(cobra.InstanceID))
	require.Equal(t, KindChoiceRequired, msg.Kind)
	require.Len(t, msg.Choice.Options, 3, "card_a, card_b, and a decline option")

	again, err := e.NextMessage(nil)
	require.NoError(t, err)
	require.Equal(t, KindChoiceRequired, again.Kind)
	assert.Equal(t, msg.Choice.ChoiceID, again.Choice.ChoiceID, "the same choice is re-offered until resolved")

	var cardAOption string
	for _, opt := range msg.Choice.Options {
		if opt.TargetInstanceID == cardA.InstanceID {
			cardAOption = opt.ID
		}
	}
	require.NotEmpty(t, cardAOption)

	msg = submit(t, e, validator.Choice(msg.Choice.ChoiceID, cardAOption))
	require.Equal(t, KindActionRequired, msg.Kind)
	assert.NotContains(t, p0.Hand, cardA)
	assert.Contains(t, p0.Discard, cardA)
	assert.Equal(t, 1, p0.Lore)
}

func TestFirstTurnSkipsTheOpeningPlayersDrawOnly(t *testing.T) {
	p0 := zone.NewPlayer("p0", "Alice")
	p1 := zone.NewPlayer("p1", "Bob")
	addFillers(p0, 5)
	addFillers(p1, 5)

	e := newTestEngine(p0, p1)
	e.Start()

	p0HandBefore := len(p0.Hand)
	first, err := e.NextMessage(nil)
	require.NoError(t, err)
	msg := drain(t, e, first)
	require.Equal(t, KindActionRequired, msg.Kind)
	require.Equal(t, "p0", msg.PlayerToAct)
	assert.Equal(t, p0HandBefore, len(p0.Hand), "player 0 does not draw on turn 1")

	p1HandBefore := len(p1.Hand)
	msg = submit(t, e, validator.Pass())
	require.Equal(t, KindActionRequired, msg.Kind)
	require.Equal(t, "p1", msg.PlayerToAct)
	assert.Equal(t, p1HandBefore+1, len(p1.Hand), "player 1 still draws normally on turn 1")
}
