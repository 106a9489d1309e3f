package ability

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/inkforge/engine/internal/card"
)

// Ability is a fully resolved, card-bound ability: a trigger gating a
// target selector and effect, plus an optional cost for activated
// abilities (nil for triggered/static ones).
type Ability struct {
	Name     string
	Trigger  Trigger
	Target   Selector
	Effect   Effect
	Cost     Cost
	Once     bool // marks a one-shot ability; the engine does not read it, so it does not limit how often the ability fires
}

// Factory builds an Ability for a specific card instance from its
// printed recipe. recipe.EffectText/FullText are available for
// factories that need to disambiguate between near-identical named
// abilities sharing a keyword.
type Factory func(def *card.Definition, recipe card.AbilityRecipe) Ability

// Registry is the static, read-only, name-keyed table mapping a
// printed ability name to the factory that builds its behavior. It is
// built once at process start and never mutated afterward — abilities
// are resolved from it by name every time a card needs its behavior
// rebuilt (entering play, subscribing to the event bus), never cached
// across turns.
type Registry struct {
	factories map[string]Factory
	logger    *zap.Logger
	warned    map[string]bool
}

// NewRegistry constructs an empty registry. Register every factory
// before the first game starts; Registry is read-only from then on.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{factories: make(map[string]Factory), logger: logger, warned: make(map[string]bool)}
}

// Register adds a factory under the given ability name. Calling
// Register twice for the same name replaces the factory — callers are
// expected to do this only during startup wiring.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// Build resolves a card's printed ability recipes into concrete
// Abilities, silently skipping any whose name isn't registered. Each
// unknown name logs exactly one warning for the life of the registry,
// not once per card copy, per spec's load-time error-handling rule.
func (r *Registry) Build(def *card.Definition) []Ability {
	var out []Ability
	for _, recipe := range def.Abilities {
		factory, ok := r.factories[recipe.Name]
		if !ok {
			if recipe.Name != "" && !r.warned[recipe.Name] {
				r.warned[recipe.Name] = true
				r.logger.Warn("unknown named ability, skipping", zap.String("name", recipe.Name), zap.String("card", def.Name))
			}
			continue
		}
		out = append(out, factory(def, recipe))
	}
	return out
}

// Lookup returns the factory registered under name, for callers (like
// the keyword table) that need to build an ability outside of a full
// Build pass.
func (r *Registry) Lookup(name string) (Factory, bool) {
	f, ok := r.factories[name]
	return f, ok
}

// MustLookup is a convenience for internal wiring where the name is
// known at compile time to exist; it panics only during startup
// registration, never during a running game.
func (r *Registry) MustLookup(name string) Factory {
	f, ok := r.Lookup(name)
	if !ok {
		panic(fmt.Sprintf("ability: no factory registered for %q", name))
	}
	return f
}
