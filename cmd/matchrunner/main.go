// Command matchrunner drives a single, non-interactive match in which
// both sides always take the first legal move (and the first option of
// any choice), then logs the analytics counters; it does not print the
// message transcript. It exists to exercise the engine end-to-end the way a
// harness or integration test would, not as an interactive client.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/inkforge/engine/internal/ability"
	"github.com/inkforge/engine/internal/card"
	"github.com/inkforge/engine/internal/config"
	"github.com/inkforge/engine/internal/engine"
	"github.com/inkforge/engine/internal/state"
	"github.com/inkforge/engine/internal/validator"
	"github.com/inkforge/engine/internal/zone"
)

var configPath = flag.String("config", "", "path to a rules config YAML file (optional)")

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	seed := cfg.Seed
	if seed == 0 {
		seed = 1
	}
	logger.Info("starting deterministic match", zap.Int64("seed", seed))

	registry := ability.NewRegistry(logger)
	ability.RegisterKeywords(registry)

	s := buildDemoState(cfg.StateConfig(), seed)
	eng := engine.New(s, registry, logger)
	eng.Start()

	turns := 0
	for !s.GameOver && turns < 500 {
		msg, err := eng.NextMessage(nil)
		if err != nil {
			logger.Error("engine rejected move", zap.Error(err))
			break
		}
		turns++
		switch msg.Kind {
		case engine.KindActionRequired:
			if len(msg.LegalMoves) == 0 {
				break
			}
			move := msg.LegalMoves[0] // deterministic: always prefer the first enumerated move
			if _, err := eng.NextMessage(&move); err != nil {
				logger.Error("move rejected", zap.Error(err), zap.Any("move", move))
			}
		case engine.KindChoiceRequired:
			opt := msg.Choice.Options[0]
			m := validator.Choice(msg.Choice.ChoiceID, opt.ID)
			if _, err := eng.NextMessage(&m); err != nil {
				logger.Error("choice rejected", zap.Error(err))
			}
		case engine.KindGameOver:
			logger.Info("game over", zap.String("winner", msg.WinnerID), zap.Bool("draw", msg.Draw))
		}
	}

	analytics := eng.Analytics()
	logger.Info("match complete",
		zap.Int("actions_submitted", analytics.ActionsSubmitted),
		zap.Int("steps_executed", analytics.StepsExecuted),
		zap.Int("choices_resolved", analytics.ChoicesResolved),
		zap.Int("turn_number", s.TurnNumber),
	)
}

// initLogger builds a zap logger from the loaded logging configuration.
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	return zapCfg.Build()
}

// demoCard is a minimal, filler character definition used only so the
// runner has something legal to do; a real deployment loads printed
// card data from a set file instead.
func demoCard(id uint32, name string, cost uint8, strength, willpower, lore int) *card.Definition {
	return &card.Definition{
		ID: id, Name: name, FullName: name, Cost: cost, Inkable: true,
		Type: card.TypeCharacter, Strength: strength, Willpower: willpower, Lore: lore,
	}
}

func buildDemoState(cfg state.Config, seed int64) *state.State {
	rng := rand.New(rand.NewSource(seed))

	build := func(id string, name string) *zone.Player {
		p := zone.NewPlayer(id, name)
		def := demoCard(1, "Dalmatian Puppy", 1, 1, 1, 1)
		for i := 0; i < cfg.DeckSize; i++ {
			inst := card.NewInstance(def, id)
			p.Deck = append(p.Deck, inst)
		}
		state.Shuffle(p.Deck, rng)
		for i := 0; i < cfg.StartingHandSize; i++ {
			_, _ = p.Draw()
		}
		return p
	}

	p0 := build("p0", "Player One")
	p1 := build("p1", "Player Two")
	return state.New(cfg, p0, p1)
}
