package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/veyrand/spellcraft/internal/config"
	"github.com/veyrand/spellcraft/internal/data"
	"github.com/veyrand/spellcraft/internal/db"
	"github.com/veyrand/spellcraft/internal/game/spell"
	"github.com/veyrand/spellcraft/internal/model"
)

const defaultConfigPath = "config/spellcraft.yaml"

const stateSlot = "default"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load config first to determine log level.
	cfgPath := defaultConfigPath
	if p := os.Getenv("SPELLCRAFT_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		// Missing config file is fine; defaults apply.
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("config load failed, using defaults", "err", err)
		}
		cfg = config.Default()
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("spellcraft starting", "log_level", cfg.LogLevel)

	catalog, err := loadCatalog(cfg)
	if err != nil {
		return err
	}

	party, enemies := buildDemoRoster()
	engine := spell.NewCastManager(catalog, party, spell.Options{
		CombatRegenRate:       cfg.Engine.CombatRegenRate,
		FieldRegenRate:        cfg.Engine.FieldRegenRate,
		DefaultEffectDuration: cfg.Engine.DefaultEffectDuration,
	})
	engine.SetActorResolver(func(id string) model.Actor {
		for _, e := range enemies {
			if e.ID() == id {
				return e
			}
		}
		return nil
	})

	var stateRepo *db.StateRepository
	if cfg.Database.Enabled() {
		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("migrating state store: %w", err)
		}
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting state store: %w", err)
		}
		defer database.Close()
		stateRepo = db.NewStateRepository(database.Pool())

		if st, err := stateRepo.Load(ctx, stateSlot); err != nil {
			return fmt.Errorf("restoring engine state: %w", err)
		} else if st != nil {
			engine.ImportState(st)
			slog.Info("engine state restored", "slot", stateSlot, "clock", st.Clock)
		}
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return tickLoop(ctx, engine, cfg.TickInterval)
	})
	g.Go(func() error {
		demo(engine, model.CombatContext{Active: true, Enemies: enemies})
		return nil
	})

	err = g.Wait()

	if stateRepo != nil {
		saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if saveErr := stateRepo.Save(saveCtx, stateSlot, engine.ExportState()); saveErr != nil {
			slog.Error("saving engine state", "err", saveErr)
		} else {
			slog.Info("engine state saved", "slot", stateSlot)
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// tickLoop drives the engine's maintenance sweep on a wall-clock
// schedule, feeding it measured elapsed time rather than a fixed step.
func tickLoop(ctx context.Context, engine *spell.CastManager, interval float64) error {
	if interval <= 0 {
		interval = 1
	}
	ticker := time.NewTicker(time.Duration(interval * float64(time.Second)))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			elapsed := now.Sub(last).Seconds()
			last = now
			engine.Tick(elapsed, false)
		}
	}
}

func loadCatalog(cfg config.Config) (*data.Catalog, error) {
	if cfg.CatalogPath != "" {
		return data.LoadFile(cfg.CatalogPath)
	}
	return data.LoadDefault()
}

// buildDemoRoster assembles a small party and an enemy pack so the demo
// has something to cast at.
func buildDemoRoster() (*model.Party, []model.Actor) {
	hero := model.NewPlayerCharacter(model.PlayerID, "Hero", "mage", 10, 120, 80)
	hero.SetStat("magicAttack", 14)
	hero.Learn("firebolt")
	hero.Learn("inferno")
	hero.Learn("protect")

	healer := model.NewPlayerCharacter("healer", "Lumen", "cleric", 9, 90, 100)
	healer.SetStat("wisdom", 12)
	healer.Learn("mend")
	healer.Learn("cleanse")

	party := model.NewParty(hero)
	if err := party.AddMember(healer); err != nil {
		slog.Warn("adding healer", "err", err)
	}

	wolf := model.NewCharacter("wolf", "Dire Wolf", 60, 10)
	wolf.SetResistance("ice", 0.25)
	imp := model.NewSimpleActor("imp", "Fire Imp", 35, 20)
	imp.SetResistance("fire", 0.9)

	return party, []model.Actor{wolf, imp}
}

// demo casts a handful of spells to show the result shape.
func demo(engine *spell.CastManager, ctx model.CombatContext) {
	casts := []struct {
		spell, caster, target string
	}{
		{"firebolt", model.PlayerID, "wolf"},
		{"protect", model.PlayerID, "healer"},
		{"mend", "healer", model.PlayerID},
		{"firebolt", model.PlayerID, "wolf"}, // on cooldown
	}

	for _, c := range casts {
		res := engine.CastSpell(c.spell, c.caster, c.target, ctx)
		if res.Success {
			slog.Info("cast succeeded",
				"spell", res.SpellID,
				"caster", res.CasterID,
				"targets", res.Targets,
				"effects", len(res.Effects))
		} else {
			slog.Info("cast rejected",
				"spell", c.spell,
				"caster", c.caster,
				"reason", res.Reason)
		}
	}
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
