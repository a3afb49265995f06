package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starforge/starfall/internal/config"
	"github.com/starforge/starfall/internal/db"
	"github.com/starforge/starfall/internal/game/combat"
	"github.com/starforge/starfall/internal/game/effect"
	"github.com/starforge/starfall/internal/game/pickup"
	"github.com/starforge/starfall/internal/model"
)

const ConfigPath = "config/starfall.yaml"

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
	cfgPath := ConfigPath
	if p := os.Getenv("STARFALL_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadGame(cfgPath)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading config: %w", err)
		}
		slog.Info("config file not found, using defaults", "path", cfgPath)
		cfg = config.DefaultGame()
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))
	slog.Info("starfall starting", "log_level", cfg.LogLevel)

	var database *db.DB
	if cfg.Database.Enabled {
		database, err = db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database connected, migrations applied")
	}

	stats := model.NewStats(
		cfg.Player.MaxHealth,
		cfg.Player.MaxShields,
		cfg.Player.ExperienceToLevel,
		cfg.Player.MaxProjectiles,
		cfg.Player.MinFireDelay,
	)
	player := model.NewPlayer("pilot", stats, cfg.Player.BaseSpeed, cfg.Player.BaseFireDelay, cfg.Player.ContactDamage)

	died := make(chan struct{})
	stats.Subscribe(hudObserver(died))

	effects := effect.NewManager(stats)
	effects.SetObserver(effect.Observer{
		OnEffectAdded:   func(name string) { slog.Info("effect gained", "effect", name) },
		OnEffectRemoved: func(name string) { slog.Info("effect dropped", "effect", name) },
		OnEffectExpired: func(name string) { slog.Info("effect worn off", "effect", name) },
	})

	// The hull recharger is part of the ship, not a pickup.
	effects.Add(effect.NewShieldRecharge(cfg.Effects.ShieldRechargeRate, cfg.Effects.ShieldRechargeDelay))

	catalog, err := pickup.NewCatalog(cfg.Effects, []pickup.Entry{
		{Kind: effect.KindInvincibility, Weight: 1},
		{Kind: effect.KindRapidFire, Weight: 3},
		{Kind: effect.KindSpreadShot, Weight: 2},
	})
	if err != nil {
		return fmt.Errorf("building pickup catalog: %w", err)
	}

	receiver := combat.NewReceiver(player, cfg.Damage,
		combat.CategoryEnemy, combat.CategoryEnemyProjectile, combat.CategoryWall, combat.CategoryPickup)
	receiver.OnHitDetected = func(category string) {
		slog.Debug("hit detected", "source", category)
	}
	receiver.OnPickup = func(src combat.Source) {
		p, ok := src.(pickup.Pickup)
		if !ok {
			return
		}
		if err := p.Apply(cfg.Effects, effects); err != nil {
			slog.Warn("pickup rejected", "kind", p.Kind, "err", err)
		}
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)

	// Fixed-rate physics tick: scripted enemy pressure through the damage
	// pipeline, standing in for the collision system.
	g.Go(func() error {
		interval := time.Second / time.Duration(cfg.Ticks.PhysicsHz)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		tick := 0
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case <-died:
				return errRunOver
			case <-ticker.C:
				tick++
				// Roughly one contact per second, one pickup per five.
				if tick%cfg.Ticks.PhysicsHz == 0 {
					receiver.OnContact(combat.Contact{Cat: randomHazard()})
					stats.AddScore(10)
					stats.AddExperience(25)
				}
				if tick%(cfg.Ticks.PhysicsHz*5) == 0 {
					receiver.OnContact(pickup.Pickup{Kind: catalog.Roll()})
				}
			}
		}
	})

	// Variable-rate effect tick.
	g.Go(func() error {
		interval := time.Second / time.Duration(cfg.Ticks.EffectHz)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		last := time.Now()
		for {
			select {
			case <-gctx.Done():
				return gctx.Err()
			case now := <-ticker.C:
				effects.Update(now.Sub(last).Seconds())
				last = now
			}
		}
	})

	err = g.Wait()
	if err != nil && !errors.Is(err, errRunOver) && !errors.Is(err, context.Canceled) {
		return err
	}

	effects.Clear()
	slog.Info("run over",
		"score", stats.Score(),
		"level", stats.Level(),
		"duration", time.Since(start).Round(time.Second))

	if database != nil {
		saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		result := db.RunResult{
			Player:   player.Name(),
			Score:    stats.Score(),
			Level:    stats.Level(),
			Duration: time.Since(start),
		}
		if err := database.SaveRun(saveCtx, result); err != nil {
			slog.Error("failed to save run", "err", err)
		} else if top, err := database.TopRuns(saveCtx, 5); err == nil {
			for i, r := range top {
				slog.Info("high score", "rank", i+1, "player", r.Player, "score", r.Score, "level", r.Level)
			}
		}
	}
	return nil
}

var errRunOver = errors.New("run over")

func randomHazard() string {
	switch rand.Intn(3) {
	case 0:
		return combat.CategoryEnemy
	case 1:
		return combat.CategoryEnemyProjectile
	default:
		return combat.CategoryWall
	}
}

func hudObserver(died chan<- struct{}) *model.StatsObserver {
	return &model.StatsObserver{
		OnHealthChanged: func(current, max int32) {
			slog.Info("hull", "current", current, "max", max)
		},
		OnShieldsChanged: func(current, max int32) {
			slog.Debug("shields", "current", current, "max", max)
		},
		OnScoreChanged: func(score int64) {
			slog.Debug("score", "score", score)
		},
		OnExperienceChanged: func(current, threshold int64) {
			slog.Debug("experience", "current", current, "threshold", threshold)
		},
		OnLevelUp: func(level int32) {
			slog.Info("level up", "level", level)
		},
		OnDied: func() {
			slog.Info("ship destroyed")
			close(died)
		},
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
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
