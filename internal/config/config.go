package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Game holds all tuning for the simulation: player base stats, effect
// parameters, contact damage defaults and tick rates.
type Game struct {
	LogLevel string `yaml:"log_level"`

	Ticks    Ticks          `yaml:"ticks"`
	Player   Player         `yaml:"player"`
	Effects  Effects        `yaml:"effects"`
	Damage   DamageDefaults `yaml:"damage"`
	Database Database       `yaml:"database"`
}

// Ticks configures the two scheduling classes: a fixed physics-rate tick
// driving collision/damage resolution and a variable-rate tick driving
// effect timers.
type Ticks struct {
	PhysicsHz int `yaml:"physics_hz"`
	EffectHz  int `yaml:"effect_hz"`
}

// Player holds the base stats a fresh ledger is constructed with.
type Player struct {
	MaxHealth         int32   `yaml:"max_health"`
	MaxShields        int32   `yaml:"max_shields"`
	BaseSpeed         float64 `yaml:"base_speed"`
	BaseFireDelay     float64 `yaml:"base_fire_delay"` // seconds between shots
	MinFireDelay      float64 `yaml:"min_fire_delay"`  // hard floor for any fire-rate stacking
	MaxProjectiles    int32   `yaml:"max_projectiles"`
	ContactDamage     int32   `yaml:"contact_damage"` // damage the player deals on ram
	ExperienceToLevel int64   `yaml:"experience_to_level"`
}

// Effects holds tuning for every effect kind in the closed variant set.
type Effects struct {
	InvincibilityDuration float64 `yaml:"invincibility_duration"` // seconds
	RapidFireDuration     float64 `yaml:"rapid_fire_duration"`
	RapidFireFactor       float64 `yaml:"rapid_fire_factor"` // <1.0 multiplier on fire delay
	SpreadDuration        float64 `yaml:"spread_duration"`
	SpreadCount           int32   `yaml:"spread_count"`
	SpreadAngle           float64 `yaml:"spread_angle"` // degrees
	ShieldRechargeRate    float64 `yaml:"shield_recharge_rate"`  // points per second
	ShieldRechargeDelay   float64 `yaml:"shield_recharge_delay"` // seconds without damage
}

// DamageDefaults maps contact categories to fixed fallback damage, used when
// neither the receiver nor the source carries an explicit amount.
type DamageDefaults struct {
	EnemyContact    int32 `yaml:"enemy_contact"`
	EnemyProjectile int32 `yaml:"enemy_projectile"`
	WallContact     int32 `yaml:"wall_contact"`
}

// Database holds PostgreSQL connection parameters for run-result storage.
// Disabled by default so the simulation runs standalone.
type Database struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d Database) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// LoadGame reads the game config from a YAML file, applies defaults and
// validates the result.
func LoadGame(path string) (*Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultGame()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultGame returns a config with all defaults applied, for callers that
// run without a config file (tests, demo mode).
func DefaultGame() *Game {
	return defaultGame()
}

func defaultGame() *Game {
	return &Game{
		LogLevel: "info",
		Ticks: Ticks{
			PhysicsHz: 60,
			EffectHz:  30,
		},
		Player: Player{
			MaxHealth:         100,
			MaxShields:        50,
			BaseSpeed:         300,
			BaseFireDelay:     0.25,
			MinFireDelay:      0.05,
			MaxProjectiles:    3,
			ContactDamage:     20,
			ExperienceToLevel: 100,
		},
		Effects: Effects{
			InvincibilityDuration: 5,
			RapidFireDuration:     10,
			RapidFireFactor:       0.5,
			SpreadDuration:        15,
			SpreadCount:           3,
			SpreadAngle:           15,
			ShieldRechargeRate:    5,
			ShieldRechargeDelay:   3,
		},
		Damage: DamageDefaults{
			EnemyContact:    15,
			EnemyProjectile: 10,
			WallContact:     25,
		},
		Database: Database{
			Enabled: false,
			Host:    "localhost",
			Port:    5432,
			User:    "starfall",
			DBName:  "starfall",
			SSLMode: "disable",
		},
	}
}

func (c *Game) validate() error {
	if c.Ticks.PhysicsHz <= 0 || c.Ticks.EffectHz <= 0 {
		return fmt.Errorf("tick rates must be positive, got physics=%d effect=%d",
			c.Ticks.PhysicsHz, c.Ticks.EffectHz)
	}
	if c.Player.MaxHealth <= 0 {
		return fmt.Errorf("player max_health must be positive, got %d", c.Player.MaxHealth)
	}
	if c.Player.MaxShields < 0 {
		return fmt.Errorf("player max_shields must not be negative, got %d", c.Player.MaxShields)
	}
	if c.Player.ExperienceToLevel <= 0 {
		return fmt.Errorf("player experience_to_level must be positive, got %d", c.Player.ExperienceToLevel)
	}
	if c.Effects.RapidFireFactor <= 0 || c.Effects.RapidFireFactor >= 1 {
		return fmt.Errorf("rapid_fire_factor must be in (0, 1), got %g", c.Effects.RapidFireFactor)
	}
	if c.Effects.ShieldRechargeRate < 0 || c.Effects.ShieldRechargeDelay < 0 {
		return fmt.Errorf("shield recharge tuning must not be negative")
	}
	return nil
}
