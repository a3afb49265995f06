package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "starfall.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadGame_OverridesAndDefaults(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
player:
  max_health: 200
effects:
  rapid_fire_factor: 0.25
`)

	cfg, err := LoadGame(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int32(200), cfg.Player.MaxHealth)
	assert.Equal(t, 0.25, cfg.Effects.RapidFireFactor)

	// Untouched fields keep their defaults.
	assert.Equal(t, int32(50), cfg.Player.MaxShields)
	assert.Equal(t, 60, cfg.Ticks.PhysicsHz)
	assert.Equal(t, int32(25), cfg.Damage.WallContact)
	assert.False(t, cfg.Database.Enabled)
}

func TestLoadGame_MissingFile(t *testing.T) {
	_, err := LoadGame(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadGame_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "bad yaml", content: "player: [nope"},
		{name: "zero health", content: "player:\n  max_health: 0"},
		{name: "negative shields", content: "player:\n  max_shields: -1"},
		{name: "zero threshold", content: "player:\n  experience_to_level: 0"},
		{name: "rapid fire factor too big", content: "effects:\n  rapid_fire_factor: 1.5"},
		{name: "zero tick rate", content: "ticks:\n  physics_hz: 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadGame(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestDatabaseDSN(t *testing.T) {
	d := Database{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "starfall", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/starfall?sslmode=disable", d.DSN())
}
