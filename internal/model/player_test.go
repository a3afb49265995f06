package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlayer_ForwardsToLedger(t *testing.T) {
	stats := NewStats(100, 50, 100, 3, 0.05)
	p := NewPlayer("pilot", stats, 300, 0.25, 20)

	assert.Equal(t, "pilot", p.Name())
	assert.Equal(t, int32(20), p.DamageAmount())
	assert.Same(t, stats, p.Stats())

	died := p.TakeDamage(30)
	assert.False(t, died)
	assert.Equal(t, int32(20), stats.CurrentShields())
}

func TestPlayer_DerivedStats(t *testing.T) {
	stats := NewStats(100, 50, 100, 3, 0.05)
	p := NewPlayer("pilot", stats, 300, 0.25, 20)

	assert.Equal(t, 300.0, p.Speed())
	assert.Equal(t, 0.25, p.FireDelay())

	stats.SetFireRateEffectMultiplier(0.5)
	stats.AddSpeedBonus(0.2)

	assert.Equal(t, 360.0, p.Speed())
	assert.Equal(t, 0.125, p.FireDelay())
}
