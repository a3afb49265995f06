package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStats(t *testing.T) *Stats {
	t.Helper()
	return NewStats(100, 50, 100, 3, 0.05)
}

func TestNewStats_PoolsFull(t *testing.T) {
	s := newTestStats(t)

	assert.Equal(t, int32(100), s.CurrentHealth())
	assert.Equal(t, int32(100), s.MaxHealth())
	assert.Equal(t, int32(50), s.CurrentShields())
	assert.Equal(t, int32(50), s.MaxShields())
	assert.Equal(t, int32(1), s.Level())
	assert.Equal(t, int64(0), s.Experience())
	assert.Equal(t, int64(100), s.ExperienceToNextLevel())
}

func TestTakeDamage_ShieldsFirst(t *testing.T) {
	tests := []struct {
		name        string
		damage      int32
		wantShields int32
		wantHealth  int32
		wantDied    bool
	}{
		{name: "absorbed entirely by shields", damage: 30, wantShields: 20, wantHealth: 100},
		{name: "exactly drains shields", damage: 50, wantShields: 0, wantHealth: 100},
		{name: "overflows into health", damage: 70, wantShields: 0, wantHealth: 80},
		{name: "lethal overflow", damage: 150, wantShields: 0, wantHealth: 0, wantDied: true},
		{name: "massive overkill clamps at zero", damage: 9999, wantShields: 0, wantHealth: 0, wantDied: true},
		{name: "zero damage is a no-op", damage: 0, wantShields: 50, wantHealth: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStats(t)
			died := s.TakeDamage(tt.damage)

			assert.Equal(t, tt.wantShields, s.CurrentShields())
			assert.Equal(t, tt.wantHealth, s.CurrentHealth())
			assert.Equal(t, tt.wantDied, died)
		})
	}
}

func TestTakeDamage_PartialShieldOverflow(t *testing.T) {
	// shields=10, health=50, damage 30: 10 absorbed, 20 overflow.
	s := NewStats(50, 10, 100, 3, 0.05)

	died := s.TakeDamage(30)

	assert.False(t, died)
	assert.Equal(t, int32(0), s.CurrentShields())
	assert.Equal(t, int32(30), s.CurrentHealth())
}

func TestTakeDamage_TotalConservation(t *testing.T) {
	s := newTestStats(t)

	for _, amount := range []int32{1, 7, 13, 40, 200} {
		before := s.CurrentShields() + s.CurrentHealth()
		s.TakeDamage(amount)
		after := s.CurrentShields() + s.CurrentHealth()

		require.GreaterOrEqual(t, after, before-amount)
		if amount <= before {
			assert.Equal(t, before-amount, after)
		}
	}
}

func TestTakeDamage_Invulnerable(t *testing.T) {
	s := newTestStats(t)
	s.SetInvulnerable(true)

	died := s.TakeDamage(9999)

	assert.False(t, died)
	assert.Equal(t, int32(100), s.CurrentHealth())
	assert.Equal(t, int32(50), s.CurrentShields())
}

func TestTakeDamage_DeathBoundary(t *testing.T) {
	s := NewStats(30, 0, 100, 3, 0.05)

	deaths := 0
	s.Subscribe(&StatsObserver{OnDied: func() { deaths++ }})

	require.True(t, s.TakeDamage(30))
	assert.Equal(t, int32(0), s.CurrentHealth())
	assert.Equal(t, 1, deaths)

	// Already dead: still reports lethal, no negative health, death fires once.
	require.True(t, s.TakeDamage(10))
	assert.Equal(t, int32(0), s.CurrentHealth())
	assert.Equal(t, 1, deaths)
}

func TestTakeDamage_NotificationOrder(t *testing.T) {
	s := NewStats(30, 10, 100, 3, 0.05)

	var order []string
	s.Subscribe(&StatsObserver{
		OnShieldsChanged: func(_, _ int32) { order = append(order, "shields") },
		OnHealthChanged:  func(_, _ int32) { order = append(order, "health") },
		OnDied:           func() { order = append(order, "died") },
	})

	s.TakeDamage(50)

	assert.Equal(t, []string{"shields", "health", "died"}, order)
}

func TestHeal_ClampsAtMax(t *testing.T) {
	s := newTestStats(t)
	s.TakeDamage(70) // shields 0, health 80

	healths := []int32{}
	s.Subscribe(&StatsObserver{OnHealthChanged: func(cur, _ int32) { healths = append(healths, cur) }})

	s.Heal(10)
	s.Heal(500)
	s.Heal(0)

	assert.Equal(t, int32(100), s.CurrentHealth())
	// health-changed fires unconditionally
	assert.Equal(t, []int32{90, 100, 100}, healths)
}

func TestAddShields_ClampsAtMax(t *testing.T) {
	s := newTestStats(t)
	s.TakeDamage(45) // shields 5

	s.AddShields(20)
	assert.Equal(t, int32(25), s.CurrentShields())

	s.AddShields(1000)
	assert.Equal(t, int32(50), s.CurrentShields())
}

func TestAddScore(t *testing.T) {
	s := newTestStats(t)

	var last int64
	s.Subscribe(&StatsObserver{OnScoreChanged: func(score int64) { last = score }})

	s.AddScore(100)
	s.AddScore(250)

	assert.Equal(t, int64(350), s.Score())
	assert.Equal(t, int64(350), last)
}

func TestAddExperience_SingleLevelUp(t *testing.T) {
	s := newTestStats(t)

	s.AddExperience(120)

	assert.Equal(t, int32(2), s.Level())
	assert.Equal(t, int64(20), s.Experience())
	assert.Equal(t, int64(150), s.ExperienceToNextLevel())
}

func TestAddExperience_CascadeFromOneGrant(t *testing.T) {
	// Thresholds grow 100 -> 150 -> 225 -> 337 -> 505.
	// 1000 XP: -100, -150, -225, -337 leaves 188 < 505 at level 5.
	s := newTestStats(t)

	var levels []int32
	s.Subscribe(&StatsObserver{OnLevelUp: func(level int32) { levels = append(levels, level) }})

	s.AddExperience(1000)

	assert.Equal(t, []int32{2, 3, 4, 5}, levels)
	assert.Equal(t, int32(5), s.Level())
	assert.Equal(t, int64(188), s.Experience())
	assert.Equal(t, int64(505), s.ExperienceToNextLevel())
}

func TestAddExperience_NotificationOrder(t *testing.T) {
	s := newTestStats(t)

	type expEvent struct {
		current   int64
		threshold int64
	}
	var order []string
	var expEvents []expEvent
	s.Subscribe(&StatsObserver{
		OnExperienceChanged: func(cur, threshold int64) {
			order = append(order, "exp")
			expEvents = append(expEvents, expEvent{cur, threshold})
		},
		OnLevelUp: func(_ int32) { order = append(order, "levelup") },
	})

	s.AddExperience(260)

	// exp for the grant, then levelup/exp pairs per level gained.
	assert.Equal(t, []string{"exp", "levelup", "exp", "levelup", "exp"}, order)
	require.Len(t, expEvents, 3)
	assert.Equal(t, expEvent{260, 100}, expEvents[0])
	assert.Equal(t, expEvent{160, 150}, expEvents[1])
	assert.Equal(t, expEvent{10, 225}, expEvents[2])
}

func TestReset_RestoresAndRenotifies(t *testing.T) {
	s := newTestStats(t)
	s.TakeDamage(120)
	s.AddScore(500)
	s.AddExperience(300)
	s.SetInvulnerable(true)
	s.EnableSpread(3, 15)
	s.SetFireRateEffectMultiplier(0.5)
	s.AddSpeedBonus(0.5)

	var notified []string
	s.Subscribe(&StatsObserver{
		OnHealthChanged:     func(_, _ int32) { notified = append(notified, "health") },
		OnShieldsChanged:    func(_, _ int32) { notified = append(notified, "shields") },
		OnScoreChanged:      func(_ int64) { notified = append(notified, "score") },
		OnExperienceChanged: func(_, _ int64) { notified = append(notified, "exp") },
	})

	s.Reset()

	assert.Equal(t, int32(100), s.CurrentHealth())
	assert.Equal(t, int32(50), s.CurrentShields())
	assert.Equal(t, int64(0), s.Score())
	assert.Equal(t, int32(1), s.Level())
	assert.Equal(t, int64(0), s.Experience())
	assert.Equal(t, int64(100), s.ExperienceToNextLevel())
	assert.False(t, s.Invulnerable())
	assert.False(t, s.SpreadEnabled())
	assert.Equal(t, 1.0, s.FireRateEffectMultiplier())
	assert.Equal(t, 300.0, s.EffectiveSpeed(300))
	assert.ElementsMatch(t, []string{"health", "shields", "score", "exp"}, notified)
}

func TestEffectiveAccessors(t *testing.T) {
	s := newTestStats(t)

	assert.Equal(t, 300.0, s.EffectiveSpeed(300))
	assert.Equal(t, 0.25, s.EffectiveFireDelay(0.25))
	assert.Equal(t, int32(3), s.EffectiveMaxProjectiles())

	s.AddSpeedBonus(0.5)
	assert.Equal(t, 450.0, s.EffectiveSpeed(300))

	s.SetFireRateEffectMultiplier(0.5)
	assert.Equal(t, 0.125, s.EffectiveFireDelay(0.25))

	s.AddFireRateBonus(0.1)
	assert.InDelta(t, 0.075, s.EffectiveFireDelay(0.25), 1e-9)

	// Hard floor.
	s.AddFireRateBonus(10)
	assert.Equal(t, 0.05, s.EffectiveFireDelay(0.25))

	s.AddMaxProjectilesBonus(2)
	assert.Equal(t, int32(5), s.EffectiveMaxProjectiles())
}

func TestUnsubscribe_StopsNotifications(t *testing.T) {
	s := newTestStats(t)

	calls := 0
	obs := &StatsObserver{OnHealthChanged: func(_, _ int32) { calls++ }}
	s.Subscribe(obs)

	s.Heal(0)
	require.Equal(t, 1, calls)

	s.Unsubscribe(obs)
	s.Heal(0)
	assert.Equal(t, 1, calls)
}
