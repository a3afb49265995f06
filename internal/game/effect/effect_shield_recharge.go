package effect

import (
	"log/slog"
	"sync"

	"github.com/starforge/starfall/internal/model"
)

// ShieldRecharge is a permanent effect that passively regenerates shields
// after the entity has gone a configured delay without taking damage.
//
// It subscribes to the ledger's shield/health notifications: any observed
// decrease in either pool counts as damage and resets the delay timer. Its
// own shield credits arrive as increases and therefore never pause the
// recharge. Regeneration accrues fractionally at rate points per second and
// is credited in whole points; the fractional remainder persists across
// ticks, so sub-point amounts are delayed, never lost.
//
// The damage pipeline and the effect tick may run on separate goroutines,
// so the observer callbacks and Update share mu. AddShields is called with
// mu released: its notification re-enters the observer callback on the
// same goroutine.
type ShieldRecharge struct {
	Base
	rate  float64
	delay float64

	mu          sync.Mutex
	sinceDamage float64
	accumulator float64
	lastShields int32
	lastHealth  int32

	sub *model.StatsObserver
}

// NewShieldRecharge creates the effect with regeneration rate (points per
// second) and the no-damage delay in seconds before recharge resumes.
func NewShieldRecharge(rate, delay float64) *ShieldRecharge {
	return &ShieldRecharge{
		Base:  NewBase("shield_recharge", -1, false),
		rate:  rate,
		delay: delay,
	}
}

func (e *ShieldRecharge) OnApply(s *model.Stats) {
	e.mu.Lock()
	e.lastShields = s.CurrentShields()
	e.lastHealth = s.CurrentHealth()
	e.sinceDamage = 0
	e.accumulator = 0
	e.mu.Unlock()

	e.sub = &model.StatsObserver{
		OnShieldsChanged: func(current, _ int32) {
			e.mu.Lock()
			if current < e.lastShields {
				e.sinceDamage = 0
			}
			e.lastShields = current
			e.mu.Unlock()
		},
		OnHealthChanged: func(current, _ int32) {
			e.mu.Lock()
			if current < e.lastHealth {
				e.sinceDamage = 0
			}
			e.lastHealth = current
			e.mu.Unlock()
		},
	}
	s.Subscribe(e.sub)
}

func (e *ShieldRecharge) Update(dt float64, s *model.Stats) {
	e.advance(dt)

	e.mu.Lock()
	e.sinceDamage += dt
	if e.sinceDamage < e.delay {
		e.mu.Unlock()
		return
	}
	if s.CurrentShields() >= s.MaxShields() {
		e.mu.Unlock()
		return
	}

	e.accumulator += e.rate * dt
	whole := int32(e.accumulator)
	if whole < 1 {
		e.mu.Unlock()
		return
	}
	e.accumulator -= float64(whole)
	e.mu.Unlock()

	s.AddShields(whole)

	slog.Debug("shield recharge tick", "credited", whole, "shields", s.CurrentShields())
}

// OnExpire unsubscribes from the ledger. Only reachable through explicit
// removal, e.g. when the entity resets; unsubscribing twice is harmless.
func (e *ShieldRecharge) OnExpire(s *model.Stats) {
	if e.sub != nil {
		s.Unsubscribe(e.sub)
		e.sub = nil
	}
}
