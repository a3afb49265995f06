package effect

import "github.com/starforge/starfall/internal/model"

// RapidFire scales the ledger's fire-rate effect multiplier below 1.0 for
// its duration. Purely declarative: no per-tick work beyond the timer.
type RapidFire struct {
	Base
	factor float64
}

// NewRapidFire creates the effect. factor must be in (0, 1); smaller means
// faster shooting.
func NewRapidFire(duration, factor float64) *RapidFire {
	return &RapidFire{
		Base:   NewBase("rapid_fire", duration, false),
		factor: factor,
	}
}

func (e *RapidFire) OnApply(s *model.Stats) {
	s.SetFireRateEffectMultiplier(e.factor)
}

func (e *RapidFire) OnExpire(s *model.Stats) {
	s.SetFireRateEffectMultiplier(1.0)
}
