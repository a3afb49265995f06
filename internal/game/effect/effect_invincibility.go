package effect

import "github.com/starforge/starfall/internal/model"

// Invincibility makes the ledger ignore all damage for a fixed time. Each
// tick it mirrors its remaining time into the ledger's countdown field so
// the HUD can render it; the countdown carries no other logic.
type Invincibility struct {
	Base
}

// NewInvincibility creates the effect with the given duration in seconds.
func NewInvincibility(duration float64) *Invincibility {
	return &Invincibility{Base: NewBase("invincibility", duration, false)}
}

func (e *Invincibility) OnApply(s *model.Stats) {
	s.SetInvulnerable(true)
	s.SetInvulnerabilityCountdown(e.TimeRemaining())
}

func (e *Invincibility) Update(dt float64, s *model.Stats) {
	e.advance(dt)
	s.SetInvulnerabilityCountdown(e.TimeRemaining())
}

func (e *Invincibility) OnExpire(s *model.Stats) {
	s.SetInvulnerable(false)
	s.SetInvulnerabilityCountdown(0)
}
