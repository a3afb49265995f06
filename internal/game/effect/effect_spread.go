package effect

import "github.com/starforge/starfall/internal/model"

// SpreadShot enables fan-fire with a fixed projectile count and angular
// separation. On expiry only the flag is cleared; count and angle stay in
// the ledger, inert while disabled.
type SpreadShot struct {
	Base
	count int32
	angle float64
}

// NewSpreadShot creates the effect with the design projectile count and
// spread angle in degrees.
func NewSpreadShot(duration float64, count int32, angleDegrees float64) *SpreadShot {
	return &SpreadShot{
		Base:  NewBase("spread_shot", duration, false),
		count: count,
		angle: angleDegrees,
	}
}

func (e *SpreadShot) OnApply(s *model.Stats) {
	s.EnableSpread(e.count, e.angle)
}

func (e *SpreadShot) OnExpire(s *model.Stats) {
	s.DisableSpread()
}
