package effect

import (
	"fmt"

	"github.com/starforge/starfall/internal/config"
)

// Effect kind names, shared with the pickup catalog and config.
const (
	KindInvincibility  = "invincibility"
	KindRapidFire      = "rapid_fire"
	KindSpreadShot     = "spread_shot"
	KindShieldRecharge = "shield_recharge"
)

// registry maps effect kind -> factory taking the effect tuning block.
var registry = map[string]func(cfg config.Effects) Effect{}

// Register installs a factory for an effect kind. Called from init below;
// new kinds extend this tag set.
func Register(kind string, factory func(cfg config.Effects) Effect) {
	registry[kind] = factory
}

// New instantiates an effect by kind name with the given tuning.
// Returns an error for unknown kinds.
func New(kind string, cfg config.Effects) (Effect, error) {
	factory, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("unknown effect kind: %s", kind)
	}
	return factory(cfg), nil
}

func init() {
	Register(KindInvincibility, func(cfg config.Effects) Effect {
		return NewInvincibility(cfg.InvincibilityDuration)
	})
	Register(KindRapidFire, func(cfg config.Effects) Effect {
		return NewRapidFire(cfg.RapidFireDuration, cfg.RapidFireFactor)
	})
	Register(KindSpreadShot, func(cfg config.Effects) Effect {
		return NewSpreadShot(cfg.SpreadDuration, cfg.SpreadCount, cfg.SpreadAngle)
	})
	Register(KindShieldRecharge, func(cfg config.Effects) Effect {
		return NewShieldRecharge(cfg.ShieldRechargeRate, cfg.ShieldRechargeDelay)
	})
}
