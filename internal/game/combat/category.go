package combat

import "github.com/starforge/starfall/internal/config"

// Contact categories shared with collaborators for target filtering and
// default-damage lookup.
const (
	CategoryPlayer          = "player"
	CategoryEnemy           = "enemy"
	CategoryEnemyProjectile = "enemy-projectile"
	CategoryWall            = "wall"
	CategoryPickup          = "pickup"
)

// DefaultDamage returns the fixed fallback damage for a category, used when
// neither side of a contact carries an explicit amount. Pickups and unknown
// categories resolve to zero.
func DefaultDamage(category string, cfg config.DamageDefaults) int32 {
	switch category {
	case CategoryEnemy:
		return cfg.EnemyContact
	case CategoryEnemyProjectile:
		return cfg.EnemyProjectile
	case CategoryWall:
		return cfg.WallContact
	default:
		return 0
	}
}
