package model

// Player is the player-controlled entity: a stats ledger plus the base
// values effective stats derive from. Collaborators (effect manager, damage
// pipeline) receive the ledger by reference and never own it.
type Player struct {
	name string

	stats *Stats

	baseSpeed     float64
	baseFireDelay float64
	contactDamage int32
}

// NewPlayer constructs a player with a fresh ledger.
func NewPlayer(name string, stats *Stats, baseSpeed, baseFireDelay float64, contactDamage int32) *Player {
	return &Player{
		name:          name,
		stats:         stats,
		baseSpeed:     baseSpeed,
		baseFireDelay: baseFireDelay,
		contactDamage: contactDamage,
	}
}

func (p *Player) Name() string { return p.name }

// Stats returns the player's ledger.
func (p *Player) Stats() *Stats { return p.stats }

// TakeDamage forwards to the ledger, satisfying the combat Damageable
// contract. Returns true if the hit was lethal.
func (p *Player) TakeDamage(amount int32) bool {
	return p.stats.TakeDamage(amount)
}

// Speed returns current movement speed with all modifiers applied.
func (p *Player) Speed() float64 {
	return p.stats.EffectiveSpeed(p.baseSpeed)
}

// FireDelay returns the current delay between shots with all modifiers
// applied.
func (p *Player) FireDelay() float64 {
	return p.stats.EffectiveFireDelay(p.baseFireDelay)
}

// DamageAmount is the contact damage the player deals when ramming,
// used by an attached damage emitter when it has no override.
func (p *Player) DamageAmount() int32 { return p.contactDamage }
