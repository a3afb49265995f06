package combat

// Damageable is the capability interface every damage-receivable entity
// implements. TakeDamage returns true if the hit was lethal. Damage is
// resolved strictly through this contract, never by probing for fields.
type Damageable interface {
	TakeDamage(amount int32) bool
}

// Source is the attacking side of a contact as seen by a receiver.
// DamageAmount returns 0 when the source carries no explicit damage, in
// which case the receiver falls back to the category default.
type Source interface {
	Category() string
	DamageAmount() int32
}

// Contact is a minimal Source for contacts that carry only a category
// (walls, anonymous hazards).
type Contact struct {
	Cat    string
	Amount int32
}

func (c Contact) Category() string    { return c.Cat }
func (c Contact) DamageAmount() int32 { return c.Amount }
