package combat

// DamageProvider supplies the owning entity's own damage value when the
// emitter has no configured override.
type DamageProvider interface {
	DamageAmount() int32
}

// Emitter is the attacker side of the contact-damage contract: it computes
// the damage amount on contact and delivers it to the target's damage entry
// point.
type Emitter struct {
	// Damage overrides the owner's damage value when positive.
	Damage int32

	// DestroyOnHit requests destruction of the owning entity after a hit
	// resolves (projectiles).
	DestroyOnHit bool

	owner      DamageProvider
	categories map[string]struct{}

	// OnTargetHit fires after damage is delivered, with the amount
	// actually applied.
	OnTargetHit func(category string, amount int32)

	// OnDestroyRequested fires after resolution when DestroyOnHit is set.
	OnDestroyRequested func()
}

// NewEmitter creates an emitter for the given owner. targetCategories lists
// the categories this emitter may damage; contacts outside the list are
// ignored.
func NewEmitter(owner DamageProvider, targetCategories ...string) *Emitter {
	cats := make(map[string]struct{}, len(targetCategories))
	for _, c := range targetCategories {
		cats[c] = struct{}{}
	}
	return &Emitter{owner: owner, categories: cats}
}

// OnContact resolves a contact with a candidate target. Targets outside the
// category filter are ignored. The amount is the configured override when
// positive, otherwise the owner's own damage value; if neither resolves the
// contact is a no-op.
func (e *Emitter) OnContact(category string, target Damageable) {
	if _, ok := e.categories[category]; !ok {
		return
	}
	if target == nil {
		return
	}

	amount := e.Damage
	if amount <= 0 && e.owner != nil {
		amount = e.owner.DamageAmount()
	}
	if amount <= 0 {
		return
	}

	target.TakeDamage(amount)
	if e.OnTargetHit != nil {
		e.OnTargetHit(category, amount)
	}
	if e.DestroyOnHit && e.OnDestroyRequested != nil {
		e.OnDestroyRequested()
	}
}
