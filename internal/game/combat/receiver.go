package combat

import (
	"log/slog"

	"github.com/starforge/starfall/internal/config"
	"github.com/starforge/starfall/internal/model"
)

// Receiver is the defender side of the contact-damage contract: it filters
// valid sources, resolves the final damage amount and forwards it to the
// target's damage entry point.
//
// Resolution order: receiver override if positive, else the source-provided
// amount, else the category default. Pickup contacts never resolve as
// damage; they are routed to OnPickup instead.
type Receiver struct {
	// Override forces the damage amount for any accepted source when
	// positive.
	Override int32

	target   Damageable
	stats    *model.Stats
	defaults config.DamageDefaults
	accepted map[string]struct{}

	// OnDamageReceived fires with the resolved amount after delivery.
	OnDamageReceived func(amount int32)

	// OnHitDetected fires on every accepted damaging contact.
	OnHitDetected func(category string)

	// OnPickup receives pickup-category contacts.
	OnPickup func(src Source)
}

// NewReceiver creates a receiver protecting the given target.
// sourceCategories lists the categories this receiver reacts to.
func NewReceiver(target Damageable, defaults config.DamageDefaults, sourceCategories ...string) *Receiver {
	cats := make(map[string]struct{}, len(sourceCategories))
	for _, c := range sourceCategories {
		cats[c] = struct{}{}
	}
	return &Receiver{target: target, defaults: defaults, accepted: cats}
}

// SetStatsFallback installs a ledger to damage when no target entity is
// set. A direct target takes precedence.
func (r *Receiver) SetStatsFallback(s *model.Stats) {
	r.stats = s
}

// OnContact resolves a contact with a source. Sources outside the category
// filter are ignored; pickups go to the pickup path; anything that resolves
// to zero damage is a no-op.
func (r *Receiver) OnContact(src Source) {
	if src == nil {
		return
	}
	category := src.Category()
	if _, ok := r.accepted[category]; !ok {
		return
	}

	if category == CategoryPickup {
		if r.OnPickup != nil {
			r.OnPickup(src)
		}
		return
	}

	amount := r.Override
	if amount <= 0 {
		amount = src.DamageAmount()
	}
	if amount <= 0 {
		amount = DefaultDamage(category, r.defaults)
	}
	if amount <= 0 {
		return
	}

	switch {
	case r.target != nil:
		r.target.TakeDamage(amount)
	case r.stats != nil:
		r.stats.TakeDamage(amount)
	default:
		slog.Warn("damage receiver has no target, dropping hit",
			"category", category, "amount", amount)
		return
	}

	if r.OnDamageReceived != nil {
		r.OnDamageReceived(amount)
	}
	if r.OnHitDetected != nil {
		r.OnHitDetected(category)
	}
}
