package effect

import "github.com/starforge/starfall/internal/model"

// Effect is a timed or permanent modifier of one stats ledger. Lifecycle:
// OnApply once when added, Update every manager tick while active, OnExpire
// exactly once on natural timeout or manual removal. OnExpire must be
// idempotent: running the rollback twice leaves the ledger unchanged.
//
// The variant set is closed: implementations embed Base, which also keeps
// the interface unimplementable outside this package.
type Effect interface {
	Name() string
	Stackable() bool
	// Permanent reports whether the effect has no natural expiry
	// (negative duration). Permanent effects leave the active set only
	// through explicit removal.
	Permanent() bool
	TimeRemaining() float64
	Expired() bool

	OnApply(s *model.Stats)
	Update(dt float64, s *model.Stats)
	OnExpire(s *model.Stats)

	base() *Base
}

// Base carries the identity and timing shared by every effect kind.
// Variants embed it and override the lifecycle hooks they need; the default
// Update only advances the timer.
type Base struct {
	name      string
	duration  float64 // seconds; negative means permanent
	remaining float64
	stackable bool
}

// NewBase builds the shared portion of an effect.
func NewBase(name string, duration float64, stackable bool) Base {
	return Base{name: name, duration: duration, stackable: stackable}
}

func (b *Base) Name() string    { return b.name }
func (b *Base) Stackable() bool { return b.stackable }

func (b *Base) Permanent() bool { return b.duration < 0 }

func (b *Base) TimeRemaining() float64 { return b.remaining }

// Expired reports natural timeout. Permanent effects never expire.
func (b *Base) Expired() bool { return !b.Permanent() && b.remaining <= 0 }

// Refresh resets the timer to the full duration. Called by the manager when
// a non-stackable duplicate is added; the running instance keeps its applied
// side effects.
func (b *Base) Refresh() { b.remaining = b.duration }

// Update advances the timer. Variants with per-tick work override this and
// call advance themselves.
func (b *Base) Update(dt float64, _ *model.Stats) { b.advance(dt) }

func (b *Base) advance(dt float64) {
	if !b.Permanent() {
		b.remaining -= dt
	}
}

func (b *Base) base() *Base { return b }
