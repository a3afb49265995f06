package pickup

import (
	"fmt"
	"math/rand"

	"github.com/starforge/starfall/internal/config"
	"github.com/starforge/starfall/internal/game/combat"
	"github.com/starforge/starfall/internal/game/effect"
)

// Entry is a weighted effect kind in the pickup catalog.
type Entry struct {
	Kind   string
	Weight float64
}

// Catalog selects pickup effect kinds by weighted random roll.
type Catalog struct {
	entries []Entry
	total   float64
}

// NewCatalog builds a catalog. Every entry needs a positive weight and a
// kind known to the effect registry.
func NewCatalog(cfg config.Effects, entries []Entry) (*Catalog, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("pickup catalog needs at least one entry")
	}
	total := 0.0
	for _, e := range entries {
		if e.Weight <= 0 {
			return nil, fmt.Errorf("pickup %q has non-positive weight %g", e.Kind, e.Weight)
		}
		if _, err := effect.New(e.Kind, cfg); err != nil {
			return nil, fmt.Errorf("pickup %q: %w", e.Kind, err)
		}
		total += e.Weight
	}
	return &Catalog{entries: entries, total: total}, nil
}

// Roll returns a weighted-random effect kind from the catalog.
func (c *Catalog) Roll() string {
	roll := rand.Float64() * c.total
	for _, e := range c.entries {
		roll -= e.Weight
		if roll < 0 {
			return e.Kind
		}
	}
	// Floating point edge: fall back to the last entry.
	return c.entries[len(c.entries)-1].Kind
}

// Pickup is a contact source carrying an effect kind. It deals no damage;
// receivers route it to their pickup path.
type Pickup struct {
	Kind string
}

func (p Pickup) Category() string    { return combat.CategoryPickup }
func (p Pickup) DamageAmount() int32 { return 0 }

// Apply instantiates the pickup's effect and hands it to the entity's
// effect manager.
func (p Pickup) Apply(cfg config.Effects, em *effect.Manager) error {
	e, err := effect.New(p.Kind, cfg)
	if err != nil {
		return fmt.Errorf("applying pickup: %w", err)
	}
	em.Add(e)
	return nil
}
