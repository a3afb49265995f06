package effect

import (
	"log/slog"
	"sync"

	"github.com/starforge/starfall/internal/model"
)

// Observer receives effect lifecycle notifications. Removed (manual) and
// Expired (natural timeout) are distinct because UI collaborators react
// differently to each. Nil callbacks are skipped.
type Observer struct {
	OnEffectAdded   func(name string)
	OnEffectRemoved func(name string)
	OnEffectExpired func(name string)
}

// Manager owns the active effects of one entity and resolves add/refresh,
// per-tick advancement and expiry against the entity's ledger.
type Manager struct {
	mu     sync.Mutex
	stats  *model.Stats
	active []Effect
	obs    Observer
}

// NewManager creates a manager bound to the given ledger.
func NewManager(stats *model.Stats) *Manager {
	return &Manager{stats: stats}
}

// SetObserver installs lifecycle callbacks. Pass a zero Observer to clear.
func (m *Manager) SetObserver(obs Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.obs = obs
}

// Add activates an effect. If a non-stackable effect with the same name is
// already active, the existing instance's timer is refreshed to the new
// effect's full duration instead: no second OnApply, no duplicate entry.
// Stackable effects always append a new instance.
func (m *Manager) Add(e Effect) {
	if e == nil {
		return
	}
	if m.stats == nil {
		slog.Warn("effect manager has no ledger, dropping effect", "effect", e.Name())
		return
	}

	m.mu.Lock()
	if !e.Stackable() {
		for _, existing := range m.active {
			if existing.Name() == e.Name() {
				existing.base().remaining = e.base().duration
				m.mu.Unlock()
				slog.Debug("effect refreshed", "effect", e.Name())
				return
			}
		}
	}

	e.base().Refresh()
	e.OnApply(m.stats)
	m.active = append(m.active, e)
	obs := m.obs
	m.mu.Unlock()

	slog.Debug("effect added", "effect", e.Name(), "permanent", e.Permanent())
	if obs.OnEffectAdded != nil {
		obs.OnEffectAdded(e.Name())
	}
}

// Update advances every active effect by dt seconds, then removes the ones
// that expired during this pass. All effects advance before any removal, so
// no effect observes a sibling disappearing mid-tick. OnExpire runs exactly
// once per expired instance.
func (m *Manager) Update(dt float64) {
	if m.stats == nil {
		slog.Warn("effect manager has no ledger, skipping tick")
		return
	}

	m.mu.Lock()
	for _, e := range m.active {
		e.Update(dt, m.stats)
	}

	var expired []Effect
	n := 0
	for _, e := range m.active {
		if e.Expired() {
			expired = append(expired, e)
		} else {
			m.active[n] = e
			n++
		}
	}
	for i := n; i < len(m.active); i++ {
		m.active[i] = nil
	}
	m.active = m.active[:n]
	obs := m.obs
	m.mu.Unlock()

	for _, e := range expired {
		e.OnExpire(m.stats)
		slog.Debug("effect expired", "effect", e.Name())
		if obs.OnEffectExpired != nil {
			obs.OnEffectExpired(e.Name())
		}
	}
}

// Remove removes an effect by name, running its rollback. Returns whether
// an effect with that name was active.
func (m *Manager) Remove(name string) bool {
	m.mu.Lock()
	var removed Effect
	for i, e := range m.active {
		if e.Name() == name {
			removed = e
			m.active = append(m.active[:i], m.active[i+1:]...)
			break
		}
	}
	obs := m.obs
	m.mu.Unlock()

	if removed == nil {
		return false
	}
	if m.stats != nil {
		removed.OnExpire(m.stats)
	}
	slog.Debug("effect removed", "effect", name)
	if obs.OnEffectRemoved != nil {
		obs.OnEffectRemoved(name)
	}
	return true
}

// Has reports whether an effect with the given name is active.
func (m *Manager) Has(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.active {
		if e.Name() == name {
			return true
		}
	}
	return false
}

// Get returns the first active effect with the given name, or nil.
func (m *Manager) Get(name string) Effect {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.active {
		if e.Name() == name {
			return e
		}
	}
	return nil
}

// Count returns the number of active effect instances.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.active)
}

// Clear removes every active effect, running each rollback. The active set
// is detached before any OnExpire runs, so rollbacks cannot disturb the
// iteration.
func (m *Manager) Clear() {
	m.mu.Lock()
	cleared := m.active
	m.active = nil
	obs := m.obs
	m.mu.Unlock()

	for _, e := range cleared {
		if m.stats != nil {
			e.OnExpire(m.stats)
		}
		slog.Debug("effect removed", "effect", e.Name())
		if obs.OnEffectRemoved != nil {
			obs.OnEffectRemoved(e.Name())
		}
	}
}
