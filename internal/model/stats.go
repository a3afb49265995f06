package model

import (
	"sync"
)

// levelGrowth is the geometric factor applied to the experience threshold on
// every level-up (floored to integer).
const levelGrowth = 1.5

// StatsObserver receives change notifications from a Stats ledger. Any nil
// callback is skipped. Collaborators (HUD, audio, effects) register one
// observer each and react to the fields they care about.
type StatsObserver struct {
	OnHealthChanged     func(current, max int32)
	OnShieldsChanged    func(current, max int32)
	OnDied              func()
	OnScoreChanged      func(score int64)
	OnExperienceChanged func(current, threshold int64)
	OnLevelUp           func(level int32)
}

// Stats is the authoritative health/shield/progression ledger for one entity.
// All mutation goes through its methods; fields are never written from
// outside. Notifications fire after the internal lock is released, in the
// exact order the mutation produced them: shields before health before death,
// experience before each level-up and again after it.
type Stats struct {
	mu sync.Mutex

	maxHealth     int32
	currentHealth int32

	maxShields     int32
	currentShields int32

	speedMultiplier float64
	speedBonus      float64

	fireRateMultiplier       float64
	fireRateBonus            float64
	fireRateEffectMultiplier float64
	minFireDelay             float64

	maxProjectiles      int32
	maxProjectilesBonus int32

	score            int64
	level            int32
	experience       int64
	experienceToNext int64
	initialThreshold int64

	invulnerable          bool
	invulnerabilityRemain float64

	spreadEnabled bool
	spreadCount   int32
	spreadAngle   float64

	observers []*StatsObserver
}

// NewStats constructs a ledger with both pools full, level 1 and no bonuses.
// minFireDelay is the hard floor EffectiveFireDelay never goes below.
func NewStats(maxHealth, maxShields int32, experienceToLevel int64, maxProjectiles int32, minFireDelay float64) *Stats {
	if maxHealth < 1 {
		maxHealth = 1
	}
	if maxShields < 0 {
		maxShields = 0
	}
	if experienceToLevel < 1 {
		experienceToLevel = 1
	}
	return &Stats{
		maxHealth:                maxHealth,
		currentHealth:            maxHealth,
		maxShields:               maxShields,
		currentShields:           maxShields,
		speedMultiplier:          1.0,
		fireRateMultiplier:       1.0,
		fireRateEffectMultiplier: 1.0,
		minFireDelay:             minFireDelay,
		maxProjectiles:           maxProjectiles,
		level:                    1,
		experienceToNext:         experienceToLevel,
		initialThreshold:         experienceToLevel,
	}
}

// Subscribe registers an observer for change notifications.
func (s *Stats) Subscribe(obs *StatsObserver) {
	if obs == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, obs)
}

// Unsubscribe removes a previously registered observer. Unknown observers
// are ignored.
func (s *Stats) Unsubscribe(obs *StatsObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.observers {
		if o == obs {
			s.observers = append(s.observers[:i], s.observers[i+1:]...)
			return
		}
	}
}

// TakeDamage applies damage shields-first and returns true if the hit left
// health at zero. While invulnerable it is a no-op returning false. Shield
// depletion fully resolves before any health depletion, and both
// notifications fire before the death notification.
func (s *Stats) TakeDamage(amount int32) bool {
	if amount < 0 {
		amount = 0
	}

	s.mu.Lock()
	if s.invulnerable {
		s.mu.Unlock()
		return false
	}

	shieldDamage := amount
	if shieldDamage > s.currentShields {
		shieldDamage = s.currentShields
	}
	s.currentShields -= shieldDamage

	remaining := amount - shieldDamage
	healthTouched := remaining > 0
	wasAlive := s.currentHealth > 0
	if healthTouched {
		s.currentHealth -= remaining
		if s.currentHealth < 0 {
			s.currentHealth = 0
		}
	}

	curShields, maxShields := s.currentShields, s.maxShields
	curHealth, maxHealth := s.currentHealth, s.maxHealth
	died := healthTouched && curHealth == 0
	obs := s.snapshotObservers()
	s.mu.Unlock()

	if shieldDamage > 0 {
		notifyShields(obs, curShields, maxShields)
	}
	if healthTouched {
		notifyHealth(obs, curHealth, maxHealth)
	}
	if died && wasAlive {
		for _, o := range obs {
			if o.OnDied != nil {
				o.OnDied()
			}
		}
	}
	return died
}

// Heal restores health up to the maximum and always notifies.
func (s *Stats) Heal(amount int32) {
	if amount < 0 {
		amount = 0
	}
	s.mu.Lock()
	s.currentHealth += amount
	if s.currentHealth > s.maxHealth {
		s.currentHealth = s.maxHealth
	}
	cur, max := s.currentHealth, s.maxHealth
	obs := s.snapshotObservers()
	s.mu.Unlock()

	notifyHealth(obs, cur, max)
}

// AddShields restores shields up to the maximum and always notifies.
func (s *Stats) AddShields(amount int32) {
	if amount < 0 {
		amount = 0
	}
	s.mu.Lock()
	s.currentShields += amount
	if s.currentShields > s.maxShields {
		s.currentShields = s.maxShields
	}
	cur, max := s.currentShields, s.maxShields
	obs := s.snapshotObservers()
	s.mu.Unlock()

	notifyShields(obs, cur, max)
}

// AddScore accumulates score and notifies.
func (s *Stats) AddScore(amount int64) {
	s.mu.Lock()
	s.score += amount
	if s.score < 0 {
		s.score = 0
	}
	score := s.score
	obs := s.snapshotObservers()
	s.mu.Unlock()

	for _, o := range obs {
		if o.OnScoreChanged != nil {
			o.OnScoreChanged(score)
		}
	}
}

// AddExperience grants experience and resolves any resulting level-ups.
// One large grant may cascade through several levels; the threshold grows
// by 1.5x (floored) each level. Notification order: experience-changed for
// the raw grant, then per level-up a level-up notification followed by an
// experience-changed reflecting the new remainder and threshold.
func (s *Stats) AddExperience(amount int64) {
	if amount < 0 {
		amount = 0
	}

	type levelUp struct {
		level      int32
		experience int64
		threshold  int64
	}

	s.mu.Lock()
	s.experience += amount
	firstExp, firstThreshold := s.experience, s.experienceToNext

	var ups []levelUp
	for s.experience >= s.experienceToNext {
		s.experience -= s.experienceToNext
		s.level++
		s.experienceToNext = int64(float64(s.experienceToNext) * levelGrowth)
		ups = append(ups, levelUp{level: s.level, experience: s.experience, threshold: s.experienceToNext})
	}
	obs := s.snapshotObservers()
	s.mu.Unlock()

	notifyExperience(obs, firstExp, firstThreshold)
	for _, up := range ups {
		for _, o := range obs {
			if o.OnLevelUp != nil {
				o.OnLevelUp(up.level)
			}
		}
		notifyExperience(obs, up.experience, up.threshold)
	}
}

// Reset restores both pools to max, clears every effect-writable bonus and
// flag, resets progression to its initial values and re-emits all change
// notifications so observers resynchronize.
func (s *Stats) Reset() {
	s.mu.Lock()
	s.currentHealth = s.maxHealth
	s.currentShields = s.maxShields
	s.speedMultiplier = 1.0
	s.speedBonus = 0
	s.fireRateMultiplier = 1.0
	s.fireRateBonus = 0
	s.fireRateEffectMultiplier = 1.0
	s.maxProjectilesBonus = 0
	s.score = 0
	s.level = 1
	s.experience = 0
	s.experienceToNext = s.initialThreshold
	s.invulnerable = false
	s.invulnerabilityRemain = 0
	s.spreadEnabled = false
	s.spreadCount = 0
	s.spreadAngle = 0

	curHealth, maxHealth := s.currentHealth, s.maxHealth
	curShields, maxShields := s.currentShields, s.maxShields
	exp, threshold := s.experience, s.experienceToNext
	obs := s.snapshotObservers()
	s.mu.Unlock()

	notifyShields(obs, curShields, maxShields)
	notifyHealth(obs, curHealth, maxHealth)
	for _, o := range obs {
		if o.OnScoreChanged != nil {
			o.OnScoreChanged(0)
		}
	}
	notifyExperience(obs, exp, threshold)
}

// SetInvulnerable toggles the invulnerability flag. While set, TakeDamage
// is a no-op.
func (s *Stats) SetInvulnerable(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.invulnerable = v
	if !v {
		s.invulnerabilityRemain = 0
	}
}

// SetInvulnerabilityCountdown mirrors the remaining invulnerability time for
// display collaborators. It carries no gameplay logic.
func (s *Stats) SetInvulnerabilityCountdown(seconds float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seconds < 0 {
		seconds = 0
	}
	s.invulnerabilityRemain = seconds
}

// SetFireRateEffectMultiplier sets the effect-owned fire delay multiplier.
// 1.0 is neutral; values below 1.0 shoot faster.
func (s *Stats) SetFireRateEffectMultiplier(m float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m <= 0 {
		m = 1.0
	}
	s.fireRateEffectMultiplier = m
}

// EnableSpread turns on spread fire with the given projectile count and
// angular separation in degrees.
func (s *Stats) EnableSpread(count int32, angleDegrees float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spreadEnabled = true
	s.spreadCount = count
	s.spreadAngle = angleDegrees
}

// DisableSpread turns off spread fire. Count and angle are left as-is:
// they are inert while the flag is down.
func (s *Stats) DisableSpread() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.spreadEnabled = false
}

// AddSpeedBonus accumulates a permanent additive speed bonus (upgrades).
func (s *Stats) AddSpeedBonus(bonus float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speedBonus += bonus
}

// AddFireRateBonus accumulates a permanent subtractive fire delay bonus.
func (s *Stats) AddFireRateBonus(bonus float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fireRateBonus += bonus
}

// AddMaxProjectilesBonus accumulates extra simultaneous projectiles.
func (s *Stats) AddMaxProjectilesBonus(n int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.maxProjectilesBonus += n
}

// EffectiveSpeed derives movement speed from a base value:
// base x (multiplier + bonus).
func (s *Stats) EffectiveSpeed(base float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return base * (s.speedMultiplier + s.speedBonus)
}

// EffectiveFireDelay derives the delay between shots from a base value:
// max(floor, (base x multiplier - bonus) x effect multiplier).
func (s *Stats) EffectiveFireDelay(base float64) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	delay := (base*s.fireRateMultiplier - s.fireRateBonus) * s.fireRateEffectMultiplier
	if delay < s.minFireDelay {
		delay = s.minFireDelay
	}
	return delay
}

// EffectiveMaxProjectiles derives the simultaneous projectile cap.
func (s *Stats) EffectiveMaxProjectiles() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxProjectiles + s.maxProjectilesBonus
}

func (s *Stats) CurrentHealth() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentHealth
}

func (s *Stats) MaxHealth() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxHealth
}

func (s *Stats) CurrentShields() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentShields
}

func (s *Stats) MaxShields() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxShields
}

func (s *Stats) Score() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

func (s *Stats) Level() int32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.level
}

func (s *Stats) Experience() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.experience
}

func (s *Stats) ExperienceToNextLevel() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.experienceToNext
}

func (s *Stats) Invulnerable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invulnerable
}

func (s *Stats) InvulnerabilityCountdown() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invulnerabilityRemain
}

func (s *Stats) SpreadEnabled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spreadEnabled
}

// Spread returns the spread projectile count and angle in degrees,
// regardless of whether spread fire is currently enabled.
func (s *Stats) Spread() (count int32, angleDegrees float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.spreadCount, s.spreadAngle
}

func (s *Stats) FireRateEffectMultiplier() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fireRateEffectMultiplier
}

// snapshotObservers copies the observer list. Must be called with mu held;
// the copy is iterated after mu is released so observers may call back into
// the ledger.
func (s *Stats) snapshotObservers() []*StatsObserver {
	if len(s.observers) == 0 {
		return nil
	}
	out := make([]*StatsObserver, len(s.observers))
	copy(out, s.observers)
	return out
}

func notifyHealth(obs []*StatsObserver, cur, max int32) {
	for _, o := range obs {
		if o.OnHealthChanged != nil {
			o.OnHealthChanged(cur, max)
		}
	}
}

func notifyShields(obs []*StatsObserver, cur, max int32) {
	for _, o := range obs {
		if o.OnShieldsChanged != nil {
			o.OnShieldsChanged(cur, max)
		}
	}
}

func notifyExperience(obs []*StatsObserver, cur, threshold int64) {
	for _, o := range obs {
		if o.OnExperienceChanged != nil {
			o.OnExperienceChanged(cur, threshold)
		}
	}
}
