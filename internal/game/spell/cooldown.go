package spell

import (
	"fmt"
	"sync"
)

// CooldownTracker maps (caster, spell) to the earliest engine time the
// pair may cast again. Entries are created on successful casts, queried
// on every attempt, and removed by the periodic sweep once expired.
//
// Thread-safe: all methods are protected by sync.Mutex.
type CooldownTracker struct {
	mu      sync.Mutex
	expires map[string]float64
}

// NewCooldownTracker creates an empty tracker.
func NewCooldownTracker() *CooldownTracker {
	return &CooldownTracker{expires: make(map[string]float64)}
}

// Set stores expiry = now + seconds for the (caster, spell) pair.
func (t *CooldownTracker) Set(spellID, casterID string, seconds, now float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.expires[cooldownKey(casterID, spellID)] = now + seconds
}

// IsOnCooldown reports whether the pair is still cooling down at now.
func (t *CooldownTracker) IsOnCooldown(spellID, casterID string, now float64) bool {
	return t.Remaining(spellID, casterID, now) > 0
}

// Remaining returns the seconds left on the pair's cooldown, 0 if absent
// or expired.
func (t *CooldownTracker) Remaining(spellID, casterID string, now float64) float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	expiry, ok := t.expires[cooldownKey(casterID, spellID)]
	if !ok || expiry <= now {
		return 0
	}
	return expiry - now
}

// Sweep removes all entries whose expiry has passed. Safe to call at any
// frequency; entries already gone are simply skipped.
func (t *CooldownTracker) Sweep(now float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for key, expiry := range t.expires {
		if expiry <= now {
			delete(t.expires, key)
		}
	}
}

// Len returns the number of live entries (including not-yet-swept expired
// ones).
func (t *CooldownTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.expires)
}

// snapshot returns a copy of the expiry map for state export.
func (t *CooldownTracker) snapshot() map[string]float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]float64, len(t.expires))
	for k, v := range t.expires {
		out[k] = v
	}
	return out
}

// restore replaces the expiry map from an imported snapshot.
func (t *CooldownTracker) restore(entries map[string]float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.expires = make(map[string]float64, len(entries))
	for k, v := range entries {
		t.expires[k] = v
	}
}

// cooldownKey generates the tracking key for a (caster, spell) pair.
func cooldownKey(casterID, spellID string) string {
	return fmt.Sprintf("%s_%s", casterID, spellID)
}
