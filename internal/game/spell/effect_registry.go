package spell

import (
	"log/slog"
	"sync"

	"github.com/veyrand/spellcraft/internal/data"
	"github.com/veyrand/spellcraft/internal/model"
)

// EffectRegistry stores live buff/debuff instances per target actor.
// Membership matters, insertion order does not. Expired entries are
// reversed and discarded by the periodic sweep; cures remove entries
// through RemoveMatching, which reverses the same way.
//
// Thread-safe: all methods are protected by sync.Mutex.
type EffectRegistry struct {
	mu      sync.Mutex
	effects map[string][]*ActiveEffect
}

// NewEffectRegistry creates an empty registry.
func NewEffectRegistry() *EffectRegistry {
	return &EffectRegistry{effects: make(map[string][]*ActiveEffect)}
}

// Apply appends an active effect to the target's collection.
func (r *EffectRegistry) Apply(targetID string, ae *ActiveEffect) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.effects[targetID] = append(r.effects[targetID], ae)
}

// SweepExpired reverses and discards every effect expired at now.
// resolve looks up the live actor by ID; a target that no longer exists
// (left the party, encounter over) skips the reversal safely.
func (r *EffectRegistry) SweepExpired(now float64, resolve func(id string) model.Actor) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for targetID, list := range r.effects {
		n := 0
		for _, ae := range list {
			if !ae.IsExpired(now) {
				list[n] = ae
				n++
				continue
			}
			if actor := resolve(targetID); actor != nil {
				reverseEffect(actor, ae)
			} else {
				slog.Debug("expired effect target gone, skipping reversal",
					"target", targetID,
					"effect", ae.ID)
			}
		}
		if n == 0 {
			delete(r.effects, targetID)
		} else {
			r.effects[targetID] = list[:n]
		}
	}
}

// RemoveMatching removes every effect on the target accepted by the
// predicate, reversing each removed entry's stat delta against the given
// actor (nil actor skips reversal). Returns the number removed.
func (r *EffectRegistry) RemoveMatching(targetID string, actor model.Actor, match func(*ActiveEffect) bool) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.effects[targetID]
	removed := 0
	n := 0
	for _, ae := range list {
		if !match(ae) {
			list[n] = ae
			n++
			continue
		}
		if actor != nil {
			reverseEffect(actor, ae)
		}
		removed++
	}
	if n == 0 {
		delete(r.effects, targetID)
	} else {
		r.effects[targetID] = list[:n]
	}
	return removed
}

// ActiveOn returns a copy of the target's live effects.
func (r *EffectRegistry) ActiveOn(targetID string) []*ActiveEffect {
	r.mu.Lock()
	defer r.mu.Unlock()

	list := r.effects[targetID]
	out := make([]*ActiveEffect, len(list))
	copy(out, list)
	return out
}

// Count returns the number of live effects across all targets.
func (r *EffectRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	total := 0
	for _, list := range r.effects {
		total += len(list)
	}
	return total
}

// snapshot returns a deep copy of the registry contents for state export.
func (r *EffectRegistry) snapshot() map[string][]ActiveEffect {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string][]ActiveEffect, len(r.effects))
	for targetID, list := range r.effects {
		copies := make([]ActiveEffect, len(list))
		for i, ae := range list {
			copies[i] = *ae
		}
		out[targetID] = copies
	}
	return out
}

// restore replaces the registry contents from an imported snapshot.
func (r *EffectRegistry) restore(state map[string][]ActiveEffect) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.effects = make(map[string][]*ActiveEffect, len(state))
	for targetID, list := range state {
		restored := make([]*ActiveEffect, len(list))
		for i := range list {
			ae := list[i]
			restored[i] = &ae
		}
		r.effects[targetID] = restored
	}
}

// reverseEffect undoes the stat delta an effect applied: buffs subtract
// what they added, debuffs add back what they subtracted. The floor-at-1
// rule applies on the way out too, so removal alone never zeroes a stat.
func reverseEffect(actor model.Actor, ae *ActiveEffect) {
	if ae.Stat == "" || ae.Applied == 0 {
		return
	}
	adjustStat(actor, ae.Stat, -ae.Applied)
	slog.Debug("effect reversed",
		"effect", ae.ID,
		"kind", ae.Kind.String(),
		"stat", ae.Stat,
		"delta", -ae.Applied,
		"target", actor.ID())
}

// adjustStat shifts a named stat by delta with a floor of 1 and returns
// the delta actually written.
func adjustStat(actor model.Actor, stat string, delta float64) float64 {
	before := actor.Stat(stat)
	after := before + delta
	if after < 1 {
		after = 1
	}
	actor.SetStat(stat, after)
	return after - before
}

// isDebuff reports whether an active effect is a debuff (cure target).
func isDebuff(ae *ActiveEffect) bool {
	return ae.Kind == data.EffectDebuff
}
