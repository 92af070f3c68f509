package spell

import (
	"sync"

	"github.com/veyrand/spellcraft/internal/model"
)

// Default regeneration rates in MP per second. Combat regen is
// deliberately slower so MP stays a strategic resource mid-fight.
const (
	DefaultCombatRegenRate = 0.5
	DefaultFieldRegenRate  = 2.0
)

// ManaLedger tracks MP for the primary actor and the active party and
// applies time-proportional regeneration on each tick.
//
// Thread-safe: all methods are protected by sync.Mutex.
type ManaLedger struct {
	mu sync.Mutex

	combatRate float64
	fieldRate  float64

	// roster supplies the currently tracked actors (primary + party).
	roster func() []model.Actor

	// syncHook, when set, runs after every MP write so duplicate MP
	// representations held by the caller stay consistent.
	syncHook func(model.Actor)
}

// NewManaLedger creates a ledger over the given roster provider.
// Rates <= 0 fall back to the defaults.
func NewManaLedger(roster func() []model.Actor, combatRate, fieldRate float64) *ManaLedger {
	if combatRate <= 0 {
		combatRate = DefaultCombatRegenRate
	}
	if fieldRate <= 0 {
		fieldRate = DefaultFieldRegenRate
	}
	return &ManaLedger{
		combatRate: combatRate,
		fieldRate:  fieldRate,
		roster:     roster,
	}
}

// SetSyncHook installs the post-write synchronization hook.
func (l *ManaLedger) SetSyncHook(hook func(model.Actor)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.syncHook = hook
}

// Regenerate raises every tracked actor's MP by rate x elapsed, clamped
// to maxMp. No-op when elapsed <= 0.
func (l *ManaLedger) Regenerate(elapsed float64, inCombat bool) {
	if elapsed <= 0 {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rate := l.fieldRate
	if inCombat {
		rate = l.combatRate
	}

	for _, actor := range l.roster() {
		if actor == nil {
			continue
		}
		l.writeMP(actor, actor.Stat(model.StatMP)+rate*elapsed)
	}
}

// Spend debits cost MP from the actor. Returns false without mutating
// when the actor cannot afford it.
func (l *ManaLedger) Spend(actor model.Actor, cost float64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	current := actor.Stat(model.StatMP)
	if current < cost {
		return false
	}
	l.writeMP(actor, current-cost)
	return true
}

// Restore raises the actor's MP by amount, clamped to maxMp.
// Returns the amount actually restored.
func (l *ManaLedger) Restore(actor model.Actor, amount float64) float64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	current := actor.Stat(model.StatMP)
	room := actor.Stat(model.StatMaxMP) - current
	if amount > room {
		amount = room
	}
	if amount <= 0 {
		return 0
	}
	l.writeMP(actor, current+amount)
	return amount
}

// writeMP clamps to [0, maxMp], writes, and fires the sync hook.
// Must be called with mu held.
func (l *ManaLedger) writeMP(actor model.Actor, mp float64) {
	maxMP := actor.Stat(model.StatMaxMP)
	if mp < 0 {
		mp = 0
	}
	if mp > maxMP {
		mp = maxMP
	}
	actor.SetStat(model.StatMP, mp)
	if l.syncHook != nil {
		l.syncHook(actor)
	}
}
