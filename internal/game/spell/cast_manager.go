package spell

import (
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/veyrand/spellcraft/internal/data"
	"github.com/veyrand/spellcraft/internal/model"
)

// Options tunes engine behavior. Zero values fall back to defaults.
type Options struct {
	CombatRegenRate       float64 // MP/s while an encounter is active
	FieldRegenRate        float64 // MP/s outside encounters
	DefaultEffectDuration float64 // seconds, for specs without a duration
}

// learner is the capability player characters expose for the learned-set
// and class/level gates. Non-player actors never implement it and skip
// those gates entirely.
type learner interface {
	Knows(spellID string) bool
	Learn(spellID string) bool
	Class() string
	Level() int
}

// CastManager is the engine's public entry point. It validates casts
// against the catalog, ledger and cooldown tracker, resolves targets,
// drives the effect pipeline, and owns the periodic maintenance tick.
//
// The engine clock is relative: it starts at zero and only advances when
// the host calls Tick, so tests control time deterministically.
//
// Thread-safe: CastSpell, Tick and the state operations all run under
// one mutex, so a cast's commit (MP debit + cooldown set) is a single
// critical section and ticks never interleave with a cast mid-pipeline.
type CastManager struct {
	mu sync.Mutex

	catalog   *data.Catalog
	party     *model.Party
	ledger    *ManaLedger
	cooldowns *CooldownTracker
	registry  *EffectRegistry
	pipeline  *Pipeline

	// now is the engine clock in seconds. Guarded by mu.
	now float64

	// resolveExtra lets the host resolve actor IDs the engine does not
	// know about (encounter enemies between casts, summons). Optional.
	resolveExtra func(id string) model.Actor
}

// NewCastManager creates an engine over a catalog and the player party.
func NewCastManager(catalog *data.Catalog, party *model.Party, opts Options) *CastManager {
	cm := &CastManager{
		catalog:   catalog,
		party:     party,
		cooldowns: NewCooldownTracker(),
		registry:  NewEffectRegistry(),
	}
	cm.ledger = NewManaLedger(cm.roster, opts.CombatRegenRate, opts.FieldRegenRate)
	cm.pipeline = NewPipeline(cm.registry, cm.ledger, cm.clock)
	if opts.DefaultEffectDuration > 0 {
		cm.pipeline.SetDefaultDuration(opts.DefaultEffectDuration)
	}
	return cm
}

// SetActorResolver installs the host's fallback actor lookup, used for
// expiry sweeps and cast requests naming actors outside the party.
func (cm *CastManager) SetActorResolver(fn func(id string) model.Actor) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.resolveExtra = fn
}

// Ledger returns the resource ledger (for host-side sync hooks).
func (cm *CastManager) Ledger() *ManaLedger { return cm.ledger }

// Registry returns the active effect registry.
func (cm *CastManager) Registry() *EffectRegistry { return cm.registry }

// Cooldowns returns the cooldown tracker.
func (cm *CastManager) Cooldowns() *CooldownTracker { return cm.cooldowns }

// Pipeline returns the effect pipeline (for variance injection in tests).
func (cm *CastManager) Pipeline() *Pipeline { return cm.pipeline }

// Now returns the current engine time in seconds.
func (cm *CastManager) Now() float64 {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return cm.now
}

// CastSpell runs one cast attempt to completion: gates, target
// resolution, resource commit, then effect application per (target,
// effect) pair. All failures are reported in the result, never panicked
// or returned as errors. No MP or cooldown mutation happens on a gate
// rejection.
func (cm *CastManager) CastSpell(spellID, casterID, targetID string, ctx model.CombatContext) CastResult {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	sp := cm.catalog.Lookup(spellID)
	if sp == nil {
		return rejected(spellID, casterID, ReasonSpellNotFound)
	}

	caster := cm.resolveActor(casterID, ctx)
	if caster == nil {
		return rejected(spellID, casterID, "Caster not found")
	}

	if reason := cm.checkGates(sp, caster); reason != "" {
		return rejected(spellID, casterID, reason)
	}

	// An empty target set is not a rejection: the cast still commits and
	// simply applies zero effects.
	targets := ResolveTargets(sp.Target, caster, targetID, cm.party, ctx)

	// Commit resources before effect application so a mid-pipeline
	// anomaly cannot let the caster re-cast for free.
	cm.ledger.Spend(caster, sp.MPCost)
	if sp.Cooldown > 0 {
		cm.cooldowns.Set(sp.ID, caster.ID(), sp.Cooldown, cm.now)
	}

	result := CastResult{
		Success:  true,
		SpellID:  sp.ID,
		CasterID: caster.ID(),
		Targets:  make([]string, 0, len(targets)),
		Effects:  make([]EffectApplication, 0, len(targets)*len(sp.Effects)),
	}
	for _, t := range targets {
		result.Targets = append(result.Targets, t.ID())
	}

	for _, target := range targets {
		for _, spec := range sp.Effects {
			outcome := cm.pipeline.Apply(caster, target, sp, spec)
			result.Effects = append(result.Effects, EffectApplication{
				TargetID: target.ID(),
				Effect:   outcome.Type,
				Result:   outcome,
			})
		}
	}

	slog.Debug("spell cast",
		"spell", sp.ID,
		"caster", caster.ID(),
		"targets", len(targets),
		"effects", len(result.Effects))

	return result
}

// CanCastSpell dry-runs the eligibility, resource and cooldown gates
// without side effects.
func (cm *CastManager) CanCastSpell(spellID, casterID string) (bool, string) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	sp := cm.catalog.Lookup(spellID)
	if sp == nil {
		return false, ReasonSpellNotFound
	}
	caster := cm.resolveActor(casterID, model.NoCombat)
	if caster == nil {
		return false, "Caster not found"
	}
	if reason := cm.checkGates(sp, caster); reason != "" {
		return false, reason
	}
	return true, ""
}

// LearnSpell adds the spell to a player caster's learned set, subject to
// class and level eligibility. Returns false for unknown spells,
// non-player casters, failed eligibility, or already-known spells.
func (cm *CastManager) LearnSpell(spellID, casterID string) bool {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	sp := cm.catalog.Lookup(spellID)
	if sp == nil {
		return false
	}
	caster := cm.resolveActor(casterID, model.NoCombat)
	if caster == nil || !caster.IsPlayer() {
		return false
	}
	l, ok := caster.(learner)
	if !ok {
		return false
	}
	if !sp.UsableBy(l.Class()) {
		return false
	}
	if l.Level() < sp.LearnLevel {
		return false
	}
	if !l.Learn(sp.ID) {
		return false
	}

	slog.Info("spell learned", "spell", sp.ID, "caster", caster.ID())
	return true
}

// Tick advances the engine clock by elapsed seconds and runs the three
// maintenance sweeps: MP regeneration, active effect expiry, cooldown
// cleanup. Elapsed is real time since the last invocation, not a fixed
// step; zero or negative elapsed is a no-op.
func (cm *CastManager) Tick(elapsed float64, inCombat bool) {
	if elapsed <= 0 {
		return
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()

	cm.now += elapsed
	cm.ledger.Regenerate(elapsed, inCombat)
	cm.registry.SweepExpired(cm.now, cm.lookupActor)
	cm.cooldowns.Sweep(cm.now)
}

// checkGates runs the learned/class gate (player casters only), the MP
// gate and the cooldown gate. Returns "" when all pass.
// Must be called with mu held.
func (cm *CastManager) checkGates(sp *data.Spell, caster model.Actor) string {
	if caster.IsPlayer() {
		if l, ok := caster.(learner); ok {
			if !l.Knows(sp.ID) {
				return ReasonSpellNotLearned
			}
			if !sp.UsableBy(l.Class()) {
				return ReasonWrongClass
			}
		}
	}

	if caster.Stat(model.StatMP) < sp.MPCost {
		return ReasonNotEnoughMP
	}

	if remaining := cm.cooldowns.Remaining(sp.ID, caster.ID(), cm.now); remaining > 0 {
		return fmt.Sprintf("Spell on cooldown (%.0fs remaining)", math.Ceil(remaining))
	}
	return ""
}

// resolveActor maps an actor ID to a live actor: the "player" alias,
// party members, encounter enemies, then the host resolver.
// Must be called with mu held.
func (cm *CastManager) resolveActor(id string, ctx model.CombatContext) model.Actor {
	if id == "" {
		return nil
	}
	if cm.party != nil {
		if id == model.PlayerID {
			return cm.party.Leader()
		}
		if m := cm.party.Member(id); m != nil {
			return m
		}
	}
	if e := ctx.Enemy(id); e != nil {
		return e
	}
	if cm.resolveExtra != nil {
		return cm.resolveExtra(id)
	}
	return nil
}

// lookupActor resolves actors for expiry sweeps, where no combat context
// is in scope. Must be called with mu held.
func (cm *CastManager) lookupActor(id string) model.Actor {
	return cm.resolveActor(id, model.NoCombat)
}

// roster supplies the ledger's tracked actors: the full party.
func (cm *CastManager) roster() []model.Actor {
	if cm.party == nil {
		return nil
	}
	return cm.party.Members()
}

// clock exposes the engine time to the pipeline. Only called while mu is
// held (pipeline runs inside CastSpell).
func (cm *CastManager) clock() float64 {
	return cm.now
}
