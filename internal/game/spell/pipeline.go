package spell

import (
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/veyrand/spellcraft/internal/data"
	"github.com/veyrand/spellcraft/internal/model"
)

// DefaultEffectDuration is the buff/debuff lifetime in seconds when the
// catalog entry does not specify one.
const DefaultEffectDuration = 30.0

// Pipeline applies one effect spec to one resolved target on behalf of
// one caster. Stateless apart from reading/writing actor stats and the
// effect registry.
type Pipeline struct {
	registry *EffectRegistry
	ledger   *ManaLedger

	// clock returns the current engine time in seconds.
	clock func() float64

	// variance returns the damage variance factor, uniform in [0.9, 1.1].
	// Injectable so tests can pin it.
	variance func() float64

	defaultDuration float64
}

// NewPipeline creates a pipeline over the given registry and ledger.
func NewPipeline(registry *EffectRegistry, ledger *ManaLedger, clock func() float64) *Pipeline {
	return &Pipeline{
		registry:        registry,
		ledger:          ledger,
		clock:           clock,
		variance:        func() float64 { return 0.9 + rand.Float64()*0.2 },
		defaultDuration: DefaultEffectDuration,
	}
}

// SetVariance overrides the damage variance source.
func (p *Pipeline) SetVariance(fn func() float64) {
	p.variance = fn
}

// SetDefaultDuration overrides the fallback buff/debuff duration.
func (p *Pipeline) SetDefaultDuration(seconds float64) {
	if seconds > 0 {
		p.defaultDuration = seconds
	}
}

// Apply runs one effect spec against one target and reports the outcome.
// Failures here are isolated to this (target, effect) pair.
func (p *Pipeline) Apply(caster, target model.Actor, sp *data.Spell, spec data.EffectSpec) EffectOutcome {
	switch spec.Type {
	case data.EffectDamage:
		return p.applyDamage(caster, target, sp, spec)
	case data.EffectHeal:
		return p.applyHeal(caster, target, spec)
	case data.EffectBuff, data.EffectDebuff:
		return p.applyModifier(caster, target, sp, spec)
	case data.EffectRemoveStatus:
		return p.applyRemoveStatus(target, spec)
	case data.EffectMPRestore:
		return p.applyMPRestore(caster, target, spec)
	default:
		slog.Warn("unknown effect type, skipping",
			"type", spec.RawType,
			"spell", sp.ID,
			"target", target.ID())
		return EffectOutcome{
			Type:    spec.RawType,
			Applied: false,
			Reason:  fmt.Sprintf("unknown effect type: %s", spec.RawType),
		}
	}
}

// scaledPower computes power plus the optional caster-stat scaling term.
func scaledPower(caster model.Actor, spec data.EffectSpec) float64 {
	amount := spec.Power
	if spec.Scaling != "" {
		amount += caster.Stat(spec.Scaling) * spec.ScalingMultiplier
	}
	return amount
}

// applyDamage: power + scaling, elemental mitigation, uniform variance,
// integer floor, minimum 1. HP never drops below 0.
func (p *Pipeline) applyDamage(caster, target model.Actor, sp *data.Spell, spec data.EffectSpec) EffectOutcome {
	amount := scaledPower(caster, spec)

	if sp.Element != "" {
		if res := target.Resistance(sp.Element); res > 0 {
			amount *= 1 - res
		}
	}

	amount *= p.variance()
	dmg := int(math.Floor(amount))
	if dmg < 1 {
		dmg = 1
	}

	newHP := target.Stat(model.StatHP) - float64(dmg)
	if newHP < 0 {
		newHP = 0
	}
	target.SetStat(model.StatHP, newHP)

	slog.Debug("damage dealt",
		"spell", sp.ID,
		"damage", dmg,
		"caster", caster.ID(),
		"target", target.ID(),
		"hp", newHP)

	return EffectOutcome{
		Type:       spec.Type.String(),
		Applied:    true,
		Amount:     dmg,
		KnockedOut: newHP <= 0,
	}
}

// applyHeal raises HP by the computed amount clamped to maxHp. The
// clamped amount is authoritative: it is both what is applied and what
// is reported, so HP can never exceed maxHp through this path.
func (p *Pipeline) applyHeal(caster, target model.Actor, spec data.EffectSpec) EffectOutcome {
	computed := scaledPower(caster, spec)

	current := target.Stat(model.StatHP)
	room := target.Stat(model.StatMaxHP) - current
	if computed > room {
		computed = room
	}
	if computed < 0 {
		computed = 0
	}
	healed := math.Floor(computed)
	target.SetStat(model.StatHP, current+healed)

	slog.Debug("heal applied",
		"healed", healed,
		"caster", caster.ID(),
		"target", target.ID())

	return EffectOutcome{
		Type:    spec.Type.String(),
		Applied: true,
		Amount:  int(healed),
	}
}

// applyModifier handles buffs and debuffs: a flat (stat, value, duration)
// triple applied directly, with a floor of 1, and a registry entry whose
// expiry triggers the exact reversal.
func (p *Pipeline) applyModifier(caster, target model.Actor, sp *data.Spell, spec data.EffectSpec) EffectOutcome {
	if spec.Stat == "" {
		return EffectOutcome{
			Type:    spec.Type.String(),
			Applied: false,
			Reason:  "effect has no stat to modify",
		}
	}

	delta := spec.Value
	if spec.Type == data.EffectDebuff {
		delta = -delta
	}
	applied := adjustStat(target, spec.Stat, delta)

	duration := spec.Duration
	if duration <= 0 {
		duration = p.defaultDuration
	}

	ae := &ActiveEffect{
		ID:        uuid.NewString(),
		Kind:      spec.Type,
		SpellID:   sp.ID,
		CasterID:  caster.ID(),
		Stat:      spec.Stat,
		Value:     spec.Value,
		Applied:   applied,
		Condition: spec.Condition,
		ExpiresAt: p.clock() + duration,
	}
	p.registry.Apply(target.ID(), ae)

	slog.Debug("modifier applied",
		"kind", spec.Type.String(),
		"stat", spec.Stat,
		"value", spec.Value,
		"duration", duration,
		"target", target.ID())

	return EffectOutcome{
		Type:     spec.Type.String(),
		Applied:  true,
		Stat:     spec.Stat,
		Value:    spec.Value,
		Duration: duration,
	}
}

// applyRemoveStatus cures every active debuff on the target whose
// condition tag matches one of the spec's conditions, reversing each
// removed entry's stat delta.
func (p *Pipeline) applyRemoveStatus(target model.Actor, spec data.EffectSpec) EffectOutcome {
	tags := make(map[string]bool, len(spec.Conditions))
	for _, c := range spec.Conditions {
		tags[c] = true
	}

	removed := p.registry.RemoveMatching(target.ID(), target, func(ae *ActiveEffect) bool {
		return isDebuff(ae) && ae.Condition != "" && tags[ae.Condition]
	})

	slog.Debug("statuses removed",
		"removed", removed,
		"target", target.ID())

	return EffectOutcome{
		Type:    spec.Type.String(),
		Applied: true,
		Removed: removed,
	}
}

// applyMPRestore raises MP by the computed amount clamped to maxMp,
// through the ledger so the sync hook fires.
func (p *Pipeline) applyMPRestore(caster, target model.Actor, spec data.EffectSpec) EffectOutcome {
	computed := math.Floor(scaledPower(caster, spec))
	restored := p.ledger.Restore(target, computed)

	slog.Debug("mp restored",
		"restored", restored,
		"caster", caster.ID(),
		"target", target.ID())

	return EffectOutcome{
		Type:    spec.Type.String(),
		Applied: true,
		Amount:  int(restored),
	}
}
