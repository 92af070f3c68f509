package data

// TargetType determines who a spell may hit.
type TargetType int8

const (
	TargetSelf TargetType = iota
	TargetSingleAlly
	TargetSingleEnemy
	TargetAllAllies
	TargetAllEnemies
	TargetArea
	TargetUnknown
)

// ParseTargetType converts a catalog string to a TargetType.
func ParseTargetType(s string) TargetType {
	switch s {
	case "self":
		return TargetSelf
	case "single_ally":
		return TargetSingleAlly
	case "single_enemy":
		return TargetSingleEnemy
	case "all_allies":
		return TargetAllAllies
	case "all_enemies":
		return TargetAllEnemies
	case "area":
		return TargetArea
	default:
		return TargetUnknown
	}
}

// String returns the catalog spelling of the target type.
func (t TargetType) String() string {
	switch t {
	case TargetSelf:
		return "self"
	case TargetSingleAlly:
		return "single_ally"
	case TargetSingleEnemy:
		return "single_enemy"
	case TargetAllAllies:
		return "all_allies"
	case TargetAllEnemies:
		return "all_enemies"
	case TargetArea:
		return "area"
	default:
		return "unknown"
	}
}

// EffectType tags one entry in a spell's effect list.
type EffectType int8

const (
	EffectDamage EffectType = iota
	EffectHeal
	EffectBuff
	EffectDebuff
	EffectRemoveStatus
	EffectMPRestore
	EffectUnknown
)

// ParseEffectType converts a catalog string to an EffectType.
// Unknown strings map to EffectUnknown; the pipeline reports those as
// per-effect failures instead of rejecting the whole catalog entry.
func ParseEffectType(s string) EffectType {
	switch s {
	case "damage":
		return EffectDamage
	case "heal":
		return EffectHeal
	case "buff":
		return EffectBuff
	case "debuff":
		return EffectDebuff
	case "remove_status":
		return EffectRemoveStatus
	case "mp_restore":
		return EffectMPRestore
	default:
		return EffectUnknown
	}
}

// String returns the catalog spelling of the effect type.
func (t EffectType) String() string {
	switch t {
	case EffectDamage:
		return "damage"
	case EffectHeal:
		return "heal"
	case EffectBuff:
		return "buff"
	case EffectDebuff:
		return "debuff"
	case EffectRemoveStatus:
		return "remove_status"
	case EffectMPRestore:
		return "mp_restore"
	default:
		return "unknown"
	}
}

// EffectSpec is one entry in a spell's ordered effect list.
//
// Power and the optional caster-stat scaling feed damage, heal and
// mp_restore. Stat/Value/Duration describe buffs and debuffs. Conditions
// lists the status tags a remove_status effect cures. RawType preserves
// the original catalog string for reporting unknown types.
type EffectSpec struct {
	Type              EffectType
	RawType           string
	Power             float64
	Scaling           string  // caster stat name, "" = no scaling
	ScalingMultiplier float64 // defaults to 1 when Scaling is set
	Stat              string
	Value             float64
	Duration          float64 // seconds, 0 = engine default
	Condition         string  // status tag carried by buffs/debuffs
	Conditions        []string
}

// Spell is an immutable catalog entry. One instance per spell ID,
// shared across all casters — never modify after loading.
type Spell struct {
	ID         string
	Name       string
	MPCost     float64
	Cooldown   float64 // seconds
	Element    string  // "" = neutral, skips resistance lookup
	Target     TargetType
	Classes    []string // empty = any class
	LearnLevel int
	Effects    []EffectSpec
}

// UsableBy reports whether the spell's class list admits the given class.
// An empty list admits everyone.
func (s *Spell) UsableBy(class string) bool {
	if len(s.Classes) == 0 {
		return true
	}
	for _, c := range s.Classes {
		if c == class {
			return true
		}
	}
	return false
}
