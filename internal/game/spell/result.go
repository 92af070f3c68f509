package spell

// Reason strings for gate rejections. These are user-presentable and
// returned verbatim in CastResult.Reason.
const (
	ReasonSpellNotFound   = "Spell not found"
	ReasonSpellNotLearned = "Spell not learned"
	ReasonWrongClass      = "Class cannot use this spell"
	ReasonNotEnoughMP     = "Not enough MP"
)

// EffectOutcome reports what one effect spec did to one target.
// Per-effect failures (unknown type, missing stat) set Applied=false with
// a Reason but never fail the surrounding cast.
type EffectOutcome struct {
	Type    string `json:"type"`
	Applied bool   `json:"applied"`
	Reason  string `json:"reason,omitempty"`

	// Damage / heal / mp_restore
	Amount     int  `json:"amount,omitempty"`
	KnockedOut bool `json:"knockedOut,omitempty"`

	// Buff / debuff
	Stat     string  `json:"stat,omitempty"`
	Value    float64 `json:"value,omitempty"`
	Duration float64 `json:"duration,omitempty"`

	// remove_status
	Removed int `json:"removed,omitempty"`
}

// EffectApplication pairs one resolved target with one effect outcome.
type EffectApplication struct {
	TargetID string        `json:"target"`
	Effect   string        `json:"effect"`
	Result   EffectOutcome `json:"result"`
}

// CastResult is returned synchronously from every cast attempt.
type CastResult struct {
	Success  bool                `json:"success"`
	Reason   string              `json:"reason,omitempty"`
	SpellID  string              `json:"spell,omitempty"`
	CasterID string              `json:"caster,omitempty"`
	Targets  []string            `json:"targets,omitempty"`
	Effects  []EffectApplication `json:"effects,omitempty"`
}

// rejected builds a failed CastResult with the given reason.
func rejected(spellID, casterID, reason string) CastResult {
	return CastResult{
		Success:  false,
		Reason:   reason,
		SpellID:  spellID,
		CasterID: casterID,
	}
}
