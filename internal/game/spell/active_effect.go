package spell

import "github.com/veyrand/spellcraft/internal/data"

// ActiveEffect is one live buff or debuff instance on a target.
// Created when a buff/debuff effect spec is applied and destroyed either
// by a cure or by the expiry sweep. Applied records the signed stat delta
// actually written (after the floor-at-1 clamp), so removal can reverse
// exactly what was applied.
type ActiveEffect struct {
	ID        string          `json:"id"`
	Kind      data.EffectType `json:"kind"` // EffectBuff or EffectDebuff
	SpellID   string          `json:"spellId"`
	CasterID  string          `json:"casterId"`
	Stat      string          `json:"stat"`
	Value     float64         `json:"value"`
	Applied   float64         `json:"applied"`
	Condition string          `json:"condition,omitempty"`
	ExpiresAt float64         `json:"expiresAt"` // engine clock seconds
}

// IsExpired reports whether the effect duration has elapsed at the given
// engine time.
func (ae *ActiveEffect) IsExpired(now float64) bool {
	return ae.ExpiresAt <= now
}
