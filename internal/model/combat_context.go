package model

// CombatContext is the explicit encounter state passed into every cast.
// It replaces ambient "is a battle running" lookups so the engine's inputs
// stay visible and tests can construct encounters directly.
//
// Alliance rule: the player and all party members form one roster; the
// encounter enemies form the other. Two actors are allies iff they belong
// to the same roster.
type CombatContext struct {
	// Active reports whether an encounter is currently running.
	// all_enemies resolves empty when false.
	Active bool

	// Enemies is the opposing roster for the active encounter.
	Enemies []Actor
}

// NoCombat is the context for casts outside any encounter.
var NoCombat = CombatContext{}

// Enemy returns the encounter enemy with the given ID, nil if absent
// or no encounter is active.
func (c CombatContext) Enemy(id string) Actor {
	if !c.Active {
		return nil
	}
	for _, e := range c.Enemies {
		if e.ID() == id {
			return e
		}
	}
	return nil
}

// IsEnemy reports whether the actor ID belongs to the enemy roster.
func (c CombatContext) IsEnemy(id string) bool {
	return c.Enemy(id) != nil
}
