package model

import "sync"

// Character is the primary actor kind: a living creature whose stats live
// in a nested bag keyed by name. Players, party members and monsters are
// all Characters; players additionally carry a learned-spell set and a
// class for eligibility checks.
type Character struct {
	mu sync.RWMutex

	id     string
	name   string
	player bool
	class  string
	level  int

	stats       map[string]float64
	resistances map[string]float64
	learned     map[string]bool
}

// NewCharacter creates a character with current HP/MP equal to the given
// maximums.
func NewCharacter(id, name string, maxHP, maxMP float64) *Character {
	return &Character{
		id:   id,
		name: name,
		stats: map[string]float64{
			StatHP:    maxHP,
			StatMaxHP: maxHP,
			StatMP:    maxMP,
			StatMaxMP: maxMP,
		},
		resistances: make(map[string]float64),
		learned:     make(map[string]bool),
	}
}

// NewPlayerCharacter creates a player-controlled character with a class
// and level, subject to learned-spell and class eligibility gates.
func NewPlayerCharacter(id, name, class string, level int, maxHP, maxMP float64) *Character {
	c := NewCharacter(id, name, maxHP, maxMP)
	c.player = true
	c.class = class
	c.level = level
	return c
}

func (c *Character) ID() string   { return c.id }
func (c *Character) Name() string { return c.name }

func (c *Character) IsPlayer() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.player
}

// Class returns the character's class name ("" for classless actors).
func (c *Character) Class() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.class
}

// Level returns the character's level (0 for monsters without one).
func (c *Character) Level() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.level
}

// SetLevel updates the character's level.
func (c *Character) SetLevel(level int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.level = level
}

// Stat returns the named stat, 0 if absent.
func (c *Character) Stat(name string) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stats[name]
}

// SetStat writes the named stat. No clamping happens here; range rules
// (MP bounds, the floor-at-1 buff rule) belong to the engine components
// that know which rule applies.
func (c *Character) SetStat(name string, value float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats[name] = value
}

// HasStat reports whether the stat exists in the bag.
func (c *Character) HasStat(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.stats[name]
	return ok
}

// Resistance returns the fractional mitigation for an element, 0 if unset.
func (c *Character) Resistance(element string) float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resistances[element]
}

// SetResistance sets the fractional mitigation (0..1) for an element.
func (c *Character) SetResistance(element string, frac float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resistances[element] = frac
}

// Learn marks a spell as learned. Returns false if already known.
func (c *Character) Learn(spellID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.learned[spellID] {
		return false
	}
	c.learned[spellID] = true
	return true
}

// Knows reports whether the spell is in the learned set.
func (c *Character) Knows(spellID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.learned[spellID]
}

// LearnedSpells returns a copy of the learned-spell IDs.
func (c *Character) LearnedSpells() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.learned))
	for id := range c.learned {
		ids = append(ids, id)
	}
	return ids
}
