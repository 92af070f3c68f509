package model

import "sync"

// SimpleActor is the flat actor shape: HP/MP live in top-level fields
// instead of a stats bag. Summons and scripted encounter dummies use this
// layout. It satisfies Actor so the engine treats both shapes uniformly.
type SimpleActor struct {
	mu sync.RWMutex

	id   string
	name string

	HP    float64
	MaxHP float64
	MP    float64
	MaxMP float64

	// extra holds any named stat beyond the four pool fields.
	extra map[string]float64

	resistances map[string]float64
}

// NewSimpleActor creates a flat-shape actor with full pools.
func NewSimpleActor(id, name string, maxHP, maxMP float64) *SimpleActor {
	return &SimpleActor{
		id:          id,
		name:        name,
		HP:          maxHP,
		MaxHP:       maxHP,
		MP:          maxMP,
		MaxMP:       maxMP,
		extra:       make(map[string]float64),
		resistances: make(map[string]float64),
	}
}

func (a *SimpleActor) ID() string     { return a.id }
func (a *SimpleActor) Name() string   { return a.name }
func (a *SimpleActor) IsPlayer() bool { return false }

func (a *SimpleActor) Stat(name string) float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	switch name {
	case StatHP:
		return a.HP
	case StatMaxHP:
		return a.MaxHP
	case StatMP:
		return a.MP
	case StatMaxMP:
		return a.MaxMP
	}
	return a.extra[name]
}

func (a *SimpleActor) SetStat(name string, value float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	switch name {
	case StatHP:
		a.HP = value
	case StatMaxHP:
		a.MaxHP = value
	case StatMP:
		a.MP = value
	case StatMaxMP:
		a.MaxMP = value
	default:
		a.extra[name] = value
	}
}

func (a *SimpleActor) HasStat(name string) bool {
	switch name {
	case StatHP, StatMaxHP, StatMP, StatMaxMP:
		return true
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	_, ok := a.extra[name]
	return ok
}

func (a *SimpleActor) Resistance(element string) float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.resistances[element]
}

// SetResistance sets the fractional mitigation (0..1) for an element.
func (a *SimpleActor) SetResistance(element string, frac float64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.resistances[element] = frac
}
