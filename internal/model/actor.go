package model

// Well-known stat names. The stat bag is open-ended; these are the only
// names the engine itself reads.
const (
	StatHP    = "hp"
	StatMaxHP = "maxHp"
	StatMP    = "mp"
	StatMaxMP = "maxMp"
)

// PlayerID is the reserved actor ID for the primary player character.
// Cast requests may name either this literal or any concrete actor ID.
const PlayerID = "player"

// Actor is the stat surface the engine needs from any effect recipient.
// It is the single access capability for both actor shapes: characters
// keeping stats in a nested bag and legacy records with flat fields both
// implement it, so the engine never branches on actor layout.
type Actor interface {
	ID() string
	Name() string

	// IsPlayer reports whether the actor is subject to player-only rules
	// (learned-spell and class gates).
	IsPlayer() bool

	Stat(name string) float64
	SetStat(name string, value float64)
	HasStat(name string) bool

	// Resistance returns the fractional mitigation (0..1) for an element,
	// 0 if the actor has no entry for it.
	Resistance(element string) float64
}

// IsKnockedOut reports whether an actor's HP has been driven to zero.
func IsKnockedOut(a Actor) bool {
	return a.Stat(StatHP) <= 0
}
