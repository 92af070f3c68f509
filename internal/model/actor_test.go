package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Both actor shapes expose the same stat surface; the engine never
// branches on layout.
func TestActorShapes_StatSurface(t *testing.T) {
	for _, tc := range []struct {
		name  string
		actor Actor
	}{
		{"character", NewCharacter("c", "C", 100, 50)},
		{"simple", NewSimpleActor("s", "S", 100, 50)},
	} {
		t.Run(tc.name, func(t *testing.T) {
			a := tc.actor

			assert.Equal(t, 100.0, a.Stat(StatHP))
			assert.Equal(t, 100.0, a.Stat(StatMaxHP))
			assert.Equal(t, 50.0, a.Stat(StatMP))
			assert.True(t, a.HasStat(StatHP))
			assert.True(t, a.HasStat(StatMaxMP))

			a.SetStat(StatHP, 40)
			assert.Equal(t, 40.0, a.Stat(StatHP))

			// Open-ended stats work the same way on both shapes.
			assert.False(t, a.HasStat("defense"))
			a.SetStat("defense", 15)
			assert.True(t, a.HasStat("defense"))
			assert.Equal(t, 15.0, a.Stat("defense"))

			assert.Equal(t, 0.0, a.Resistance("fire"))
		})
	}
}

func TestCharacter_Resistances(t *testing.T) {
	c := NewCharacter("wolf", "Wolf", 60, 10)
	c.SetResistance("ice", 0.5)

	assert.Equal(t, 0.5, c.Resistance("ice"))
	assert.Equal(t, 0.0, c.Resistance("fire"))
}

func TestCharacter_LearnedSet(t *testing.T) {
	c := NewPlayerCharacter(PlayerID, "Hero", "mage", 10, 100, 50)

	assert.False(t, c.Knows("firebolt"))
	assert.True(t, c.Learn("firebolt"))
	assert.False(t, c.Learn("firebolt"), "learning twice should fail")
	assert.True(t, c.Knows("firebolt"))
	assert.Equal(t, []string{"firebolt"}, c.LearnedSpells())
}

func TestIsKnockedOut(t *testing.T) {
	c := NewCharacter("wolf", "Wolf", 60, 10)
	assert.False(t, IsKnockedOut(c))

	c.SetStat(StatHP, 0)
	assert.True(t, IsKnockedOut(c))
}

func TestSimpleActor_IsNeverPlayer(t *testing.T) {
	assert.False(t, NewSimpleActor("imp", "Imp", 20, 0).IsPlayer())
}
