package spell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veyrand/spellcraft/internal/model"
)

func TestExportImportState_RoundTrip(t *testing.T) {
	cm, hero, _, ctx := newTestEngine(t)
	hero.SetStat("defense", 20)

	require.True(t, cm.CastSpell("bolt", model.PlayerID, "wolf", ctx).Success)
	require.True(t, cm.CastSpell("protect", model.PlayerID, model.PlayerID, ctx).Success)
	cm.Tick(3, true)

	st := cm.ExportState()
	assert.Equal(t, 3.0, st.Clock)
	assert.Len(t, st.Cooldowns, 1)
	assert.Len(t, st.ActiveEffects[model.PlayerID], 1)

	// Fresh engine over the same roster, rehydrated from the snapshot.
	hero2 := model.NewPlayerCharacter(model.PlayerID, "Hero", "mage", 10, 100, 50)
	hero2.Learn("bolt")
	hero2.SetStat("defense", 30) // buff is still applied on the live stats
	cm2 := NewCastManager(testCatalog(), model.NewParty(hero2), Options{})
	cm2.ImportState(st)

	assert.Equal(t, 3.0, cm2.Now())

	// The imported cooldown still gates the re-cast.
	res := cm2.CastSpell("bolt", model.PlayerID, "wolf", ctx)
	require.False(t, res.Success)
	assert.Equal(t, "Spell on cooldown (5s remaining)", res.Reason)

	// The imported buff expires on schedule and reverses exactly.
	cm2.Tick(3, false) // t=6, past the 5s protect duration
	assert.Equal(t, 20.0, hero2.Stat("defense"))
	assert.Equal(t, 0, cm2.Registry().Count())
}

func TestEncodeDecodeState(t *testing.T) {
	cm, _, _, ctx := newTestEngine(t)

	require.True(t, cm.CastSpell("bolt", model.PlayerID, "wolf", ctx).Success)
	require.True(t, cm.CastSpell("protect", model.PlayerID, model.PlayerID, ctx).Success)
	cm.Tick(1, true)

	raw, err := EncodeState(cm.ExportState())
	require.NoError(t, err)

	decoded, err := DecodeState(raw)
	require.NoError(t, err)

	assert.Equal(t, 1.0, decoded.Clock)
	assert.Len(t, decoded.Cooldowns, 1)
	require.Len(t, decoded.ActiveEffects[model.PlayerID], 1)

	ae := decoded.ActiveEffects[model.PlayerID][0]
	assert.Equal(t, "protect", ae.SpellID)
	assert.Equal(t, "defense", ae.Stat)
	assert.Equal(t, 10.0, ae.Applied)
	assert.Equal(t, 5.0, ae.ExpiresAt)
}

func TestDecodeState_Invalid(t *testing.T) {
	_, err := DecodeState([]byte("not json"))
	assert.Error(t, err)
}

func TestImportState_NilIsNoop(t *testing.T) {
	cm, _, _, _ := newTestEngine(t)
	cm.Tick(2, false)

	cm.ImportState(nil)
	assert.Equal(t, 2.0, cm.Now())
}
