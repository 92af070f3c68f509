package spell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veyrand/spellcraft/internal/data"
	"github.com/veyrand/spellcraft/internal/model"
)

func testCatalog() *data.Catalog {
	return data.NewCatalog([]*data.Spell{
		{
			ID: "zap", Name: "Zap", MPCost: 20, Target: data.TargetSingleEnemy,
			Effects: []data.EffectSpec{{Type: data.EffectDamage, Power: 20}},
		},
		{
			ID: "bolt", Name: "Bolt", MPCost: 5, Cooldown: 8, Target: data.TargetSingleEnemy,
			Effects: []data.EffectSpec{{Type: data.EffectDamage, Power: 10}},
		},
		{
			ID: "protect", Name: "Protect", MPCost: 12, Target: data.TargetSingleAlly,
			Effects: []data.EffectSpec{{Type: data.EffectBuff, Stat: "defense", Value: 10, Duration: 5}},
		},
		{
			ID: "mend", Name: "Mend", MPCost: 10, Target: data.TargetSingleAlly,
			Effects: []data.EffectSpec{{Type: data.EffectHeal, Power: 25}},
		},
		{
			ID: "arcanum", Name: "Arcanum", MPCost: 10, Target: data.TargetSingleEnemy,
			Classes: []string{"mage"}, LearnLevel: 5,
			Effects: []data.EffectSpec{{Type: data.EffectDamage, Power: 30}},
		},
	})
}

// newTestEngine builds an engine with a two-member party, one enemy, and
// a pinned variance factor of 1.0.
func newTestEngine(t *testing.T) (*CastManager, *model.Character, *model.Character, model.CombatContext) {
	t.Helper()

	hero := model.NewPlayerCharacter(model.PlayerID, "Hero", "mage", 10, 100, 50)
	hero.Learn("zap")
	hero.Learn("bolt")
	hero.Learn("protect")
	hero.Learn("mend")

	party := model.NewParty(hero)

	enemy := model.NewCharacter("wolf", "Wolf", 25, 30)
	ctx := model.CombatContext{Active: true, Enemies: []model.Actor{enemy}}

	cm := NewCastManager(testCatalog(), party, Options{})
	cm.Pipeline().SetVariance(func() float64 { return 1.0 })
	cm.SetActorResolver(func(id string) model.Actor {
		if id == enemy.ID() {
			return enemy
		}
		return nil
	})
	return cm, hero, enemy, ctx
}

// Scenario A: successful damage cast debits MP and hurts the enemy.
func TestCastSpell_DamageCast(t *testing.T) {
	cm, hero, enemy, ctx := newTestEngine(t)

	// Real variance for this scenario; assert the documented range.
	cm.Pipeline().SetVariance(func() float64 { return 0.9 + 0.2*0.5 })

	res := cm.CastSpell("zap", model.PlayerID, "wolf", ctx)

	require.True(t, res.Success, "reason: %s", res.Reason)
	assert.Equal(t, 30.0, hero.Stat(model.StatMP), "mp conservation: 50 - 20")
	hp := enemy.Stat(model.StatHP)
	assert.GreaterOrEqual(t, hp, 25.0-22.0)
	assert.LessOrEqual(t, hp, 25.0-18.0)
	assert.GreaterOrEqual(t, hp, 0.0)
	require.Len(t, res.Effects, 1)
	assert.Equal(t, "wolf", res.Effects[0].TargetID)
	assert.True(t, res.Effects[0].Result.Applied)
}

// Scenario B: insufficient MP rejects without any mutation.
func TestCastSpell_NotEnoughMP(t *testing.T) {
	cm, hero, enemy, ctx := newTestEngine(t)
	hero.SetStat(model.StatMP, 10)

	res := cm.CastSpell("zap", model.PlayerID, "wolf", ctx)

	require.False(t, res.Success)
	assert.Equal(t, ReasonNotEnoughMP, res.Reason)
	assert.Equal(t, 10.0, hero.Stat(model.StatMP), "failed cast must not touch MP")
	assert.Equal(t, 25.0, enemy.Stat(model.StatHP), "failed cast must not touch the target")
}

// Scenario C: buff applies immediately and reverses after expiry.
func TestCastSpell_BuffExpiry(t *testing.T) {
	cm, hero, _, ctx := newTestEngine(t)
	hero.SetStat("defense", 20)

	res := cm.CastSpell("protect", model.PlayerID, model.PlayerID, ctx)
	require.True(t, res.Success, "reason: %s", res.Reason)
	assert.Equal(t, 30.0, hero.Stat("defense"))

	cm.Tick(6, false)
	assert.Equal(t, 20.0, hero.Stat("defense"), "buff must reverse on expiry")
}

// Scenario D: cooldown gates re-casts until the tick passes the expiry.
func TestCastSpell_CooldownCycle(t *testing.T) {
	cm, _, _, ctx := newTestEngine(t)

	res := cm.CastSpell("bolt", model.PlayerID, "wolf", ctx)
	require.True(t, res.Success, "reason: %s", res.Reason)

	cm.Tick(3, true)

	res = cm.CastSpell("bolt", model.PlayerID, "wolf", ctx)
	require.False(t, res.Success)
	assert.Equal(t, "Spell on cooldown (5s remaining)", res.Reason)

	cm.Tick(6, true) // t=9, past the 8s cooldown

	res = cm.CastSpell("bolt", model.PlayerID, "wolf", ctx)
	assert.True(t, res.Success, "reason: %s", res.Reason)
}

func TestCastSpell_SpellNotFound(t *testing.T) {
	cm, _, _, ctx := newTestEngine(t)

	res := cm.CastSpell("meteor", model.PlayerID, "wolf", ctx)
	require.False(t, res.Success)
	assert.Equal(t, ReasonSpellNotFound, res.Reason)
}

func TestCastSpell_NotLearned(t *testing.T) {
	cm, _, _, ctx := newTestEngine(t)

	res := cm.CastSpell("arcanum", model.PlayerID, "wolf", ctx)
	require.False(t, res.Success)
	assert.Equal(t, ReasonSpellNotLearned, res.Reason)
}

func TestCastSpell_WrongClass(t *testing.T) {
	cm, hero, _, ctx := newTestEngine(t)

	// Force-learn, then change class out from under the spell.
	require.True(t, cm.LearnSpell("arcanum", model.PlayerID))
	_ = hero

	warrior := model.NewPlayerCharacter("grunt", "Grunt", "warrior", 10, 100, 50)
	warrior.Learn("arcanum")
	party := model.NewParty(warrior)
	cm2 := NewCastManager(testCatalog(), party, Options{})

	res := cm2.CastSpell("arcanum", "grunt", "wolf", ctx)
	require.False(t, res.Success)
	assert.Equal(t, ReasonWrongClass, res.Reason)
}

func TestCastSpell_MonsterSkipsPlayerGates(t *testing.T) {
	cm, hero, enemy, ctx := newTestEngine(t)

	// Monsters never learn spells; the learned/class gates do not apply.
	hero.SetStat("defense", 10)
	res := cm.CastSpell("zap", enemy.ID(), model.PlayerID, ctx)
	require.True(t, res.Success, "reason: %s", res.Reason)
	assert.Less(t, hero.Stat(model.StatHP), 100.0)
}

func TestCastSpell_EmptyTargetSetStillCommits(t *testing.T) {
	cm, hero, _, _ := newTestEngine(t)

	// No encounter: single_enemy on a combat enemy resolves nothing,
	// but the cast itself still succeeds and commits resources.
	res := cm.CastSpell("bolt", model.PlayerID, "wolf", model.NoCombat)

	require.True(t, res.Success)
	assert.Empty(t, res.Targets)
	assert.Empty(t, res.Effects)
	assert.Equal(t, 45.0, hero.Stat(model.StatMP), "MP is still spent")
	assert.True(t, cm.Cooldowns().IsOnCooldown("bolt", model.PlayerID, cm.Now()))
}

func TestCanCastSpell_DryRun(t *testing.T) {
	cm, hero, _, ctx := newTestEngine(t)

	ok, reason := cm.CanCastSpell("zap", model.PlayerID)
	assert.True(t, ok)
	assert.Empty(t, reason)

	// Dry run has no side effects.
	assert.Equal(t, 50.0, hero.Stat(model.StatMP))

	hero.SetStat(model.StatMP, 3)
	ok, reason = cm.CanCastSpell("zap", model.PlayerID)
	assert.False(t, ok)
	assert.Equal(t, ReasonNotEnoughMP, reason)

	hero.SetStat(model.StatMP, 50)
	require.True(t, cm.CastSpell("bolt", model.PlayerID, "wolf", ctx).Success)
	ok, reason = cm.CanCastSpell("bolt", model.PlayerID)
	assert.False(t, ok)
	assert.Contains(t, reason, "cooldown")
}

func TestLearnSpell(t *testing.T) {
	cm, hero, _, _ := newTestEngine(t)

	assert.True(t, cm.LearnSpell("arcanum", model.PlayerID))
	assert.True(t, hero.Knows("arcanum"))

	// Already known.
	assert.False(t, cm.LearnSpell("arcanum", model.PlayerID))

	// Unknown spell.
	assert.False(t, cm.LearnSpell("meteor", model.PlayerID))
}

func TestLearnSpell_LevelGate(t *testing.T) {
	novice := model.NewPlayerCharacter("novice", "Novice", "mage", 2, 50, 30)
	party := model.NewParty(novice)
	cm := NewCastManager(testCatalog(), party, Options{})

	assert.False(t, cm.LearnSpell("arcanum", "novice"), "level 2 < learn level 5")

	novice.SetLevel(5)
	assert.True(t, cm.LearnSpell("arcanum", "novice"))
}

func TestLearnSpell_ClassGate(t *testing.T) {
	grunt := model.NewPlayerCharacter("grunt", "Grunt", "warrior", 10, 100, 30)
	party := model.NewParty(grunt)
	cm := NewCastManager(testCatalog(), party, Options{})

	assert.False(t, cm.LearnSpell("arcanum", "grunt"), "warriors cannot learn mage spells")
}

func TestLearnSpell_PlayerOnly(t *testing.T) {
	cm, _, enemy, _ := newTestEngine(t)

	assert.False(t, cm.LearnSpell("zap", enemy.ID()))
}

func TestTick_RegeneratesMP(t *testing.T) {
	cm, hero, _, _ := newTestEngine(t)
	hero.SetStat(model.StatMP, 10)

	cm.Tick(5, false) // field rate 2 MP/s
	assert.Equal(t, 20.0, hero.Stat(model.StatMP))

	cm.Tick(4, true) // combat rate 0.5 MP/s
	assert.Equal(t, 22.0, hero.Stat(model.StatMP))
}

func TestTick_ZeroElapsedIsIdempotent(t *testing.T) {
	cm, hero, _, _ := newTestEngine(t)
	hero.SetStat(model.StatMP, 10)

	cm.Tick(0, false)
	cm.Tick(-3, false)

	assert.Equal(t, 10.0, hero.Stat(model.StatMP))
	assert.Equal(t, 0.0, cm.Now(), "clock must not move on a zero tick")
}

func TestTick_SweepsCooldowns(t *testing.T) {
	cm, _, _, ctx := newTestEngine(t)

	require.True(t, cm.CastSpell("bolt", model.PlayerID, "wolf", ctx).Success)
	assert.Equal(t, 1, cm.Cooldowns().Len())

	cm.Tick(10, false)
	assert.Equal(t, 0, cm.Cooldowns().Len(), "expired cooldown entries are removed")
}

func TestCastSpell_ExpiredEnemyEffectWithResolver(t *testing.T) {
	cm, _, enemy, ctx := newTestEngine(t)
	enemy.SetStat("defense", 20)

	// Protect is ally-targeted; cast it from the wolf's side onto itself.
	res := cm.CastSpell("protect", enemy.ID(), enemy.ID(), ctx)
	require.True(t, res.Success, "reason: %s", res.Reason)
	assert.Equal(t, 30.0, enemy.Stat("defense"))

	// The host resolver lets the sweep find the enemy after the fight.
	cm.Tick(6, false)
	assert.Equal(t, 20.0, enemy.Stat("defense"))
}
