package spell

import (
	"github.com/veyrand/spellcraft/internal/data"
	"github.com/veyrand/spellcraft/internal/model"
)

// ResolveTargets maps a spell's abstract target mode to concrete actors.
// Pure with respect to world state: it only reads.
//
// Alliance rule: the caster's roster decides sides. The player and every
// party member are mutually allied; encounter enemies are allied with
// each other and hostile to the player side.
//
// An empty result is not an error: single-target modes yield nothing when
// the explicit target is absent, unresolvable, or on the wrong side, and
// all_enemies yields nothing outside an active encounter. Candidates
// without a recognizable stat surface are dropped silently.
func ResolveTargets(mode data.TargetType, caster model.Actor, targetID string, party *model.Party, ctx model.CombatContext) []model.Actor {
	casterIsEnemy := ctx.IsEnemy(caster.ID())

	var out []model.Actor
	switch mode {
	case data.TargetSelf:
		out = []model.Actor{caster}

	case data.TargetSingleAlly:
		t := findActor(targetID, party, ctx)
		if t != nil && allied(caster.ID(), t.ID(), casterIsEnemy, party, ctx) {
			out = []model.Actor{t}
		}

	case data.TargetSingleEnemy:
		t := findActor(targetID, party, ctx)
		if t != nil && t.ID() != caster.ID() && !allied(caster.ID(), t.ID(), casterIsEnemy, party, ctx) {
			out = []model.Actor{t}
		}

	case data.TargetAllAllies:
		if casterIsEnemy {
			out = append(out, ctx.Enemies...)
		} else if party != nil {
			out = append(out, party.Members()...)
		} else {
			out = []model.Actor{caster}
		}

	case data.TargetAllEnemies:
		if !ctx.Active {
			break
		}
		if casterIsEnemy {
			if party != nil {
				out = append(out, party.Members()...)
			}
		} else {
			out = append(out, ctx.Enemies...)
		}

	case data.TargetArea:
		// Position-based targeting needs a spatial model the engine does
		// not have; resolves to no targets.
	}

	return filterTargetable(out)
}

// findActor resolves an explicit target ID against the party roster and
// the encounter enemy roster. Returns nil if absent.
func findActor(id string, party *model.Party, ctx model.CombatContext) model.Actor {
	if id == "" {
		return nil
	}
	if party != nil {
		if id == model.PlayerID {
			return party.Leader()
		}
		if m := party.Member(id); m != nil {
			return m
		}
	}
	return ctx.Enemy(id)
}

// allied reports whether two actor IDs belong to the same roster.
func allied(casterID, otherID string, casterIsEnemy bool, party *model.Party, ctx model.CombatContext) bool {
	if casterID == otherID {
		return true
	}
	if casterIsEnemy {
		return ctx.IsEnemy(otherID)
	}
	return party != nil && party.IsMember(otherID)
}

// filterTargetable drops candidates without a usable stat surface.
func filterTargetable(actors []model.Actor) []model.Actor {
	n := 0
	for _, a := range actors {
		if a == nil {
			continue
		}
		if !a.HasStat(model.StatHP) && !a.HasStat(model.StatMaxHP) {
			continue
		}
		actors[n] = a
		n++
	}
	return actors[:n]
}
