package spell

import (
	"encoding/json"
	"fmt"
)

// State is a serializable snapshot of the engine's time-bounded state:
// the clock, live cooldown entries, and active effects per target.
// ImportState(ExportState()) reproduces an equivalent engine.
//
// JSON is the snapshot codec because the state repository stores it in a
// JSONB column; the round-trip contract holds with or without a database.
type State struct {
	Clock         float64                   `json:"clock"`
	Cooldowns     map[string]float64        `json:"cooldowns"`
	ActiveEffects map[string][]ActiveEffect `json:"activeEffects"`
}

// ExportState captures the current clock, cooldowns and active effects.
func (cm *CastManager) ExportState() *State {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	return &State{
		Clock:         cm.now,
		Cooldowns:     cm.cooldowns.snapshot(),
		ActiveEffects: cm.registry.snapshot(),
	}
}

// ImportState replaces the engine's clock, cooldowns and active effects
// with the snapshot's contents. Actor stats are not touched: a snapshot
// restores the bookkeeping, the caller restores the actors.
func (cm *CastManager) ImportState(st *State) {
	if st == nil {
		return
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()

	cm.now = st.Clock
	cm.cooldowns.restore(st.Cooldowns)
	cm.registry.restore(st.ActiveEffects)
}

// EncodeState serializes a snapshot to JSON.
func EncodeState(st *State) ([]byte, error) {
	raw, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("encoding engine state: %w", err)
	}
	return raw, nil
}

// DecodeState deserializes a snapshot from JSON.
func DecodeState(raw []byte) (*State, error) {
	var st State
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("decoding engine state: %w", err)
	}
	return &st, nil
}
