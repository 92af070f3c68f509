package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veyrand/spellcraft/internal/game/spell"
)

// StateRepository persists engine state snapshots (cooldowns + active
// effects) keyed by save-slot name.
type StateRepository struct {
	db *pgxpool.Pool
}

// NewStateRepository creates a repository over the given pool.
func NewStateRepository(db *pgxpool.Pool) *StateRepository {
	return &StateRepository{db: db}
}

// Save upserts the snapshot into the given slot.
func (r *StateRepository) Save(ctx context.Context, slot string, st *spell.State) error {
	raw, err := spell.EncodeState(st)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx,
		`INSERT INTO engine_state (slot, state, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (slot) DO UPDATE SET state = EXCLUDED.state, updated_at = now()`,
		slot, raw,
	)
	if err != nil {
		return fmt.Errorf("saving engine state %q: %w", slot, err)
	}
	return nil
}

// Load retrieves the snapshot stored in the given slot.
// Returns nil, nil if the slot is empty.
func (r *StateRepository) Load(ctx context.Context, slot string) (*spell.State, error) {
	var raw []byte
	err := r.db.QueryRow(ctx,
		`SELECT state FROM engine_state WHERE slot = $1`, slot,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading engine state %q: %w", slot, err)
	}
	return spell.DecodeState(raw)
}

// Delete removes the snapshot in the given slot.
func (r *StateRepository) Delete(ctx context.Context, slot string) error {
	if _, err := r.db.Exec(ctx,
		`DELETE FROM engine_state WHERE slot = $1`, slot,
	); err != nil {
		return fmt.Errorf("deleting engine state %q: %w", slot, err)
	}
	return nil
}
