package mirror

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository writes mirror rows to Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// InsertLeadSnapshot appends one snapshot row. Rows are never updated;
// the mirror keeps the full event trail.
func (r *Repository) InsertLeadSnapshot(ctx context.Context, leadID, operation string, snapshot json.RawMessage) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO lead_snapshots (lead_id, operation, snapshot)
		VALUES ($1, $2, $3)`,
		leadID, operation, snapshot)
	return err
}

// PurgeLead removes every snapshot of a deleted lead.
func (r *Repository) PurgeLead(ctx context.Context, leadID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM lead_snapshots WHERE lead_id = $1`, leadID)
	return err
}

// UpsertProfile syncs one team member into the profile mirror.
func (r *Repository) UpsertProfile(ctx context.Context, userID, name, role string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO profile_mirror (user_id, name, role, synced_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (user_id) DO UPDATE
		SET name = EXCLUDED.name, role = EXCLUDED.role, synced_at = now()`,
		userID, name, role)
	return err
}
