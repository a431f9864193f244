package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gentlify/pacify/internal/domain/models"
)

// AppStateRepository keeps one state snapshot per user.
type AppStateRepository struct {
	BaseRepository
}

func NewAppStateRepository(pool *pgxpool.Pool) *AppStateRepository {
	return &AppStateRepository{
		BaseRepository: NewBaseRepository(pool),
	}
}

func (r *AppStateRepository) Save(ctx context.Context, record *models.AppStateRecord) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO app_state (user_id, version, snapshot, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO UPDATE
		SET version = EXCLUDED.version,
			snapshot = EXCLUDED.snapshot,
			updated_at = EXCLUDED.updated_at`

	_, err := r.conn(ctx).Exec(ctx, query,
		record.UserID,
		record.Version,
		record.Snapshot,
		record.UpdatedAt,
	)
	return err
}

func (r *AppStateRepository) Get(ctx context.Context, userID string) (*models.AppStateRecord, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT user_id, version, snapshot, updated_at FROM app_state WHERE user_id = $1`

	var record models.AppStateRecord
	err := r.conn(ctx).QueryRow(ctx, query, userID).Scan(
		&record.UserID,
		&record.Version,
		&record.Snapshot,
		&record.UpdatedAt,
	)
	if err != nil {
		if checkNoRows(err) {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}
	return &record, nil
}
