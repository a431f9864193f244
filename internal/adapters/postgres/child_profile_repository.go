package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gentlify/pacify/internal/domain/models"
)

type ChildProfileRepository struct {
	BaseRepository
}

func NewChildProfileRepository(pool *pgxpool.Pool) *ChildProfileRepository {
	return &ChildProfileRepository{
		BaseRepository: NewBaseRepository(pool),
	}
}

const childProfileColumns = `id, user_id, name, age_years, age_months, traits, is_active, created_at, updated_at`

func (r *ChildProfileRepository) Create(ctx context.Context, p *models.ChildProfile) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO child_profiles (` + childProfileColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	createdAt := parseCreatedAt(p.CreatedAt)
	_, err := r.conn(ctx).Exec(ctx, query,
		p.ID,
		p.UserID,
		p.Name,
		p.AgeYears,
		p.AgeMonths,
		traitStrings(p.Traits),
		p.IsActive,
		createdAt,
		createdAt,
	)
	return err
}

func (r *ChildProfileRepository) GetByID(ctx context.Context, id, userID string) (*models.ChildProfile, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + childProfileColumns + ` FROM child_profiles WHERE id = $1 AND user_id = $2`

	return r.scanProfile(r.conn(ctx).QueryRow(ctx, query, id, userID))
}

func (r *ChildProfileRepository) GetActive(ctx context.Context, userID string) (*models.ChildProfile, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + childProfileColumns + ` FROM child_profiles WHERE user_id = $1 AND is_active`

	return r.scanProfile(r.conn(ctx).QueryRow(ctx, query, userID))
}

func (r *ChildProfileRepository) ListByUser(ctx context.Context, userID string) ([]*models.ChildProfile, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT ` + childProfileColumns + `
		FROM child_profiles
		WHERE user_id = $1
		ORDER BY created_at ASC`

	rows, err := r.conn(ctx).Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := []*models.ChildProfile{}
	for rows.Next() {
		p, err := scanChildProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

func (r *ChildProfileRepository) Update(ctx context.Context, p *models.ChildProfile) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE child_profiles
		SET name = $1, age_years = $2, age_months = $3, traits = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6`

	result, err := r.conn(ctx).Exec(ctx, query,
		p.Name,
		p.AgeYears,
		p.AgeMonths,
		traitStrings(p.Traits),
		p.ID,
		p.UserID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ChildProfileRepository) Delete(ctx context.Context, id, userID string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `DELETE FROM child_profiles WHERE id = $1 AND user_id = $2`

	result, err := r.conn(ctx).Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ChildProfileRepository) DeactivateAll(ctx context.Context, userID string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `UPDATE child_profiles SET is_active = FALSE, updated_at = NOW() WHERE user_id = $1 AND is_active`

	_, err := r.conn(ctx).Exec(ctx, query, userID)
	return err
}

func (r *ChildProfileRepository) SetActive(ctx context.Context, id, userID string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `UPDATE child_profiles SET is_active = TRUE, updated_at = NOW() WHERE id = $1 AND user_id = $2`

	result, err := r.conn(ctx).Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ChildProfileRepository) scanProfile(row pgx.Row) (*models.ChildProfile, error) {
	p, err := scanChildProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}
	return p, nil
}

func scanChildProfile(row pgx.Row) (*models.ChildProfile, error) {
	var (
		p         models.ChildProfile
		traits    []string
		createdAt time.Time
		updatedAt time.Time
	)

	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.AgeYears,
		&p.AgeMonths,
		&traits,
		&p.IsActive,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Traits = make([]models.PersonalityTrait, len(traits))
	for i, t := range traits {
		p.Traits[i] = models.PersonalityTrait(t)
	}
	p.CreatedAt = createdAt.UTC().Format(time.RFC3339)
	p.UpdatedAt = &updatedAt
	return &p, nil
}

func traitStrings(traits []models.PersonalityTrait) []string {
	out := make([]string, len(traits))
	for i, t := range traits {
		out[i] = string(t)
	}
	return out
}

// parseCreatedAt reads the RFC 3339 creation time profiles carry, falling
// back to now.
func parseCreatedAt(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC()
	}
	return time.Now().UTC()
}
