package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gentlify/pacify/internal/domain"
	"github.com/gentlify/pacify/internal/domain/models"
)

const uniqueViolation = "23505"

type NewsletterRepository struct {
	BaseRepository
}

func NewNewsletterRepository(pool *pgxpool.Pool) *NewsletterRepository {
	return &NewsletterRepository{
		BaseRepository: NewBaseRepository(pool),
	}
}

// Create stores a signup. A second signup for the same email fails with
// domain.ErrAlreadySubscribed.
func (r *NewsletterRepository) Create(ctx context.Context, s *models.NewsletterSignup) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO newsletter_signups (
			id, email, name, source, confirmed, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)`

	_, err := r.conn(ctx).Exec(ctx, query,
		s.ID,
		s.Email,
		nullString(s.Name),
		s.Source,
		s.Confirmed,
		s.CreatedAt,
		s.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: %s", domain.ErrAlreadySubscribed, s.Email)
		}
		return err
	}
	return nil
}

func (r *NewsletterRepository) GetByEmail(ctx context.Context, email string) (*models.NewsletterSignup, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT id, email, name, source, confirmed, created_at, updated_at
		FROM newsletter_signups
		WHERE email = $1`

	var (
		s    models.NewsletterSignup
		name sql.NullString
	)
	err := r.conn(ctx).QueryRow(ctx, query, email).Scan(
		&s.ID,
		&s.Email,
		&name,
		&s.Source,
		&s.Confirmed,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if checkNoRows(err) {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}
	s.Name = getString(name)
	return &s, nil
}
