package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gentlify/pacify/internal/domain/models"
)

type ChatMessageRepository struct {
	BaseRepository
}

func NewChatMessageRepository(pool *pgxpool.Pool) *ChatMessageRepository {
	return &ChatMessageRepository{
		BaseRepository: NewBaseRepository(pool),
	}
}

const chatMessageColumns = `id, user_id, child_profile_id, session_id, role, content, intent, feedback, metadata, created_at`

func (r *ChatMessageRepository) Create(ctx context.Context, msg *models.ChatMessage) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	metadata, err := marshalJSONMap(msg.Metadata)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO chat_history (` + chatMessageColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = r.conn(ctx).Exec(ctx, query,
		msg.ID,
		msg.UserID,
		nullString(msg.ChildProfileID),
		msg.SessionID,
		string(msg.Role),
		msg.Content,
		nullString(string(msg.Intent)),
		nullString(string(msg.Feedback)),
		metadata,
		msg.Timestamp,
	)
	return err
}

func (r *ChatMessageRepository) GetByID(ctx context.Context, id string) (*models.ChatMessage, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `SELECT ` + chatMessageColumns + ` FROM chat_history WHERE id = $1`

	return r.scanMessage(r.conn(ctx).QueryRow(ctx, query, id))
}

// ListBySession returns the newest limit messages of a session, oldest first.
func (r *ChatMessageRepository) ListBySession(ctx context.Context, userID, sessionID string, limit int) ([]*models.ChatMessage, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		SELECT * FROM (
			SELECT ` + chatMessageColumns + `
			FROM chat_history
			WHERE user_id = $1 AND session_id = $2
			ORDER BY created_at DESC
			LIMIT $3
		) recent
		ORDER BY created_at ASC`

	rows, err := r.conn(ctx).Query(ctx, query, userID, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return r.scanMessages(rows)
}

func (r *ChatMessageRepository) UpdateFeedback(ctx context.Context, id, userID string, feedback models.Feedback) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `
		UPDATE chat_history
		SET feedback = $1
		WHERE id = $2 AND user_id = $3 AND role = 'assistant'`

	result, err := r.conn(ctx).Exec(ctx, query, string(feedback), id, userID)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ChatMessageRepository) DeleteBySession(ctx context.Context, userID, sessionID string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	query := `DELETE FROM chat_history WHERE user_id = $1 AND session_id = $2`

	_, err := r.conn(ctx).Exec(ctx, query, userID, sessionID)
	return err
}

func (r *ChatMessageRepository) scanMessage(row pgx.Row) (*models.ChatMessage, error) {
	msg, err := scanChatMessage(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, pgx.ErrNoRows
		}
		return nil, err
	}
	return msg, nil
}

func (r *ChatMessageRepository) scanMessages(rows pgx.Rows) ([]*models.ChatMessage, error) {
	messages := []*models.ChatMessage{}
	for rows.Next() {
		msg, err := scanChatMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func scanChatMessage(row pgx.Row) (*models.ChatMessage, error) {
	var (
		msg       models.ChatMessage
		profileID sql.NullString
		role      string
		intent    sql.NullString
		feedback  sql.NullString
		metadata  []byte
	)

	err := row.Scan(
		&msg.ID,
		&msg.UserID,
		&profileID,
		&msg.SessionID,
		&role,
		&msg.Content,
		&intent,
		&feedback,
		&metadata,
		&msg.Timestamp,
	)
	if err != nil {
		return nil, err
	}

	msg.ChildProfileID = getString(profileID)
	msg.Role = models.MessageRole(role)
	msg.Intent = models.Intent(getString(intent))
	msg.Feedback = models.Feedback(getString(feedback))
	if err := unmarshalJSONField(metadata, &msg.Metadata); err != nil {
		return nil, err
	}
	return &msg, nil
}
