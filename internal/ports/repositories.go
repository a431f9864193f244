package ports

import (
	"context"

	"github.com/gentlify/pacify/internal/domain/models"
)

// ChatMessageRepository persists the chat history of a session.
type ChatMessageRepository interface {
	Create(ctx context.Context, message *models.ChatMessage) error
	GetByID(ctx context.Context, id string) (*models.ChatMessage, error)
	// ListBySession returns the newest limit messages of a session, oldest first.
	ListBySession(ctx context.Context, userID, sessionID string, limit int) ([]*models.ChatMessage, error)
	UpdateFeedback(ctx context.Context, id, userID string, feedback models.Feedback) error
	DeleteBySession(ctx context.Context, userID, sessionID string) error
}

// ChildProfileRepository persists child profiles. A user has at most one
// active profile.
type ChildProfileRepository interface {
	Create(ctx context.Context, profile *models.ChildProfile) error
	GetByID(ctx context.Context, id, userID string) (*models.ChildProfile, error)
	GetActive(ctx context.Context, userID string) (*models.ChildProfile, error)
	ListByUser(ctx context.Context, userID string) ([]*models.ChildProfile, error)
	Update(ctx context.Context, profile *models.ChildProfile) error
	Delete(ctx context.Context, id, userID string) error
	DeactivateAll(ctx context.Context, userID string) error
	SetActive(ctx context.Context, id, userID string) error
}

type NewsletterRepository interface {
	Create(ctx context.Context, signup *models.NewsletterSignup) error
	GetByEmail(ctx context.Context, email string) (*models.NewsletterSignup, error)
}

type AppStateRepository interface {
	Save(ctx context.Context, record *models.AppStateRecord) error
	Get(ctx context.Context, userID string) (*models.AppStateRecord, error)
}

// TransactionManager handles database transactions
type TransactionManager interface {
	// WithTransaction executes fn within a transaction. An error from fn
	// rolls back, otherwise the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// IDGenerator generates prefixed unique IDs.
type IDGenerator interface {
	GenerateMessageID() string
	GenerateSessionID() string
	GenerateProfileID() string
	GenerateNewsletterID() string
}
