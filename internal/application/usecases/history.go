package usecases

import (
	"context"

	"github.com/gentlify/pacify/internal/domain"
	"github.com/gentlify/pacify/internal/domain/models"
	"github.com/gentlify/pacify/internal/ports"
)

const (
	DefaultHistoryLimit = 50
	MaxHistoryLimit     = 200
)

// History exposes stored chat sessions and message feedback.
type History struct {
	messages ports.ChatMessageRepository
}

func NewHistory(messages ports.ChatMessageRepository) *History {
	return &History{messages: messages}
}

func (uc *History) List(ctx context.Context, userID, sessionID string, limit int) ([]*models.ChatMessage, error) {
	if err := validateID(sessionID, "session"); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	limit = min(limit, MaxHistoryLimit)
	return uc.messages.ListBySession(ctx, userID, sessionID, limit)
}

// Feedback records a parent's rating. Only assistant messages of the same
// user can be rated.
func (uc *History) Feedback(ctx context.Context, userID, messageID string, feedback models.Feedback) (*models.ChatMessage, error) {
	if err := validateID(messageID, "message"); err != nil {
		return nil, err
	}
	if !feedback.IsValid() {
		return nil, domain.NewDomainErrorWithCode(domain.ErrInvalidFeedback, string(feedback), "invalid_feedback")
	}

	message, err := uc.messages.GetByID(ctx, messageID)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.NewDomainError(domain.ErrMessageNotFound, messageID)
		}
		return nil, err
	}
	if message.UserID != userID {
		return nil, domain.NewDomainError(domain.ErrMessageNotFound, messageID)
	}
	if message.Role != models.MessageRoleAssistant {
		return nil, domain.NewDomainError(domain.ErrInvalidRole, "only assistant answers can be rated")
	}

	if err := uc.messages.UpdateFeedback(ctx, messageID, userID, feedback); err != nil {
		return nil, err
	}
	message.Feedback = feedback
	return message, nil
}

func (uc *History) ClearSession(ctx context.Context, userID, sessionID string) error {
	if err := validateID(sessionID, "session"); err != nil {
		return err
	}
	return uc.messages.DeleteBySession(ctx, userID, sessionID)
}
