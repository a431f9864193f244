package ports

import (
	"context"
	"time"

	"github.com/gentlify/pacify/internal/domain/models"
	"github.com/gentlify/pacify/internal/knowledge"
	"github.com/gentlify/pacify/internal/prompt"
	"github.com/gentlify/pacify/internal/scope"
	"github.com/gentlify/pacify/internal/state"
	"github.com/gentlify/pacify/internal/validation"
)

// LLMRequest is one completion call. Schema is nil for free-text answers.
type LLMRequest struct {
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	MaxTokens    int
	SchemaName   string
	Schema       map[string]any
	// Mode lets offline clients pick a fixture.
	Mode    prompt.Mode
	Intents []models.Intent
}

// NewLLMRequest copies the generation parameters of a composed prompt.
func NewLLMRequest(c *prompt.Composed) *LLMRequest {
	return &LLMRequest{
		SystemPrompt: c.SystemPrompt,
		UserPrompt:   c.UserPrompt,
		Temperature:  c.Temperature,
		MaxTokens:    c.MaxTokens,
		SchemaName:   c.SchemaName,
		Schema:       c.Schema,
		Mode:         c.Mode,
		Intents:      c.Intents,
	}
}

type LLMResponse struct {
	Content    string `json:"content"`
	TokensUsed int    `json:"tokens_used"`
	Model      string `json:"model"`
	Provider   string `json:"provider"`
}

// LLMService defines the interface for LLM interactions
type LLMService interface {
	Complete(ctx context.Context, req *LLMRequest) (*LLMResponse, error)
	Provider() string
}

type (
	ScopeClassifier = scope.Classifier
	IntentDetector  = scope.IntentDetector
)

// KnowledgeSelector builds the knowledge bundle for a message.
type KnowledgeSelector interface {
	EnhancedResponse(message string, ageInMonths int) knowledge.Bundle
}

// ChatInput is shared by every chat variant. Profile wins over ProfileID.
type ChatInput struct {
	UserID       string
	SessionID    string
	Message      string
	Profile      *models.ChildProfile
	ProfileID    string
	Intents      []models.Intent
	History      []models.HistoryTurn
	Phase1Mirror string
	MultiChild   bool
}

// ChatOutput carries either a referral (ScopeCheck not in scope) or a
// validated answer.
type ChatOutput struct {
	Mode             prompt.Mode
	SessionID        string
	ScopeCheck       models.ScopeCheck
	Intents          []models.Intent
	Bundle           knowledge.Bundle
	Result           *validation.Result
	UserMessage      *models.ChatMessage
	AssistantMessage *models.ChatMessage
	ResponseTime     time.Duration
}

// Referred reports whether the message was answered with a referral.
func (o *ChatOutput) Referred() bool {
	return !o.ScopeCheck.IsInScope
}

type ChatUseCase interface {
	Execute(ctx context.Context, input *ChatInput) (*ChatOutput, error)
}

type SubscribeNewsletterInput struct {
	Email  string
	Name   string
	Source string
}

type NewsletterUseCase interface {
	Subscribe(ctx context.Context, input *SubscribeNewsletterInput) (*models.NewsletterSignup, error)
	Status(ctx context.Context, email string) (*models.NewsletterSignup, error)
}

// ProfileInput carries the editable fields of a child profile.
type ProfileInput struct {
	Name      string
	AgeYears  int
	AgeMonths int
	Traits    []models.PersonalityTrait
}

type ProfileUseCase interface {
	Create(ctx context.Context, userID string, input *ProfileInput) (*models.ChildProfile, error)
	Get(ctx context.Context, id, userID string) (*models.ChildProfile, error)
	List(ctx context.Context, userID string) ([]*models.ChildProfile, error)
	Active(ctx context.Context, userID string) (*models.ChildProfile, error)
	Update(ctx context.Context, id, userID string, input *ProfileInput) (*models.ChildProfile, error)
	Delete(ctx context.Context, id, userID string) error
	Activate(ctx context.Context, id, userID string) (*models.ChildProfile, error)
}

type HistoryUseCase interface {
	List(ctx context.Context, userID, sessionID string, limit int) ([]*models.ChatMessage, error)
	Feedback(ctx context.Context, userID, messageID string, feedback models.Feedback) (*models.ChatMessage, error)
	ClearSession(ctx context.Context, userID, sessionID string) error
}

type StateUseCase interface {
	Save(ctx context.Context, userID string, snapshot state.Snapshot) (*models.AppStateRecord, error)
	Load(ctx context.Context, userID string) (state.Snapshot, error)
	Migrate(old map[string]any, fromVersion int) (state.State, bool, error)
}
