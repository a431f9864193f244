package usecases

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/gentlify/pacify/internal/adapters/metrics"
	"github.com/gentlify/pacify/internal/adapters/tracing"
	"github.com/gentlify/pacify/internal/domain"
	"github.com/gentlify/pacify/internal/domain/models"
	"github.com/gentlify/pacify/internal/ports"
	"github.com/gentlify/pacify/internal/prompt"
	"github.com/gentlify/pacify/internal/validation"
)

// historyFetchLimit bounds how many stored turns are loaded before the
// composer applies its per-mode window.
const historyFetchLimit = 10

// ChatDeps are the collaborators shared by every chat variant. Messages and
// Profiles may be nil when no database is configured.
type ChatDeps struct {
	Scope     ports.ScopeClassifier
	Intents   ports.IntentDetector
	Knowledge ports.KnowledgeSelector
	Composer  *prompt.Composer
	LLM       ports.LLMService
	Validator *validation.Validator
	Messages  ports.ChatMessageRepository
	Profiles  ports.ChildProfileRepository
	IDs       ports.IDGenerator
}

// Chat runs the pipeline for one mode:
// scope check, intents, profile, knowledge, prompt, model, validation, history.
type Chat struct {
	mode prompt.Mode
	deps ChatDeps
}

func NewMirrorChat(deps ChatDeps) *Chat  { return &Chat{mode: prompt.ModeMirror, deps: deps} }
func NewExpertChat(deps ChatDeps) *Chat  { return &Chat{mode: prompt.ModeExpert, deps: deps} }
func NewUnifiedChat(deps ChatDeps) *Chat { return &Chat{mode: prompt.ModeUnified, deps: deps} }
func NewClassicChat(deps ChatDeps) *Chat { return &Chat{mode: prompt.ModeClassic, deps: deps} }

func (uc *Chat) Mode() prompt.Mode { return uc.mode }

func (uc *Chat) Execute(ctx context.Context, input *ports.ChatInput) (*ports.ChatOutput, error) {
	start := time.Now()
	ctx, span := tracing.Tracer().Start(ctx, "chat."+string(uc.mode))
	defer span.End()

	output, err := uc.execute(ctx, input)
	if output != nil {
		output.ResponseTime = time.Since(start)
	}

	outcome := outcomeLabel(output, err)
	metrics.ChatRequestsTotal.WithLabelValues(string(uc.mode), outcome).Inc()
	span.SetAttributes(attribute.String("pacify.outcome", outcome))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return output, err
}

func (uc *Chat) execute(ctx context.Context, input *ports.ChatInput) (*ports.ChatOutput, error) {
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return nil, domain.ErrEmptyMessage
	}

	output := &ports.ChatOutput{
		Mode:      uc.mode,
		SessionID: input.SessionID,
	}
	if output.SessionID == "" {
		output.SessionID = uc.deps.IDs.GenerateSessionID()
	}

	output.ScopeCheck = uc.deps.Scope.Check(message)
	if !output.ScopeCheck.IsInScope {
		metrics.ScopeReferralsTotal.WithLabelValues(string(output.ScopeCheck.ReferralType)).Inc()
		if uc.mode == prompt.ModeMirror || uc.mode == prompt.ModeExpert {
			return output, domain.NewDomainErrorWithCode(domain.ErrScopeRejected, string(output.ScopeCheck.ReferralType), "scope_rejected")
		}
		output.Result = validation.Referral(uc.mode)
		output.Intents = []models.Intent{}
		return output, nil
	}

	output.Intents = uc.resolveIntents(message, input.Intents)

	profile, err := uc.resolveProfile(ctx, input)
	if err != nil {
		return nil, err
	}

	history := input.History
	if len(history) == 0 {
		history = uc.loadHistory(ctx, input.UserID, input.SessionID)
	}

	output.Bundle = uc.deps.Knowledge.EnhancedResponse(message, profile.OrDefault().AgeInMonths())

	composed, err := uc.deps.Composer.Compose(prompt.Input{
		Mode:         uc.mode,
		Intents:      output.Intents,
		Profile:      profile,
		Message:      message,
		Bundle:       output.Bundle,
		History:      history,
		Phase1Mirror: input.Phase1Mirror,
		MultiChild:   input.MultiChild,
	})
	if err != nil {
		return nil, err
	}

	resp, err := uc.deps.LLM.Complete(ctx, ports.NewLLMRequest(composed))
	if err != nil {
		return nil, err
	}

	result, err := uc.deps.Validator.Validate(resp.Content, uc.mode, validation.Metadata{
		TokensUsed:      resp.TokensUsed,
		TemperatureUsed: composed.Temperature,
		RolePrefix:      composed.RolePrefix,
		AgeFact:         composed.AgeFact,
		Intents:         composed.Intents,
	})
	if err != nil {
		kind := "schema"
		if errors.Is(err, domain.ErrParse) {
			kind = "parse"
		}
		metrics.ValidationFailuresTotal.WithLabelValues(string(uc.mode), kind).Inc()
		log.Printf("Rejected %s answer from %s: %v", uc.mode, resp.Provider, err)
		return nil, err
	}
	if result.Metadata.ContradictionDetected {
		metrics.ConfidenceDowngradesTotal.Inc()
	}
	output.Result = result

	uc.storeExchange(ctx, input, output, profile)
	return output, nil
}

// resolveIntents keeps valid caller intents. Unified chat detects intents
// when none were given; the other modes take the caller's as is.
func (uc *Chat) resolveIntents(message string, requested []models.Intent) []models.Intent {
	intents := lo.Uniq(lo.Filter(requested, func(i models.Intent, _ int) bool { return i.IsValid() }))
	if uc.mode == prompt.ModeUnified && len(intents) == 0 {
		intents = uc.deps.Intents.Detect(message)
	}
	if uc.mode == prompt.ModeMirror {
		return []models.Intent{}
	}
	return intents
}

// resolveProfile prefers an inline profile, then an explicit profile id,
// then the user's active profile. nil means the default profile applies.
func (uc *Chat) resolveProfile(ctx context.Context, input *ports.ChatInput) (*models.ChildProfile, error) {
	if input.Profile != nil {
		return input.Profile, nil
	}
	if uc.deps.Profiles == nil || input.UserID == "" {
		return nil, nil
	}
	if input.ProfileID != "" {
		p, err := uc.deps.Profiles.GetByID(ctx, input.ProfileID, input.UserID)
		if err != nil {
			if isNotFound(err) {
				return nil, domain.NewDomainError(domain.ErrProfileNotFound, input.ProfileID)
			}
			return nil, fmt.Errorf("failed to load child profile: %w", err)
		}
		return p, nil
	}
	p, err := uc.deps.Profiles.GetActive(ctx, input.UserID)
	if err != nil {
		if !isNotFound(err) {
			log.Printf("Failed to load active profile for %s: %v", input.UserID, err)
		}
		return nil, nil
	}
	return p, nil
}

func (uc *Chat) loadHistory(ctx context.Context, userID, sessionID string) []models.HistoryTurn {
	if uc.deps.Messages == nil || sessionID == "" {
		return nil
	}
	stored, err := uc.deps.Messages.ListBySession(ctx, userID, sessionID, historyFetchLimit)
	if err != nil {
		log.Printf("Failed to load history for session %s: %v", sessionID, err)
		return nil
	}
	return lo.Map(stored, func(m *models.ChatMessage, _ int) models.HistoryTurn { return m.Turn() })
}

// storeExchange writes the user and assistant turns. Failures are logged and
// never fail the request.
func (uc *Chat) storeExchange(ctx context.Context, input *ports.ChatInput, output *ports.ChatOutput, profile *models.ChildProfile) {
	user := models.NewChatMessage(uc.deps.IDs.GenerateMessageID(), input.UserID, output.SessionID, models.MessageRoleUser, strings.TrimSpace(input.Message))
	assistant := models.NewChatMessage(uc.deps.IDs.GenerateMessageID(), input.UserID, output.SessionID, models.MessageRoleAssistant, output.Result.Display())
	assistant.Timestamp = user.Timestamp.Add(time.Millisecond)

	if profile != nil && profile.ID != "" {
		user.ChildProfileID = profile.ID
		assistant.ChildProfileID = profile.ID
	}
	if len(output.Intents) > 0 {
		user.Intent = output.Intents[0]
		assistant.Intent = output.Intents[0]
	}
	assistant.Metadata = map[string]any{
		"mode":       string(uc.mode),
		"confidence": output.Result.Metadata.Confidence,
	}

	output.UserMessage = user
	output.AssistantMessage = assistant

	if uc.deps.Messages == nil || input.UserID == "" {
		return
	}
	for _, m := range []*models.ChatMessage{user, assistant} {
		if err := uc.deps.Messages.Create(ctx, m); err != nil {
			log.Printf("Failed to store %s message for session %s: %v", m.Role, output.SessionID, err)
			return
		}
		metrics.MessagesStoredTotal.Inc()
	}
}

func outcomeLabel(output *ports.ChatOutput, err error) string {
	switch {
	case errors.Is(err, domain.ErrScopeRejected):
		return "scope_rejected"
	case domain.IsValidationFailure(err):
		return "invalid_answer"
	case errors.Is(err, domain.ErrLLMRateLimited):
		return "rate_limited"
	case err != nil:
		return "error"
	case output != nil && output.Referred():
		return "referral"
	default:
		return "answered"
	}
}
