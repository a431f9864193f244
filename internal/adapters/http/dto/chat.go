package dto

import (
	"github.com/samber/lo"

	"github.com/gentlify/pacify/internal/domain/models"
	"github.com/gentlify/pacify/internal/ports"
	"github.com/gentlify/pacify/internal/prompt"
	"github.com/gentlify/pacify/internal/validation"
)

// ChatRequest is accepted by every chat variant. The classic endpoint reads
// UserIntent, the phased and unified endpoints read UserIntents.
type ChatRequest struct {
	Message             string               `json:"message" msgpack:"message"`
	ChildProfile        *models.ChildProfile `json:"childProfile,omitempty" msgpack:"childProfile,omitempty"`
	ProfileID           string               `json:"profileId,omitempty" msgpack:"profileId,omitempty"`
	SessionID           string               `json:"sessionId,omitempty" msgpack:"sessionId,omitempty"`
	UserIntent          *string              `json:"userIntent,omitempty" msgpack:"userIntent,omitempty"`
	UserIntents         []string             `json:"userIntents,omitempty" msgpack:"userIntents,omitempty"`
	ConversationHistory []models.HistoryTurn `json:"conversationHistory,omitempty" msgpack:"conversationHistory,omitempty"`
	Phase1Response      string               `json:"phase1Response,omitempty" msgpack:"phase1Response,omitempty"`
	MultiChild          bool                 `json:"multiChild,omitempty" msgpack:"multiChild,omitempty"`
}

// MaxMessageLength bounds a parent's message, in runes.
const MaxMessageLength = 1000

// Intents returns the requested intents for the given mode.
func (r *ChatRequest) Intents(mode prompt.Mode) ([]models.Intent, error) {
	raw := r.UserIntents
	if mode == prompt.ModeClassic {
		raw = nil
		if r.UserIntent != nil && *r.UserIntent != "" {
			raw = []string{*r.UserIntent}
		}
	}
	return models.ParseIntents(raw)
}

// ToInput converts the request into a use case input. userID comes from the
// auth middleware.
func (r *ChatRequest) ToInput(userID string, intents []models.Intent) *ports.ChatInput {
	return &ports.ChatInput{
		UserID:       userID,
		SessionID:    r.SessionID,
		Message:      r.Message,
		Profile:      r.ChildProfile,
		ProfileID:    r.ProfileID,
		Intents:      intents,
		History:      r.ConversationHistory,
		Phase1Mirror: r.Phase1Response,
		MultiChild:   r.MultiChild,
	}
}

// PhaseResponse is returned by the mirror, expert and classic endpoints.
type PhaseResponse struct {
	Success      bool              `json:"success" msgpack:"success"`
	Data         any               `json:"data,omitempty" msgpack:"data,omitempty"`
	Error        string            `json:"error,omitempty" msgpack:"error,omitempty"`
	ResponseTime int64             `json:"responseTime" msgpack:"responseTime"`
	ScopeCheck   *models.ScopeCheck `json:"scopeCheck,omitempty" msgpack:"scopeCheck,omitempty"`
	SessionID    string            `json:"sessionId,omitempty" msgpack:"sessionId,omitempty"`
	MessageID    string            `json:"messageId,omitempty" msgpack:"messageId,omitempty"`
}

type MirrorData struct {
	prompt.MirrorResponse
	Metadata    validation.ResponseMetadata `json:"metadata" msgpack:"metadata"`
	RawResponse string                      `json:"rawResponse" msgpack:"rawResponse"`
}

type ExpertData struct {
	prompt.ExpertResponse
	Metadata    validation.ResponseMetadata `json:"metadata" msgpack:"metadata"`
	RawResponse string                      `json:"rawResponse" msgpack:"rawResponse"`
}

type ClassicData struct {
	prompt.ClassicResponse
	RawResponse string `json:"rawResponse" msgpack:"rawResponse"`
}

// UnifiedResponse is the free-text answer of the unified endpoint.
type UnifiedResponse struct {
	Content   string          `json:"content" msgpack:"content"`
	Metadata  UnifiedMetadata `json:"metadata" msgpack:"metadata"`
	SessionID string          `json:"sessionId,omitempty" msgpack:"sessionId,omitempty"`
	MessageID string          `json:"messageId,omitempty" msgpack:"messageId,omitempty"`
}

type UnifiedMetadata struct {
	Confidence          float64         `json:"confidence" msgpack:"confidence"`
	IntentsDetected     []models.Intent `json:"intents_detected" msgpack:"intents_detected"`
	TemperatureUsed     float64         `json:"temperature_used" msgpack:"temperature_used"`
	TokensUsed          int             `json:"tokens_used" msgpack:"tokens_used"`
	HasFollowUp         bool            `json:"has_follow_up" msgpack:"has_follow_up"`
	ScopeReferral       string          `json:"scope_referral,omitempty" msgpack:"scope_referral,omitempty"`
	AgeContext          string          `json:"age_context,omitempty" msgpack:"age_context,omitempty"`
	PsychologicalNeeds  []string        `json:"psychological_needs,omitempty" msgpack:"psychological_needs,omitempty"`
	EvidenceReliability string          `json:"evidence_reliability,omitempty" msgpack:"evidence_reliability,omitempty"`
	Error               bool            `json:"error,omitempty" msgpack:"error,omitempty"`
}

// NewPhaseResponse builds the success envelope for a validated answer.
func NewPhaseResponse(out *ports.ChatOutput) *PhaseResponse {
	resp := &PhaseResponse{
		Success:      true,
		ResponseTime: out.ResponseTime.Milliseconds(),
		SessionID:    out.SessionID,
	}
	check := out.ScopeCheck
	resp.ScopeCheck = &check
	if out.AssistantMessage != nil {
		resp.MessageID = out.AssistantMessage.ID
	}

	r := out.Result
	switch {
	case r == nil:
	case r.Mirror != nil:
		resp.Data = MirrorData{MirrorResponse: *r.Mirror, Metadata: r.Metadata, RawResponse: r.RawResponse}
	case r.Expert != nil:
		resp.Data = ExpertData{ExpertResponse: *r.Expert, Metadata: r.Metadata, RawResponse: r.RawResponse}
	case r.Classic != nil:
		resp.Data = ClassicData{ClassicResponse: *r.Classic, RawResponse: r.RawResponse}
	default:
		// A referral answered in the classic variant.
		resp.Data = ClassicData{
			ClassicResponse: prompt.ClassicResponse{
				ResponseType:         prompt.ResponseValidation,
				Content:              prompt.ClassicContent{Core: r.Text},
				NeedsIntentSelection: lo.ToPtr(false),
			},
			RawResponse: r.Text,
		}
	}
	return resp
}

// NewUnifiedResponse builds the unified answer, including referrals.
func NewUnifiedResponse(out *ports.ChatOutput) *UnifiedResponse {
	r := out.Result
	intents := r.Metadata.IntentsDetected
	if intents == nil {
		intents = []models.Intent{}
	}
	resp := &UnifiedResponse{
		Content:   r.Text,
		SessionID: out.SessionID,
		Metadata: UnifiedMetadata{
			Confidence:      r.Metadata.Confidence,
			IntentsDetected: intents,
			TemperatureUsed: r.Metadata.TemperatureUsed,
			TokensUsed:      r.Metadata.TokensUsed,
			HasFollowUp:     r.Metadata.HasFollowUp,
			AgeContext:      r.Metadata.AgeFactInjected,
		},
	}
	if out.Referred() {
		resp.Metadata.ScopeReferral = string(out.ScopeCheck.ReferralType)
	}
	for _, c := range out.Bundle.NeedCategories() {
		resp.Metadata.PsychologicalNeeds = append(resp.Metadata.PsychologicalNeeds, string(c))
	}
	if out.Bundle.EvidenceFact != nil {
		resp.Metadata.EvidenceReliability = string(out.Bundle.EvidenceFact.Reliability)
	}
	if out.AssistantMessage != nil {
		resp.MessageID = out.AssistantMessage.ID
	}
	return resp
}

// UnifiedFailureText is returned with HTTP 500 when the unified answer fails.
const UnifiedFailureText = "Es tut mir leid, aber ich kann momentan nicht antworten. Bitte versuche es in einem Moment noch einmal."

func NewUnifiedFailure() *UnifiedResponse {
	return &UnifiedResponse{
		Content: UnifiedFailureText,
		Metadata: UnifiedMetadata{
			IntentsDetected: []models.Intent{},
			Error:           true,
		},
	}
}
