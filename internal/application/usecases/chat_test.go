package usecases

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gentlify/pacify/internal/domain"
	"github.com/gentlify/pacify/internal/domain/models"
	"github.com/gentlify/pacify/internal/knowledge"
	"github.com/gentlify/pacify/internal/ports"
	"github.com/gentlify/pacify/internal/prompt"
	"github.com/gentlify/pacify/internal/scope"
	"github.com/gentlify/pacify/internal/validation"
)

const (
	mirrorAnswer  = `{"phase1_mirror":"Das klingt nach einem anstrengenden Abend.","responsePhase":"phase1","needsIntentSelection":true}`
	expertAnswer  = `{"phase2_expert":{"situation":"Abends ist dein Kind müde.","complication":"Die Müdigkeit macht Übergänge schwer.","answer":"Kündige den Übergang fünf Minuten vorher an.","embedded_need":["autonomie"],"evidence_fact":"Vorhersehbare Routinen senken Stress bei Kleinkindern deutlich.","citation":"Siegel (2012)","micro_interventions":[{"name":"Countdown","description":"Zähle gemeinsam rückwärts","duration":"1 Minute"}]},"responsePhase":"phase2"}`
	classicAnswer = `{"responseType":"validation","content":{"core":"Das ist wirklich herausfordernd."},"needsIntentSelection":true}`
	unifiedAnswer = "Das klingt anstrengend. Was hilft euch sonst beim Zubettgehen?"
)

type chatFixture struct {
	llm       *mockLLM
	knowledge *fixedKnowledge
	messages  *mockMessageRepo
	profiles  *mockProfileRepo
	deps      ChatDeps
}

func newChatFixture(content string) *chatFixture {
	f := &chatFixture{
		llm:       &mockLLM{content: content, tokens: 42},
		knowledge: &fixedKnowledge{bundle: knowledge.Bundle{Keywords: []string{"schlafen"}}},
		messages:  newMockMessageRepo(),
		profiles:  newMockProfileRepo(),
	}
	f.deps = ChatDeps{
		Scope:     scope.NewRegexClassifier(),
		Intents:   scope.NewRegexIntentDetector(),
		Knowledge: f.knowledge,
		Composer:  prompt.NewComposer(prompt.DefaultHistoryWindows()),
		LLM:       f.llm,
		Validator: validation.NewValidator(nil),
		Messages:  f.messages,
		Profiles:  f.profiles,
		IDs:       &mockIDGenerator{},
	}
	return f
}

func TestChat_MirrorAnswer(t *testing.T) {
	f := newChatFixture(mirrorAnswer)
	uc := NewMirrorChat(f.deps)

	out, err := uc.Execute(context.Background(), &ports.ChatInput{
		UserID:  "user-1",
		Message: "  Mein Kind will abends nicht schlafen  ",
		Intents: []models.Intent{models.IntentLoesung},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Mode != prompt.ModeMirror {
		t.Errorf("expected mirror mode, got %s", out.Mode)
	}
	if out.SessionID == "" {
		t.Error("expected a generated session ID")
	}
	if out.Result == nil || out.Result.Mirror == nil {
		t.Fatal("expected a mirror result")
	}
	if out.Result.Metadata.TokensUsed != 42 {
		t.Errorf("expected 42 tokens, got %d", out.Result.Metadata.TokensUsed)
	}
	if len(out.Intents) != 0 {
		t.Errorf("mirror chat should not carry intents, got %v", out.Intents)
	}
	if f.llm.last.Temperature != prompt.MirrorTemperature {
		t.Errorf("expected mirror temperature, got %v", f.llm.last.Temperature)
	}
	if f.llm.last.Schema == nil {
		t.Error("expected a response schema for the mirror phase")
	}
	if out.ResponseTime <= 0 {
		t.Error("expected a response time")
	}
}

func TestChat_ExpertAnswer(t *testing.T) {
	f := newChatFixture(expertAnswer)
	uc := NewExpertChat(f.deps)

	out, err := uc.Execute(context.Background(), &ports.ChatInput{
		UserID:       "user-1",
		SessionID:    "session-1",
		Message:      "Mein Kind will abends nicht schlafen",
		Intents:      []models.Intent{models.IntentLoesung, models.IntentLoesung, "unknown"},
		Phase1Mirror: "Das klingt anstrengend.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Intents) != 1 || out.Intents[0] != models.IntentLoesung {
		t.Errorf("expected deduplicated valid intents, got %v", out.Intents)
	}
	if out.Result.Expert == nil {
		t.Fatal("expected an expert result")
	}
	if out.Result.Metadata.RolePrefix == "" {
		t.Error("expected a role prefix in the metadata")
	}
	if out.Result.Metadata.Confidence != validation.DefaultConfidence {
		t.Errorf("expected default confidence, got %v", out.Result.Metadata.Confidence)
	}
	if !strings.Contains(f.llm.last.SystemPrompt, "Das klingt anstrengend.") {
		t.Error("expected the phase 1 mirror in the expert prompt")
	}
}

func TestChat_ExpertWithoutIntents(t *testing.T) {
	f := newChatFixture(expertAnswer)
	uc := NewExpertChat(f.deps)

	_, err := uc.Execute(context.Background(), &ports.ChatInput{Message: "Mein Kind schreit"})
	if !errors.Is(err, domain.ErrNoIntents) {
		t.Errorf("expected ErrNoIntents, got %v", err)
	}
	if f.llm.calls != 0 {
		t.Error("model should not be called without intents")
	}
}

func TestChat_EmptyMessage(t *testing.T) {
	f := newChatFixture(mirrorAnswer)
	uc := NewMirrorChat(f.deps)

	_, err := uc.Execute(context.Background(), &ports.ChatInput{Message: "   "})
	if !errors.Is(err, domain.ErrEmptyMessage) {
		t.Errorf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestChat_ScopeRejection(t *testing.T) {
	tests := []struct {
		name      string
		newChat   func(ChatDeps) *Chat
		wantError bool
	}{
		{"mirror rejects", NewMirrorChat, true},
		{"expert rejects", NewExpertChat, true},
		{"unified refers", NewUnifiedChat, false},
		{"classic refers", NewClassicChat, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newChatFixture(mirrorAnswer)
			uc := tt.newChat(f.deps)

			out, err := uc.Execute(context.Background(), &ports.ChatInput{
				UserID:  "user-1",
				Message: "Braucht mein Kind eine Diagnose vom Arzt?",
				Intents: []models.Intent{models.IntentVerstehen},
			})

			if f.llm.calls != 0 {
				t.Error("model must not be called for out-of-scope messages")
			}
			if out == nil || out.ScopeCheck.IsInScope {
				t.Fatal("expected an out-of-scope check")
			}
			if out.ScopeCheck.ReferralType != models.ReferralMedical {
				t.Errorf("expected medical referral, got %s", out.ScopeCheck.ReferralType)
			}

			if tt.wantError {
				if !errors.Is(err, domain.ErrScopeRejected) {
					t.Fatalf("expected ErrScopeRejected, got %v", err)
				}
				var de *domain.DomainError
				if !errors.As(err, &de) || de.Code != "scope_rejected" {
					t.Errorf("expected scope_rejected code, got %v", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Result.Text != validation.ReferralText {
				t.Errorf("expected referral text, got %q", out.Result.Text)
			}
			if out.Result.Metadata.Confidence != 1.0 {
				t.Errorf("expected confidence 1.0, got %v", out.Result.Metadata.Confidence)
			}
			if !out.Referred() {
				t.Error("expected output to be a referral")
			}
			if len(f.messages.messages) != 0 {
				t.Error("referrals should not be stored")
			}
		})
	}
}

func TestChat_UnifiedDetectsIntents(t *testing.T) {
	f := newChatFixture(unifiedAnswer)
	uc := NewUnifiedChat(f.deps)

	out, err := uc.Execute(context.Background(), &ports.ChatInput{
		Message: "Was kann ich tun, wenn mein Kind beim Zähneputzen wegläuft?",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(out.Intents) == 0 {
		t.Error("expected detected intents")
	}
	if out.Result.Text != unifiedAnswer {
		t.Errorf("unexpected text %q", out.Result.Text)
	}
	if !out.Result.Metadata.HasFollowUp {
		t.Error("expected a follow-up question to be detected")
	}
	if f.llm.last.Schema != nil {
		t.Error("unified answers are free text")
	}
}

func TestChat_ClassicValidation(t *testing.T) {
	f := newChatFixture(classicAnswer)
	uc := NewClassicChat(f.deps)

	out, err := uc.Execute(context.Background(), &ports.ChatInput{Message: "Mein Kind schreit beim Anziehen"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Result.Classic == nil || out.Result.Classic.ResponseType != prompt.ResponseValidation {
		t.Errorf("expected a validation response, got %+v", out.Result.Classic)
	}
	if f.llm.last.Temperature != prompt.ClassicTemperature {
		t.Errorf("expected classic temperature, got %v", f.llm.last.Temperature)
	}
}

func TestChat_InvalidModelAnswer(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"not json", "Ich bin kein JSON", domain.ErrParse},
		{"wrong phase", `{"phase1_mirror":"Hallo","responsePhase":"phase2","needsIntentSelection":true}`, domain.ErrSchema},
		{"empty mirror", `{"phase1_mirror":"","responsePhase":"phase1","needsIntentSelection":true}`, domain.ErrSchema},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newChatFixture(tt.content)
			uc := NewMirrorChat(f.deps)

			_, err := uc.Execute(context.Background(), &ports.ChatInput{UserID: "user-1", Message: "Mein Kind weint"})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if len(f.messages.messages) != 0 {
				t.Error("rejected answers must not be stored")
			}
		})
	}
}

func TestChat_LLMErrorPassesThrough(t *testing.T) {
	f := newChatFixture("")
	f.llm.err = domain.ErrLLMRateLimited
	uc := NewMirrorChat(f.deps)

	_, err := uc.Execute(context.Background(), &ports.ChatInput{Message: "Mein Kind weint"})
	if !errors.Is(err, domain.ErrLLMRateLimited) {
		t.Errorf("expected ErrLLMRateLimited, got %v", err)
	}
}

func TestChat_StoresExchange(t *testing.T) {
	f := newChatFixture(expertAnswer)
	uc := NewExpertChat(f.deps)

	out, err := uc.Execute(context.Background(), &ports.ChatInput{
		UserID:    "user-1",
		SessionID: "session-1",
		Message:   "Mein Kind will abends nicht schlafen",
		Intents:   []models.Intent{models.IntentVerstehen},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.messages.messages) != 2 {
		t.Fatalf("expected 2 stored messages, got %d", len(f.messages.messages))
	}
	user, assistant := f.messages.messages[0], f.messages.messages[1]
	if user.Role != models.MessageRoleUser || assistant.Role != models.MessageRoleAssistant {
		t.Errorf("unexpected roles %s, %s", user.Role, assistant.Role)
	}
	if !assistant.Timestamp.After(user.Timestamp) {
		t.Error("assistant turn must sort after the user turn")
	}
	if assistant.Intent != models.IntentVerstehen {
		t.Errorf("expected intent on the assistant turn, got %s", assistant.Intent)
	}
	if assistant.Content != out.Result.Display() {
		t.Error("expected the display text to be stored")
	}
	if assistant.Metadata["mode"] != string(prompt.ModeExpert) {
		t.Errorf("expected mode metadata, got %v", assistant.Metadata["mode"])
	}
	if out.AssistantMessage == nil || out.AssistantMessage.ID != assistant.ID {
		t.Error("expected the stored assistant message on the output")
	}
}

func TestChat_AnonymousIsNotStored(t *testing.T) {
	f := newChatFixture(mirrorAnswer)
	uc := NewMirrorChat(f.deps)

	out, err := uc.Execute(context.Background(), &ports.ChatInput{Message: "Mein Kind weint"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.messages.messages) != 0 {
		t.Error("messages without a user should not be stored")
	}
	if out.AssistantMessage == nil {
		t.Error("expected the assistant message on the output anyway")
	}
}

func TestChat_StoreFailureDoesNotFail(t *testing.T) {
	f := newChatFixture(mirrorAnswer)
	f.messages.createErr = errors.New("connection refused")
	uc := NewMirrorChat(f.deps)

	if _, err := uc.Execute(context.Background(), &ports.ChatInput{UserID: "user-1", Message: "Mein Kind weint"}); err != nil {
		t.Errorf("storage failures should be logged only, got %v", err)
	}
}

func TestChat_LoadsStoredHistory(t *testing.T) {
	f := newChatFixture(mirrorAnswer)
	ctx := context.Background()
	_ = f.messages.Create(ctx, models.NewChatMessage("m1", "user-1", "session-1", models.MessageRoleUser, "Gestern gab es Streit beim Essen"))
	_ = f.messages.Create(ctx, models.NewChatMessage("m2", "other", "session-1", models.MessageRoleUser, "Fremde Nachricht"))

	uc := NewMirrorChat(f.deps)
	if _, err := uc.Execute(ctx, &ports.ChatInput{UserID: "user-1", SessionID: "session-1", Message: "Heute wieder"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(f.llm.last.UserPrompt, "Gestern gab es Streit beim Essen") {
		t.Error("expected stored history in the prompt")
	}
	if strings.Contains(f.llm.last.UserPrompt, "Fremde Nachricht") {
		t.Error("history of other users must not leak into the prompt")
	}
}

func TestChat_InlineHistoryWins(t *testing.T) {
	f := newChatFixture(mirrorAnswer)
	f.messages.listErr = errors.New("should not be called")
	uc := NewMirrorChat(f.deps)

	_, err := uc.Execute(context.Background(), &ports.ChatInput{
		UserID:    "user-1",
		SessionID: "session-1",
		Message:   "Heute wieder",
		History:   []models.HistoryTurn{{Role: models.MessageRoleUser, Content: "Inline Verlauf"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(f.llm.last.UserPrompt, "Inline Verlauf") {
		t.Error("expected inline history in the prompt")
	}
}

func TestChat_ProfileResolution(t *testing.T) {
	ctx := context.Background()
	active := models.NewChildProfile("pcp_active", "user-1", "Mia", 2, 6, []models.PersonalityTrait{models.TraitNeugierig})
	other := models.NewChildProfile("pcp_other", "user-1", "Ben", 7, 0, []models.PersonalityTrait{models.TraitSozial})
	other.IsActive = false

	tests := []struct {
		name    string
		input   ports.ChatInput
		wantAge int
		wantErr error
	}{
		{
			name:    "inline profile wins",
			input:   ports.ChatInput{UserID: "user-1", ProfileID: "pcp_other", Profile: &models.ChildProfile{Name: "Lea", AgeYears: 3, Traits: []models.PersonalityTrait{}}},
			wantAge: 36,
		},
		{
			name:    "explicit profile id",
			input:   ports.ChatInput{UserID: "user-1", ProfileID: "pcp_other"},
			wantAge: 84,
		},
		{
			name:    "active profile",
			input:   ports.ChatInput{UserID: "user-1"},
			wantAge: 30,
		},
		{
			name:    "anonymous gets default",
			input:   ports.ChatInput{},
			wantAge: models.DefaultProfileAgeYears * 12,
		},
		{
			name:    "unknown profile id",
			input:   ports.ChatInput{UserID: "user-1", ProfileID: "pcp_missing"},
			wantErr: domain.ErrProfileNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newChatFixture(mirrorAnswer)
			_ = f.profiles.Create(ctx, active)
			_ = f.profiles.Create(ctx, other)
			uc := NewMirrorChat(f.deps)

			input := tt.input
			input.Message = "Mein Kind weint"
			_, err := uc.Execute(ctx, &input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.knowledge.lastAge != tt.wantAge {
				t.Errorf("expected knowledge for age %d months, got %d", tt.wantAge, f.knowledge.lastAge)
			}
		})
	}
}

func TestChat_WithoutDatabase(t *testing.T) {
	f := newChatFixture(mirrorAnswer)
	f.deps.Messages = nil
	f.deps.Profiles = nil
	uc := NewMirrorChat(f.deps)

	out, err := uc.Execute(context.Background(), &ports.ChatInput{UserID: "user-1", SessionID: "s", Message: "Mein Kind weint"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Result.Mirror == nil {
		t.Error("expected an answer without a database")
	}
}

func TestOutcomeLabel(t *testing.T) {
	tests := []struct {
		name   string
		output *ports.ChatOutput
		err    error
		want   string
	}{
		{"answered", &ports.ChatOutput{ScopeCheck: models.InScope()}, nil, "answered"},
		{"referral", &ports.ChatOutput{ScopeCheck: models.Referral(models.ReferralLegal)}, nil, "referral"},
		{"scope rejected", nil, domain.NewDomainError(domain.ErrScopeRejected, "x"), "scope_rejected"},
		{"invalid answer", nil, domain.NewSchemaError([]string{"x"}), "invalid_answer"},
		{"rate limited", nil, domain.ErrLLMRateLimited, "rate_limited"},
		{"other error", nil, errors.New("boom"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outcomeLabel(tt.output, tt.err); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
