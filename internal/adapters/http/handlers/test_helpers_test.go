package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/gentlify/pacify/internal/adapters/http/middleware"
	"github.com/gentlify/pacify/internal/domain/models"
	"github.com/gentlify/pacify/internal/ports"
	"github.com/gentlify/pacify/internal/state"
)

// Helper function to add user context to requests
func addUserContext(req *http.Request, userID string) *http.Request {
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

// setURLParam adds a URL parameter to the request context (chi router style)
func setURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to encode body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeResponse[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return v
}

// mockChatUseCase returns a fixed output and records the last input.
type mockChatUseCase struct {
	output *ports.ChatOutput
	err    error
	last   *ports.ChatInput
	calls  int
}

func (m *mockChatUseCase) Execute(ctx context.Context, input *ports.ChatInput) (*ports.ChatOutput, error) {
	m.calls++
	m.last = input
	return m.output, m.err
}

type mockHistoryUseCase struct {
	messages  []*models.ChatMessage
	message   *models.ChatMessage
	err       error
	lastLimit int
	lastUser  string
	cleared   string
}

func (m *mockHistoryUseCase) List(ctx context.Context, userID, sessionID string, limit int) ([]*models.ChatMessage, error) {
	m.lastUser = userID
	m.lastLimit = limit
	return m.messages, m.err
}

func (m *mockHistoryUseCase) Feedback(ctx context.Context, userID, messageID string, feedback models.Feedback) (*models.ChatMessage, error) {
	m.lastUser = userID
	if m.err != nil {
		return nil, m.err
	}
	msg := *m.message
	msg.Feedback = feedback
	return &msg, nil
}

func (m *mockHistoryUseCase) ClearSession(ctx context.Context, userID, sessionID string) error {
	m.lastUser = userID
	m.cleared = sessionID
	return m.err
}

type mockProfileUseCase struct {
	profile  *models.ChildProfile
	profiles []*models.ChildProfile
	err      error
	lastIn   *ports.ProfileInput
	lastID   string
	lastUser string
}

func (m *mockProfileUseCase) result(id, userID string, in *ports.ProfileInput) (*models.ChildProfile, error) {
	m.lastID, m.lastUser, m.lastIn = id, userID, in
	if m.err != nil {
		return nil, m.err
	}
	return m.profile, nil
}

func (m *mockProfileUseCase) Create(ctx context.Context, userID string, input *ports.ProfileInput) (*models.ChildProfile, error) {
	return m.result("", userID, input)
}

func (m *mockProfileUseCase) Get(ctx context.Context, id, userID string) (*models.ChildProfile, error) {
	return m.result(id, userID, nil)
}

func (m *mockProfileUseCase) List(ctx context.Context, userID string) ([]*models.ChildProfile, error) {
	m.lastUser = userID
	return m.profiles, m.err
}

func (m *mockProfileUseCase) Active(ctx context.Context, userID string) (*models.ChildProfile, error) {
	return m.result("", userID, nil)
}

func (m *mockProfileUseCase) Update(ctx context.Context, id, userID string, input *ports.ProfileInput) (*models.ChildProfile, error) {
	return m.result(id, userID, input)
}

func (m *mockProfileUseCase) Delete(ctx context.Context, id, userID string) error {
	m.lastID, m.lastUser = id, userID
	return m.err
}

func (m *mockProfileUseCase) Activate(ctx context.Context, id, userID string) (*models.ChildProfile, error) {
	return m.result(id, userID, nil)
}

type mockNewsletterUseCase struct {
	signup *models.NewsletterSignup
	err    error
	last   *ports.SubscribeNewsletterInput
}

func (m *mockNewsletterUseCase) Subscribe(ctx context.Context, input *ports.SubscribeNewsletterInput) (*models.NewsletterSignup, error) {
	m.last = input
	return m.signup, m.err
}

func (m *mockNewsletterUseCase) Status(ctx context.Context, email string) (*models.NewsletterSignup, error) {
	return m.signup, m.err
}

type mockStateUseCase struct {
	snapshot state.Snapshot
	record   *models.AppStateRecord
	migrated state.State
	reset    bool
	err      error
	saved    *state.Snapshot
}

func (m *mockStateUseCase) Save(ctx context.Context, userID string, snapshot state.Snapshot) (*models.AppStateRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.saved = &snapshot
	return m.record, nil
}

func (m *mockStateUseCase) Load(ctx context.Context, userID string) (state.Snapshot, error) {
	return m.snapshot, m.err
}

func (m *mockStateUseCase) Migrate(old map[string]any, fromVersion int) (state.State, bool, error) {
	return m.migrated, m.reset, m.err
}
