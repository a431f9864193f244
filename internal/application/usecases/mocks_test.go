package usecases

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/gentlify/pacify/internal/domain"
	"github.com/gentlify/pacify/internal/domain/models"
	"github.com/gentlify/pacify/internal/knowledge"
	"github.com/gentlify/pacify/internal/ports"
)

// ============================================================================
// Common Mock implementations shared across tests
// ============================================================================

type mockIDGenerator struct {
	mu         sync.Mutex
	message    int
	session    int
	profile    int
	newsletter int
}

func (m *mockIDGenerator) GenerateMessageID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.message++
	return fmt.Sprintf("pm_test%d", m.message)
}

func (m *mockIDGenerator) GenerateSessionID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session++
	return fmt.Sprintf("ps_test%d", m.session)
}

func (m *mockIDGenerator) GenerateProfileID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profile++
	return fmt.Sprintf("pcp_test%d", m.profile)
}

func (m *mockIDGenerator) GenerateNewsletterID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.newsletter++
	return fmt.Sprintf("pn_test%d", m.newsletter)
}

// mockMessageRepo keeps messages in insertion order.
type mockMessageRepo struct {
	mu        sync.Mutex
	messages  []*models.ChatMessage
	createErr error
	listErr   error
}

func newMockMessageRepo() *mockMessageRepo { return &mockMessageRepo{} }

func (m *mockMessageRepo) Create(ctx context.Context, msg *models.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	c := *msg
	m.messages = append(m.messages, &c)
	return nil
}

func (m *mockMessageRepo) GetByID(ctx context.Context, id string) (*models.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.messages {
		if msg.ID == id {
			c := *msg
			return &c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockMessageRepo) ListBySession(ctx context.Context, userID, sessionID string, limit int) ([]*models.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*models.ChatMessage
	for _, msg := range m.messages {
		if msg.UserID == userID && msg.SessionID == sessionID {
			c := *msg
			out = append(out, &c)
		}
	}
	if len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (m *mockMessageRepo) UpdateFeedback(ctx context.Context, id, userID string, feedback models.Feedback) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.messages {
		if msg.ID == id && msg.UserID == userID {
			msg.Feedback = feedback
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *mockMessageRepo) DeleteBySession(ctx context.Context, userID, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.messages[:0]
	for _, msg := range m.messages {
		if msg.UserID != userID || msg.SessionID != sessionID {
			kept = append(kept, msg)
		}
	}
	m.messages = kept
	return nil
}

type mockProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*models.ChildProfile
	failOn   string
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[string]*models.ChildProfile)}
}

func (m *mockProfileRepo) fail(op string) error {
	if m.failOn == op {
		return fmt.Errorf("%s failed", op)
	}
	return nil
}

func (m *mockProfileRepo) Create(ctx context.Context, p *models.ChildProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("create"); err != nil {
		return err
	}
	c := *p
	m.profiles[p.ID] = &c
	return nil
}

func (m *mockProfileRepo) GetByID(ctx context.Context, id, userID string) (*models.ChildProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.profiles[id]; ok && p.UserID == userID {
		c := *p
		return &c, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *mockProfileRepo) GetActive(ctx context.Context, userID string) (*models.ChildProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.profiles {
		if p.UserID == userID && p.IsActive {
			c := *p
			return &c, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *mockProfileRepo) ListByUser(ctx context.Context, userID string) ([]*models.ChildProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*models.ChildProfile
	for _, p := range m.profiles {
		if p.UserID == userID {
			c := *p
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockProfileRepo) Update(ctx context.Context, p *models.ChildProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.profiles[p.ID]; !ok {
		return pgx.ErrNoRows
	}
	c := *p
	m.profiles[p.ID] = &c
	return nil
}

func (m *mockProfileRepo) Delete(ctx context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.profiles, id)
	return nil
}

func (m *mockProfileRepo) DeactivateAll(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("deactivate"); err != nil {
		return err
	}
	for _, p := range m.profiles {
		if p.UserID == userID {
			p.IsActive = false
		}
	}
	return nil
}

func (m *mockProfileRepo) SetActive(ctx context.Context, id, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("activate"); err != nil {
		return err
	}
	p, ok := m.profiles[id]
	if !ok || p.UserID != userID {
		return pgx.ErrNoRows
	}
	p.IsActive = true
	return nil
}

func (m *mockProfileRepo) activeIDs(userID string) []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for _, p := range m.profiles {
		if p.UserID == userID && p.IsActive {
			ids = append(ids, p.ID)
		}
	}
	sort.Strings(ids)
	return ids
}

// mockTransactionManager snapshots the profile repo and restores it when fn
// fails, so rollback is observable in tests.
type mockTransactionManager struct {
	profiles *mockProfileRepo
	calls    int
}

func (m *mockTransactionManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	var saved map[string]models.ChildProfile
	if m.profiles != nil {
		m.profiles.mu.Lock()
		saved = make(map[string]models.ChildProfile, len(m.profiles.profiles))
		for id, p := range m.profiles.profiles {
			saved[id] = *p
		}
		m.profiles.mu.Unlock()
	}

	err := fn(ctx)
	if err != nil && m.profiles != nil {
		m.profiles.mu.Lock()
		m.profiles.profiles = make(map[string]*models.ChildProfile, len(saved))
		for id, p := range saved {
			c := p
			m.profiles.profiles[id] = &c
		}
		m.profiles.mu.Unlock()
	}
	return err
}

type mockNewsletterRepo struct {
	signups   map[string]*models.NewsletterSignup
	createErr error
	getErr    error
}

func newMockNewsletterRepo() *mockNewsletterRepo {
	return &mockNewsletterRepo{signups: make(map[string]*models.NewsletterSignup)}
}

func (m *mockNewsletterRepo) Create(ctx context.Context, s *models.NewsletterSignup) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.signups[s.Email] = s
	return nil
}

func (m *mockNewsletterRepo) GetByEmail(ctx context.Context, email string) (*models.NewsletterSignup, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if s, ok := m.signups[email]; ok {
		return s, nil
	}
	return nil, pgx.ErrNoRows
}

type mockAppStateRepo struct {
	records map[string]*models.AppStateRecord
	getErr  error
}

func newMockAppStateRepo() *mockAppStateRepo {
	return &mockAppStateRepo{records: make(map[string]*models.AppStateRecord)}
}

func (m *mockAppStateRepo) Save(ctx context.Context, r *models.AppStateRecord) error {
	c := *r
	m.records[r.UserID] = &c
	return nil
}

func (m *mockAppStateRepo) Get(ctx context.Context, userID string) (*models.AppStateRecord, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if r, ok := m.records[userID]; ok {
		return r, nil
	}
	return nil, pgx.ErrNoRows
}

// mockLLM returns a scripted answer and records the last request.
type mockLLM struct {
	content string
	tokens  int
	err     error
	calls   int
	last    *ports.LLMRequest
}

func (m *mockLLM) Complete(ctx context.Context, req *ports.LLMRequest) (*ports.LLMResponse, error) {
	m.calls++
	m.last = req
	if m.err != nil {
		return nil, m.err
	}
	return &ports.LLMResponse{Content: m.content, TokensUsed: m.tokens, Provider: "mock", Model: "mock"}, nil
}

func (m *mockLLM) Provider() string { return "mock" }

// fixedKnowledge returns the same bundle for every message.
type fixedKnowledge struct {
	bundle  knowledge.Bundle
	lastAge int
}

func (f *fixedKnowledge) EnhancedResponse(message string, ageInMonths int) knowledge.Bundle {
	f.lastAge = ageInMonths
	return f.bundle
}

var _ = domain.ErrNotFound
