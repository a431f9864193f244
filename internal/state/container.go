package state

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/gentlify/pacify/internal/domain/models"
)

// ErrorState is the UI error banner.
type ErrorState struct {
	HasError bool   `json:"hasError" msgpack:"hasError"`
	Message  string `json:"message,omitempty" msgpack:"message,omitempty"`
	Code     string `json:"code,omitempty" msgpack:"code,omitempty"`
}

// State is the full client state. Only the Snapshot part is persisted.
type State struct {
	CurrentUserID          string                          `json:"currentUserId,omitempty"`
	ChildProfile           *models.ChildProfile            `json:"childProfile"`
	HasCompletedOnboarding bool                            `json:"hasCompletedOnboarding"`
	Messages               []models.ChatMessage            `json:"messages"`
	UserChatHistory        map[string][]models.ChatMessage `json:"userChatHistory"`
	IsLoading              bool                            `json:"isLoading"`
	Error                  ErrorState                      `json:"error"`
}

// Snapshot is the persisted subset of State.
type Snapshot struct {
	ChildProfile           *models.ChildProfile `json:"childProfile" msgpack:"childProfile"`
	HasCompletedOnboarding bool                 `json:"hasCompletedOnboarding" msgpack:"hasCompletedOnboarding"`
	Messages               []models.ChatMessage `json:"messages" msgpack:"messages"`
}

func InitialState() State {
	return State{
		Messages:        []models.ChatMessage{},
		UserChatHistory: map[string][]models.ChatMessage{},
	}
}

// EncodeSnapshot serialises a snapshot for storage.
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	b, err := msgpack.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode state snapshot: %w", err)
	}
	return b, nil
}

func DecodeSnapshot(b []byte) (Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(b, &s); err != nil {
		return Snapshot{}, fmt.Errorf("failed to decode state snapshot: %w", err)
	}
	return s, nil
}

// Container holds one client's state. It is safe for concurrent use and is
// passed explicitly to whoever needs it.
type Container struct {
	mu    sync.RWMutex
	state State
}

func NewContainer(initial State) *Container {
	if initial.Messages == nil {
		initial.Messages = []models.ChatMessage{}
	}
	if initial.UserChatHistory == nil {
		initial.UserChatHistory = map[string][]models.ChatMessage{}
	}
	return &Container{state: initial}
}

// FromSnapshot restores a container from persisted data.
func FromSnapshot(s Snapshot) *Container {
	st := InitialState()
	st.ChildProfile = s.ChildProfile
	st.HasCompletedOnboarding = s.HasCompletedOnboarding
	if s.Messages != nil {
		st.Messages = s.Messages
	}
	return NewContainer(st)
}

// State returns a copy of the current state.
func (c *Container) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := c.state
	out.Messages = slices.Clone(c.state.Messages)
	out.UserChatHistory = make(map[string][]models.ChatMessage, len(c.state.UserChatHistory))
	for k, v := range c.state.UserChatHistory {
		out.UserChatHistory[k] = slices.Clone(v)
	}
	if c.state.ChildProfile != nil {
		p := *c.state.ChildProfile
		out.ChildProfile = &p
	}
	return out
}

func (c *Container) SetCurrentUserID(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.CurrentUserID = userID
}

func (c *Container) SetChildProfile(p models.ChildProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ChildProfile = &p
}

// ClearChildProfile also sends the user back through onboarding.
func (c *Container) ClearChildProfile() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.ChildProfile = nil
	c.state.HasCompletedOnboarding = false
}

func (c *Container) CompleteOnboarding() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.HasCompletedOnboarding = true
}

func (c *Container) ResetOnboarding() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.HasCompletedOnboarding = false
}

func (c *Container) AddMessage(m models.ChatMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Messages = append(c.state.Messages, stamp(m))
}

// UpdateMessageFeedback reports whether a message with that id exists.
func (c *Container) UpdateMessageFeedback(id string, feedback models.Feedback) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.state.Messages {
		if c.state.Messages[i].ID == id {
			c.state.Messages[i].Feedback = feedback
			return true
		}
	}
	return false
}

func (c *Container) ClearMessages() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Messages = []models.ChatMessage{}
}

func (c *Container) LoadMessages(messages []models.ChatMessage) {
	loaded := make([]models.ChatMessage, len(messages))
	for i, m := range messages {
		loaded[i] = stamp(m)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Messages = loaded
}

// History returns the messages as prompt history turns, oldest first.
func (c *Container) History() []models.HistoryTurn {
	c.mu.RLock()
	defer c.mu.RUnlock()
	turns := make([]models.HistoryTurn, len(c.state.Messages))
	for i := range c.state.Messages {
		turns[i] = c.state.Messages[i].Turn()
	}
	return turns
}

func (c *Container) AddUserMessage(userID string, m models.ChatMessage) {
	m = stamp(m)
	m.UserID = userID
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.UserChatHistory[userID] = append(c.state.UserChatHistory[userID], m)
}

func (c *Container) UserMessages(userID string) []models.ChatMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.state.UserChatHistory[userID])
}

func (c *Container) ClearUserMessages(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.UserChatHistory[userID] = []models.ChatMessage{}
}

// UserIDs lists users with a chat history, sorted.
func (c *Container) UserIDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.state.UserChatHistory))
}

func (c *Container) SetLoading(loading bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.IsLoading = loading
}

func (c *Container) SetError(e ErrorState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Error = e
}

func (c *Container) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Error = ErrorState{}
}

func (c *Container) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = InitialState()
}

// Snapshot returns the persisted subset: profile, onboarding flag and messages.
func (c *Container) Snapshot() Snapshot {
	s := c.State()
	return Snapshot{
		ChildProfile:           s.ChildProfile,
		HasCompletedOnboarding: s.HasCompletedOnboarding,
		Messages:               s.Messages,
	}
}

func stamp(m models.ChatMessage) models.ChatMessage {
	if m.Timestamp.IsZero() {
		m.Timestamp = clock().UTC()
	}
	return m
}
