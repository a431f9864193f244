package models

import (
	"time"
)

type MessageRole string

const (
	MessageRoleUser      MessageRole = "user"
	MessageRoleAssistant MessageRole = "assistant"
)

func (r MessageRole) IsValid() bool {
	return r == MessageRoleUser || r == MessageRoleAssistant
}

// ChatMessage is one turn of a parent's conversation.
type ChatMessage struct {
	ID             string         `json:"id" msgpack:"id"`
	UserID         string         `json:"userId,omitempty" msgpack:"userId,omitempty"`
	ChildProfileID string         `json:"childProfileId,omitempty" msgpack:"childProfileId,omitempty"`
	SessionID      string         `json:"sessionId,omitempty" msgpack:"sessionId,omitempty"`
	Role           MessageRole    `json:"role" msgpack:"role"`
	Content        string         `json:"content" msgpack:"content"`
	Intent         Intent         `json:"intent,omitempty" msgpack:"intent,omitempty"`
	Feedback       Feedback       `json:"feedback,omitempty" msgpack:"feedback,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty" msgpack:"metadata,omitempty"`
	Timestamp      time.Time      `json:"timestamp" msgpack:"timestamp"`
}

func NewChatMessage(id, userID, sessionID string, role MessageRole, content string) *ChatMessage {
	return &ChatMessage{
		ID:        id,
		UserID:    userID,
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(), // Always use UTC for consistent timezone handling
	}
}

// HistoryTurn is the part of a message that is interpolated into prompts.
type HistoryTurn struct {
	Role      MessageRole `json:"role" msgpack:"role"`
	Content   string      `json:"content" msgpack:"content"`
	Timestamp time.Time   `json:"timestamp,omitempty" msgpack:"timestamp,omitempty"`
}

func (m *ChatMessage) Turn() HistoryTurn {
	return HistoryTurn{Role: m.Role, Content: m.Content, Timestamp: m.Timestamp}
}
