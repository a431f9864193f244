package dto

import (
	"time"

	"github.com/gentlify/pacify/internal/domain/models"
)

type MessageResponse struct {
	ID             string         `json:"id" msgpack:"id"`
	SessionID      string         `json:"sessionId" msgpack:"sessionId"`
	ChildProfileID string         `json:"childProfileId,omitempty" msgpack:"childProfileId,omitempty"`
	Role           string         `json:"role" msgpack:"role"`
	Content        string         `json:"content" msgpack:"content"`
	Intent         string         `json:"intent,omitempty" msgpack:"intent,omitempty"`
	Feedback       string         `json:"feedback,omitempty" msgpack:"feedback,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty" msgpack:"metadata,omitempty"`
	Timestamp      string         `json:"timestamp" msgpack:"timestamp"`
}

type MessageListResponse struct {
	SessionID string             `json:"sessionId" msgpack:"sessionId"`
	Messages  []*MessageResponse `json:"messages" msgpack:"messages"`
	Total     int                `json:"total" msgpack:"total"`
}

type FeedbackRequest struct {
	Feedback string `json:"feedback" msgpack:"feedback"`
}

func FromMessageModel(m *models.ChatMessage) *MessageResponse {
	return &MessageResponse{
		ID:             m.ID,
		SessionID:      m.SessionID,
		ChildProfileID: m.ChildProfileID,
		Role:           string(m.Role),
		Content:        m.Content,
		Intent:         string(m.Intent),
		Feedback:       string(m.Feedback),
		Metadata:       m.Metadata,
		Timestamp:      m.Timestamp.UTC().Format(time.RFC3339Nano),
	}
}

func FromMessageModelList(sessionID string, messages []*models.ChatMessage) *MessageListResponse {
	resp := &MessageListResponse{
		SessionID: sessionID,
		Messages:  make([]*MessageResponse, len(messages)),
		Total:     len(messages),
	}
	for i, m := range messages {
		resp.Messages[i] = FromMessageModel(m)
	}
	return resp
}
