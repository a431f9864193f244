package dto

import (
	"github.com/gentlify/pacify/internal/domain/models"
	"github.com/gentlify/pacify/internal/knowledge"
)

type CitationResponse struct {
	knowledge.Citation
	Short string `json:"short" msgpack:"short"`
	Full  string `json:"full" msgpack:"full"`
}

type KeywordsResponse struct {
	Message  string                  `json:"message" msgpack:"message"`
	Keywords []string                `json:"keywords" msgpack:"keywords"`
	Intents  []models.Intent         `json:"intents" msgpack:"intents"`
	Scope    models.ScopeCheck       `json:"scopeCheck" msgpack:"scopeCheck"`
	Needs    []knowledge.NeedCategory `json:"needs,omitempty" msgpack:"needs,omitempty"`
}

type IntentsResponse struct {
	Intents []models.IntentButton `json:"intents" msgpack:"intents"`
}

type BadgesResponse struct {
	Badges []knowledge.NeedBadge `json:"badges" msgpack:"badges"`
}
