package handlers

import (
	"net/http"

	"github.com/samber/lo"

	"github.com/gentlify/pacify/internal/adapters/http/dto"
	"github.com/gentlify/pacify/internal/domain/models"
	"github.com/gentlify/pacify/internal/knowledge"
	"github.com/gentlify/pacify/internal/ports"
)

// KnowledgeCatalog is the read side of the knowledge stores used for browsing.
type KnowledgeCatalog interface {
	Citation(id string) (knowledge.Citation, bool)
	FormatCitation(id string, withLink bool) string
	FullReference(id string) string
	RelevantNeeds(keywords []string, ageInMonths int, max int) []knowledge.Need
}

type KnowledgeHandler struct {
	catalog KnowledgeCatalog
	scope   ports.ScopeClassifier
	intents ports.IntentDetector
}

func NewKnowledgeHandler(catalog KnowledgeCatalog, scope ports.ScopeClassifier, intents ports.IntentDetector) *KnowledgeHandler {
	return &KnowledgeHandler{catalog: catalog, scope: scope, intents: intents}
}

// Citation handles GET /api/v1/knowledge/citations/{id}
func (h *KnowledgeHandler) Citation(w http.ResponseWriter, r *http.Request) {
	id, ok := validateURLParam(r, w, "id", "Citation ID")
	if !ok {
		return
	}

	citation, found := h.catalog.Citation(id)
	if !found {
		respondError(w, r, "not_found", "Citation not found", http.StatusNotFound)
		return
	}
	respond(w, r, &dto.CitationResponse{
		Citation: citation,
		Short:    h.catalog.FormatCitation(id, true),
		Full:     h.catalog.FullReference(id),
	}, http.StatusOK)
}

// Badges handles GET /api/v1/knowledge/needs/badges
func (h *KnowledgeHandler) Badges(w http.ResponseWriter, r *http.Request) {
	respond(w, r, &dto.BadgesResponse{Badges: knowledge.Badges()}, http.StatusOK)
}

// Intents handles GET /api/v1/knowledge/intents
func (h *KnowledgeHandler) Intents(w http.ResponseWriter, r *http.Request) {
	buttons := lo.Map(models.AllIntents, func(i models.Intent, _ int) models.IntentButton {
		return models.IntentButtons[i]
	})
	respond(w, r, &dto.IntentsResponse{Intents: buttons}, http.StatusOK)
}

// Keywords handles GET /api/v1/knowledge/keywords?message=&age_months=
// It shows how the pipeline reads a message without calling the model.
func (h *KnowledgeHandler) Keywords(w http.ResponseWriter, r *http.Request) {
	message := r.URL.Query().Get("message")
	if message == "" {
		respondError(w, r, "invalid_request", "message is required", http.StatusBadRequest)
		return
	}
	age := parseIntQuery(r, "age_months", models.DefaultProfile().AgeInMonths())

	keywords := knowledge.ExtractKeywords(message)
	needs := h.catalog.RelevantNeeds(keywords, age, knowledge.DefaultMaxNeeds)

	respond(w, r, &dto.KeywordsResponse{
		Message:  message,
		Keywords: keywords,
		Intents:  h.intents.Detect(message),
		Scope:    h.scope.Check(message),
		Needs:    lo.Uniq(lo.Map(needs, func(n knowledge.Need, _ int) knowledge.NeedCategory { return n.Category })),
	}, http.StatusOK)
}
