//go:build integration

package integration

import (
	"github.com/gentlify/pacify/internal/adapters/id"
	"github.com/gentlify/pacify/internal/adapters/postgres"
	"github.com/gentlify/pacify/internal/application/usecases"
	"github.com/gentlify/pacify/internal/knowledge"
	"github.com/gentlify/pacify/internal/llm"
	"github.com/gentlify/pacify/internal/prompt"
	"github.com/gentlify/pacify/internal/scope"
	"github.com/gentlify/pacify/internal/validation"
)

// stores bundles the Postgres-backed use cases for one test database.
type stores struct {
	messages *postgres.ChatMessageRepository
	profiles *postgres.ChildProfileRepository

	history    *usecases.History
	profileUC  *usecases.Profiles
	newsletter *usecases.Newsletter
	appState   *usecases.AppState
	chatDeps   usecases.ChatDeps
}

func newStores(db *TestDB) *stores {
	idGen := id.New()
	messages := postgres.NewChatMessageRepository(db.Pool)
	profiles := postgres.NewChildProfileRepository(db.Pool)

	return &stores{
		messages:   messages,
		profiles:   profiles,
		history:    usecases.NewHistory(messages),
		profileUC:  usecases.NewProfiles(profiles, postgres.NewTransactionManager(db.Pool), idGen),
		newsletter: usecases.NewNewsletter(postgres.NewNewsletterRepository(db.Pool), idGen),
		appState:   usecases.NewAppState(postgres.NewAppStateRepository(db.Pool)),
		chatDeps: usecases.ChatDeps{
			Scope:     scope.NewRegexClassifier(),
			Intents:   scope.NewRegexIntentDetector(),
			Knowledge: knowledge.NewCatalog(knowledge.Locked(knowledge.NewSeededSource(7))),
			Composer:  prompt.NewComposer(prompt.DefaultHistoryWindows()),
			LLM:       llm.NewService(llm.NewCannedClient(), 0),
			Validator: validation.NewValidator(nil),
			Messages:  messages,
			Profiles:  profiles,
			IDs:       idGen,
		},
	}
}
