package usecases

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/gentlify/pacify/internal/domain/models"
	"github.com/gentlify/pacify/internal/ports"
	"github.com/gentlify/pacify/internal/state"
)

// AppState persists the client state snapshot per user.
type AppState struct {
	repo ports.AppStateRepository
}

func NewAppState(repo ports.AppStateRepository) *AppState {
	return &AppState{repo: repo}
}

func (uc *AppState) Save(ctx context.Context, userID string, snapshot state.Snapshot) (*models.AppStateRecord, error) {
	if err := validateID(userID, "user"); err != nil {
		return nil, err
	}
	b, err := state.EncodeSnapshot(snapshot)
	if err != nil {
		return nil, err
	}
	record := &models.AppStateRecord{
		UserID:    userID,
		Version:   state.CurrentVersion,
		Snapshot:  b,
		UpdatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Save(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save state: %w", err)
	}
	return record, nil
}

// Load returns the stored snapshot, migrated to the current version. A user
// without stored state gets the initial snapshot.
func (uc *AppState) Load(ctx context.Context, userID string) (state.Snapshot, error) {
	record, err := uc.repo.Get(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return state.NewContainer(state.InitialState()).Snapshot(), nil
		}
		return state.Snapshot{}, fmt.Errorf("failed to load state: %w", err)
	}

	if record.Version == state.CurrentVersion {
		snap, err := state.DecodeSnapshot(record.Snapshot)
		if err == nil {
			return snap, nil
		}
		log.Printf("Discarding unreadable state for %s: %v", userID, err)
		return state.NewContainer(state.InitialState()).Snapshot(), nil
	}

	var old map[string]any
	if err := msgpack.Unmarshal(record.Snapshot, &old); err != nil {
		log.Printf("Discarding unreadable state v%d for %s: %v", record.Version, userID, err)
		return state.NewContainer(state.InitialState()).Snapshot(), nil
	}
	migrated, _, err := uc.Migrate(old, record.Version)
	if err != nil {
		return state.Snapshot{}, err
	}
	return state.NewContainer(migrated).Snapshot(), nil
}

// Migrate upgrades a client-held state. reset is true when the input could
// not be migrated and the initial state was returned instead.
func (uc *AppState) Migrate(old map[string]any, fromVersion int) (state.State, bool, error) {
	s, err := state.Migrate(old, fromVersion)
	if errors.Is(err, state.ErrReset) {
		log.Printf("State migration from v%d reset: %v", fromVersion, err)
		return s, true, nil
	}
	return s, false, err
}
