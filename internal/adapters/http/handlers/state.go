package handlers

import (
	"net/http"

	"github.com/gentlify/pacify/internal/adapters/http/dto"
	"github.com/gentlify/pacify/internal/adapters/http/middleware"
	"github.com/gentlify/pacify/internal/ports"
	"github.com/gentlify/pacify/internal/state"
)

// StateHandler stores the versioned client state of a user.
type StateHandler struct {
	state ports.StateUseCase
}

func NewStateHandler(state ports.StateUseCase) *StateHandler {
	return &StateHandler{state: state}
}

// Get handles GET /api/v1/state
func (h *StateHandler) Get(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.state.Load(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondDomainError(w, r, err, "load state")
		return
	}
	respond(w, r, &dto.StateEnvelope{Version: state.CurrentVersion, State: snapshot}, http.StatusOK)
}

// Put handles PUT /api/v1/state. Clients on an older version migrate first.
func (h *StateHandler) Put(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBody[dto.StateEnvelope](r, w)
	if !ok {
		return
	}
	if req.Version != 0 && req.Version != state.CurrentVersion {
		respondError(w, r, "invalid_request", "state version must be current, migrate first", http.StatusBadRequest)
		return
	}

	record, err := h.state.Save(r.Context(), middleware.GetUserID(r.Context()), req.State)
	if err != nil {
		respondDomainError(w, r, err, "save state")
		return
	}
	respond(w, r, &dto.StateEnvelope{Version: record.Version, State: req.State}, http.StatusOK)
}

// Migrate handles POST /api/v1/state/migrate. It is stateless.
func (h *StateHandler) Migrate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBody[dto.MigrateStateRequest](r, w)
	if !ok {
		return
	}

	migrated, reset, err := h.state.Migrate(req.State, req.Version)
	if err != nil {
		respondDomainError(w, r, err, "migrate state")
		return
	}
	respond(w, r, &dto.MigrateStateResponse{
		Version: state.CurrentVersion,
		State:   state.NewContainer(migrated).Snapshot(),
		Reset:   reset,
	}, http.StatusOK)
}
