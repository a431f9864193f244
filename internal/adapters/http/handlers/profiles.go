package handlers

import (
	"net/http"

	"github.com/gentlify/pacify/internal/adapters/http/dto"
	"github.com/gentlify/pacify/internal/adapters/http/middleware"
	"github.com/gentlify/pacify/internal/ports"
)

type ProfilesHandler struct {
	profiles ports.ProfileUseCase
}

func NewProfilesHandler(profiles ports.ProfileUseCase) *ProfilesHandler {
	return &ProfilesHandler{profiles: profiles}
}

func (h *ProfilesHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBody[dto.ProfileRequest](r, w)
	if !ok {
		return
	}

	profile, err := h.profiles.Create(r.Context(), middleware.GetUserID(r.Context()), req.ToInput())
	if err != nil {
		respondDomainError(w, r, err, "create profile")
		return
	}
	respond(w, r, dto.FromProfileModel(profile), http.StatusCreated)
}

func (h *ProfilesHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.List(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondDomainError(w, r, err, "list profiles")
		return
	}
	respond(w, r, dto.FromProfileModelList(profiles), http.StatusOK)
}

func (h *ProfilesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := validateURLParam(r, w, "id", "Profile ID")
	if !ok {
		return
	}

	profile, err := h.profiles.Get(r.Context(), id, middleware.GetUserID(r.Context()))
	if err != nil {
		respondDomainError(w, r, err, "get profile")
		return
	}
	respond(w, r, dto.FromProfileModel(profile), http.StatusOK)
}

// Active returns the profile used when a chat request names none.
func (h *ProfilesHandler) Active(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profiles.Active(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondDomainError(w, r, err, "get active profile")
		return
	}
	respond(w, r, dto.FromProfileModel(profile), http.StatusOK)
}

func (h *ProfilesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := validateURLParam(r, w, "id", "Profile ID")
	if !ok {
		return
	}
	req, ok := decodeBody[dto.ProfileRequest](r, w)
	if !ok {
		return
	}

	profile, err := h.profiles.Update(r.Context(), id, middleware.GetUserID(r.Context()), req.ToInput())
	if err != nil {
		respondDomainError(w, r, err, "update profile")
		return
	}
	respond(w, r, dto.FromProfileModel(profile), http.StatusOK)
}

func (h *ProfilesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := validateURLParam(r, w, "id", "Profile ID")
	if !ok {
		return
	}

	if err := h.profiles.Delete(r.Context(), id, middleware.GetUserID(r.Context())); err != nil {
		respondDomainError(w, r, err, "delete profile")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Activate makes the profile the user's only active one.
func (h *ProfilesHandler) Activate(w http.ResponseWriter, r *http.Request) {
	id, ok := validateURLParam(r, w, "id", "Profile ID")
	if !ok {
		return
	}

	profile, err := h.profiles.Activate(r.Context(), id, middleware.GetUserID(r.Context()))
	if err != nil {
		respondDomainError(w, r, err, "activate profile")
		return
	}
	respond(w, r, dto.FromProfileModel(profile), http.StatusOK)
}
