package dto

import (
	"time"

	"github.com/gentlify/pacify/internal/domain/models"
	"github.com/gentlify/pacify/internal/ports"
)

type ProfileRequest struct {
	Name      string   `json:"name" msgpack:"name"`
	AgeYears  int      `json:"ageYears" msgpack:"ageYears"`
	AgeMonths int      `json:"ageMonths" msgpack:"ageMonths"`
	Traits    []string `json:"traits" msgpack:"traits"`
}

func (r *ProfileRequest) ToInput() *ports.ProfileInput {
	traits := make([]models.PersonalityTrait, len(r.Traits))
	for i, t := range r.Traits {
		traits[i] = models.PersonalityTrait(t)
	}
	return &ports.ProfileInput{
		Name:      r.Name,
		AgeYears:  r.AgeYears,
		AgeMonths: r.AgeMonths,
		Traits:    traits,
	}
}

type ProfileResponse struct {
	ID         string   `json:"id" msgpack:"id"`
	Name       string   `json:"name" msgpack:"name"`
	AgeYears   int      `json:"ageYears" msgpack:"ageYears"`
	AgeMonths  int      `json:"ageMonths" msgpack:"ageMonths"`
	AgeLabel   string   `json:"ageLabel" msgpack:"ageLabel"`
	Traits     []string `json:"traits" msgpack:"traits"`
	TraitLabel []string `json:"traitLabels" msgpack:"traitLabels"`
	IsActive   bool     `json:"isActive" msgpack:"isActive"`
	CreatedAt  string   `json:"createdAt" msgpack:"createdAt"`
	UpdatedAt  *string  `json:"updatedAt,omitempty" msgpack:"updatedAt,omitempty"`
}

type ProfileListResponse struct {
	Profiles []*ProfileResponse `json:"profiles" msgpack:"profiles"`
	Total    int                `json:"total" msgpack:"total"`
}

func FromProfileModel(p *models.ChildProfile) *ProfileResponse {
	resp := &ProfileResponse{
		ID:         p.ID,
		Name:       p.Name,
		AgeYears:   p.AgeYears,
		AgeMonths:  p.AgeMonths,
		AgeLabel:   p.AgeLabel(),
		Traits:     make([]string, len(p.Traits)),
		TraitLabel: make([]string, len(p.Traits)),
		IsActive:   p.IsActive,
		CreatedAt:  p.CreatedAt,
	}
	for i, t := range p.Traits {
		resp.Traits[i] = string(t)
		resp.TraitLabel[i] = models.PersonalityTraits[t]
	}
	if p.UpdatedAt != nil {
		formatted := p.UpdatedAt.Format(time.RFC3339)
		resp.UpdatedAt = &formatted
	}
	return resp
}

func FromProfileModelList(profiles []*models.ChildProfile) *ProfileListResponse {
	resp := &ProfileListResponse{
		Profiles: make([]*ProfileResponse, len(profiles)),
		Total:    len(profiles),
	}
	for i, p := range profiles {
		resp.Profiles[i] = FromProfileModel(p)
	}
	return resp
}
