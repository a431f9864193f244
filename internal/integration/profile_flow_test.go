//go:build integration

package integration

import (
	"context"
	"errors"
	"testing"

	"github.com/gentlify/pacify/internal/domain"
	"github.com/gentlify/pacify/internal/domain/models"
	"github.com/gentlify/pacify/internal/ports"
)

func TestProfileFlow_OneActiveProfile(t *testing.T) {
	db := SetupTestDB(t)
	ctx := context.Background()
	s := newStores(db)

	first, err := s.profileUC.Create(ctx, "user-1", &ports.ProfileInput{
		Name:     "Mia",
		AgeYears: 3,
		Traits:   []models.PersonalityTrait{models.TraitSensibel},
	})
	if err != nil {
		t.Fatalf("failed to create first profile: %v", err)
	}

	second, err := s.profileUC.Create(ctx, "user-1", &ports.ProfileInput{
		Name:      "Ben",
		AgeYears:  6,
		AgeMonths: 4,
		Traits:    []models.PersonalityTrait{models.TraitEnergiereich, models.TraitNeugierig},
	})
	if err != nil {
		t.Fatalf("failed to create second profile: %v", err)
	}

	active, err := s.profileUC.Active(ctx, "user-1")
	if err != nil {
		t.Fatalf("failed to get active profile: %v", err)
	}
	if active.ID != second.ID {
		t.Errorf("expected newest profile %s to be active, got %s", second.ID, active.ID)
	}

	if _, err := s.profileUC.Activate(ctx, first.ID, "user-1"); err != nil {
		t.Fatalf("failed to activate profile: %v", err)
	}

	list, err := s.profileUC.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("failed to list profiles: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(list))
	}
	activeCount := 0
	for _, p := range list {
		if p.ID == second.ID && len(p.Traits) != 2 {
			t.Errorf("expected traits to round-trip, got %v", p.Traits)
		}
		if p.IsActive {
			activeCount++
			if p.ID != first.ID {
				t.Errorf("expected %s to be active, got %s", first.ID, p.ID)
			}
		}
	}
	if activeCount != 1 {
		t.Errorf("expected exactly one active profile, got %d", activeCount)
	}
}

func TestProfileFlow_UpdateAndDelete(t *testing.T) {
	db := SetupTestDB(t)
	ctx := context.Background()
	s := newStores(db)

	p, err := s.profileUC.Create(ctx, "user-1", &ports.ProfileInput{
		Name:     "Mia",
		AgeYears: 3,
		Traits:   []models.PersonalityTrait{models.TraitSensibel},
	})
	if err != nil {
		t.Fatalf("failed to create profile: %v", err)
	}

	updated, err := s.profileUC.Update(ctx, p.ID, "user-1", &ports.ProfileInput{
		Name:      "Mia Sophie",
		AgeYears:  4,
		AgeMonths: 1,
		Traits:    []models.PersonalityTrait{models.TraitKreativ},
	})
	if err != nil {
		t.Fatalf("failed to update profile: %v", err)
	}
	if updated.Name != "Mia Sophie" || updated.AgeYears != 4 {
		t.Errorf("unexpected update result: %+v", updated)
	}

	// another user must not see the profile
	if _, err := s.profileUC.Get(ctx, p.ID, "user-2"); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound for foreign user, got %v", err)
	}

	if err := s.profileUC.Delete(ctx, p.ID, "user-1"); err != nil {
		t.Fatalf("failed to delete profile: %v", err)
	}
	if _, err := s.profileUC.Get(ctx, p.ID, "user-1"); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound after delete, got %v", err)
	}
}
