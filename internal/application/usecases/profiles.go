package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gentlify/pacify/internal/domain"
	"github.com/gentlify/pacify/internal/domain/models"
	"github.com/gentlify/pacify/internal/ports"
)

// Profiles manages a user's child profiles. At most one is active, and
// switching happens inside a transaction.
type Profiles struct {
	repo ports.ChildProfileRepository
	tx   ports.TransactionManager
	ids  ports.IDGenerator
}

func NewProfiles(repo ports.ChildProfileRepository, tx ports.TransactionManager, ids ports.IDGenerator) *Profiles {
	return &Profiles{repo: repo, tx: tx, ids: ids}
}

// Create stores a new profile and makes it the active one.
func (uc *Profiles) Create(ctx context.Context, userID string, input *ports.ProfileInput) (*models.ChildProfile, error) {
	if err := validateID(userID, "user"); err != nil {
		return nil, err
	}
	profile := models.NewChildProfile(uc.ids.GenerateProfileID(), userID, strings.TrimSpace(input.Name), input.AgeYears, input.AgeMonths, input.Traits)
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := uc.repo.DeactivateAll(ctx, userID); err != nil {
			return fmt.Errorf("failed to deactivate profiles: %w", err)
		}
		return uc.repo.Create(ctx, profile)
	})
	if err != nil {
		return nil, domain.NewDomainError(err, "failed to create child profile")
	}
	return profile, nil
}

func (uc *Profiles) Get(ctx context.Context, id, userID string) (*models.ChildProfile, error) {
	if err := validateID(id, "profile"); err != nil {
		return nil, err
	}
	profile, err := uc.repo.GetByID(ctx, id, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.NewDomainError(domain.ErrProfileNotFound, id)
		}
		return nil, err
	}
	return profile, nil
}

func (uc *Profiles) List(ctx context.Context, userID string) ([]*models.ChildProfile, error) {
	return uc.repo.ListByUser(ctx, userID)
}

func (uc *Profiles) Active(ctx context.Context, userID string) (*models.ChildProfile, error) {
	profile, err := uc.repo.GetActive(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.NewDomainError(domain.ErrProfileNotFound, "no active profile")
		}
		return nil, err
	}
	return profile, nil
}

func (uc *Profiles) Update(ctx context.Context, id, userID string, input *ports.ProfileInput) (*models.ChildProfile, error) {
	profile, err := uc.Get(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	profile.Name = strings.TrimSpace(input.Name)
	profile.AgeYears = input.AgeYears
	profile.AgeMonths = input.AgeMonths
	profile.Traits = input.Traits
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	profile.UpdatedAt = &now

	if err := uc.repo.Update(ctx, profile); err != nil {
		return nil, domain.NewDomainError(err, "failed to update child profile")
	}
	return profile, nil
}

func (uc *Profiles) Delete(ctx context.Context, id, userID string) error {
	if _, err := uc.Get(ctx, id, userID); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id, userID)
}

// Activate makes id the only active profile of the user.
func (uc *Profiles) Activate(ctx context.Context, id, userID string) (*models.ChildProfile, error) {
	var profile *models.ChildProfile
	err := uc.tx.WithTransaction(ctx, func(ctx context.Context) error {
		var err error
		profile, err = uc.Get(ctx, id, userID)
		if err != nil {
			return err
		}
		if err := uc.repo.DeactivateAll(ctx, userID); err != nil {
			return fmt.Errorf("failed to deactivate profiles: %w", err)
		}
		return uc.repo.SetActive(ctx, id, userID)
	})
	if err != nil {
		return nil, err
	}
	profile.IsActive = true
	return profile, nil
}
