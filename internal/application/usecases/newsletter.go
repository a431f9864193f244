package usecases

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/gentlify/pacify/internal/adapters/metrics"
	"github.com/gentlify/pacify/internal/domain"
	"github.com/gentlify/pacify/internal/domain/models"
	"github.com/gentlify/pacify/internal/ports"
)

// Newsletter handles landing page signups.
type Newsletter struct {
	repo ports.NewsletterRepository
	ids  ports.IDGenerator
}

func NewNewsletter(repo ports.NewsletterRepository, ids ports.IDGenerator) *Newsletter {
	return &Newsletter{repo: repo, ids: ids}
}

func (uc *Newsletter) Subscribe(ctx context.Context, input *ports.SubscribeNewsletterInput) (*models.NewsletterSignup, error) {
	email := models.NormalizeEmail(input.Email)
	if !models.IsValidEmail(email) {
		metrics.NewsletterSignupsTotal.WithLabelValues("invalid").Inc()
		return nil, domain.NewDomainErrorWithCode(domain.ErrInvalidEmail, "Ungültige E-Mail-Adresse", "invalid_email")
	}

	existing, err := uc.repo.GetByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		metrics.NewsletterSignupsTotal.WithLabelValues("duplicate").Inc()
		return nil, domain.NewDomainErrorWithCode(domain.ErrAlreadySubscribed, "Diese E-Mail-Adresse ist bereits angemeldet", "already_subscribed")
	case err != nil && !isNotFound(err):
		metrics.NewsletterSignupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to look up subscription: %w", err)
	}

	signup := models.NewNewsletterSignup(uc.ids.GenerateNewsletterID(), email, input.Name, input.Source)
	if err := uc.repo.Create(ctx, signup); err != nil {
		if errors.Is(err, domain.ErrAlreadySubscribed) {
			metrics.NewsletterSignupsTotal.WithLabelValues("duplicate").Inc()
			return nil, domain.NewDomainErrorWithCode(domain.ErrAlreadySubscribed, "Diese E-Mail-Adresse ist bereits angemeldet", "already_subscribed")
		}
		metrics.NewsletterSignupsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to store subscription: %w", err)
	}

	metrics.NewsletterSignupsTotal.WithLabelValues("subscribed").Inc()
	log.Printf("Newsletter signup %s (source=%s)", signup.ID, signup.Source)
	return signup, nil
}

func (uc *Newsletter) Status(ctx context.Context, email string) (*models.NewsletterSignup, error) {
	email = models.NormalizeEmail(email)
	if !models.IsValidEmail(email) {
		return nil, domain.NewDomainErrorWithCode(domain.ErrInvalidEmail, "Ungültige E-Mail-Adresse", "invalid_email")
	}
	signup, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil, domain.NewDomainError(domain.ErrNotFound, "subscription")
		}
		return nil, fmt.Errorf("failed to look up subscription: %w", err)
	}
	return signup, nil
}
