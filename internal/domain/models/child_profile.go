package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/gentlify/pacify/internal/domain"
)

type PersonalityTrait string

const (
	TraitSensibel     PersonalityTrait = "sensibel"
	TraitEnergiereich PersonalityTrait = "energiereich"
	TraitSchuechtern  PersonalityTrait = "schüchtern"
	TraitNeugierig    PersonalityTrait = "neugierig"
	TraitDickkoepfig  PersonalityTrait = "dickköpfig"
	TraitHilfsbereit  PersonalityTrait = "hilfsbereit"
	TraitAengstlich   PersonalityTrait = "ängstlich"
	TraitKreativ      PersonalityTrait = "kreativ"
	TraitSozial       PersonalityTrait = "sozial"
)

// PersonalityTraits maps each trait to its display label.
var PersonalityTraits = map[PersonalityTrait]string{
	TraitSensibel:     "Sensibel & feinfühlig",
	TraitEnergiereich: "Energiereich & lebhaft",
	TraitSchuechtern:  "Schüchtern & zurückhaltend",
	TraitNeugierig:    "Neugierig & wissbegierig",
	TraitDickkoepfig:  "Dickköpfig & willensstark",
	TraitHilfsbereit:  "Hilfsbereit & kooperativ",
	TraitAengstlich:   "Ängstlich & vorsichtig",
	TraitKreativ:      "Kreativ & fantasievoll",
	TraitSozial:       "Sozial & kontaktfreudig",
}

func (t PersonalityTrait) IsValid() bool {
	_, ok := PersonalityTraits[t]
	return ok
}

const (
	MinAgeYears = 1
	MaxAgeYears = 18
	MaxTraits   = 3

	DefaultProfileName     = "dein Kind"
	DefaultProfileAgeYears = 4
)

// ChildProfile describes the child a parent is asking about.
type ChildProfile struct {
	ID        string             `json:"id,omitempty" msgpack:"id,omitempty"`
	UserID    string             `json:"user_id,omitempty" msgpack:"user_id,omitempty"`
	Name      string             `json:"name" msgpack:"name"`
	AgeYears  int                `json:"ageYears" msgpack:"ageYears"`
	AgeMonths int                `json:"ageMonths" msgpack:"ageMonths"`
	Traits    []PersonalityTrait `json:"traits" msgpack:"traits"`
	IsActive  bool               `json:"is_active,omitempty" msgpack:"is_active,omitempty"`
	CreatedAt string             `json:"createdAt,omitempty" msgpack:"createdAt,omitempty"`
	UpdatedAt *time.Time         `json:"updated_at,omitempty" msgpack:"-"`
}

func NewChildProfile(id, userID, name string, ageYears, ageMonths int, traits []PersonalityTrait) *ChildProfile {
	return &ChildProfile{
		ID:        id,
		UserID:    userID,
		Name:      name,
		AgeYears:  ageYears,
		AgeMonths: ageMonths,
		Traits:    traits,
		IsActive:  true,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
}

// DefaultProfile is substituted whenever a caller cannot supply a usable profile.
func DefaultProfile() ChildProfile {
	return ChildProfile{
		Name:     DefaultProfileName,
		AgeYears: DefaultProfileAgeYears,
		Traits:   []PersonalityTrait{},
	}
}

// AgeInMonths is the age used by every fact store.
func (p ChildProfile) AgeInMonths() int {
	return p.AgeYears*12 + p.AgeMonths
}

// AgeLabel renders the age the way prompts show it, e.g. "2 Jahre, 6 Monate".
func (p ChildProfile) AgeLabel() string {
	if p.AgeMonths > 0 {
		return fmt.Sprintf("%d Jahre, %d Monate", p.AgeYears, p.AgeMonths)
	}
	return fmt.Sprintf("%d Jahre", p.AgeYears)
}

func (p ChildProfile) TraitList() string {
	parts := make([]string, len(p.Traits))
	for i, t := range p.Traits {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

// Validate enforces the profile schema accepted from clients.
func (p ChildProfile) Validate() error {
	var errs []string
	if strings.TrimSpace(p.Name) == "" {
		errs = append(errs, "name is required")
	}
	if p.AgeYears < MinAgeYears || p.AgeYears > MaxAgeYears {
		errs = append(errs, fmt.Sprintf("ageYears must be between %d and %d", MinAgeYears, MaxAgeYears))
	}
	if p.AgeMonths < 0 || p.AgeMonths > 11 {
		errs = append(errs, "ageMonths must be between 0 and 11")
	}
	if len(p.Traits) < 1 || len(p.Traits) > MaxTraits {
		errs = append(errs, fmt.Sprintf("between 1 and %d traits are required", MaxTraits))
	}
	for _, t := range p.Traits {
		if !t.IsValid() {
			errs = append(errs, fmt.Sprintf("unknown trait %q", t))
		}
	}
	if len(errs) > 0 {
		return domain.NewDomainErrorWithCode(domain.ErrInvalidProfile, strings.Join(errs, "; "), "invalid_profile")
	}
	return nil
}

// OrDefault returns p when it has the fields needed for prompting, otherwise
// DefaultProfile. Traits are optional here.
func (p *ChildProfile) OrDefault() ChildProfile {
	if p == nil || strings.TrimSpace(p.Name) == "" || p.AgeYears < MinAgeYears || p.AgeYears > MaxAgeYears || p.AgeMonths < 0 || p.AgeMonths > 11 {
		return DefaultProfile()
	}
	return *p
}
