// Package scope decides whether a parent's message belongs in a coaching
// conversation and what kind of help it asks for.
package scope

import (
	"regexp"

	"github.com/gentlify/pacify/internal/domain/models"
)

// Classifier routes messages that need a professional referral away from
// the LLM.
type Classifier interface {
	Check(message string) models.ScopeCheck
}

type referralPattern struct {
	referral models.ReferralType
	pattern  *regexp.Regexp
}

// RegexClassifier checks the patterns in order. The first match wins.
type RegexClassifier struct {
	patterns []referralPattern
}

// Medical, then legal, then emergency. The order is kept as shipped even
// though emergency arguably deserves to win.
var defaultReferralPatterns = []referralPattern{
	{models.ReferralMedical, regexp.MustCompile(`(?i)(diagnose|krankheit|medizin|arzt|therapie|adhd|autismus|depression|medikament|symptom)`)},
	{models.ReferralLegal, regexp.MustCompile(`(?i)(rechtsanwalt|gericht|sorgerecht|polizei|anzeige|illegal|legal|gesetz)`)},
	{models.ReferralEmergency, regexp.MustCompile(`(?i)(notfall|selbstmord|suizid|verletzung|missbrauch|gewalt|hilfe.*sofort)`)},
}

func NewRegexClassifier() *RegexClassifier {
	return &RegexClassifier{patterns: defaultReferralPatterns}
}

func (c *RegexClassifier) Check(message string) models.ScopeCheck {
	for _, p := range c.patterns {
		if p.pattern.MatchString(message) {
			return models.Referral(p.referral)
		}
	}
	return models.InScope()
}
