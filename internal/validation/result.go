package validation

import (
	"strings"

	"github.com/gentlify/pacify/internal/domain/models"
	"github.com/gentlify/pacify/internal/prompt"
)

// ReferralText answers out-of-scope messages in the free-text variants.
const ReferralText = "Ich verstehe deine Sorge, aber das liegt außerhalb meines Fachbereichs als Elterncoach. Bitte wende dich an entsprechende Fachkräfte oder Beratungsstellen."

const (
	referralConfidence  = 1.0
	referralTemperature = 0.3
	referralTokens      = 50
)

// Referral builds the fixed answer for a message outside the counselling scope.
func Referral(mode prompt.Mode) *Result {
	return &Result{
		Mode: mode,
		Text: ReferralText,
		Metadata: ResponseMetadata{
			Confidence:      referralConfidence,
			TokensUsed:      referralTokens,
			TemperatureUsed: referralTemperature,
			IntentsDetected: []models.Intent{},
			ScopeReferral:   true,
		},
	}
}

// Display renders the answer as the single text stored in chat history.
func (r *Result) Display() string {
	switch {
	case r.Mirror != nil:
		return r.Mirror.Phase1Mirror
	case r.Expert != nil:
		e := r.Expert.Phase2Expert
		parts := []string{e.Situation, e.Complication, e.Answer}
		if e.EvidenceFact != "" {
			fact := e.EvidenceFact
			if e.Citation != "" {
				fact += " (" + e.Citation + ")"
			}
			parts = append(parts, fact)
		}
		for _, m := range e.MicroInterventions {
			line := m.Name + ": " + m.Description
			if m.Duration != "" {
				line += " (" + m.Duration + ")"
			}
			parts = append(parts, line)
		}
		return joinNonEmpty(parts, "\n\n")
	case r.Classic != nil:
		c := r.Classic.Content
		return joinNonEmpty([]string{c.Mirror, c.Core, c.Hint}, "\n\n")
	}
	return r.Text
}

func joinNonEmpty(parts []string, sep string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
