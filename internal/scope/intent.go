package scope

import (
	"regexp"

	"github.com/gentlify/pacify/internal/domain/models"
)

// IntentDetector infers intents from free text when the parent did not pick one.
type IntentDetector interface {
	Detect(message string) []models.Intent
}

type intentPattern struct {
	intent  models.Intent
	pattern *regexp.Regexp
}

var defaultIntentPatterns = []intentPattern{
	{models.IntentVerstehen, regexp.MustCompile(`(?i)(versteh|begreif|nachvollzieh|warum|entwicklung|phase|verhalten)`)},
	{models.IntentVerstaendnisFuerMich, regexp.MustCompile(`(?i)(frustriert|müde|überfordert|stress|ich.*kann.*nicht|hilf.*mir|erschöpft|allein)`)},
	{models.IntentVerstehenKind, regexp.MustCompile(`(?i)(kind.*fühl|kind.*denk|kind.*sicht|perspektiv.*kind|kind.*erlebt)`)},
	{models.IntentLoesung, regexp.MustCompile(`(?i)(was.*tun|wie.*kann|lösung|strategie|tipp|hilf|schaff|mach|konkret)`)},
}

// RegexIntentDetector returns every matching intent in canonical order and
// falls back to loesung.
type RegexIntentDetector struct {
	patterns []intentPattern
}

func NewRegexIntentDetector() *RegexIntentDetector {
	return &RegexIntentDetector{patterns: defaultIntentPatterns}
}

func (d *RegexIntentDetector) Detect(message string) []models.Intent {
	var intents []models.Intent
	for _, p := range d.patterns {
		if p.pattern.MatchString(message) {
			intents = append(intents, p.intent)
		}
	}
	if len(intents) == 0 {
		return []models.Intent{models.IntentLoesung}
	}
	return intents
}
