package models

import "github.com/gentlify/pacify/internal/domain"

// Intent is what kind of help the parent is asking for.
type Intent string

const (
	IntentVerstehen            Intent = "verstehen"
	IntentVerstaendnisFuerMich Intent = "verstaendnis_fuer_mich"
	IntentVerstehenKind        Intent = "verstehen_kind"
	IntentLoesung              Intent = "loesung"
)

// AllIntents lists intents in their canonical order.
var AllIntents = []Intent{
	IntentVerstehen,
	IntentVerstaendnisFuerMich,
	IntentVerstehenKind,
	IntentLoesung,
}

func (i Intent) IsValid() bool {
	switch i {
	case IntentVerstehen, IntentVerstaendnisFuerMich, IntentVerstehenKind, IntentLoesung:
		return true
	}
	return false
}

// ParseIntents validates a list of raw intent strings.
func ParseIntents(raw []string) ([]Intent, error) {
	out := make([]Intent, 0, len(raw))
	for _, r := range raw {
		i := Intent(r)
		if !i.IsValid() {
			return nil, domain.NewDomainErrorWithCode(domain.ErrInvalidIntent, r, "invalid_intent")
		}
		out = append(out, i)
	}
	return out, nil
}

func IntentStrings(intents []Intent) []string {
	out := make([]string, len(intents))
	for i, in := range intents {
		out[i] = string(in)
	}
	return out
}

// IntentButton is the client-side presentation of an intent.
type IntentButton struct {
	Intent      Intent `json:"intent"`
	Label       string `json:"label"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

var IntentButtons = map[Intent]IntentButton{
	IntentVerstehen: {
		Intent:      IntentVerstehen,
		Label:       "Situation verstehen",
		Description: "Was passiert psychologisch im Kind?",
		Icon:        "🧠",
	},
	IntentVerstaendnisFuerMich: {
		Intent:      IntentVerstaendnisFuerMich,
		Label:       "Für mich da sein",
		Description: "Validierung meiner Gefühle als Elternteil",
		Icon:        "🤗",
	},
	IntentVerstehenKind: {
		Intent:      IntentVerstehenKind,
		Label:       "Kind verstehen",
		Description: "Wie erlebt mein Kind die Situation?",
		Icon:        "👶",
	},
	IntentLoesung: {
		Intent:      IntentLoesung,
		Label:       "Konkrete Lösung",
		Description: "Was kann ich direkt sagen und tun?",
		Icon:        "💡",
	},
}
