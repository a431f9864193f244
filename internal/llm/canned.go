package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/samber/lo"

	"github.com/gentlify/pacify/internal/domain/models"
	"github.com/gentlify/pacify/internal/ports"
	"github.com/gentlify/pacify/internal/prompt"
)

const cannedModel = "canned"

// CannedClient answers every request with a fixed, schema-valid fixture so
// the whole pipeline runs without credentials.
type CannedClient struct{}

func NewCannedClient() *CannedClient { return &CannedClient{} }

func (CannedClient) Name() string  { return "canned" }
func (CannedClient) Model() string { return cannedModel }

func (c CannedClient) Generate(ctx context.Context, req *ports.LLMRequest) (*ports.LLMResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		body   any
		tokens int
	)
	switch req.Mode {
	case prompt.ModeMirror:
		body, tokens = cannedMirror, 25
	case prompt.ModeExpert:
		body, tokens = cannedExpert, 450
	case prompt.ModeClassic:
		body, tokens = cannedClassic(req.Intents), 120
	case prompt.ModeUnified:
		return &ports.LLMResponse{Content: cannedUnified, TokensUsed: 450, Model: cannedModel, Provider: c.Name()}, nil
	default:
		return nil, fmt.Errorf("no canned answer for mode %q", req.Mode)
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal canned answer: %w", err)
	}
	return &ports.LLMResponse{Content: string(raw), TokensUsed: tokens, Model: cannedModel, Provider: c.Name()}, nil
}

const cannedValidation = "Es klingt, als wärst du gerade in einer herausfordernden Situation. Das ist völlig okay - du machst das großartig."

var cannedMirror = prompt.MirrorResponse{
	Phase1Mirror:         cannedValidation,
	ResponsePhase:        prompt.ResponsePhase1,
	NeedsIntentSelection: lo.ToPtr(true),
}

var cannedExpert = prompt.ExpertResponse{
	ResponsePhase: prompt.ResponsePhase2,
	Phase2Expert: prompt.ExpertAnswer{
		Situation:    "Dein Kind zeigt typisches Verhalten für sein Alter und testet Grenzen.",
		Complication: "Die Situation fühlt sich überwältigend an, weil du nicht weißt, wie du reagieren sollst.",
		Answer:       "Bleibe ruhig und setze liebevolle Grenzen. Sage klar 'Das geht nicht' und biete eine Alternative an.",
		EmbeddedNeed: []string{"Autonomie", "Sicherheit"},
		EvidenceFact: "Präfrontaler Kortex entwickelt sich bis 25 - Impulskontrolle ist bei Kindern neurologisch unreif.",
		Citation:     "Steinberg (2013) ⧉",
		MicroInterventions: []prompt.ExpertMicroIntervention{{
			Name:        "Ruhige Grenzensetzung",
			Description: "Klare Grenzen ohne Machtkampf kommunizieren",
			Duration:    "30-60 Sekunden",
		}},
	},
}

func cannedClassic(intents []models.Intent) prompt.ClassicResponse {
	if len(intents) == 0 {
		return prompt.ClassicResponse{
			ResponseType:         prompt.ResponseValidation,
			Content:              prompt.ClassicContent{Core: cannedValidation},
			NeedsIntentSelection: lo.ToPtr(true),
		}
	}

	intent := intents[0]
	out := prompt.ClassicResponse{ResponseType: string(intent), NeedsIntentSelection: lo.ToPtr(false)}
	switch intent {
	case models.IntentVerstehen:
		out.Content.Core = "Dein Kind befindet sich wahrscheinlich in einem emotionalen Überflutungszustand. Das Gehirn ist noch nicht vollständig entwickelt, um starke Gefühle zu regulieren."
		out.IdentifiedNeeds = []string{"regulation"}
	case models.IntentVerstaendnisFuerMich:
		out.Content.Core = "Es ist völlig normal, dass du dich überfordert fühlst. Du machst das großartig, auch wenn es sich nicht so anfühlt."
	case models.IntentVerstehenKind:
		out.Content.Core = "Aus der Sicht deines Kindes fühlt sich die Welt gerade groß und unkontrollierbar an. Es versucht, seine Gefühle zu kommunizieren."
		out.IdentifiedNeeds = []string{"sicherheit", "verbindung"}
	default:
		out.Content = prompt.ClassicContent{
			Mirror: "Es klingt, als wärst du gerade in einer herausfordernden Situation.",
			Core:   "Du könntest z. B. sagen: 'Ich sehe, dass du gerade traurig bist, weil ich Nein gesagt habe.'",
			Hint:   "Bleib ruhig, auch wenn dein Kind laut wird. Dein sicherer Rahmen hilft ihm beim Runterkommen.",
		}
		out.IdentifiedNeeds = []string{"autonomie"}
	}
	return out
}

const cannedUnified = `💡 **Entwicklungsnotiz**: Das ist eine vorbereitete Antwort, da kein API-Key konfiguriert ist.

**Emotionale Validierung:**
Ich verstehe deine Situation wirklich gut, und ich kann förmlich spüren, wie herausfordernd das für dich als Elternteil sein muss. Es ist völlig normal, dass du dir Sorgen machst und nach Lösungen suchst.

**Fachliche Einordnung:**
Aus entwicklungspsychologischer Sicht ist das Verhalten, das du beschreibst, oft ein natürlicher Teil der kindlichen Entwicklung. Kinder testen in verschiedenen Phasen ihre Grenzen und lernen dadurch, sich selbst zu regulieren.

**Konkrete Lösungsschritte:**
1. **Beobachtungsphase (3-5 Tage)**: Dokumentiere, wann das Verhalten auftritt und was davor passiert.
2. **Ruhige Gespräche führen**: Frage dein Kind in einem entspannten Moment offen, wie es sich fühlt.
3. **Klare, liebevolle Grenzen setzen**: Erkläre ruhig, welches Verhalten okay ist, immer mit einer Alternative.
4. **Positive Verstärkung**: Bemerke erwünschtes Verhalten bewusst.
5. **Vorhersagbare Routinen schaffen**: Kinder fühlen sich sicherer, wenn sie wissen, was als nächstes kommt.
6. **Selbstfürsorge**: Nur entspannte Eltern können gelassen reagieren.

**Wissenschaftlicher Hintergrund:**
Studien zeigen, dass Kinder, die sich sicher und verstanden fühlen, eher kooperieren.

**Meine Frage an dich:** Hast du schon bemerkt, ob es bestimmte Tageszeiten oder Situationen gibt, in denen das Verhalten häufiger auftritt? 🤗`
