package prompt

import (
	"errors"
	"strings"
	"testing"

	"github.com/gentlify/pacify/internal/domain"
	"github.com/gentlify/pacify/internal/domain/models"
	"github.com/gentlify/pacify/internal/knowledge"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfile() *models.ChildProfile {
	return &models.ChildProfile{
		Name:      "Mia",
		AgeYears:  2,
		AgeMonths: 6,
		Traits:    []models.PersonalityTrait{models.TraitSensibel, models.TraitDickkoepfig},
	}
}

func testBundle() knowledge.Bundle {
	return knowledge.Bundle{
		Keywords: []string{"wutanfall"},
		AgeFact:  "Kinder in diesem Alter entdecken ihren eigenen Willen.",
		RelevantNeeds: []knowledge.Need{
			{ID: "regulation_emotional_support", Category: "regulation", Name: "Emotionale Begleitung"},
		},
		EvidenceFact: &knowledge.EvidenceFact{
			ID:          "tantrum_function",
			Fact:        "Wutanfälle sind normale Kommunikation überforderter Kinder.",
			Reliability: knowledge.ReliabilityHigh,
		},
		MicroInterventions: []knowledge.MicroIntervention{
			{ID: "breathing_bear", Name: "Bärenatmung", Description: "Gemeinsam tief atmen", Duration: "2 Minuten", Difficulty: "easy"},
		},
		Citation: "Potegal, M. & Davidson, R. J. (2003) ⧉",
	}
}

func history(n int) []models.HistoryTurn {
	out := make([]models.HistoryTurn, n)
	for i := range out {
		role := models.MessageRoleUser
		if i%2 == 1 {
			role = models.MessageRoleAssistant
		}
		out[i] = models.HistoryTurn{Role: role, Content: "turn-" + string(rune('a'+i))}
	}
	return out
}

func TestCompose_Errors(t *testing.T) {
	c := NewComposer(DefaultHistoryWindows())

	_, err := c.Compose(Input{Mode: ModeMirror, Message: "   "})
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)

	_, err = c.Compose(Input{Mode: "poem", Message: "Hallo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = c.Compose(Input{Mode: ModeExpert, Message: "Hallo"})
	assert.True(t, errors.Is(err, domain.ErrNoIntents))
}

func TestCompose_Mirror(t *testing.T) {
	c := NewComposer(DefaultHistoryWindows())
	out, err := c.Compose(Input{
		Mode:    ModeMirror,
		Profile: testProfile(),
		Message: "Mein Kind hat einen Wutanfall",
		Bundle:  testBundle(),
		History: history(5),
	})
	require.NoError(t, err)

	assert.Equal(t, 0.6, out.Temperature)
	assert.Equal(t, 200, out.MaxTokens)
	assert.Equal(t, "pacify_mirror_response", out.SchemaName)
	assert.NotNil(t, out.Schema)
	assert.Contains(t, out.SystemPrompt, "PHASE 1: EMOTIONALE SPIEGELUNG")
	assert.Contains(t, out.SystemPrompt, "JSON-Schema der Antwort:\n{")
	assert.True(t, strings.HasSuffix(out.SystemPrompt, "}"))
	assert.Contains(t, out.SystemPrompt, "- Alter: 2 Jahre, 6 Monate")
	assert.Contains(t, out.SystemPrompt, "Kontext: Kind ist 30 Monate alt. Relevante Entwicklungsfakten: Kinder in diesem Alter")
	assert.True(t, strings.HasPrefix(out.UserPrompt, "Elternsituation: Mein Kind hat einen Wutanfall"))

	// only the last three turns
	assert.NotContains(t, out.UserPrompt, "turn-b")
	assert.Contains(t, out.UserPrompt, "user: turn-c\nassistant: turn-d\nuser: turn-e")
}

func TestCompose_Expert(t *testing.T) {
	c := NewComposer(DefaultHistoryWindows())
	in := Input{
		Mode:         ModeExpert,
		Intents:      []models.Intent{models.IntentLoesung, models.IntentVerstehen},
		Profile:      testProfile(),
		Message:      "Mein Kind hat einen Wutanfall",
		Bundle:       testBundle(),
		Phase1Mirror: "Das klingt anstrengend.",
	}
	out, err := c.Compose(in)
	require.NoError(t, err)

	assert.Equal(t, "Als Erziehungsexperte", out.RolePrefix)
	assert.True(t, strings.HasPrefix(out.SystemPrompt, "Als Erziehungsexperte mit Expertise"))
	assert.Equal(t, 0.4, out.Temperature)
	assert.Equal(t, 600, out.MaxTokens)
	assert.Equal(t, "pacify_expert_response", out.SchemaName)
	assert.Contains(t, out.SystemPrompt, `Phase 1 Spiegelung war: "Das klingt anstrengend."`)
	assert.Contains(t, out.SystemPrompt, "Gewählte Intents: loesung, verstehen")
	assert.Contains(t, out.SystemPrompt, "- Bedürfnisse: Emotionale Begleitung (eingebettet in Fließtext)")
	assert.Contains(t, out.SystemPrompt, "- Wissenschaftsfakt: Wutanfälle sind normale Kommunikation")
	assert.Contains(t, out.SystemPrompt, "- Mikro-Übungen: Bärenatmung")
	assert.Equal(t, in.Bundle.AgeFact, out.AgeFact)

	in.MultiChild = true
	out, err = c.Compose(in)
	require.NoError(t, err)
	assert.Equal(t, 700, out.MaxTokens)
}

func TestCompose_RolePrefixUsesFirstIntent(t *testing.T) {
	tests := []struct {
		intents []models.Intent
		want    string
	}{
		{[]models.Intent{models.IntentVerstehen}, "Als Entwicklungspsychologe"},
		{[]models.Intent{models.IntentVerstaendnisFuerMich, models.IntentLoesung}, "Als Elterncoach"},
		{[]models.Intent{models.IntentVerstehenKind}, "Als Kinderpsychologe"},
		{[]models.Intent{"unbekannt"}, DefaultRolePrefix},
		{nil, DefaultRolePrefix},
	}
	for _, tt := range tests {
		if got := RolePrefix(tt.intents); got != tt.want {
			t.Errorf("RolePrefix(%v) = %q, want %q", tt.intents, got, tt.want)
		}
	}
}

func TestCompose_Unified(t *testing.T) {
	c := NewComposer(DefaultHistoryWindows())
	profile := testProfile()
	profile.Traits = append(profile.Traits, models.TraitKreativ)

	out, err := c.Compose(Input{
		Mode:    ModeUnified,
		Intents: []models.Intent{models.IntentVerstehen, models.IntentLoesung},
		Profile: profile,
		Message: "Warum schreit sie so?",
		Bundle:  testBundle(),
		History: history(6),
	})
	require.NoError(t, err)

	assert.Empty(t, out.SchemaName)
	assert.Nil(t, out.Schema)
	assert.NotContains(t, out.SystemPrompt, "JSON-Schema")
	assert.Equal(t, 0.4, out.Temperature)
	assert.Equal(t, 1700, out.MaxTokens)
	assert.Contains(t, out.SystemPrompt, "**Erkannte Bedürfnisse:** verstehen, loesung")
	assert.Contains(t, out.SystemPrompt, "- Alter: 2 Jahre 6 Monate")
	assert.Contains(t, out.SystemPrompt, "**Praktische Intervention:**\nBärenatmung")
	assert.Contains(t, out.SystemPrompt, "Bisheriger Gesprächsverlauf:\nuser: turn-c")
	assert.NotContains(t, out.SystemPrompt, "turn-b")
	assert.Contains(t, out.UserPrompt, `Elternfrage: "Warum schreit sie so?"`)
	assert.Contains(t, out.UserPrompt, "ZWINGEND ERFORDERLICH")
}

func TestCompose_UnifiedTemperatureTable(t *testing.T) {
	tests := []struct {
		intents []models.Intent
		want    float64
	}{
		{[]models.Intent{models.IntentLoesung, models.IntentVerstaendnisFuerMich}, 0.7},
		{[]models.Intent{models.IntentVerstehenKind, models.IntentLoesung}, 0.6},
		{[]models.Intent{models.IntentLoesung}, 0.4},
		{[]models.Intent{models.IntentVerstehen}, 0.5},
	}
	for _, tt := range tests {
		if got := TemperatureForIntents(tt.intents); got != tt.want {
			t.Errorf("TemperatureForIntents(%v) = %v, want %v", tt.intents, got, tt.want)
		}
	}
}

func TestTokenBudget_MonotonicAndCapped(t *testing.T) {
	for _, policy := range []TokenPolicy{ExpertTokens, UnifiedTokens} {
		prev := 0
		for intents := 0; intents <= 4; intents++ {
			for traits := 0; traits <= 3; traits++ {
				got := policy.Budget(intents, traits)
				assert.LessOrEqual(t, got, policy.Cap)
				if traits == 0 {
					assert.GreaterOrEqual(t, got, prev)
					prev = got
				}
			}
		}
	}
	assert.Equal(t, 3000, UnifiedTokens.Budget(10, 10))
	assert.Equal(t, 2500, ExpertTokens.Budget(20, 0))
}

func TestCompose_Classic(t *testing.T) {
	c := NewComposer(DefaultHistoryWindows())

	out, err := c.Compose(Input{Mode: ModeClassic, Profile: testProfile(), Message: "Sie will nicht schlafen", History: history(3)})
	require.NoError(t, err)
	assert.Equal(t, 0.7, out.Temperature)
	assert.Equal(t, 4000, out.MaxTokens)
	assert.Equal(t, "Situation: Sie will nicht schlafen", out.UserPrompt)
	assert.Contains(t, out.SystemPrompt, "AUFGABE: Gib eine kurze emotionale Validierung (max. 2 Sätze).")
	assert.Contains(t, out.SystemPrompt, `"needsIntentSelection": true`)
	assert.Contains(t, out.SystemPrompt, "Berücksichtige diese Eigenschaften des Kindes in deiner Antwort: sensibel, dickköpfig.")

	out, err = c.Compose(Input{
		Mode:    ModeClassic,
		Intents: []models.Intent{models.IntentVerstehenKind},
		Profile: testProfile(),
		Message: "Sie will nicht schlafen",
	})
	require.NoError(t, err)
	assert.Contains(t, out.SystemPrompt, `Verwende "Vielleicht fühlt sich Mia..."`)
	assert.Contains(t, out.SystemPrompt, `"responseType": "verstehen_kind"`)
	assert.Equal(t, "pacify_classic_response", out.SchemaName)
}

func TestCompose_FallsBackToDefaultProfile(t *testing.T) {
	c := NewComposer(DefaultHistoryWindows())
	for _, p := range []*models.ChildProfile{nil, {Name: "", AgeYears: 3}, {Name: "Tom", AgeYears: 40}} {
		out, err := c.Compose(Input{Mode: ModeMirror, Profile: p, Message: "Hilfe"})
		require.NoError(t, err)
		assert.Contains(t, out.SystemPrompt, "- Name: dein Kind")
		assert.Contains(t, out.SystemPrompt, "- Alter: 4 Jahre")
		assert.NotContains(t, out.SystemPrompt, "Kontext: Kind ist")
	}
}

func TestWindow(t *testing.T) {
	h := history(5)
	assert.Nil(t, Window(h, 0))
	assert.Nil(t, Window(nil, 3))
	assert.Len(t, Window(h, 10), 5)
	assert.Equal(t, h[3:], Window(h, 2))
}

func TestSchemaFor_RequiresEveryProperty(t *testing.T) {
	for _, mode := range []Mode{ModeMirror, ModeExpert, ModeClassic} {
		name, schema := SchemaFor(mode)
		require.NotEmpty(t, name, mode)
		assert.Equal(t, false, schema["additionalProperties"], mode)

		props, ok := schema["properties"].(map[string]any)
		require.True(t, ok, mode)
		required, ok := schema["required"].([]string)
		require.True(t, ok, mode)
		assert.Len(t, required, len(props), mode)
	}

	_, schema := SchemaFor(ModeExpert)
	inner := schema["properties"].(map[string]any)["phase2_expert"].(map[string]any)
	assert.Equal(t, false, inner["additionalProperties"])
	assert.Len(t, inner["required"], 7)
}

func TestSchemaFor_OptionalPropertiesAcceptNull(t *testing.T) {
	_, schema := SchemaFor(ModeClassic)
	props := schema["properties"].(map[string]any)

	content := props["content"].(map[string]any)
	contentProps := content["properties"].(map[string]any)
	assert.Equal(t, []any{"string", "null"}, contentProps["mirror"].(map[string]any)["type"])
	assert.Equal(t, []any{"string", "null"}, contentProps["hint"].(map[string]any)["type"])
	assert.Equal(t, "string", contentProps["core"].(map[string]any)["type"])
	assert.Equal(t, []string{"core", "hint", "mirror"}, content["required"])

	needs := props["identifiedNeeds"].(map[string]any)
	assert.Equal(t, []any{"array", "null"}, needs["type"])
	assert.EqualValues(t, 1, needs["minItems"])
	assert.EqualValues(t, 2, needs["maxItems"])
	assert.Equal(t, "boolean", props["needsIntentSelection"].(map[string]any)["type"])

	_, schema = SchemaFor(ModeExpert)
	inner := schema["properties"].(map[string]any)["phase2_expert"].(map[string]any)
	for name, p := range inner["properties"].(map[string]any) {
		assert.IsType(t, "", p.(map[string]any)["type"], name)
	}
}
