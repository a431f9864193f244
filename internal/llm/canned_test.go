package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gentlify/pacify/internal/domain/models"
	"github.com/gentlify/pacify/internal/ports"
	"github.com/gentlify/pacify/internal/prompt"
	"github.com/gentlify/pacify/internal/validation"
)

func TestCannedClient_AnswersPassValidation(t *testing.T) {
	tests := []struct {
		name    string
		mode    prompt.Mode
		intents []models.Intent
	}{
		{"mirror", prompt.ModeMirror, nil},
		{"expert", prompt.ModeExpert, []models.Intent{models.IntentLoesung}},
		{"unified", prompt.ModeUnified, []models.Intent{models.IntentLoesung}},
		{"classic validation", prompt.ModeClassic, nil},
		{"classic verstehen", prompt.ModeClassic, []models.Intent{models.IntentVerstehen}},
		{"classic verstaendnis", prompt.ModeClassic, []models.Intent{models.IntentVerstaendnisFuerMich}},
		{"classic verstehen_kind", prompt.ModeClassic, []models.Intent{models.IntentVerstehenKind}},
		{"classic loesung", prompt.ModeClassic, []models.Intent{models.IntentLoesung}},
	}

	client := NewCannedClient()
	validator := validation.NewValidator(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := client.Generate(context.Background(), &ports.LLMRequest{Mode: tt.mode, Intents: tt.intents})
			require.NoError(t, err)
			assert.Equal(t, "canned", resp.Provider)

			res, err := validator.Validate(resp.Content, tt.mode, validation.Metadata{TokensUsed: resp.TokensUsed})
			require.NoError(t, err)
			assert.Equal(t, validation.DefaultConfidence, res.Metadata.Confidence)
		})
	}
}

func TestCannedClient_ClassicFollowsIntent(t *testing.T) {
	resp, err := NewCannedClient().Generate(context.Background(), &ports.LLMRequest{
		Mode:    prompt.ModeClassic,
		Intents: []models.Intent{models.IntentLoesung},
	})
	require.NoError(t, err)

	res, err := validation.NewValidator(nil).Validate(resp.Content, prompt.ModeClassic, validation.Metadata{})
	require.NoError(t, err)
	assert.Equal(t, "loesung", res.Classic.ResponseType)
	assert.NotEmpty(t, res.Classic.Content.Mirror)
	assert.NotEmpty(t, res.Classic.Content.Hint)
	require.NotNil(t, res.Classic.NeedsIntentSelection)
	assert.False(t, *res.Classic.NeedsIntentSelection)
}

func TestCannedClient_UnifiedHasFollowUp(t *testing.T) {
	resp, err := NewCannedClient().Generate(context.Background(), &ports.LLMRequest{Mode: prompt.ModeUnified})
	require.NoError(t, err)

	res, err := validation.NewValidator(nil).Validate(resp.Content, prompt.ModeUnified, validation.Metadata{})
	require.NoError(t, err)
	assert.True(t, res.Metadata.HasFollowUp)
}

func TestCannedClient_RespectsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewCannedClient().Generate(ctx, &ports.LLMRequest{Mode: prompt.ModeMirror})
	assert.ErrorIs(t, err, context.Canceled)
}
