package scope

import (
	"testing"

	"github.com/gentlify/pacify/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func TestRegexClassifier_Check(t *testing.T) {
	c := NewRegexClassifier()

	tests := []struct {
		name    string
		message string
		want    models.ScopeCheck
	}{
		{"in scope", "Mein Kind will abends nicht ins Bett", models.InScope()},
		{"medical", "Soll ich mit ihm zum Arzt gehen?", models.Referral(models.ReferralMedical)},
		{"medical lowercase", "ist das adhd?", models.Referral(models.ReferralMedical)},
		{"legal", "Es geht um das Sorgerecht", models.Referral(models.ReferralLegal)},
		{"emergency", "Ich brauche Hilfe, und zwar sofort", models.Referral(models.ReferralEmergency)},
		{"medical wins over emergency", "Notfall beim Arzt", models.Referral(models.ReferralMedical)},
		{"legal wins over emergency", "Gewalt, ich gehe zur Polizei", models.Referral(models.ReferralLegal)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Check(tt.message)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, c.Check(tt.message), "repeated checks must agree")
		})
	}
}

func TestRegexIntentDetector_Detect(t *testing.T) {
	d := NewRegexIntentDetector()

	tests := []struct {
		name    string
		message string
		want    []models.Intent
	}{
		{"default", "Heute war ein Tag", []models.Intent{models.IntentLoesung}},
		{"understand", "Warum macht sie das?", []models.Intent{models.IntentVerstehen, models.IntentLoesung}},
		{"parent support", "Ich bin so erschöpft", []models.Intent{models.IntentVerstaendnisFuerMich}},
		{"child perspective", "Wie das Kind den Umzug erlebt", []models.Intent{models.IntentVerstehenKind}},
		{"solution", "Was soll ich tun?", []models.Intent{models.IntentLoesung}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Detect(tt.message))
		})
	}
}
