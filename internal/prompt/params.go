package prompt

import (
	"slices"

	"github.com/gentlify/pacify/internal/domain/models"
)

// Mode selects which of the chat variants a prompt is composed for.
type Mode string

const (
	ModeMirror  Mode = "mirror"
	ModeExpert  Mode = "expert"
	ModeUnified Mode = "unified"
	ModeClassic Mode = "classic"
)

func (m Mode) IsValid() bool {
	switch m {
	case ModeMirror, ModeExpert, ModeUnified, ModeClassic:
		return true
	}
	return false
}

const DefaultRolePrefix = "Als Familienspezialist"

var rolePrefixes = map[models.Intent]string{
	models.IntentVerstehen:            "Als Entwicklungspsychologe",
	models.IntentVerstaendnisFuerMich: "Als Elterncoach",
	models.IntentVerstehenKind:        "Als Kinderpsychologe",
	models.IntentLoesung:              "Als Erziehungsexperte",
}

// RolePrefix picks the persona from the first intent only.
func RolePrefix(intents []models.Intent) string {
	if len(intents) == 0 {
		return DefaultRolePrefix
	}
	if p, ok := rolePrefixes[intents[0]]; ok {
		return p
	}
	return DefaultRolePrefix
}

// ContentType is the coarse kind of text a prompt asks for.
type ContentType string

const (
	ContentAnalysis ContentType = "analysis"
	ContentCreative ContentType = "creative"
	ContentSolution ContentType = "solution"
)

var contentTemperatures = map[ContentType]float64{
	ContentAnalysis: 0.2,
	ContentCreative: 0.8,
	ContentSolution: 0.4,
}

func TemperatureForContent(ct ContentType) float64 {
	if t, ok := contentTemperatures[ct]; ok {
		return t
	}
	return contentTemperatures[ContentSolution]
}

const (
	MirrorTemperature  = 0.6
	ClassicTemperature = 0.7
	DefaultTemperature = 0.5
)

// intentTemperatures is checked in order: the first intent present wins.
var intentTemperatures = []struct {
	intent      models.Intent
	temperature float64
}{
	{models.IntentVerstaendnisFuerMich, 0.7},
	{models.IntentVerstehenKind, 0.6},
	{models.IntentLoesung, 0.4},
}

// TemperatureForIntents is the table used by the unified variant.
func TemperatureForIntents(intents []models.Intent) float64 {
	for _, it := range intentTemperatures {
		if slices.Contains(intents, it.intent) {
			return it.temperature
		}
	}
	return DefaultTemperature
}

// TokenPolicy is a capped linear budget.
type TokenPolicy struct {
	Base      int
	PerIntent int
	PerTrait  int
	Cap       int
}

func (p TokenPolicy) Budget(intentCount, traitCount int) int {
	return min(p.Cap, p.Base+p.PerIntent*intentCount+p.PerTrait*traitCount)
}

// MultiChildBonus is added to the expert budget for families with several children.
const MultiChildBonus = 100

var (
	ExpertTokens  = TokenPolicy{Base: 300, PerIntent: 150, PerTrait: 0, Cap: 2500}
	UnifiedTokens = TokenPolicy{Base: 800, PerIntent: 300, PerTrait: 100, Cap: 3000}
	MirrorTokens  = TokenPolicy{Base: 200, Cap: 200}
	ClassicTokens = TokenPolicy{Base: 4000, Cap: 4000}
)

// HistoryWindows is how many trailing turns each mode interpolates.
type HistoryWindows struct {
	Mirror  int
	Expert  int
	Unified int
	Classic int
}

func DefaultHistoryWindows() HistoryWindows {
	return HistoryWindows{Mirror: 3, Expert: 3, Unified: 4, Classic: 0}
}

func (w HistoryWindows) For(mode Mode) int {
	switch mode {
	case ModeMirror:
		return w.Mirror
	case ModeExpert:
		return w.Expert
	case ModeUnified:
		return w.Unified
	default:
		return w.Classic
	}
}

// Window keeps the last n turns, oldest first.
func Window(history []models.HistoryTurn, n int) []models.HistoryTurn {
	if n <= 0 || len(history) == 0 {
		return nil
	}
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
