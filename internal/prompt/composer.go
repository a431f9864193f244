package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gentlify/pacify/internal/domain"
	"github.com/gentlify/pacify/internal/domain/models"
	"github.com/gentlify/pacify/internal/knowledge"
	"github.com/samber/lo"
)

// Input is everything needed to build one prompt.
type Input struct {
	Mode    Mode
	Intents []models.Intent
	Profile *models.ChildProfile
	Message string
	Bundle  knowledge.Bundle
	History []models.HistoryTurn

	// Phase1Mirror is the phase 1 text echoed into the expert prompt.
	Phase1Mirror string
	MultiChild   bool
}

// Composed is a prompt ready for an LLM client.
type Composed struct {
	Mode         Mode
	SystemPrompt string
	UserPrompt   string
	Temperature  float64
	MaxTokens    int
	RolePrefix   string
	AgeFact      string
	Intents      []models.Intent
	SchemaName   string
	Schema       map[string]any
}

type Composer struct {
	windows HistoryWindows
}

func NewComposer(windows HistoryWindows) *Composer {
	return &Composer{windows: windows}
}

// Compose builds the system and user prompts and the generation parameters.
// A missing or incomplete profile is replaced by models.DefaultProfile.
func (c *Composer) Compose(in Input) (*Composed, error) {
	if strings.TrimSpace(in.Message) == "" {
		return nil, domain.ErrEmptyMessage
	}
	if !in.Mode.IsValid() {
		return nil, domain.NewDomainError(domain.ErrInvalidInput, fmt.Sprintf("unknown prompt mode %q", in.Mode))
	}
	if in.Mode == ModeExpert && len(in.Intents) == 0 {
		return nil, domain.ErrNoIntents
	}

	profile := in.Profile.OrDefault()
	history := Window(in.History, c.windows.For(in.Mode))

	out := &Composed{
		Mode:    in.Mode,
		AgeFact: in.Bundle.AgeFact,
		Intents: in.Intents,
	}
	out.SchemaName, out.Schema = SchemaFor(in.Mode)

	switch in.Mode {
	case ModeMirror:
		out.SystemPrompt = mirrorSystemPrompt(profile, in.Bundle)
		out.UserPrompt = "Elternsituation: " + in.Message + historyBlock("\nBisherige Gesprächshistorie: ", history)
		out.Temperature = MirrorTemperature
		out.MaxTokens = MirrorTokens.Budget(0, 0)

	case ModeExpert:
		out.RolePrefix = RolePrefix(in.Intents)
		out.SystemPrompt = expertSystemPrompt(out.RolePrefix, profile, in)
		out.UserPrompt = "Elternsituation: " + in.Message + historyBlock("\n\nBisheriger Kontext: ", history)
		out.Temperature = TemperatureForContent(ContentSolution)
		out.MaxTokens = ExpertTokens.Budget(len(in.Intents), 0)
		if in.MultiChild {
			out.MaxTokens = min(ExpertTokens.Cap, out.MaxTokens+MultiChildBonus)
		}

	case ModeUnified:
		out.SystemPrompt = unifiedSystemPrompt(profile, in.Intents, in.Bundle, history)
		out.UserPrompt = unifiedUserPrompt(in.Message, in.Intents)
		out.Temperature = TemperatureForIntents(in.Intents)
		out.MaxTokens = UnifiedTokens.Budget(len(in.Intents), len(profile.Traits))

	case ModeClassic:
		var intent models.Intent
		if len(in.Intents) > 0 {
			intent = in.Intents[0]
		}
		out.SystemPrompt = classicSystemPrompt(intent, profile, in.Bundle)
		out.UserPrompt = "Situation: " + in.Message
		out.Temperature = ClassicTemperature
		out.MaxTokens = ClassicTokens.Budget(len(in.Intents), len(profile.Traits))
	}

	if out.Schema != nil {
		schema, err := json.MarshalIndent(out.Schema, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal response schema: %w", err)
		}
		out.SystemPrompt += "\n\nJSON-Schema der Antwort:\n" + string(schema)
	}

	return out, nil
}

func historyBlock(header string, history []models.HistoryTurn) string {
	if len(history) == 0 {
		return ""
	}
	lines := lo.Map(history, func(h models.HistoryTurn, _ int) string {
		return fmt.Sprintf("%s: %s", h.Role, h.Content)
	})
	return header + strings.Join(lines, "\n")
}

func profileBlock(p models.ChildProfile) string {
	return fmt.Sprintf("Kindprofil:\n- Name: %s\n- Alter: %s\n- Eigenschaften: %s", p.Name, p.AgeLabel(), p.TraitList())
}

func ageContextLine(p models.ChildProfile, ageFact string) string {
	if ageFact == "" {
		return ""
	}
	return fmt.Sprintf("Kontext: Kind ist %d Monate alt. Relevante Entwicklungsfakten: %s", p.AgeInMonths(), ageFact)
}

func mirrorSystemPrompt(p models.ChildProfile, b knowledge.Bundle) string {
	var s strings.Builder
	s.WriteString("Du bist ein einfühlsamer Erziehungsberater mit Expertise in bedürfnisorientierter Erziehung.\n\n")
	s.WriteString("PHASE 1: EMOTIONALE SPIEGELUNG\n")
	s.WriteString("Aufgabe: Gib eine kurze emotionale Validierung und Ermutigung (MAX 150 Tokens).\n\n")
	s.WriteString(profileBlock(p))
	s.WriteString("\n\n")
	if line := ageContextLine(p, b.AgeFact); line != "" {
		s.WriteString(line)
		s.WriteString("\n\n")
	}
	s.WriteString(`WICHTIG:
- Nur emotionale Validierung, keine Lösungen
- Maximal 2-3 Sätze
- Warm, empathisch, ermutigend
- Bereite auf Intent-Auswahl vor

Antworte IMMER in folgendem JSON-Format:
{
  "phase1_mirror": "Kurze emotionale Spiegelung und Validierung",
  "responsePhase": "phase1",
  "needsIntentSelection": true
}`)
	return s.String()
}

func expertSystemPrompt(role string, p models.ChildProfile, in Input) string {
	intents := strings.Join(models.IntentStrings(in.Intents), ", ")
	b := in.Bundle

	var s strings.Builder
	s.WriteString(role)
	s.WriteString(" mit Expertise in bedürfnisorientierter Erziehung.\n\n")
	s.WriteString("PHASE 2: EXPERTENANTWORT nach Intent-Auswahl\n")
	if in.Phase1Mirror != "" {
		fmt.Fprintf(&s, "Phase 1 Spiegelung war: %q\n", in.Phase1Mirror)
	}
	s.WriteString("\n")
	s.WriteString(profileBlock(p))
	s.WriteString("\n\n")
	if line := ageContextLine(p, b.AgeFact); line != "" {
		s.WriteString(line)
		s.WriteString("\n\n")
	}
	fmt.Fprintf(&s, "Gewählte Intents: %s\n\n", intents)
	s.WriteString(`SCQA-STRUKTUR:
- Situation: Kontext (20% der Antwort)
- Complication: Kernproblem (20% der Antwort)
- Answer: Lösung mit Mikro-Schritten (50% der Antwort)

EINZUBETTENDE INHALTE:
`)
	if len(b.RelevantNeeds) > 0 {
		names := lo.Map(b.RelevantNeeds, func(n knowledge.Need, _ int) string { return n.Name })
		fmt.Fprintf(&s, "- Bedürfnisse: %s (eingebettet in Fließtext)\n", strings.Join(names, ", "))
	}
	if b.EvidenceFact != nil {
		fmt.Fprintf(&s, "- Wissenschaftsfakt: %s\n", b.EvidenceFact.Fact)
		if b.Citation != "" {
			fmt.Fprintf(&s, "- Quelle: %s\n", b.Citation)
		}
	}
	if len(b.MicroInterventions) > 0 {
		names := lo.Map(b.MicroInterventions, func(m knowledge.MicroIntervention, _ int) string { return m.Name })
		fmt.Fprintf(&s, "- Mikro-Übungen: %s\n", strings.Join(names, ", "))
	}
	fmt.Fprintf(&s, `
WICHTIG:
- Strukturiere nach SCQA aber als natürlichen Fließtext
- Integriere Bedürfnisse in den Text (nie als Liste)
- Füge 1 wissenschaftlichen Fakt im Kern ein
- Biete 1-2 konkrete Mikro-Übungen
- Keine Aufzählungen oder Listen
- Fokus auf gewählte Intents: %s

Antworte IMMER in folgendem JSON-Format:
{
  "phase2_expert": {
    "situation": "Beschreibung der Situation und Kontext",
    "complication": "Das zugrundeliegende Problem",
    "answer": "Konkrete Lösung mit Mikro-Schritten",
    "embedded_need": ["Bedürfnis1", "Bedürfnis2"],
    "evidence_fact": "Wissenschaftlicher Fakt (20-30 Wörter)",
    "citation": "Autor (Jahr) ⧉",
    "micro_interventions": [
      {
        "name": "Übungsname",
        "description": "Was genau tun",
        "duration": "Zeitangabe"
      }
    ]
  },
  "responsePhase": "phase2"
}`, intents)
	return s.String()
}

func unifiedSystemPrompt(p models.ChildProfile, intents []models.Intent, b knowledge.Bundle, history []models.HistoryTurn) string {
	var s strings.Builder
	s.WriteString("Du bist ein empathischer und professioneller Elterncoach mit Expertise in Entwicklungspsychologie. ")
	s.WriteString("Deine Aufgabe ist es, Eltern mit einer einzigen, umfassenden Antwort zu helfen, die sowohl emotional validierend als auch fachlich fundiert ist.\n\n")
	fmt.Fprintf(&s, "**Erkannte Bedürfnisse:** %s\n\n", strings.Join(models.IntentStrings(intents), ", "))
	fmt.Fprintf(&s, "**Kinderprofil:**\n- Name: %s\n- Alter: %d Jahre %d Monate\n- Eigenschaften: %s\n\n", p.Name, p.AgeYears, p.AgeMonths, p.TraitList())
	if b.AgeFact != "" {
		fmt.Fprintf(&s, "**Entwicklungskontext:**\n%s\n\n", b.AgeFact)
	}
	if b.EvidenceFact != nil {
		fmt.Fprintf(&s, "**Wissenschaftliche Evidenz:**\n%s - %s (Verlässlichkeit: %s)\n\n", b.EvidenceFact.Fact, b.Citation, b.EvidenceFact.Reliability)
	}
	if len(b.MicroInterventions) > 0 {
		m := b.MicroInterventions[0]
		fmt.Fprintf(&s, "**Praktische Intervention:**\n%s: %s (%s, %s)\n\n", m.Name, m.Description, m.Duration, m.Difficulty)
	}
	if len(b.RelevantNeeds) > 0 {
		names := lo.Map(b.RelevantNeeds, func(n knowledge.Need, _ int) string { return n.Name })
		fmt.Fprintf(&s, "**Psychologische Bedürfnisse:**\n%s\n\n", strings.Join(names, ", "))
	}
	s.WriteString(`**Antwort-Struktur (AUSFÜHRLICH UND DETAILLIERT):**
1. **Emotionale Validierung** (3-4 Sätze): Zeige tiefes Verständnis und Empathie für die Situation
2. **Fachliche Einordnung** (4-5 Sätze): Erkläre das Verhalten ausführlich entwicklungspsychologisch mit Hintergründen
3. **Konkrete Lösungen** (6-8 detaillierte Schritte): Gib umfassende, praktische Handlungsempfehlungen mit Erklärungen warum sie funktionieren
4. **Zusätzliche Perspektiven** (2-3 Sätze): Biete alternative Blickwinkel oder ergänzende Ansätze
5. **Wissenschaftlicher Hintergrund** (2-3 Sätze): Integriere die Evidenz-Fakten natürlich in die Antwort
6. **Weiterdenkende Frage** (1-2 Sätze): Stelle eine durchdachte Nachfrage, um das Gespräch zu vertiefen

**Stil:**
- Warm, professionell und ermutigend
- Wissenschaftlich fundiert aber verständlich
- Konkret und umsetzbar mit Begründungen
- Emojis sparsam einsetzen
- WICHTIG: Immer mit einer durchdachten Nachfrage abschließen

**Länge**: Ziele auf 300-500 Wörter`)
	s.WriteString(historyBlock("\n\nBisheriger Gesprächsverlauf:\n", history))
	return s.String()
}

func unifiedUserPrompt(message string, intents []models.Intent) string {
	return fmt.Sprintf(`Elternfrage: %q

Bitte gib eine umfassende, einfühlsame und professionelle Antwort, die alle erkannten Bedürfnisse (%s) adressiert.

**ZWINGEND ERFORDERLICH:** Deine Antwort MUSS mit einer durchdachten Nachfrage enden, die das Gespräch vertieft.`,
		message, strings.Join(models.IntentStrings(intents), ", "))
}

var classicTasks = map[models.Intent]func(p models.ChildProfile) string{
	models.IntentVerstehen: func(p models.ChildProfile) string {
		return fmt.Sprintf(`AUFGABE: Erkläre ruhig und empathisch, was psychologisch im Kind passiert.
- Fokus auf Entwicklungspsychologie, Bedürfnisse, Regulation
- Berücksichtige die Eigenschaften des Kindes: %s
- Keine Lösungen geben, nur Verständnis vermitteln
- Wissenschaftlich fundiert aber verständlich`, p.TraitList())
	},
	models.IntentVerstaendnisFuerMich: func(models.ChildProfile) string {
		return `AUFGABE: Validiere die Emotionen des Elternteils und stärke Selbstmitgefühl.
- Richte die Antwort komplett auf den Elternteil
- Validiere Überforderung, Stress, Unsicherheit
- Stärke das Vertrauen in die eigenen Fähigkeiten
- Keine Ratschläge fürs Kind, nur Unterstützung für den Elternteil`
	},
	models.IntentVerstehenKind: func(p models.ChildProfile) string {
		return fmt.Sprintf(`AUFGABE: Zeige empathisch die Kinderperspektive auf, ohne zu werten.
- Beschreibe wie das Kind die Situation erlebt
- Berücksichtige die Eigenschaften: %s
- Verwende "Vielleicht fühlt sich %s..."
- Keine Lösungen, nur Perspektivwechsel
- Altersgerecht und einfühlsam`, p.TraitList(), p.Name)
	},
	models.IntentLoesung: func(p models.ChildProfile) string {
		return fmt.Sprintf(`AUFGABE: Gib eine strukturierte Lösung mit:
1. "mirror": Kurze emotionale Spiegelung (1 Satz)
2. "core": Konkreter Formulierungsvorschlag, den der Elternteil direkt sagen kann (max. 2 Sätze)
3. "hint": 1-2 ergänzende Kommunikationshinweise

Berücksichtige die Eigenschaften des Kindes: %s`, p.TraitList())
	},
}

func classicSystemPrompt(intent models.Intent, p models.ChildProfile, b knowledge.Bundle) string {
	var s strings.Builder
	s.WriteString("Du bist ein einfühlsamer Erziehungsberater mit Expertise in bedürfnisorientierter Erziehung.\n\n")
	s.WriteString(profileBlock(p))
	if len(p.Traits) > 0 {
		fmt.Fprintf(&s, "\nBerücksichtige diese Eigenschaften des Kindes in deiner Antwort: %s.", p.TraitList())
	}
	if categories := b.NeedCategories(); len(categories) > 0 {
		names := lo.Map(categories, func(c knowledge.NeedCategory, _ int) string { return string(c) })
		fmt.Fprintf(&s, "\nMögliche Bedürfnisse des Kindes (identifiedNeeds, höchstens 2): %s", strings.Join(names, ", "))
	}

	if intent == "" {
		s.WriteString(`

AUFGABE: Gib eine kurze emotionale Validierung (max. 2 Sätze).

Antworte IMMER in folgendem JSON-Format:
{
  "responseType": "validation",
  "content": {
    "core": "Kurze emotionale Validierung und Ermutigung"
  },
  "needsIntentSelection": true
}`)
		return s.String()
	}

	if task, ok := classicTasks[intent]; ok {
		s.WriteString("\n\n")
		s.WriteString(task(p))
	}
	fmt.Fprintf(&s, `

Antworte IMMER in folgendem JSON-Format:
{
  "responseType": "%s",
  "content": {
    "mirror": "optional: nur bei 'loesung', sonst null",
    "core": "Hauptinhalt der Antwort",
    "hint": "optional: nur bei 'loesung', sonst null"
  },
  "identifiedNeeds": ["autonomie"],
  "needsIntentSelection": false
}`, intent)
	return s.String()
}
