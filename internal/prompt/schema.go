package prompt

import (
	"encoding/json"
	"slices"

	"github.com/invopop/jsonschema"
)

// MirrorResponse is what the model returns in phase 1.
type MirrorResponse struct {
	Phase1Mirror         string `json:"phase1_mirror" jsonschema:"required,description=Kurze emotionale Spiegelung und Validierung"`
	ResponsePhase        string `json:"responsePhase" jsonschema:"required,enum=phase1"`
	NeedsIntentSelection *bool  `json:"needsIntentSelection" jsonschema:"required"`
}

type ExpertMicroIntervention struct {
	Name        string `json:"name" jsonschema:"required,description=Übungsname"`
	Description string `json:"description" jsonschema:"required,description=Was genau tun"`
	Duration    string `json:"duration" jsonschema:"required,description=Zeitangabe"`
}

// ExpertAnswer follows the SCQA structure.
type ExpertAnswer struct {
	Situation          string                    `json:"situation" jsonschema:"required,description=Beschreibung der Situation und Kontext"`
	Complication       string                    `json:"complication" jsonschema:"required,description=Das zugrundeliegende Problem"`
	Answer             string                    `json:"answer" jsonschema:"required,description=Konkrete Lösung mit Mikro-Schritten"`
	EmbeddedNeed       []string                  `json:"embedded_need" jsonschema:"required,maxItems=2"`
	EvidenceFact       string                    `json:"evidence_fact" jsonschema:"required,description=Wissenschaftlicher Fakt (20-30 Wörter)"`
	Citation           string                    `json:"citation" jsonschema:"required,description=Autor (Jahr) ⧉"`
	MicroInterventions []ExpertMicroIntervention `json:"micro_interventions" jsonschema:"required,minItems=1,maxItems=2"`
}

// ExpertResponse is what the model returns in phase 2.
type ExpertResponse struct {
	Phase2Expert  ExpertAnswer `json:"phase2_expert" jsonschema:"required"`
	ResponsePhase string       `json:"responsePhase" jsonschema:"required,enum=phase2"`
}

type ClassicContent struct {
	Mirror string `json:"mirror,omitempty" jsonschema:"description=Kurze emotionale Spiegelung (nur bei loesung)"`
	Core   string `json:"core" jsonschema:"required,description=Hauptinhalt der Antwort"`
	Hint   string `json:"hint,omitempty" jsonschema:"description=Ergänzende Kommunikationshinweise (nur bei loesung)"`
}

// ClassicResponse is the validation or intent-specific answer.
type ClassicResponse struct {
	ResponseType         string         `json:"responseType" jsonschema:"required,enum=validation,enum=verstehen,enum=verstaendnis_fuer_mich,enum=verstehen_kind,enum=loesung"`
	Content              ClassicContent `json:"content" jsonschema:"required"`
	NeedsIntentSelection *bool          `json:"needsIntentSelection" jsonschema:"required"`
	IdentifiedNeeds      []string       `json:"identifiedNeeds,omitempty" jsonschema:"minItems=1,maxItems=2"`
}

const (
	ResponsePhase1     = "phase1"
	ResponsePhase2     = "phase2"
	ResponseValidation = "validation"
)

// GenerateSchema reflects T into a strict JSON schema. Every object is closed
// and lists all of its properties as required; properties that are optional
// in T accept null instead.
func GenerateSchema[T any]() map[string]any {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	schema := reflector.Reflect(v)
	b, err := schema.MarshalJSON()
	if err != nil {
		panic(err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		panic(err)
	}
	delete(m, "$schema")
	delete(m, "$id")
	closeObjects(m)
	return m
}

func closeObjects(schema map[string]any) {
	props, _ := schema["properties"].(map[string]any)
	for _, p := range props {
		if pm, ok := p.(map[string]any); ok {
			closeObjects(pm)
		}
	}
	if items, ok := schema["items"].(map[string]any); ok {
		closeObjects(items)
	}

	if t, ok := schema["type"].(string); !ok || t != "object" {
		return
	}
	schema["additionalProperties"] = false
	if len(props) == 0 {
		return
	}
	declared, _ := schema["required"].([]any)
	required := make([]string, 0, len(props))
	for name, p := range props {
		required = append(required, name)
		if pm, ok := p.(map[string]any); ok && !slices.Contains(declared, any(name)) {
			nullable(pm)
		}
	}
	slices.Sort(required)
	schema["required"] = required
}

func nullable(prop map[string]any) {
	if t, ok := prop["type"].(string); ok {
		prop["type"] = []any{t, "null"}
	}
}

// SchemaFor returns the response schema name and body for a mode. Unified
// answers are free text and have none.
func SchemaFor(mode Mode) (string, map[string]any) {
	switch mode {
	case ModeMirror:
		return "pacify_mirror_response", GenerateSchema[MirrorResponse]()
	case ModeExpert:
		return "pacify_expert_response", GenerateSchema[ExpertResponse]()
	case ModeClassic:
		return "pacify_classic_response", GenerateSchema[ClassicResponse]()
	}
	return "", nil
}
