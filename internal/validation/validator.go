// Package validation turns raw model output into typed, schema-checked
// results and stamps them with generation metadata.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/gentlify/pacify/internal/domain"
	"github.com/gentlify/pacify/internal/domain/models"
	"github.com/gentlify/pacify/internal/knowledge"
	"github.com/gentlify/pacify/internal/prompt"
)

const (
	DefaultConfidence    = 0.9
	DowngradedConfidence = 0.6
)

// Metadata is what the pipeline knows about a generation before validation.
type Metadata struct {
	TokensUsed      int
	TemperatureUsed float64
	RolePrefix      string
	AgeFact         string
	Intents         []models.Intent
}

// ResponseMetadata is returned to clients next to every answer.
type ResponseMetadata struct {
	Confidence            float64         `json:"confidence" msgpack:"confidence"`
	TokensUsed            int             `json:"tokens_used" msgpack:"tokens_used"`
	TemperatureUsed       float64         `json:"temperature_used" msgpack:"temperature_used"`
	AgeFactInjected       string          `json:"age_fact_injected,omitempty" msgpack:"age_fact_injected,omitempty"`
	RolePrefix            string          `json:"role_prefix,omitempty" msgpack:"role_prefix,omitempty"`
	IntentsDetected       []models.Intent `json:"intents_detected,omitempty" msgpack:"intents_detected,omitempty"`
	HasFollowUp           bool            `json:"has_follow_up,omitempty" msgpack:"has_follow_up,omitempty"`
	ContradictionDetected bool            `json:"contradiction_detected,omitempty" msgpack:"contradiction_detected,omitempty"`
	ScopeReferral         bool            `json:"scope_referral,omitempty" msgpack:"scope_referral,omitempty"`
}

// Result holds exactly one of Mirror, Expert, Classic or Text, depending on Mode.
type Result struct {
	Mode        prompt.Mode
	Mirror      *prompt.MirrorResponse
	Expert      *prompt.ExpertResponse
	Classic     *prompt.ClassicResponse
	Text        string
	RawResponse string
	Metadata    ResponseMetadata
}

type Validator struct {
	contradictions ContradictionChecker
}

// NewValidator uses the regex checker when checker is nil.
func NewValidator(checker ContradictionChecker) *Validator {
	if checker == nil {
		checker = NewRegexContradictionChecker()
	}
	return &Validator{contradictions: checker}
}

func (v *Validator) Validate(raw string, mode prompt.Mode, meta Metadata) (*Result, error) {
	res := &Result{
		Mode:        mode,
		RawResponse: raw,
		Metadata: ResponseMetadata{
			Confidence:      DefaultConfidence,
			TokensUsed:      meta.TokensUsed,
			TemperatureUsed: meta.TemperatureUsed,
			AgeFactInjected: meta.AgeFact,
			RolePrefix:      meta.RolePrefix,
		},
	}

	switch mode {
	case prompt.ModeUnified:
		text := strings.TrimSpace(raw)
		if text == "" {
			return nil, domain.NewSchemaError([]string{"content: must not be empty"})
		}
		res.Text = text
		res.Metadata.IntentsDetected = meta.Intents
		res.Metadata.HasFollowUp = strings.Contains(text, "?")
		return res, nil

	case prompt.ModeMirror:
		var out prompt.MirrorResponse
		if err := decode(raw, &out); err != nil {
			return nil, err
		}
		if violations := checkMirror(out); len(violations) > 0 {
			return nil, domain.NewSchemaError(violations)
		}
		res.Mirror = &out

	case prompt.ModeExpert:
		var out prompt.ExpertResponse
		if err := decode(raw, &out); err != nil {
			return nil, err
		}
		if violations := checkExpert(out); len(violations) > 0 {
			return nil, domain.NewSchemaError(violations)
		}
		res.Expert = &out
		e := out.Phase2Expert
		if v.contradictions.Contradicts(e.Situation+" "+e.Complication+" "+e.Answer, meta.AgeFact) {
			res.Metadata.ContradictionDetected = true
			res.Metadata.Confidence = DowngradedConfidence
		}

	case prompt.ModeClassic:
		var out prompt.ClassicResponse
		if err := decode(raw, &out); err != nil {
			return nil, err
		}
		if violations := checkClassic(out); len(violations) > 0 {
			return nil, domain.NewSchemaError(violations)
		}
		res.Classic = &out

	default:
		return nil, domain.NewDomainError(domain.ErrInvalidInput, fmt.Sprintf("unknown response mode %q", mode))
	}

	return res, nil
}

// decode parses strictly first, then retries on the outermost {...} span so
// answers wrapped in prose or code fences still parse. Well-formed JSON that
// does not fit the target type is a schema failure, not a parse failure.
func decode(raw string, v any) error {
	err := json.Unmarshal([]byte(raw), v)
	if err == nil {
		return nil
	}
	if json.Valid([]byte(raw)) {
		return typeMismatch(err)
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return domain.NewParseError(err)
	}
	span := []byte(raw[start : end+1])
	if !json.Valid(span) {
		return domain.NewParseError(err)
	}
	if err := json.Unmarshal(span, v); err != nil {
		return typeMismatch(err)
	}
	return nil
}

func typeMismatch(err error) error {
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		return domain.NewSchemaError([]string{err.Error()})
	}
	field := typeErr.Field
	if field == "" {
		field = "response"
	}
	return domain.NewSchemaError([]string{fmt.Sprintf("%s: wrong type, got %s", field, typeErr.Value)})
}

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func checkMirror(r prompt.MirrorResponse) []string {
	var v []string
	if blank(r.Phase1Mirror) {
		v = append(v, "phase1_mirror: required")
	}
	if r.ResponsePhase != prompt.ResponsePhase1 {
		v = append(v, fmt.Sprintf("responsePhase: must be %q, got %q", prompt.ResponsePhase1, r.ResponsePhase))
	}
	if r.NeedsIntentSelection == nil {
		v = append(v, "needsIntentSelection: required")
	}
	return v
}

func checkExpert(r prompt.ExpertResponse) []string {
	var v []string
	e := r.Phase2Expert
	if r.ResponsePhase != prompt.ResponsePhase2 {
		v = append(v, fmt.Sprintf("responsePhase: must be %q, got %q", prompt.ResponsePhase2, r.ResponsePhase))
	}
	required := []struct{ field, value string }{
		{"phase2_expert.situation", e.Situation},
		{"phase2_expert.complication", e.Complication},
		{"phase2_expert.answer", e.Answer},
		{"phase2_expert.evidence_fact", e.EvidenceFact},
		{"phase2_expert.citation", e.Citation},
	}
	for _, f := range required {
		if blank(f.value) {
			v = append(v, f.field+": required")
		}
	}
	if len(e.EmbeddedNeed) > 2 {
		v = append(v, fmt.Sprintf("phase2_expert.embedded_need: at most 2 items, got %d", len(e.EmbeddedNeed)))
	}
	if n := len(e.MicroInterventions); n < 1 || n > 2 {
		v = append(v, fmt.Sprintf("phase2_expert.micro_interventions: 1 to 2 items, got %d", n))
	}
	for i, m := range e.MicroInterventions {
		if blank(m.Name) || blank(m.Description) {
			v = append(v, fmt.Sprintf("phase2_expert.micro_interventions[%d]: name and description required", i))
		}
	}
	return v
}

func checkClassic(r prompt.ClassicResponse) []string {
	var v []string
	switch {
	case r.ResponseType == prompt.ResponseValidation:
	case models.Intent(r.ResponseType).IsValid():
	default:
		v = append(v, fmt.Sprintf("responseType: unknown value %q", r.ResponseType))
	}
	if blank(r.Content.Core) {
		v = append(v, "content.core: required")
	}
	if r.NeedsIntentSelection == nil {
		v = append(v, "needsIntentSelection: required")
	}
	// nil means absent or null.
	if n := len(r.IdentifiedNeeds); r.IdentifiedNeeds != nil && (n < 1 || n > 2) {
		v = append(v, fmt.Sprintf("identifiedNeeds: 1 to 2 items, got %d", n))
	}
	for _, n := range r.IdentifiedNeeds {
		if !knowledge.NeedCategory(n).IsValid() {
			v = append(v, fmt.Sprintf("identifiedNeeds: unknown category %q", n))
		}
	}
	return v
}
