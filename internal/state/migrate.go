package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gentlify/pacify/internal/domain"
	"github.com/gentlify/pacify/internal/domain/models"
)

// CurrentVersion is the schema version written by this build.
const CurrentVersion = 2

// ErrReset is returned alongside InitialState when a stored state could not
// be migrated and was discarded.
var ErrReset = errors.New("stored state could not be migrated and was reset")

const legacyDefaultName = "Unbekannt"

// clock stamps profiles whose createdAt cannot be recovered.
var clock = time.Now

// Migrate upgrades a persisted state of version fromVersion to
// CurrentVersion. It never touches storage.
func Migrate(old map[string]any, fromVersion int) (State, error) {
	if fromVersion < 0 || fromVersion > CurrentVersion {
		return InitialState(), domain.NewDomainError(domain.ErrUnsupportedStateVersion, fmt.Sprintf("version %d", fromVersion))
	}
	if old == nil {
		return InitialState(), nil
	}

	upgraded := make(map[string]any, len(old))
	for k, v := range old {
		upgraded[k] = v
	}
	if fromVersion < 2 {
		if p := migrateChildProfile(old["childProfile"]); p != nil {
			upgraded["childProfile"] = p
		} else {
			upgraded["childProfile"] = nil
		}
	}

	s, err := decode(upgraded)
	if err != nil {
		return InitialState(), fmt.Errorf("%w: %v", ErrReset, err)
	}
	return s, nil
}

// migrateChildProfile maps the legacy {name, age, traits} profile onto the
// years/months shape. Profiles already in that shape pass through.
func migrateChildProfile(raw any) map[string]any {
	profile, ok := raw.(map[string]any)
	if !ok {
		return nil
	}

	_, hasYears := profile["ageYears"]
	_, hasMonths := profile["ageMonths"]
	if hasYears && hasMonths {
		out := make(map[string]any, len(profile))
		for k, v := range profile {
			out[k] = v
		}
		out["createdAt"] = normalizeCreatedAt(profile["createdAt"])
		return out
	}

	age, hasAge := profile["age"]
	if !hasAge {
		return nil
	}

	name, _ := profile["name"].(string)
	if name == "" {
		name = legacyDefaultName
	}
	years, _ := toInt(age)
	if years == 0 {
		years = models.DefaultProfileAgeYears
	}
	years = min(max(years, models.MinAgeYears), models.MaxAgeYears)

	traits := []any{}
	if list, ok := profile["traits"].([]any); ok {
		traits = list
	}

	return map[string]any{
		"name":      name,
		"ageYears":  years,
		"ageMonths": 0,
		"traits":    traits,
		"createdAt": normalizeCreatedAt(profile["createdAt"]),
	}
}

func normalizeCreatedAt(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return clock().UTC().Format(time.RFC3339)
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return int(n), true
	case float64:
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		return int(i), err == nil
	}
	return 0, false
}

// decode reads the persisted (partialised) fields of a state map.
func decode(m map[string]any) (State, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return State{}, err
	}
	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return State{}, err
	}
	s := InitialState()
	s.ChildProfile = snap.ChildProfile
	s.HasCompletedOnboarding = snap.HasCompletedOnboarding
	if snap.Messages != nil {
		s.Messages = snap.Messages
	}
	return s, nil
}
