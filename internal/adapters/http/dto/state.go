package dto

import (
	"github.com/gentlify/pacify/internal/state"
)

// StateEnvelope is the persisted client state as exchanged with clients.
type StateEnvelope struct {
	Version int            `json:"version" msgpack:"version"`
	State   state.Snapshot `json:"state" msgpack:"state"`
}

type MigrateStateRequest struct {
	Version int            `json:"version" msgpack:"version"`
	State   map[string]any `json:"state" msgpack:"state"`
}

type MigrateStateResponse struct {
	Version int            `json:"version" msgpack:"version"`
	State   state.Snapshot `json:"state" msgpack:"state"`
	Reset   bool           `json:"reset" msgpack:"reset"`
}
