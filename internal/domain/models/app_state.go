package models

import "time"

// AppStateRecord is a persisted client-state snapshot. Snapshot holds the
// msgpack encoding of state.Snapshot at Version.
type AppStateRecord struct {
	UserID    string    `json:"user_id"`
	Version   int       `json:"version"`
	Snapshot  []byte    `json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}
