package dto

// Frame types of the chat websocket. A client frame names the chat variant,
// the server answers with the same id.
const (
	FrameMirror  = "chat.mirror"
	FrameExpert  = "chat.expert"
	FrameUnified = "chat.unified"
	FrameClassic = "chat.classic"
	FramePing    = "ping"

	FrameResult = "result"
	FrameError  = "error"
	FramePong   = "pong"
)

// Envelope is one websocket frame. Payload is a ChatRequest on the way in
// and a chat response or ErrorResponse on the way out.
type Envelope struct {
	Type    string `json:"type" msgpack:"type"`
	ID      string `json:"id,omitempty" msgpack:"id,omitempty"`
	Payload any    `json:"payload,omitempty" msgpack:"payload,omitempty"`
}
