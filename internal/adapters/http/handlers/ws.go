package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gentlify/pacify/internal/adapters/http/dto"
	"github.com/gentlify/pacify/internal/adapters/http/encoding"
	"github.com/gentlify/pacify/internal/adapters/http/middleware"
	"github.com/gentlify/pacify/internal/adapters/metrics"
	"github.com/gentlify/pacify/internal/prompt"
)

const (
	wsReadTimeout  = 60 * time.Second
	wsWriteTimeout = 10 * time.Second
	wsPingInterval = 30 * time.Second
	// wsMaxInFlight bounds concurrent chat requests per connection.
	wsMaxInFlight = 4
)

var frameModes = map[string]prompt.Mode{
	dto.FrameMirror:  prompt.ModeMirror,
	dto.FrameExpert:  prompt.ModeExpert,
	dto.FrameUnified: prompt.ModeUnified,
	dto.FrameClassic: prompt.ModeClassic,
}

// inboundFrame is an Envelope whose payload is a chat request.
type inboundFrame struct {
	Type    string          `json:"type"`
	ID      string          `json:"id,omitempty"`
	Payload dto.ChatRequest `json:"payload"`
}

// ChatWSHandler serves the chat variants over a websocket. Text frames carry
// JSON, binary frames msgpack; every reply uses the format of its request.
type ChatWSHandler struct {
	upgrader websocket.Upgrader
	chat     *ChatHandler
}

func NewChatWSHandler(chat *ChatHandler, allowedOrigins []string) *ChatWSHandler {
	allowedOriginsMap := make(map[string]bool)
	for _, origin := range allowedOrigins {
		allowedOriginsMap[strings.TrimRight(origin, "/")] = true
	}

	return &ChatWSHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				return allowedOriginsMap[origin] || allowedOriginsMap["*"]
			},
		},
		chat: chat,
	}
}

// wsConn serialises writes to one connection.
type wsConn struct {
	conn   *websocket.Conn
	userID string
	mu     sync.Mutex
}

func (c *wsConn) send(env dto.Envelope, binary bool) {
	var (
		data    []byte
		msgType int
		err     error
	)
	if binary {
		msgType = websocket.BinaryMessage
		data, err = encoding.MarshalMsgpack(env)
	} else {
		msgType = websocket.TextMessage
		data, err = json.Marshal(env)
	}
	if err != nil {
		log.Printf("Failed to encode %s frame: %v", env.Type, err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := c.conn.WriteMessage(msgType, data); err != nil {
		log.Printf("Failed to send %s frame: %v", env.Type, err)
	}
}

func (c *wsConn) sendError(id, errorType, message string, status int, binary bool) {
	c.send(dto.Envelope{
		Type:    dto.FrameError,
		ID:      id,
		Payload: dto.NewErrorResponse(errorType, message, status),
	}, binary)
}

// Handle upgrades GET /api/v1/ws
func (h *ChatWSHandler) Handle(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Failed to upgrade WebSocket connection: %v", err)
		return
	}
	defer conn.Close()

	metrics.WebSocketConnectionsActive.Inc()
	defer metrics.WebSocketConnectionsActive.Dec()

	c := &wsConn{conn: conn, userID: middleware.GetUserID(r.Context())}

	// The upgrade request context ends with the handler, not the connection.
	ctx, cancel := context.WithCancel(context.WithoutCancel(r.Context()))
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		h.pingPump(ctx, c)
	}()

	var inFlight sync.WaitGroup
	h.readPump(ctx, c, &inFlight)
	cancel()
	inFlight.Wait()
	wg.Wait()
}

func (h *ChatWSHandler) readPump(ctx context.Context, c *wsConn, inFlight *sync.WaitGroup) {
	slots := make(chan struct{}, wsMaxInFlight)

	c.conn.SetReadLimit(encoding.MaxBodyBytes)
	c.conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(wsReadTimeout))
		return nil
	})

	for {
		messageType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(wsReadTimeout))

		binary := messageType == websocket.BinaryMessage
		var frame inboundFrame
		if binary {
			err = encoding.UnmarshalMsgpack(data, &frame)
		} else {
			err = json.Unmarshal(data, &frame)
		}
		if err != nil {
			c.sendError("", "invalid_message", "Failed to decode message", http.StatusBadRequest, binary)
			continue
		}

		if frame.Type == dto.FramePing {
			c.send(dto.Envelope{Type: dto.FramePong, ID: frame.ID}, binary)
			continue
		}

		mode, ok := frameModes[frame.Type]
		if !ok {
			c.sendError(frame.ID, "invalid_message", "Unknown frame type "+frame.Type, http.StatusBadRequest, binary)
			continue
		}

		select {
		case slots <- struct{}{}:
		default:
			c.sendError(frame.ID, "rate_limit_error", msgRateLimited, http.StatusTooManyRequests, binary)
			continue
		}
		inFlight.Add(1)
		go func() {
			defer inFlight.Done()
			defer func() { <-slots }()
			h.answer(ctx, c, mode, frame, binary)
		}()
	}
}

func (h *ChatWSHandler) answer(ctx context.Context, c *wsConn, mode prompt.Mode, frame inboundFrame, binary bool) {
	start := time.Now()
	out, err := h.chat.run(ctx, mode, &frame.Payload, c.userID)
	if ctx.Err() != nil {
		return
	}

	var (
		payload any
		status  int
	)
	if mode == prompt.ModeUnified {
		payload, status = unifiedResult(out, err)
	} else {
		payload, status = phaseResult(mode, out, err, time.Since(start))
	}

	frameType := dto.FrameResult
	if status != http.StatusOK {
		frameType = dto.FrameError
	}
	c.send(dto.Envelope{Type: frameType, ID: frame.ID, Payload: payload}, binary)
}

func (h *ChatWSHandler) pingPump(ctx context.Context, c *wsConn) {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout)); err != nil {
				log.Printf("Failed to send ping: %v", err)
				return
			}
		}
	}
}
