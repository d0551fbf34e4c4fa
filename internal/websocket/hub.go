package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"vogelgpt-backend/internal/logger"
	"vogelgpt-backend/internal/middleware"
	"vogelgpt-backend/internal/models"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return middleware.AllowedOrigin(r.Header.Get("Origin"))
	},
}

// ChatHandler answers one chat request with an HTTP-style status and body.
type ChatHandler interface {
	Handle(ctx context.Context, req models.ChatRequest) (int, interface{})
}

// Hub serves the chat protocol over WebSocket. Each text frame carries a
// ChatRequest and is answered by exactly one response frame, in order.
type Hub struct {
	mu          sync.Mutex
	connections map[uuid.UUID]*websocket.Conn
	chat        ChatHandler
}

func NewHub(chat ChatHandler) *Hub {
	return &Hub{
		connections: make(map[uuid.UUID]*websocket.Conn),
		chat:        chat,
	}
}

func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	connID := uuid.New()
	h.registerConnection(connID, conn)
	defer h.unregisterConnection(connID)

	ctx := r.Context()
	log := logger.WithCtx(ctx).With(zap.String("conn_id", connID.String()))

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var req models.ChatRequest
		// Malformed frames are answered like an empty message.
		_ = json.Unmarshal(data, &req)

		_, body := h.chat.Handle(ctx, req)
		if err := conn.WriteJSON(body); err != nil {
			log.Warn("websocket write failed", zap.Error(err))
			return
		}
	}
}

// Count returns the number of open connections.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.connections)
}

// Close disconnects every client, used on shutdown.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, conn := range h.connections {
		// WriteControl may run alongside a handler's in-progress WriteJSON.
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
		delete(h.connections, id)
	}
}

func (h *Hub) registerConnection(id uuid.UUID, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.connections[id] = conn
	logger.With(zap.String("conn_id", id.String())).Info("websocket connected", zap.Int("total", len(h.connections)))
}

func (h *Hub) unregisterConnection(id uuid.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conn, ok := h.connections[id]; ok {
		conn.Close()
		delete(h.connections, id)
	}
	logger.With(zap.String("conn_id", id.String())).Info("websocket disconnected")
}
