package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"vogelgpt-backend/internal/logger"
	"vogelgpt-backend/internal/models"
)

type dispatcher interface {
	Dispatch(ctx context.Context, msg string) (models.ChatResponse, error)
}

type ChatHandler struct {
	dispatcher dispatcher
}

func NewChatHandler(d dispatcher) *ChatHandler {
	return &ChatHandler{dispatcher: d}
}

// maxBodyBytes caps the JSON request body at 100kb.
const maxBodyBytes = 100 << 10

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req models.ChatRequest
	// Other decode errors are treated like an absent message.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResp(msgPayloadTooLarge))
			return
		}
	}

	status, body := h.Handle(r.Context(), req)
	writeJSON(w, status, body)
}

// Handle runs one chat request and returns the HTTP status and body to send.
// It is shared by the HTTP and WebSocket transports.
func (h *ChatHandler) Handle(ctx context.Context, req models.ChatRequest) (int, interface{}) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return http.StatusBadRequest, errorResp(msgMissingMessage)
	}

	resp, err := h.dispatcher.Dispatch(ctx, message)
	if err != nil {
		logger.WithCtx(ctx).Error("chat request failed", zap.Error(err))
		return http.StatusInternalServerError, errorResp(msgServerError)
	}

	return http.StatusOK, resp
}
