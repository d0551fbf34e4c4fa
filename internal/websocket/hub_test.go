package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"

	"vogelgpt-backend/internal/models"
)

type echoChat struct{}

func (echoChat) Handle(ctx context.Context, req models.ChatRequest) (int, interface{}) {
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return http.StatusBadRequest, models.ErrorResponse{Error: "Missing message"}
	}
	return http.StatusOK, models.TextReply("echo: " + msg)
}

func dial(t *testing.T, srv *httptest.Server, origin string) *websocket.Conn {
	t.Helper()
	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), header)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	return conn
}

func TestHub_RequestResponse(t *testing.T) {
	hub := NewHub(echoChat{})
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	conn := dial(t, srv, "http://localhost:3000")
	defer conn.Close()

	for _, msg := range []string{"one", "two"} {
		if err := conn.WriteJSON(models.ChatRequest{Message: msg}); err != nil {
			t.Fatalf("write failed: %v", err)
		}
		var resp models.ChatResponse
		if err := conn.ReadJSON(&resp); err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if resp.Text() != "echo: "+msg {
			t.Fatalf("expected echo of %q, got %q", msg, resp.Text())
		}
	}

	if err := conn.WriteMessage(websocket.TextMessage, []byte("not json")); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	var errResp models.ErrorResponse
	if err := conn.ReadJSON(&errResp); err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if errResp.Error != "Missing message" {
		t.Fatalf("expected Missing message, got %q", errResp.Error)
	}
}

func TestHub_RejectsForeignOrigin(t *testing.T) {
	hub := NewHub(echoChat{})
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	header := http.Header{}
	header.Set("Origin", "http://evil.example")
	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), header)
	if err == nil {
		t.Fatalf("expected handshake to fail for foreign origin")
	}
	if resp == nil || resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 handshake response, got %v", resp)
	}
}

func TestHub_Close(t *testing.T) {
	hub := NewHub(echoChat{})
	srv := httptest.NewServer(http.HandlerFunc(hub.HandleWebSocket))
	defer srv.Close()

	conn := dial(t, srv, "")
	defer conn.Close()

	// Round-trip once so the connection is registered.
	conn.WriteJSON(models.ChatRequest{Message: "hi"})
	var resp models.ChatResponse
	if err := conn.ReadJSON(&resp); err != nil {
		t.Fatalf("read failed: %v", err)
	}

	hub.Close()
	if hub.Count() != 0 {
		t.Fatalf("expected no connections after Close, got %d", hub.Count())
	}
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatalf("expected connection to be closed")
	}
}
