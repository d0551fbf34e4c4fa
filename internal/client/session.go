package client

import (
	"context"
	"strings"
	"sync"

	"vogelgpt-backend/internal/models"
)

type Sender interface {
	Send(ctx context.Context, message string) (models.ChatResponse, error)
}

// Session holds the transcript of one chat window. At most one request is
// outstanding at a time: submissions while in flight are ignored.
type Session struct {
	mu       sync.Mutex
	messages []models.ChatMessage
	input    string
	inFlight bool
}

func NewSession() *Session {
	return &Session{}
}

func (s *Session) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.input = text
}

func (s *Session) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

func (s *Session) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inFlight
}

// CanSubmit mirrors the enabled state of the send control.
func (s *Session) CanSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.inFlight && strings.TrimSpace(s.input) != ""
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() []models.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ChatMessage, len(s.messages))
	copy(out, s.messages)
	return out
}

// Begin starts a submission. It appends the user message, marks the session
// in flight and returns the text to send. ok is false when the input is blank
// or a request is already outstanding; nothing changes in that case.
func (s *Session) Begin() (message string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight || strings.TrimSpace(s.input) == "" {
		return "", false
	}

	s.messages = append(s.messages, models.ChatMessage{Sender: models.SenderUser, Text: s.input})
	s.inFlight = true
	return s.input, true
}

// Settle appends exactly one bot message for the outstanding request and
// clears the input and in-flight flag.
func (s *Session) Settle(resp models.ChatResponse, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.inFlight {
		return
	}

	switch {
	case err != nil:
		s.messages = append(s.messages, models.ChatMessage{Sender: models.SenderBot, Text: "Error: " + err.Error()})
	case resp.IsImage():
		s.messages = append(s.messages, models.ChatMessage{Sender: models.SenderBot, Image: resp.Image})
	default:
		s.messages = append(s.messages, models.ChatMessage{Sender: models.SenderBot, Text: resp.Text()})
	}

	s.input = ""
	s.inFlight = false
}
