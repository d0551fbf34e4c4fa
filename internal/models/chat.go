package models

const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// ChatMessage is one entry of the client-side transcript.
type ChatMessage struct {
	Sender string `json:"sender"` // "user" or "bot"
	Text   string `json:"text,omitempty"`
	Image  string `json:"image,omitempty"`
}

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse carries either a text reply or an image URL, never both.
// Reply is a pointer so an empty completion still serializes as "reply": "".
type ChatResponse struct {
	Reply *string `json:"reply,omitempty"`
	Image string  `json:"image,omitempty"`
}

func TextReply(text string) ChatResponse {
	return ChatResponse{Reply: &text}
}

func ImageReply(url string) ChatResponse {
	return ChatResponse{Image: url}
}

// IsImage reports whether the response should be rendered as an image.
func (r ChatResponse) IsImage() bool {
	return r.Image != ""
}

// Text returns the reply text, or "" for image responses.
func (r ChatResponse) Text() string {
	if r.Reply == nil {
		return ""
	}
	return *r.Reply
}

// ErrorResponse is the body of every non-200 chat response.
type ErrorResponse struct {
	Error string `json:"error"`
}
