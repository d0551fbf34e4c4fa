package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIService talks to the OpenAI API for chat completions and image
// generation.
type OpenAIService struct {
	client     *openai.Client
	chatModel  string
	imageModel string
	imageSize  string
}

type OpenAIOptions struct {
	BaseURL    string
	APIKey     string
	ChatModel  string
	ImageModel string
	ImageSize  string
}

func NewOpenAIService(httpClient *http.Client, opts OpenAIOptions) *OpenAIService {
	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}

	return &OpenAIService{
		client:     openai.NewClientWithConfig(cfg),
		chatModel:  opts.ChatModel,
		imageModel: opts.ImageModel,
		imageSize:  opts.ImageSize,
	}
}

// Complete sends prompt as a single user turn and returns the trimmed reply.
func (s *OpenAIService) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", openAIError("openai chat", err)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// GenerateImage requests one image and returns its hosted URL.
func (s *OpenAIService) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateImage(ctx, openai.ImageRequest{
		Model:          s.imageModel,
		Prompt:         prompt,
		N:              1,
		Size:           s.imageSize,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	})
	if err != nil {
		return "", openAIError("openai images", err)
	}

	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", &UpstreamError{Service: "openai images", Err: fmt.Errorf("response contained no image")}
	}
	return resp.Data[0].URL, nil
}

// openAIError keeps the HTTP status of API failures on the UpstreamError.
func openAIError(service string, err error) error {
	upstream := &UpstreamError{Service: service, Err: err}

	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	switch {
	case errors.As(err, &apiErr):
		upstream.StatusCode = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		upstream.StatusCode = reqErr.HTTPStatusCode
	}
	return upstream
}
