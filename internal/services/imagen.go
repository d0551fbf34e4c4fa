package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// ImagenService generates images with Google's Imagen models. The API returns
// raw bytes, so the image is handed to the client as a data URL.
type ImagenService struct {
	client *genai.Client
	model  string
}

type ImagenOptions struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini API endpoint. Empty uses the default.
	BaseURL string
}

func NewImagenService(ctx context.Context, httpClient *http.Client, opts ImagenOptions) (*ImagenService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      opts.APIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: opts.BaseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &ImagenService{client: client, model: opts.Model}, nil
}

func (s *ImagenService) GenerateImage(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.Models.GenerateImages(ctx, s.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    "1:1",
	})
	if err != nil {
		return "", &UpstreamError{Service: "imagen", Err: err}
	}

	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return "", &UpstreamError{Service: "imagen", Err: fmt.Errorf("response contained no image")}
	}

	img := resp.GeneratedImages[0].Image
	mimeType := img.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}
	return dataURL(mimeType, img.ImageBytes), nil
}

func dataURL(mimeType string, data []byte) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
