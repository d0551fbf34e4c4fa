package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

var ErrLyricsNotFound = errors.New("lyrics not found")

// LyricsService looks up song lyrics on a lyrics.ovh compatible API.
type LyricsService struct {
	httpClient *http.Client
	baseURL    string
}

func NewLyricsService(httpClient *http.Client, baseURL string) *LyricsService {
	return &LyricsService{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// FindLyrics returns ErrLyricsNotFound when the API answers without lyrics.
func (s *LyricsService) FindLyrics(ctx context.Context, artist, song string) (string, error) {
	endpoint := fmt.Sprintf("%s/v1/%s/%s", s.baseURL, url.PathEscape(artist), url.PathEscape(song))

	var body struct {
		Lyrics string `json:"lyrics"`
	}
	if err := getJSON(ctx, s.httpClient, "lyrics", endpoint, &body); err != nil {
		return "", err
	}
	if body.Lyrics == "" {
		return "", ErrLyricsNotFound
	}
	return body.Lyrics, nil
}
