package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"vogelgpt-backend/internal/logger"
	"vogelgpt-backend/internal/models"
)

// Completer answers free-form messages with a language model.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ImageGenerator turns a prompt into an image URL.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

type LyricsFinder interface {
	FindLyrics(ctx context.Context, artist, song string) (string, error)
}

type WebSearcher interface {
	Search(ctx context.Context, query string) (*SearchResult, error)
}

const (
	LyricsFormatHint   = "Please use the format: lyrics: [song] by [artist]"
	LyricsNotFound     = "Lyrics not found."
	LyricsLookupFailed = "Lyrics not found or error occurred."
	SearchFailed       = "Web search failed or quota exceeded."
	lyricsArtistSep    = " by "
)

var (
	lyricsPrefix = regexp.MustCompile(`(?i)^lyrics[:\-]\s*`)
	imagePrefix  = regexp.MustCompile(`(?i)^(draw|image)[:\-]\s*`)

	// Order matters: the first matching trigger is the one stripped.
	searchTriggers = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^search[:\-]\s*`),
		regexp.MustCompile(`(?i)^tell me about\s+`),
		regexp.MustCompile(`(?i)^explain\s+`),
		regexp.MustCompile(`(?i)^what is\s+`),
		regexp.MustCompile(`(?i)^who is\s+`),
		regexp.MustCompile(`(?i)^define\s+`),
		regexp.MustCompile(`(?i)^give me info on\s+`),
		regexp.MustCompile(`(?i)^info on\s+`),
		regexp.MustCompile(`(?i)^summarize\s+`),
	}
)

type route struct {
	name   string
	match  func(msg string) bool
	handle func(ctx context.Context, msg string) (models.ChatResponse, error)
}

// Dispatcher routes a chat message to exactly one upstream service.
type Dispatcher struct {
	completer Completer
	images    ImageGenerator
	lyrics    LyricsFinder
	search    WebSearcher
	routes    []route
}

func NewDispatcher(completer Completer, images ImageGenerator, lyrics LyricsFinder, search WebSearcher) *Dispatcher {
	d := &Dispatcher{
		completer: completer,
		images:    images,
		lyrics:    lyrics,
		search:    search,
	}
	d.routes = []route{
		{name: "lyrics", match: lyricsPrefix.MatchString, handle: d.handleLyrics},
		{name: "image", match: imagePrefix.MatchString, handle: d.handleImage},
		{name: "search", match: func(msg string) bool { return matchSearchTrigger(msg) != nil }, handle: d.handleSearch},
		{name: "chat", match: func(string) bool { return true }, handle: d.handleChat},
	}
	return d
}

// Dispatch expects a trimmed, non-empty message. Errors are only returned by
// the image and chat routes; lyrics and search failures become reply text.
func (d *Dispatcher) Dispatch(ctx context.Context, msg string) (models.ChatResponse, error) {
	rt := d.routeFor(msg)
	logger.WithCtx(ctx).Debug("dispatching message", zap.String("route", rt.name))
	return rt.handle(ctx, msg)
}

// routeFor returns the first matching route. The last route matches everything.
func (d *Dispatcher) routeFor(msg string) route {
	for _, rt := range d.routes[:len(d.routes)-1] {
		if rt.match(msg) {
			return rt
		}
	}
	return d.routes[len(d.routes)-1]
}

func (d *Dispatcher) handleLyrics(ctx context.Context, msg string) (models.ChatResponse, error) {
	song, artist, ok := ParseLyricsQuery(lyricsPrefix.ReplaceAllString(msg, ""))
	if !ok {
		return models.TextReply(LyricsFormatHint), nil
	}

	lyrics, err := d.lyrics.FindLyrics(ctx, artist, song)
	if err != nil {
		if errors.Is(err, ErrLyricsNotFound) {
			return models.TextReply(LyricsNotFound), nil
		}
		logger.WithCtx(ctx).Warn("lyrics lookup failed", zap.Error(err))
		return models.TextReply(LyricsLookupFailed), nil
	}
	return models.TextReply(lyrics), nil
}

// ParseLyricsQuery splits "song by artist". Text after a second " by " is dropped.
func ParseLyricsQuery(query string) (song, artist string, ok bool) {
	parts := strings.Split(query, lyricsArtistSep)
	song = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		artist = strings.TrimSpace(parts[1])
	}
	return song, artist, song != "" && artist != ""
}

func (d *Dispatcher) handleImage(ctx context.Context, msg string) (models.ChatResponse, error) {
	prompt := imagePrefix.ReplaceAllString(msg, "")
	url, err := d.images.GenerateImage(ctx, prompt)
	if err != nil {
		return models.ChatResponse{}, err
	}
	return models.ImageReply(url), nil
}

func (d *Dispatcher) handleSearch(ctx context.Context, msg string) (models.ChatResponse, error) {
	query := ExtractSearchQuery(msg)

	result, err := d.search.Search(ctx, query)
	if err != nil {
		logger.WithCtx(ctx).Warn("web search failed", zap.Error(err))
		return models.TextReply(SearchFailed), nil
	}
	return models.TextReply(FormatSearchSummary(query, result)), nil
}

func matchSearchTrigger(msg string) *regexp.Regexp {
	for _, rx := range searchTriggers {
		if rx.MatchString(msg) {
			return rx
		}
	}
	return nil
}

// ExtractSearchQuery strips the first matching trigger. When nothing is left
// the whole message is used as the query.
func ExtractSearchQuery(msg string) string {
	rx := matchSearchTrigger(msg)
	if rx == nil {
		return msg
	}
	query := strings.TrimSpace(rx.ReplaceAllString(msg, ""))
	if query == "" {
		return msg
	}
	return query
}

func (d *Dispatcher) handleChat(ctx context.Context, msg string) (models.ChatResponse, error) {
	reply, err := d.completer.Complete(ctx, msg)
	if err != nil {
		return models.ChatResponse{}, err
	}
	return models.TextReply(reply), nil
}
