package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

type AnswerBox struct {
	Answer  string `json:"answer"`
	Snippet string `json:"snippet"`
}

type OrganicResult struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	Link    string `json:"link"`
}

type NewsResult struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Link  string `json:"link"`
}

// SearchResult is the subset of a SerpAPI response the chat reply is built from.
type SearchResult struct {
	AnswerBox      *AnswerBox      `json:"answer_box"`
	OrganicResults []OrganicResult `json:"organic_results"`
	NewsResults    []NewsResult    `json:"news_results"`
}

const (
	maxOrganicResults = 3
	maxNewsResults    = 2
)

// SearchService queries SerpAPI.
type SearchService struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
}

func NewSearchService(httpClient *http.Client, endpoint, apiKey string) *SearchService {
	return &SearchService{httpClient: httpClient, endpoint: endpoint, apiKey: apiKey}
}

func (s *SearchService) Search(ctx context.Context, query string) (*SearchResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("api_key", s.apiKey)
	params.Set("gl", "us")
	params.Set("hl", "en")

	var result SearchResult
	if err := getJSON(ctx, s.httpClient, "search", s.endpoint+"?"+params.Encode(), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FormatSearchSummary renders a search result as the markdown chat reply.
func FormatSearchSummary(query string, result *SearchResult) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("**%s — Quick Overview**\n", capitalize(query)))

	if box := result.AnswerBox; box != nil {
		if box.Answer != "" {
			b.WriteString("\n" + box.Answer + "\n")
		} else if box.Snippet != "" {
			b.WriteString("\n" + box.Snippet + "\n")
		}
	}

	if len(result.OrganicResults) > 0 {
		b.WriteString("\n**Key Points:**\n")
		for i, r := range result.OrganicResults {
			if i == maxOrganicResults {
				break
			}
			b.WriteString(fmt.Sprintf("- **%s**: %s\n  [%s](%s)\n", r.Title, r.Snippet, r.Link, r.Link))
		}
	}

	if len(result.NewsResults) > 0 {
		b.WriteString("\n**Recent News:**\n")
		for i, n := range result.NewsResults {
			if i == maxNewsResults {
				break
			}
			b.WriteString(fmt.Sprintf("- %s (%s)\n  [%s](%s)\n", n.Title, n.Date, n.Link, n.Link))
		}
	}

	b.WriteString("\n*For more details, ask for recipes, history, health info, or related topics!*")
	return b.String()
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
