package knowledge

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"slidestudy-ai/internal/contextutil"
)

// DefaultWikipediaURL is the public Wikipedia search API endpoint.
const DefaultWikipediaURL = "https://en.wikipedia.org/w/api.php"

// WikipediaSource searches the encyclopedia API and returns highlighted
// search snippets with the highlight markup stripped.
type WikipediaSource struct {
	BaseURL string
	client  *http.Client
}

// NewWikipediaSource creates a Wikipedia source. An empty baseURL selects
// the public endpoint.
func NewWikipediaSource(baseURL string) *WikipediaSource {
	if baseURL == "" {
		baseURL = DefaultWikipediaURL
	}
	return &WikipediaSource{BaseURL: baseURL, client: newHTTPClient()}
}

// Name returns the source label.
func (s *WikipediaSource) Name() string { return "wikipedia" }

// searchResponse mirrors the parts of the search API response we read.
type searchResponse struct {
	Query struct {
		Search []struct {
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
		} `json:"search"`
	} `json:"query"`
}

// Fetch searches the encyclopedia API by keyword. All failures yield an
// empty list.
func (s *WikipediaSource) Fetch(ctx context.Context, query string, maxResults int) []Snippet {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(query) == "" {
		return nil
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("format", "json")
	params.Set("srlimit", fmt.Sprintf("%d", maxResults))
	params.Set("utf8", "1")

	body, ok := fetchBody(ctx, s.client, s.BaseURL+"?"+params.Encode())
	if !ok {
		return nil
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		logger.DebugContext(ctx, "wikipedia response parse failed", "error", err)
		return nil
	}

	var snippets []Snippet
	for _, item := range resp.Query.Search {
		// Search snippets arrive with <span class="searchmatch"> highlights.
		text := Sanitize(item.Snippet)
		if item.Title == "" && text == "" {
			continue
		}
		snippets = append(snippets, Snippet{
			Source: s.Name(),
			Text:   fmt.Sprintf("[%s] %s", item.Title, text),
		})
	}
	return snippets
}
