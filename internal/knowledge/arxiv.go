package knowledge

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"slidestudy-ai/internal/contextutil"
)

// DefaultArxivURL is the public arXiv query endpoint.
const DefaultArxivURL = "http://export.arxiv.org/api/query"

// arxivSummaryLimit caps the summary text carried per snippet.
const arxivSummaryLimit = 500

// ArxivSource searches the arXiv Atom feed and extracts title plus
// truncated abstract per entry.
type ArxivSource struct {
	BaseURL string
	client  *http.Client
}

// NewArxivSource creates an arXiv source. An empty baseURL selects the
// public endpoint.
func NewArxivSource(baseURL string) *ArxivSource {
	if baseURL == "" {
		baseURL = DefaultArxivURL
	}
	return &ArxivSource{BaseURL: baseURL, client: newHTTPClient()}
}

// Name returns the source label.
func (s *ArxivSource) Name() string { return "arxiv" }

// atomFeed mirrors the parts of the arXiv Atom response we read.
type atomFeed struct {
	Entries []struct {
		Title   string `xml:"title"`
		Summary string `xml:"summary"`
	} `xml:"entry"`
}

// Fetch searches arXiv by keyword. All failures yield an empty list.
func (s *ArxivSource) Fetch(ctx context.Context, query string, maxResults int) []Snippet {
	logger := contextutil.LoggerFromContext(ctx)

	if strings.TrimSpace(query) == "" {
		return nil
	}

	params := url.Values{}
	params.Set("search_query", "all:"+strings.TrimSpace(query))
	params.Set("start", "0")
	params.Set("max_results", fmt.Sprintf("%d", maxResults))

	body, ok := fetchBody(ctx, s.client, s.BaseURL+"?"+params.Encode())
	if !ok {
		return nil
	}

	var feed atomFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		logger.DebugContext(ctx, "arxiv feed parse failed", "error", err)
		return nil
	}

	var snippets []Snippet
	for _, entry := range feed.Entries {
		title := Sanitize(entry.Title)
		summary := truncate(Sanitize(entry.Summary), arxivSummaryLimit)
		if title == "" && summary == "" {
			continue
		}
		snippets = append(snippets, Snippet{
			Source: s.Name(),
			Text:   fmt.Sprintf("[arXiv: %s] %s", title, summary),
		})
	}
	return snippets
}

// fetchBody performs one bounded GET and returns the body, or false on any
// transport or status failure.
func fetchBody(ctx context.Context, client *http.Client, url string) ([]byte, bool) {
	logger := contextutil.LoggerFromContext(ctx)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		logger.DebugContext(ctx, "external fetch failed", "url", url, "error", err)
		return nil, false
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		logger.DebugContext(ctx, "external fetch bad status", "url", url, "status", resp.StatusCode)
		return nil, false
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		logger.DebugContext(ctx, "external fetch read failed", "url", url, "error", err)
		return nil, false
	}
	return body, true
}
