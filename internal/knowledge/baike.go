package knowledge

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"slidestudy-ai/internal/contextutil"
)

// DefaultBaikeURL is the search entry of the scraped encyclopedia; the
// server redirects it to the canonical article page.
const DefaultBaikeURL = "https://baike.baidu.com/search/word"

// baikeBodyLimit caps the fallback body excerpt when the page carries no
// description field.
const baikeBodyLimit = 400

// BaikeSource resolves a search URL through redirects to an article page and
// scrapes a short summary from it: the page description field when present,
// otherwise the first characters of the stripped body text.
type BaikeSource struct {
	SearchURL string
	client    *http.Client
}

// NewBaikeSource creates a scrape source. An empty searchURL selects the
// public endpoint.
func NewBaikeSource(searchURL string) *BaikeSource {
	if searchURL == "" {
		searchURL = DefaultBaikeURL
	}
	return &BaikeSource{SearchURL: searchURL, client: newHTTPClient()}
}

// Name returns the source label.
func (s *BaikeSource) Name() string { return "baike" }

// Fetch scrapes one article summary for the query. All failures yield an
// empty list. maxResults is accepted for interface symmetry; the scrape
// yields at most one snippet per query.
func (s *BaikeSource) Fetch(ctx context.Context, query string, _ int) []Snippet {
	logger := contextutil.LoggerFromContext(ctx)

	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	body, ok := fetchBody(ctx, s.client, s.SearchURL+"?word="+url.QueryEscape(query))
	if !ok {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		logger.DebugContext(ctx, "article page parse failed", "error", err)
		return nil
	}

	title := Sanitize(doc.Find("title").First().Text())
	// Article titles carry a site-name suffix after an underscore.
	if i := strings.Index(title, "_"); i > 0 {
		title = strings.TrimSpace(title[:i])
	}
	if title == "" {
		// No recoverable title: the query itself stands in.
		title = query
	}

	desc := Sanitize(doc.Find(`meta[name="description"]`).First().AttrOr("content", ""))
	if desc == "" {
		desc = truncate(Sanitize(doc.Find("body").Text()), baikeBodyLimit)
	}

	return []Snippet{{
		Source: s.Name(),
		Text:   fmt.Sprintf("[%s] %s", title, desc),
	}}
}
