package knowledge

import (
	"context"
	"fmt"

	"slidestudy-ai/internal/contextutil"
)

// Composite tries sources in a fixed priority order and returns the first
// source's non-empty result list. Branching on source objects instead of
// source-name strings keeps the fallback chain data, not control flow.
type Composite struct {
	sources []Source
}

// NewComposite creates a composite over the given sources, tried in order.
func NewComposite(sources ...Source) *Composite {
	return &Composite{sources: sources}
}

// Name returns the source label.
func (c *Composite) Name() string { return "composite" }

// Fetch walks the priority order and keeps the first non-empty result.
func (c *Composite) Fetch(ctx context.Context, query string, maxResults int) []Snippet {
	logger := contextutil.LoggerFromContext(ctx)

	for _, src := range c.sources {
		snippets := src.Fetch(ctx, query, maxResults)
		if len(snippets) > 0 {
			logger.DebugContext(ctx, "external source answered", "source", src.Name(), "snippets", len(snippets))
			return snippets
		}
		logger.DebugContext(ctx, "external source empty, falling back", "source", src.Name())
	}
	return nil
}

// ForMode builds the source for an EXTERNAL_SOURCE config value. Composite
// mode tries scrape, then the encyclopedia API, then the academic feed.
// Direct modes select exactly one source by name.
func ForMode(mode string) (Source, error) {
	switch mode {
	case "composite":
		return NewComposite(
			NewBaikeSource(""),
			NewWikipediaSource(""),
			NewArxivSource(""),
		), nil
	case "arxiv":
		return NewArxivSource(""), nil
	case "wikipedia":
		return NewWikipediaSource(""), nil
	case "baike":
		return NewBaikeSource(""), nil
	default:
		return nil, fmt.Errorf("unknown external source %q", mode)
	}
}
