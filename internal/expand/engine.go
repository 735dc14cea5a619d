package expand

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_expander.go -package=mocks slidestudy-ai/internal/expand Expander

import (
	"context"
	"fmt"
	"strings"

	"slidestudy-ai/internal/contextutil"
	"slidestudy-ai/internal/deck"
	"slidestudy-ai/internal/index"
	"slidestudy-ai/internal/knowledge"
)

// Defaults for the expansion config.
const (
	defaultTopKInternal = 5
	defaultTopKExternal = 3
	// maxQueryBullets caps how many bullets feed the retrieval query.
	maxQueryBullets = 8
)

// Config controls one expansion call. Source priority is bound at gateway
// construction (EXTERNAL_SOURCE), not per request.
type Config struct {
	UseExternalKnowledge bool
	TopKInternal         int
	TopKExternal         int
}

// Retriever answers deck-scoped semantic queries.
type Retriever interface {
	QueryDeck(ctx context.Context, deckID, text string, k int) ([]index.Hit, error)
}

// Gateway fetches external knowledge snippets, empty on failure.
type Gateway interface {
	Fetch(ctx context.Context, query string, maxResults int) []knowledge.Snippet
}

// TextGenerator produces the final note text, degrading internally.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) string
}

// Expander turns one slide into an expanded study note.
type Expander interface {
	Expand(ctx context.Context, deckID string, slide deck.Slide, cfg Config) (string, error)
}

// Engine composes retrieval, external knowledge, prompt assembly and
// generation. It holds no state between calls; every collaborator is
// injected, which makes it trivially testable with fakes.
type Engine struct {
	retriever Retriever
	gateway   Gateway
	generator TextGenerator
}

// NewEngine creates an expansion engine.
func NewEngine(retriever Retriever, gateway Gateway, generator TextGenerator) *Engine {
	return &Engine{
		retriever: retriever,
		gateway:   gateway,
		generator: generator,
	}
}

// Expand produces the expanded note for one slide. Internal retrieval
// always completes before the prompt is built; retrieval errors propagate,
// while external knowledge and generation degrade internally and never fail
// the call.
func (e *Engine) Expand(ctx context.Context, deckID string, slide deck.Slide, cfg Config) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if cfg.TopKInternal <= 0 {
		cfg.TopKInternal = defaultTopKInternal
	}
	if cfg.TopKExternal <= 0 {
		cfg.TopKExternal = defaultTopKExternal
	}

	var internalContext string
	if query := retrievalQuery(slide); query != "" {
		hits, err := e.retriever.QueryDeck(ctx, deckID, query, cfg.TopKInternal)
		if err != nil {
			return "", fmt.Errorf("failed to retrieve related slides: %w", err)
		}
		internalContext = FormatHits(hits)
		logger.DebugContext(ctx, "internal context retrieved", "deck", deckID, "slide", slide.Index, "hits", len(hits))
	}

	var snippets []knowledge.Snippet
	if cfg.UseExternalKnowledge && strings.TrimSpace(slide.Title) != "" {
		snippets = e.gateway.Fetch(ctx, slide.Title, cfg.TopKExternal)
		logger.DebugContext(ctx, "external snippets fetched", "deck", deckID, "slide", slide.Index, "snippets", len(snippets))
	}

	prompt := BuildPrompt(slide, internalContext, snippets)
	return e.generator.Generate(ctx, prompt), nil
}

// retrievalQuery builds the semantic query text for a slide: its title plus
// the first few bullets.
func retrievalQuery(slide deck.Slide) string {
	parts := make([]string, 0, maxQueryBullets+1)
	if t := strings.TrimSpace(slide.Title); t != "" {
		parts = append(parts, t)
	}
	for i, b := range slide.Bullets {
		if i >= maxQueryBullets {
			break
		}
		if b = strings.TrimSpace(b); b != "" {
			parts = append(parts, b)
		}
	}
	return strings.Join(parts, "\n")
}
