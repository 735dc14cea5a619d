package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"slidestudy-ai/internal/contextutil"
	"slidestudy-ai/internal/storage"
)

const (
	defaultSearchK = 5
	maxSearchK     = 20
	// snippetLimit caps the document excerpt per hit.
	snippetLimit = 300
)

// SearchHandler answers deck-scoped semantic queries.
type SearchHandler struct {
	decks   storage.DeckStore
	indexer SlideIndexer
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(decks storage.DeckStore, indexer SlideIndexer) *SearchHandler {
	return &SearchHandler{decks: decks, indexer: indexer}
}

// SearchHit is one deck-scoped retrieval result. Score is the retrieval
// distance: lower means more similar.
type SearchHit struct {
	Deck       string  `json:"deck"`
	SlideIndex int     `json:"slide_index"`
	Title      string  `json:"title"`
	Score      float64 `json:"score"`
	Snippet    string  `json:"snippet"`
}

// ServeHTTP handles GET /api/decks/{deck}/search?q=...&k=....
func (h *SearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	deckID := chi.URLParam(r, "deck")

	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return
	}

	k := defaultSearchK
	if kParam := r.URL.Query().Get("k"); kParam != "" {
		parsed, err := strconv.Atoi(kParam)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "Query parameter 'k' must be a positive integer")
			return
		}
		k = parsed
	}
	if k > maxSearchK {
		k = maxSearchK
	}

	if _, err := h.decks.GetDeck(ctx, deckID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Unknown deck; upload a presentation first")
			return
		}
		logger.ErrorContext(ctx, "failed to look up deck", "deck", deckID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to look up deck")
		return
	}

	hits, err := h.indexer.QueryDeck(ctx, deckID, query, k)
	if err != nil {
		logger.ErrorContext(ctx, "deck search failed", "deck", deckID, "error", err)
		writeError(w, http.StatusBadGateway, "Semantic search unavailable")
		return
	}

	out := make([]SearchHit, 0, len(hits))
	for _, hit := range hits {
		snippet := hit.Text
		if len(snippet) > snippetLimit {
			snippet = snippet[:snippetLimit]
		}
		out = append(out, SearchHit{
			Deck:       deckID,
			SlideIndex: hit.SlideIndex,
			Title:      hit.Title,
			Score:      float64(hit.Distance),
			Snippet:    snippet,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
