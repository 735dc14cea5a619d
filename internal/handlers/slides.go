package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"slidestudy-ai/internal/contextutil"
	"slidestudy-ai/internal/storage"
)

// SlidesHandler lists the parsed slides of one deck.
type SlidesHandler struct {
	decks storage.DeckStore
}

// NewSlidesHandler creates a new SlidesHandler.
func NewSlidesHandler(decks storage.DeckStore) *SlidesHandler {
	return &SlidesHandler{decks: decks}
}

// ServeHTTP handles GET /api/decks/{deck}/slides.
func (h *SlidesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	deckID := chi.URLParam(r, "deck")

	slides, err := h.decks.ListSlides(ctx, deckID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Unknown deck; upload a presentation first")
			return
		}
		logger.ErrorContext(ctx, "failed to list slides", "deck", deckID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to list slides")
		return
	}

	out := make([]SlideOut, 0, len(slides))
	for _, s := range slides {
		out = append(out, slideOut(s))
	}
	writeJSON(w, http.StatusOK, out)
}
