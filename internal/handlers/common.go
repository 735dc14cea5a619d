package handlers

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_slide_indexer.go -package=mocks slidestudy-ai/internal/handlers SlideIndexer

import (
	"context"
	"encoding/json"
	"net/http"

	"slidestudy-ai/internal/deck"
	"slidestudy-ai/internal/index"
)

// SlideIndexer is the embedding index surface the handlers need.
type SlideIndexer interface {
	Upsert(ctx context.Context, deckID string, slides []deck.Slide) error
	QueryDeck(ctx context.Context, deckID, text string, k int) ([]index.Hit, error)
}

// SlideOut is the HTTP shape of one slide.
type SlideOut struct {
	Index   int      `json:"index"`
	Title   string   `json:"title"`
	Bullets []string `json:"bullets"`
	Notes   string   `json:"notes,omitempty"`
}

func slideOut(s deck.Slide) SlideOut {
	bullets := s.Bullets
	if bullets == nil {
		bullets = []string{}
	}
	return SlideOut{Index: s.Index, Title: s.Title, Bullets: bullets, Notes: s.Notes}
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, ErrorResponse{Error: message})
}
