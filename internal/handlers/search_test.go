package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	handler_mocks "slidestudy-ai/internal/handlers/mocks"
	"slidestudy-ai/internal/index"
	"slidestudy-ai/internal/storage"
	storage_mocks "slidestudy-ai/internal/storage/mocks"
)

func searchRouter(h *SearchHandler) http.Handler {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/api/decks/{deck}/search", h)
	return r
}

func TestSearchHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	decks := storage_mocks.NewMockDeckStore(ctrl)
	indexer := handler_mocks.NewMockSlideIndexer(ctrl)

	decks.EXPECT().GetDeck(gomock.Any(), "deck1").Return(&storage.Deck{ID: "deck1"}, nil)
	indexer.EXPECT().
		QueryDeck(gomock.Any(), "deck1", "cloud", 3).
		Return([]index.Hit{
			{ID: "deck1-2", Deck: "deck1", SlideIndex: 2, Title: "Cloud", Distance: 0.1, Text: strings.Repeat("x", 2*snippetLimit)},
			{ID: "deck1-5", Deck: "deck1", SlideIndex: 5, Title: "Edge", Distance: 0.4, Text: "short"},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/decks/deck1/search?q=cloud&k=3", nil)
	rec := httptest.NewRecorder()
	searchRouter(NewSearchHandler(decks, indexer)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var hits []SearchHit
	if err := json.Unmarshal(rec.Body.Bytes(), &hits); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	if hits[0].Deck != "deck1" || hits[0].SlideIndex != 2 || hits[0].Title != "Cloud" {
		t.Errorf("hit 0 = %+v", hits[0])
	}
	if len(hits[0].Snippet) != snippetLimit {
		t.Errorf("snippet length = %d, want %d", len(hits[0].Snippet), snippetLimit)
	}
	if hits[1].Snippet != "short" {
		t.Errorf("hit 1 snippet = %q", hits[1].Snippet)
	}
}

func TestSearchHandler_DefaultAndCappedK(t *testing.T) {
	tests := []struct {
		name  string
		query string
		wantK int
	}{
		{name: "default k", query: "q=x", wantK: defaultSearchK},
		{name: "k capped", query: "q=x&k=100", wantK: maxSearchK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			decks := storage_mocks.NewMockDeckStore(ctrl)
			indexer := handler_mocks.NewMockSlideIndexer(ctrl)

			decks.EXPECT().GetDeck(gomock.Any(), "d").Return(&storage.Deck{ID: "d"}, nil)
			indexer.EXPECT().
				QueryDeck(gomock.Any(), "d", "x", tt.wantK).
				Return(nil, nil)

			req := httptest.NewRequest(http.MethodGet, "/api/decks/d/search?"+tt.query, nil)
			rec := httptest.NewRecorder()
			searchRouter(NewSearchHandler(decks, indexer)).ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Errorf("status = %d", rec.Code)
			}
		})
	}
}

func TestSearchHandler_Validation(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "missing q", query: ""},
		{name: "blank q", query: "q=%20%20"},
		{name: "non-numeric k", query: "q=x&k=five"},
		{name: "zero k", query: "q=x&k=0"},
		{name: "negative k", query: "q=x&k=-2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			decks := storage_mocks.NewMockDeckStore(ctrl)
			indexer := handler_mocks.NewMockSlideIndexer(ctrl)

			req := httptest.NewRequest(http.MethodGet, "/api/decks/d/search?"+tt.query, nil)
			rec := httptest.NewRecorder()
			searchRouter(NewSearchHandler(decks, indexer)).ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestSearchHandler_UnknownDeck(t *testing.T) {
	ctrl := gomock.NewController(t)
	decks := storage_mocks.NewMockDeckStore(ctrl)
	indexer := handler_mocks.NewMockSlideIndexer(ctrl)

	decks.EXPECT().GetDeck(gomock.Any(), "missing").Return(nil, storage.ErrNotFound)

	req := httptest.NewRequest(http.MethodGet, "/api/decks/missing/search?q=x", nil)
	rec := httptest.NewRecorder()
	searchRouter(NewSearchHandler(decks, indexer)).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestSearchHandler_IndexUnavailable(t *testing.T) {
	ctrl := gomock.NewController(t)
	decks := storage_mocks.NewMockDeckStore(ctrl)
	indexer := handler_mocks.NewMockSlideIndexer(ctrl)

	decks.EXPECT().GetDeck(gomock.Any(), "d").Return(&storage.Deck{ID: "d"}, nil)
	indexer.EXPECT().
		QueryDeck(gomock.Any(), "d", "x", defaultSearchK).
		Return(nil, context.DeadlineExceeded)

	req := httptest.NewRequest(http.MethodGet, "/api/decks/d/search?q=x", nil)
	rec := httptest.NewRecorder()
	searchRouter(NewSearchHandler(decks, indexer)).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}
