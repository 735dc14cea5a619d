package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"slidestudy-ai/internal/deck"
	"slidestudy-ai/internal/expand"
	expand_mocks "slidestudy-ai/internal/expand/mocks"
	"slidestudy-ai/internal/storage"
	storage_mocks "slidestudy-ai/internal/storage/mocks"
)

func expandRouter(h *ExpandHandler) http.Handler {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/api/decks/{deck}/slides/{index}/expand", h)
	return r
}

func TestExpandHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	decks := storage_mocks.NewMockDeckStore(ctrl)
	engine := expand_mocks.NewMockExpander(ctrl)

	slide := deck.Slide{Index: 3, Title: "Cloud Computing", Bullets: []string{"Elasticity"}}
	decks.EXPECT().GetSlide(gomock.Any(), "deck1", 3).Return(slide, nil)
	engine.EXPECT().
		Expand(gomock.Any(), "deck1", slide, expand.Config{UseExternalKnowledge: true}).
		Return("# Background\nexpanded", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/decks/deck1/slides/3/expand", nil)
	rec := httptest.NewRecorder()
	expandRouter(NewExpandHandler(decks, engine)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp ExpandResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Deck != "deck1" || resp.SlideIndex != 3 || resp.Title != "Cloud Computing" {
		t.Errorf("response = %+v", resp)
	}
	if resp.ExpandedText != "# Background\nexpanded" {
		t.Errorf("expanded text = %q", resp.ExpandedText)
	}
}

func TestExpandHandler_ExternalDisabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	decks := storage_mocks.NewMockDeckStore(ctrl)
	engine := expand_mocks.NewMockExpander(ctrl)

	slide := deck.Slide{Index: 1, Title: "T"}
	decks.EXPECT().GetSlide(gomock.Any(), "d", 1).Return(slide, nil)
	engine.EXPECT().
		Expand(gomock.Any(), "d", slide, expand.Config{UseExternalKnowledge: false}).
		Return("note", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/decks/d/slides/1/expand?external=false", nil)
	rec := httptest.NewRecorder()
	expandRouter(NewExpandHandler(decks, engine)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestExpandHandler_CustomK(t *testing.T) {
	ctrl := gomock.NewController(t)
	decks := storage_mocks.NewMockDeckStore(ctrl)
	engine := expand_mocks.NewMockExpander(ctrl)

	slide := deck.Slide{Index: 1, Title: "T"}
	decks.EXPECT().GetSlide(gomock.Any(), "d", 1).Return(slide, nil)
	engine.EXPECT().
		Expand(gomock.Any(), "d", slide, expand.Config{UseExternalKnowledge: true, TopKInternal: 8}).
		Return("note", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/decks/d/slides/1/expand?k=8", nil)
	rec := httptest.NewRecorder()
	expandRouter(NewExpandHandler(decks, engine)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
}

func TestExpandHandler_HTMLFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	decks := storage_mocks.NewMockDeckStore(ctrl)
	engine := expand_mocks.NewMockExpander(ctrl)

	slide := deck.Slide{Index: 2, Title: "Cloud"}
	decks.EXPECT().GetSlide(gomock.Any(), "d", 2).Return(slide, nil)
	engine.EXPECT().
		Expand(gomock.Any(), "d", slide, gomock.Any()).
		Return("# Background\n\nSome **bold** text", nil)

	req := httptest.NewRequest(http.MethodGet, "/api/decks/d/slides/2/expand?format=html", nil)
	rec := httptest.NewRecorder()
	expandRouter(NewExpandHandler(decks, engine)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<strong>bold</strong>") {
		t.Errorf("markdown not rendered: %s", body)
	}
	if !strings.Contains(body, "Cloud") {
		t.Errorf("page header missing slide title: %s", body)
	}
}

func TestExpandHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		setup      func(decks *storage_mocks.MockDeckStore, engine *expand_mocks.MockExpander)
		wantStatus int
	}{
		{
			name:       "non-numeric index",
			url:        "/api/decks/d/slides/abc/expand",
			setup:      func(*storage_mocks.MockDeckStore, *expand_mocks.MockExpander) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "zero index",
			url:        "/api/decks/d/slides/0/expand",
			setup:      func(*storage_mocks.MockDeckStore, *expand_mocks.MockExpander) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "unknown slide",
			url:  "/api/decks/d/slides/9/expand",
			setup: func(decks *storage_mocks.MockDeckStore, _ *expand_mocks.MockExpander) {
				decks.EXPECT().GetSlide(gomock.Any(), "d", 9).Return(deck.Slide{}, storage.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "expansion unavailable",
			url:  "/api/decks/d/slides/1/expand",
			setup: func(decks *storage_mocks.MockDeckStore, engine *expand_mocks.MockExpander) {
				decks.EXPECT().GetSlide(gomock.Any(), "d", 1).Return(deck.Slide{Index: 1, Title: "T"}, nil)
				engine.EXPECT().
					Expand(gomock.Any(), "d", gomock.Any(), gomock.Any()).
					Return("", errors.New("failed to retrieve related slides: qdrant down"))
			},
			wantStatus: http.StatusBadGateway,
		},
		{
			name: "registry failure",
			url:  "/api/decks/d/slides/1/expand",
			setup: func(decks *storage_mocks.MockDeckStore, _ *expand_mocks.MockExpander) {
				decks.EXPECT().GetSlide(gomock.Any(), "d", 1).Return(deck.Slide{}, context.DeadlineExceeded)
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			decks := storage_mocks.NewMockDeckStore(ctrl)
			engine := expand_mocks.NewMockExpander(ctrl)
			tt.setup(decks, engine)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			rec := httptest.NewRecorder()
			expandRouter(NewExpandHandler(decks, engine)).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
		})
	}
}
