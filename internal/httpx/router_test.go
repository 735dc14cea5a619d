package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	expand_mocks "slidestudy-ai/internal/expand/mocks"
	handler_mocks "slidestudy-ai/internal/handlers/mocks"
	storage_mocks "slidestudy-ai/internal/storage/mocks"
)

// okChecker reports a reachable collection.
type okChecker struct{}

func (okChecker) CollectionExists(ctx context.Context, collection string) (bool, error) {
	return true, nil
}

func testDeps(t *testing.T, ctrl *gomock.Controller) *Deps {
	t.Helper()
	return &Deps{
		Decks:           storage_mocks.NewMockDeckStore(ctrl),
		Indexer:         handler_mocks.NewMockSlideIndexer(ctrl),
		Engine:          expand_mocks.NewMockExpander(ctrl),
		Checker:         okChecker{},
		Collection:      "deck_slides",
		UploadDir:       t.TempDir(),
		GenerationReady: true,
	}
}

func TestNewRouter(t *testing.T) {
	ctrl := gomock.NewController(t)

	if router := NewRouter(testDeps(t, ctrl)); router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	ctrl := gomock.NewController(t)
	router := NewRouter(testDeps(t, ctrl))

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{
			name:       "GET /api/health exists",
			method:     http.MethodGet,
			path:       "/api/health",
			wantStatus: http.StatusOK,
		},
		{
			name:       "POST /api/upload exists",
			method:     http.MethodPost,
			path:       "/api/upload",
			wantStatus: http.StatusBadRequest, // no multipart body, but the route exists
		},
		{
			name:       "GET /api/upload method not allowed",
			method:     http.MethodGet,
			path:       "/api/upload",
			wantStatus: http.StatusMethodNotAllowed,
		},
		{
			name:       "GET search without query is rejected",
			method:     http.MethodGet,
			path:       "/api/decks/d/search",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "GET expand with bad index is rejected",
			method:     http.MethodGet,
			path:       "/api/decks/d/slides/zero/expand",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown path",
			method:     http.MethodGet,
			path:       "/api/nope",
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	router := NewRouter(testDeps(t, ctrl))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("Router should apply CORS middleware")
	}
}
