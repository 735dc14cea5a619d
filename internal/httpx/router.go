package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"slidestudy-ai/internal/expand"
	"slidestudy-ai/internal/handlers"
	"slidestudy-ai/internal/storage"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Decks      storage.DeckStore
	Indexer    handlers.SlideIndexer
	Engine     expand.Expander
	Checker    handlers.CollectionChecker
	Collection string
	UploadDir  string

	// GenerationReady reflects whether a model credential is configured.
	GenerationReady bool
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	uploadHandler := handlers.NewUploadHandler(deps.Decks, deps.Indexer, deps.UploadDir)
	slidesHandler := handlers.NewSlidesHandler(deps.Decks)
	searchHandler := handlers.NewSearchHandler(deps.Decks, deps.Indexer)
	expandHandler := handlers.NewExpandHandler(deps.Decks, deps.Engine)
	healthHandler := handlers.NewHealthHandler(deps.Checker, deps.Collection, deps.GenerationReady)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)
		r.Method(http.MethodPost, "/upload", uploadHandler)
		r.Route("/decks/{deck}", func(r chi.Router) {
			r.Method(http.MethodGet, "/slides", slidesHandler)
			r.Method(http.MethodGet, "/search", searchHandler)
			r.Method(http.MethodGet, "/slides/{index}/expand", expandHandler)
		})
	})

	return r
}
