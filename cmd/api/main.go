package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"slidestudy-ai/internal/config"
	"slidestudy-ai/internal/expand"
	"slidestudy-ai/internal/httpx"
	"slidestudy-ai/internal/index"
	"slidestudy-ai/internal/knowledge"
	"slidestudy-ai/internal/llm"
	"slidestudy-ai/internal/storage"
	"slidestudy-ai/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize the deck registry database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	deckRepo := storage.NewDeckRepo(db)

	// Initialize Qdrant vector store
	ctx := context.Background()
	vectorStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
	if err != nil {
		log.Fatalf("Failed to create Qdrant client: %v", err)
	}

	// Ensure collection exists with correct vector size
	if err := vectorStore.EnsureCollection(ctx, cfg.QdrantCollection, cfg.QdrantVectorSize); err != nil {
		log.Fatalf("Failed to ensure Qdrant collection: %v", err)
	}
	slog.Info("Qdrant collection ready", "collection", cfg.QdrantCollection, "vector_size", cfg.QdrantVectorSize)

	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.LLMAPIKey, cfg.EmbeddingModel, cfg.QdrantVectorSize)
	slideIndex := index.NewSlideIndex(embedder, vectorStore, cfg.QdrantCollection)

	// External knowledge gateway; source priority is fixed at startup
	gateway, err := knowledge.ForMode(cfg.ExternalSource)
	if err != nil {
		log.Fatalf("Failed to configure external knowledge source: %v", err)
	}
	slog.Info("External knowledge source configured", "source", cfg.ExternalSource)

	// Generation degrades to placeholder notes when no credential is set
	llmClient := llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	generator := expand.NewGenerator(llmClient, cfg.GenerationConfigured())
	if !cfg.GenerationConfigured() {
		slog.Warn("LLM_API_KEY not set; expansions will return placeholder notes")
	}

	engine := expand.NewEngine(slideIndex, gateway, generator)
	slog.Info("Expansion engine initialized", "model", cfg.LLMModel)

	deps := &httpx.Deps{
		Decks:           deckRepo,
		Indexer:         slideIndex,
		Engine:          engine,
		Checker:         vectorStore,
		Collection:      cfg.QdrantCollection,
		UploadDir:       cfg.UploadDir,
		GenerationReady: cfg.GenerationConfigured(),
	}
	router := httpx.NewRouter(deps)

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	slog.Debug("LLM configuration", "base_url", cfg.LLMBaseURL, "model", cfg.LLMModel)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
