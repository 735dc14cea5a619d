package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Valid values for EXTERNAL_SOURCE. "composite" tries the scrape source,
// then the encyclopedia API, then the academic feed, and keeps the first
// non-empty result.
const (
	SourceComposite = "composite"
	SourceArxiv     = "arxiv"
	SourceWikipedia = "wikipedia"
	SourceBaike     = "baike"
)

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL       string
	LLMModel         string
	LLMAPIKey        string // empty means generation degrades to a placeholder
	EmbeddingBaseURL string
	EmbeddingModel   string
	QdrantURL        string
	QdrantCollection string
	QdrantVectorSize int
	DBPath           string
	UploadDir        string
	APIPort          string
	ExternalSource   string
	LogLevel         slog.Level
	LogFormat        string
}

// Load reads configuration from environment variables and returns a Config.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or a parent directory, it is
// loaded automatically; environment variables already set take precedence.
func Load() (*Config, error) {
	_ = godotenv.Load() // current directory first

	// Walk up toward the project root looking for a .env file.
	if wd, err := os.Getwd(); err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		LLMBaseURL:       getEnv("LLM_BASE_URL", "https://api.siliconflow.cn/v1"),
		LLMModel:         getEnv("LLM_MODEL", "deepseek-ai/DeepSeek-V3.2-Exp"),
		LLMAPIKey:        getEnv("LLM_API_KEY", ""),
		EmbeddingBaseURL: getEnv("EMBEDDING_BASE_URL", "http://localhost:8081"),
		EmbeddingModel:   getEnv("EMBEDDING_MODEL_NAME", "granite-embedding-278m-multilingual"),
		QdrantURL:        getEnv("QDRANT_URL", "http://localhost:6333"),
		QdrantCollection: getEnv("QDRANT_COLLECTION", "deck_slides"),
		DBPath:           getEnv("DB_PATH", "./data/slidestudy.db"),
		UploadDir:        getEnv("UPLOAD_DIR", "./data/uploads"),
		APIPort:          getEnv("API_PORT", "9000"),
		ExternalSource:   strings.ToLower(getEnv("EXTERNAL_SOURCE", SourceComposite)),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
	}

	// The vector size must match the embedding model output; if it changes,
	// the Qdrant collection has to be recreated.
	vectorSizeStr := getEnv("QDRANT_VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("QDRANT_VECTOR_SIZE must be greater than 0")
	}
	cfg.QdrantVectorSize = vectorSize

	switch cfg.ExternalSource {
	case SourceComposite, SourceArxiv, SourceWikipedia, SourceBaike:
	default:
		return nil, fmt.Errorf("EXTERNAL_SOURCE must be one of composite, arxiv, wikipedia, baike; got %q", cfg.ExternalSource)
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	for _, dir := range []string{filepath.Dir(cfg.DBPath), cfg.UploadDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return cfg, nil
}

// GenerationConfigured reports whether a model credential is present.
func (c *Config) GenerationConfigured() bool {
	return c.LLMAPIKey != ""
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error; got %q", s)
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
