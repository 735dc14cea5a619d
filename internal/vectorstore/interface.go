package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks slidestudy-ai/internal/vectorstore VectorStore

import "context"

// Point represents a vector point with metadata.
type Point struct {
	ID   string
	Vec  []float32
	Meta map[string]any
}

// SearchResult represents one similarity search hit. Score is the store's
// native similarity (higher is closer for cosine); callers that need an
// ascending distance derive it from the score.
type SearchResult struct {
	PointID string
	Score   float32
	Meta    map[string]any
}

// VectorStore defines the interface for vector storage operations. Search is
// deliberately unscoped; deck scoping happens above this interface by
// over-fetching and post-filtering on metadata.
type VectorStore interface {
	// Upsert inserts or updates points in the collection. Writing a point
	// with an existing ID overwrites it.
	Upsert(ctx context.Context, collection string, points []Point) error

	// Search returns up to k nearest points system-wide, best first.
	Search(ctx context.Context, collection string, query []float32, k int) ([]SearchResult, error)

	// Delete removes points by their IDs.
	Delete(ctx context.Context, collection string, ids []string) error
}
