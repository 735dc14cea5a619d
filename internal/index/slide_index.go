package index

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"slidestudy-ai/internal/contextutil"
	"slidestudy-ai/internal/deck"
	"slidestudy-ai/internal/vectorstore"
)

// overfetchFactor is how many extra candidates an unscoped query fetches
// before post-filtering down to one deck.
const overfetchFactor = 3

// pointNamespace seeds deterministic point ids: the same document id always
// maps to the same point id, so re-indexing a deck overwrites instead of
// duplicating.
var pointNamespace = uuid.MustParse("3b4a2a66-9c31-4e6d-8f0a-5a50d1c5d2aa")

// Document is the indexed form of one slide.
type Document struct {
	ID   string // "{deck}-{slide index}", unique and stable
	Text string
	Meta map[string]any
}

// Hit is one retrieval result. Distance ascends with dissimilarity; values
// are not normalized across store implementations.
type Hit struct {
	ID         string
	Text       string
	Deck       string
	SlideIndex int
	Title      string
	Distance   float32
}

// Embedder turns texts into vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// SlideIndex stores slide documents in a vector collection and answers
// approximate semantic similarity queries over them.
type SlideIndex struct {
	embedder   Embedder
	store      vectorstore.VectorStore
	collection string
}

// NewSlideIndex creates a SlideIndex over the given embedder and store.
func NewSlideIndex(embedder Embedder, store vectorstore.VectorStore, collection string) *SlideIndex {
	return &SlideIndex{
		embedder:   embedder,
		store:      store,
		collection: collection,
	}
}

// BuildDocument derives the indexed document for one slide of a deck.
func BuildDocument(deckID string, s deck.Slide) Document {
	return Document{
		ID:   fmt.Sprintf("%s-%d", deckID, s.Index),
		Text: s.Text(),
		Meta: map[string]any{
			"deck":        deckID,
			"slide_index": s.Index,
			"title":       s.Title,
		},
	}
}

// PointID returns the vector store point id for a document id. It is a
// deterministic UUID digest, so upserting the same document twice overwrites.
func PointID(docID string) string {
	return uuid.NewSHA1(pointNamespace, []byte(docID)).String()
}

// Upsert embeds all slides of a deck and writes them under their
// deterministic ids. Re-indexing the same deck overwrites by id.
func (x *SlideIndex) Upsert(ctx context.Context, deckID string, slides []deck.Slide) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(slides) == 0 {
		return nil
	}

	docs := make([]Document, 0, len(slides))
	texts := make([]string, 0, len(slides))
	for _, s := range slides {
		doc := BuildDocument(deckID, s)
		docs = append(docs, doc)
		texts = append(texts, doc.Text)
	}

	vectors, err := x.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to embed slides: %w", err)
	}
	if len(vectors) != len(docs) {
		return fmt.Errorf("expected %d vectors, got %d", len(docs), len(vectors))
	}

	points := make([]vectorstore.Point, 0, len(docs))
	for i, doc := range docs {
		meta := make(map[string]any, len(doc.Meta)+2)
		for k, v := range doc.Meta {
			meta[k] = v
		}
		meta["doc_id"] = doc.ID
		meta["text"] = doc.Text
		points = append(points, vectorstore.Point{
			ID:   PointID(doc.ID),
			Vec:  vectors[i],
			Meta: meta,
		})
	}

	if err := x.store.Upsert(ctx, x.collection, points); err != nil {
		return err
	}

	logger.InfoContext(ctx, "deck indexed", "deck", deckID, "slides", len(slides))
	return nil
}

// Query returns up to k nearest documents system-wide, ordered by ascending
// distance.
func (x *SlideIndex) Query(ctx context.Context, text string, k int) ([]Hit, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("query text must not be empty")
	}
	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}

	vectors, err := x.embedder.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("no embedding returned for query")
	}

	results, err := x.store.Search(ctx, x.collection, vectors[0], k)
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, len(results))
	for _, r := range results {
		hits = append(hits, hitFromResult(r))
	}
	// Cosine scores descend with dissimilarity; distances must ascend.
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Distance < hits[j].Distance })
	return hits, nil
}

// QueryDeck retrieves up to k documents belonging to one deck. It over-fetches
// an unscoped candidate window (overfetchFactor times k) and post-filters by
// deck metadata. It may return fewer than k hits when the deck has fewer than
// k slides inside the over-fetched window; that is a documented limitation,
// not an error.
func (x *SlideIndex) QueryDeck(ctx context.Context, deckID, text string, k int) ([]Hit, error) {
	if k <= 0 {
		return nil, fmt.Errorf("k must be greater than 0")
	}

	candidates, err := x.Query(ctx, text, k*overfetchFactor)
	if err != nil {
		return nil, err
	}

	hits := make([]Hit, 0, k)
	for _, h := range candidates {
		if h.Deck != deckID {
			continue
		}
		hits = append(hits, h)
		if len(hits) >= k {
			break
		}
	}
	return hits, nil
}

// hitFromResult maps a raw store result onto a Hit, converting the cosine
// similarity score into an ascending distance.
func hitFromResult(r vectorstore.SearchResult) Hit {
	h := Hit{Distance: 1 - r.Score}
	if v, ok := r.Meta["doc_id"].(string); ok {
		h.ID = v
	}
	if v, ok := r.Meta["text"].(string); ok {
		h.Text = v
	}
	if v, ok := r.Meta["deck"].(string); ok {
		h.Deck = v
	}
	if v, ok := r.Meta["title"].(string); ok {
		h.Title = v
	}
	switch v := r.Meta["slide_index"].(type) {
	case int64:
		h.SlideIndex = int(v)
	case float64:
		h.SlideIndex = int(v)
	case int:
		h.SlideIndex = v
	}
	return h
}
