package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_deck_store.go -package=mocks slidestudy-ai/internal/storage DeckStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"slidestudy-ai/internal/deck"
)

// DeckStore defines the interface for the deck registry. It replaces the
// process-wide deck map of earlier designs with an explicit store object so
// lifecycle and testability are explicit.
type DeckStore interface {
	// CreateDeck registers a deck and its parsed slides in one transaction.
	CreateDeck(ctx context.Context, d *Deck, slides []deck.Slide) error
	// GetDeck returns a deck by its handle. Returns ErrNotFound if missing.
	GetDeck(ctx context.Context, id string) (*Deck, error)
	// ListSlides returns all slides of a deck ordered by index.
	// Returns ErrNotFound if the deck does not exist.
	ListSlides(ctx context.Context, deckID string) ([]deck.Slide, error)
	// GetSlide returns one slide by deck handle and 1-based index.
	// Returns ErrNotFound if the deck or the slide does not exist.
	GetSlide(ctx context.Context, deckID string, index int) (deck.Slide, error)
}

// DeckRepo implements DeckStore on SQLite.
type DeckRepo struct {
	db *sql.DB
}

// NewDeckRepo creates a new DeckRepo.
func NewDeckRepo(db *sql.DB) *DeckRepo {
	return &DeckRepo{db: db}
}

// CreateDeck registers a deck and its parsed slides in one transaction.
func (r *DeckRepo) CreateDeck(ctx context.Context, d *Deck, slides []deck.Slide) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO decks (id, filename, num_slides) VALUES (?, ?, ?)",
		d.ID, d.Filename, len(slides),
	); err != nil {
		return fmt.Errorf("failed to insert deck: %w", err)
	}

	for _, s := range slides {
		bullets, err := json.Marshal(s.Bullets)
		if err != nil {
			return fmt.Errorf("failed to encode bullets: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO slides (deck_id, idx, title, bullets, notes) VALUES (?, ?, ?, ?, ?)",
			d.ID, s.Index, s.Title, string(bullets), s.Notes,
		); err != nil {
			return fmt.Errorf("failed to insert slide %d: %w", s.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit deck: %w", err)
	}
	d.NumSlides = len(slides)
	return nil
}

// GetDeck returns a deck by its handle.
func (r *DeckRepo) GetDeck(ctx context.Context, id string) (*Deck, error) {
	var d Deck
	err := r.db.QueryRowContext(ctx,
		"SELECT id, filename, num_slides, created_at FROM decks WHERE id = ?", id,
	).Scan(&d.ID, &d.Filename, &d.NumSlides, &d.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get deck: %w", err)
	}
	return &d, nil
}

// ListSlides returns all slides of a deck ordered by index.
func (r *DeckRepo) ListSlides(ctx context.Context, deckID string) ([]deck.Slide, error) {
	if _, err := r.GetDeck(ctx, deckID); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT idx, title, bullets, notes FROM slides WHERE deck_id = ? ORDER BY idx", deckID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query slides: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var slides []deck.Slide
	for rows.Next() {
		s, err := scanSlide(rows.Scan)
		if err != nil {
			return nil, err
		}
		slides = append(slides, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate slides: %w", err)
	}
	return slides, nil
}

// GetSlide returns one slide by deck handle and 1-based index.
func (r *DeckRepo) GetSlide(ctx context.Context, deckID string, index int) (deck.Slide, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT idx, title, bullets, notes FROM slides WHERE deck_id = ? AND idx = ?", deckID, index,
	)
	s, err := scanSlide(row.Scan)
	if err == sql.ErrNoRows {
		return deck.Slide{}, ErrNotFound
	}
	if err != nil {
		return deck.Slide{}, err
	}
	return s, nil
}

func scanSlide(scan func(dest ...any) error) (deck.Slide, error) {
	var s deck.Slide
	var bullets string
	if err := scan(&s.Index, &s.Title, &bullets, &s.Notes); err != nil {
		if err == sql.ErrNoRows {
			return deck.Slide{}, sql.ErrNoRows
		}
		return deck.Slide{}, fmt.Errorf("failed to scan slide: %w", err)
	}
	if err := json.Unmarshal([]byte(bullets), &s.Bullets); err != nil {
		return deck.Slide{}, fmt.Errorf("failed to decode bullets: %w", err)
	}
	return s, nil
}
