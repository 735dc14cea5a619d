package deck

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when the presentation file does not exist.
	ErrNotFound = errors.New("presentation file not found")
	// ErrParse is returned when the presentation container cannot be read.
	ErrParse = errors.New("unreadable presentation container")
)

// Slide is one extracted page of a presentation. Index is 1-based and
// strictly sequential within a deck. Bullets keep document order.
// Slides are never mutated after extraction.
type Slide struct {
	Index   int      `json:"index"`
	Title   string   `json:"title"`
	Bullets []string `json:"bullets"`
	Notes   string   `json:"notes,omitempty"`
}

// Text returns the slide's full textual representation: title, bullets and
// notes joined by newlines. This is what gets embedded and indexed.
func (s Slide) Text() string {
	parts := make([]string, 0, len(s.Bullets)+2)
	if s.Title != "" {
		parts = append(parts, s.Title)
	}
	parts = append(parts, s.Bullets...)
	if s.Notes != "" {
		parts = append(parts, s.Notes)
	}
	return strings.Join(parts, "\n")
}
