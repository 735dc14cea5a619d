package storage

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a requested deck or slide does not exist.
var ErrNotFound = errors.New("not found")

// Deck is one uploaded presentation in the registry.
type Deck struct {
	ID        string // opaque handle returned on upload
	Filename  string // original upload file name
	NumSlides int
	CreatedAt time.Time
}
