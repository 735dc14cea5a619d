package handlers

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"slidestudy-ai/internal/contextutil"
	"slidestudy-ai/internal/deck"
	"slidestudy-ai/internal/storage"
)

// maxUploadBytes caps one uploaded presentation.
const maxUploadBytes = 50 << 20

// UploadHandler accepts a .pptx upload, extracts its slides, registers the
// deck and writes the slides into the embedding index.
type UploadHandler struct {
	decks     storage.DeckStore
	indexer   SlideIndexer
	uploadDir string
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(decks storage.DeckStore, indexer SlideIndexer, uploadDir string) *UploadHandler {
	return &UploadHandler{decks: decks, indexer: indexer, uploadDir: uploadDir}
}

// UploadResponse is returned after a successful upload.
type UploadResponse struct {
	Deck      string `json:"deck"`
	Filename  string `json:"filename"`
	NumSlides int    `json:"num_slides"`
}

// ServeHTTP handles multipart uploads on POST /api/upload.
func (h *UploadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		logger.WarnContext(ctx, "invalid upload form", "error", err)
		writeError(w, http.StatusBadRequest, "A multipart 'file' field is required")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".pptx") {
		writeError(w, http.StatusBadRequest, "Only .pptx files are supported")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		logger.WarnContext(ctx, "failed to read upload", "error", err)
		writeError(w, http.StatusBadRequest, "Failed to read uploaded file")
		return
	}

	slides, err := deck.Extract(content)
	if err != nil {
		if errors.Is(err, deck.ErrParse) {
			logger.WarnContext(ctx, "unreadable presentation", "filename", header.Filename, "error", err)
			writeError(w, http.StatusBadRequest, "Unreadable presentation file")
			return
		}
		logger.ErrorContext(ctx, "extraction failed", "filename", header.Filename, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to extract slides")
		return
	}

	// Deck handles follow the original uuid-hex shape so document ids stay
	// "{deck}-{index}" with a single separator.
	deckID := strings.ReplaceAll(uuid.New().String(), "-", "")

	dest := filepath.Join(h.uploadDir, deckID+".pptx")
	if err := os.WriteFile(dest, content, 0644); err != nil {
		logger.ErrorContext(ctx, "failed to persist upload", "path", dest, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to store uploaded file")
		return
	}

	// Index before registering: the registry must never hold a deck whose
	// indexed document count is below its slide count.
	if err := h.indexer.Upsert(ctx, deckID, slides); err != nil {
		logger.ErrorContext(ctx, "failed to index deck", "deck", deckID, "error", err)
		writeError(w, http.StatusBadGateway, "Embedding index unavailable")
		return
	}

	d := &storage.Deck{ID: deckID, Filename: header.Filename}
	if err := h.decks.CreateDeck(ctx, d, slides); err != nil {
		logger.ErrorContext(ctx, "failed to register deck", "deck", deckID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to register deck")
		return
	}

	logger.InfoContext(ctx, "deck uploaded", "deck", deckID, "filename", header.Filename, "slides", len(slides))
	writeJSON(w, http.StatusOK, UploadResponse{
		Deck:      deckID,
		Filename:  header.Filename,
		NumSlides: len(slides),
	})
}
