package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghhtml "github.com/yuin/goldmark/renderer/html"

	"slidestudy-ai/internal/contextutil"
	"slidestudy-ai/internal/expand"
	"slidestudy-ai/internal/storage"
)

// ExpandHandler turns one stored slide into an expanded study note.
type ExpandHandler struct {
	decks    storage.DeckStore
	engine   expand.Expander
	parser   goldmark.Markdown
	template *template.Template
}

// notePageData holds template data for rendered note pages.
type notePageData struct {
	Title   string
	Deck    string
	Index   int
	Content template.HTML
}

// ExpandResponse is the JSON shape of an expanded slide.
type ExpandResponse struct {
	Deck         string `json:"deck"`
	SlideIndex   int    `json:"slide_index"`
	Title        string `json:"title"`
	ExpandedText string `json:"expanded_text"`
}

// NewExpandHandler creates a new ExpandHandler.
func NewExpandHandler(decks storage.DeckStore, engine expand.Expander) *ExpandHandler {
	tmpl := template.Must(template.New("note").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 900px;
      line-height: 1.7;
      color: #1f2937;
    }
    header {
      margin-bottom: 2rem;
      border-bottom: 1px solid #e5e7eb;
      padding-bottom: 1.5rem;
    }
    h1 {
      margin-top: 0;
      font-size: 2rem;
    }
    article h2, article h3 {
      margin-top: 1.5rem;
    }
    pre {
      background: #f3f4f6;
      padding: 1rem;
      overflow-x: auto;
      border-radius: 10px;
    }
    code {
      font-family: 'SFMono-Regular', Consolas, 'Liberation Mono', Menlo, monospace;
      background: #f3f4f6;
      padding: 2px 5px;
      border-radius: 6px;
    }
    pre code {
      background: transparent;
      padding: 0;
    }
    blockquote {
      border-left: 4px solid #93c5fd;
      padding-left: 1rem;
      margin-left: 0;
      color: #475569;
    }
    .meta {
      color: #6b7280;
      font-size: 0.95rem;
      margin-top: 0.5rem;
    }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    <p class="meta">Deck: {{.Deck}} &middot; Slide {{.Index}}</p>
  </header>
  <article>{{.Content}}</article>
</body>
</html>`))

	return &ExpandHandler{
		decks:  decks,
		engine: engine,
		parser: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Table,
				extension.Strikethrough,
				extension.Linkify,
			),
			goldmark.WithRendererOptions(
				ghhtml.WithUnsafe(),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		template: tmpl,
	}
}

// ServeHTTP handles GET /api/decks/{deck}/slides/{index}/expand.
// Query parameters: external=false disables external knowledge lookups,
// format=html returns a rendered page instead of JSON.
func (h *ExpandHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	deckID := chi.URLParam(r, "deck")

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 1 {
		writeError(w, http.StatusBadRequest, "Slide index must be a positive integer")
		return
	}

	slide, err := h.decks.GetSlide(ctx, deckID, index)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Unknown deck or slide; upload a presentation first")
			return
		}
		logger.ErrorContext(ctx, "failed to load slide", "deck", deckID, "slide", index, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load slide")
		return
	}

	cfg := expand.Config{UseExternalKnowledge: true}
	if r.URL.Query().Get("external") == "false" {
		cfg.UseExternalKnowledge = false
	}
	if kParam := r.URL.Query().Get("k"); kParam != "" {
		parsed, err := strconv.Atoi(kParam)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "Query parameter 'k' must be a positive integer")
			return
		}
		cfg.TopKInternal = parsed
	}

	text, err := h.engine.Expand(ctx, deckID, slide, cfg)
	if err != nil {
		logger.ErrorContext(ctx, "expansion failed", "deck", deckID, "slide", slide.Index, "error", err)
		writeError(w, http.StatusBadGateway, "Slide expansion unavailable")
		return
	}

	logger.InfoContext(ctx, "slide expanded", "deck", deckID, "slide", slide.Index, "external", cfg.UseExternalKnowledge)

	if r.URL.Query().Get("format") == "html" {
		h.writeHTML(w, r, deckID, slide.Index, slide.Title, text)
		return
	}

	writeJSON(w, http.StatusOK, ExpandResponse{
		Deck:         deckID,
		SlideIndex:   slide.Index,
		Title:        slide.Title,
		ExpandedText: text,
	})
}

func (h *ExpandHandler) writeHTML(w http.ResponseWriter, r *http.Request, deckID string, index int, title, text string) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var buf bytes.Buffer
	if err := h.parser.Convert([]byte(text), &buf); err != nil {
		logger.ErrorContext(ctx, "failed to render markdown", "deck", deckID, "slide", index, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to render note")
		return
	}

	if title == "" {
		title = fmt.Sprintf("Slide %d", index)
	}
	pageData := notePageData{
		Title:   title,
		Deck:    deckID,
		Index:   index,
		Content: template.HTML(buf.String()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, pageData); err != nil {
		logger.ErrorContext(ctx, "failed to execute note template", "deck", deckID, "slide", index, "error", err)
	}
}
