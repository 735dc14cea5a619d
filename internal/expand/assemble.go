package expand

import (
	"fmt"
	"strings"

	"slidestudy-ai/internal/index"
	"slidestudy-ai/internal/knowledge"
)

// emptyMarker renders in place of an empty context section, so the prompt
// template's structure never varies with content presence.
const emptyMarker = "none"

// maxContextBytes bounds the assembled context block.
const maxContextBytes = 8000

// FormatHits renders internal retrieval hits, each tagged with its slide
// index and title, joined by blank lines. Returns "" when there are no hits.
func FormatHits(hits []index.Hit) string {
	if len(hits) == 0 {
		return ""
	}
	parts := make([]string, 0, len(hits))
	for _, h := range hits {
		parts = append(parts, fmt.Sprintf("[related slide %d: %s]\n%s", h.SlideIndex, h.Title, h.Text))
	}
	return strings.Join(parts, "\n\n")
}

// AssembleContext merges internal context and external snippets into one
// bounded text block: internal hits first, snippets second, each section
// falling back to an explicit placeholder when empty. The merge is
// deterministic and side-effect free.
func AssembleContext(internalContext string, snippets []knowledge.Snippet) string {
	var b strings.Builder

	b.WriteString("Related slides from the same deck (retrieved):\n")
	if strings.TrimSpace(internalContext) == "" {
		b.WriteString(emptyMarker)
	} else {
		b.WriteString(internalContext)
	}

	b.WriteString("\n\nExternal knowledge snippets:\n")
	if len(snippets) == 0 {
		b.WriteString(emptyMarker)
	} else {
		parts := make([]string, 0, len(snippets))
		for _, sn := range snippets {
			parts = append(parts, fmt.Sprintf("(%s) %s", sn.Source, sn.Text))
		}
		b.WriteString(strings.Join(parts, "\n\n"))
	}

	out := b.String()
	if len(out) > maxContextBytes {
		out = out[:maxContextBytes]
	}
	return out
}
