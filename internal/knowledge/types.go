package knowledge

import (
	"context"
	"net/http"
	"time"
)

// fetchTimeout bounds one external source round trip. Sources have no
// retry: they fail fast to empty and the composite moves on.
const fetchTimeout = 10 * time.Second

// maxFetchBytes caps how much of an external response body is read.
const maxFetchBytes = 2 << 20

// userAgent identifies this service to external endpoints.
const userAgent = "slidestudy-ai/0.1"

// Snippet is a short, sanitized external text fragment. Text carries no
// markup and is length-capped by the producing source.
type Snippet struct {
	Source string `json:"source"`
	Text   string `json:"text"`
}

// Source fetches short knowledge snippets for a keyword query. A source
// must never propagate failures: network errors, non-success statuses,
// timeouts and parse failures all yield an empty list. External knowledge
// is additive-only and must not degrade pipeline availability.
type Source interface {
	Name() string
	Fetch(ctx context.Context, query string, maxResults int) []Snippet
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: fetchTimeout}
}
