package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEmbeddingsClient_EmbedTexts(t *testing.T) {
	var gotReq EmbeddingsRequest
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"data":[{"embedding":[0.1,0.2,0.3]},{"embedding":[0.4,0.5,0.6]}]}`))
	}))
	defer srv.Close()

	c := NewEmbeddingsClient(srv.URL, "k", "embed-model", 3)
	vecs, err := c.EmbedTexts(context.Background(), []string{"one", "two"})
	if err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}

	if gotPath != "/v1/embeddings" {
		t.Errorf("path = %q, want /v1/embeddings", gotPath)
	}
	if gotReq.Model != "embed-model" || len(gotReq.Input) != 2 {
		t.Errorf("request = %+v", gotReq)
	}

	if len(vecs) != 2 {
		t.Fatalf("EmbedTexts() returned %d vectors, want 2", len(vecs))
	}
	if len(vecs[0]) != 3 || vecs[0][0] != float32(0.1) {
		t.Errorf("vector 0 = %v", vecs[0])
	}
}

func TestEmbeddingsClient_EmbedTexts_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		texts   []string
	}{
		{
			name:    "empty input",
			handler: func(w http.ResponseWriter, r *http.Request) {},
			texts:   nil,
		},
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			texts: []string{"a"},
		},
		{
			name: "count mismatch",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"data":[{"embedding":[0.1,0.2,0.3]}]}`))
			},
			texts: []string{"a", "b"},
		},
		{
			name: "size mismatch",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"data":[{"embedding":[0.1,0.2]}]}`))
			},
			texts: []string{"a"},
		},
		{
			name: "malformed response",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"data":`))
			},
			texts: []string{"a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			c := NewEmbeddingsClient(srv.URL, "k", "m", 3)
			if _, err := c.EmbedTexts(context.Background(), tt.texts); err == nil {
				t.Error("EmbedTexts() expected error")
			}
		})
	}
}

func TestEmbeddingsClient_EmbedTexts_SizeCheckDisabled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"embedding":[0.1,0.2]}]}`))
	}))
	defer srv.Close()

	c := NewEmbeddingsClient(srv.URL, "k", "m", 0)
	vecs, err := c.EmbedTexts(context.Background(), []string{"a"})
	if err != nil {
		t.Fatalf("EmbedTexts() error = %v", err)
	}
	if len(vecs[0]) != 2 {
		t.Errorf("vector size = %d, want 2", len(vecs[0]))
	}
}
