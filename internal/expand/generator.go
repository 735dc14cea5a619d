package expand

import (
	"context"
	"fmt"

	"slidestudy-ai/internal/contextutil"
)

// PlaceholderPrefix marks degraded generation output. Callers and tests can
// recognize a placeholder by this fixed prefix.
const PlaceholderPrefix = "[generation unavailable]"

// generationSystemPrompt frames the model as a careful tutor.
const generationSystemPrompt = "You are a rigorous study tutor."

// ChatClient is the remote chat model dependency of the Generator.
type ChatClient interface {
	Chat(ctx context.Context, system, user string) (string, error)
}

// Generator invokes the language model, degrading to a deterministic
// placeholder when no credential is configured or the call fails.
// Generation is never fatal to the caller.
type Generator struct {
	client     ChatClient
	configured bool
}

// NewGenerator creates a Generator. configured reports whether a model
// credential is present; when false, Generate never touches the network.
func NewGenerator(client ChatClient, configured bool) *Generator {
	return &Generator{client: client, configured: configured}
}

// Generate runs the prompt through the chat model. Without a credential it
// returns a placeholder naming the missing configuration; on any transport,
// authentication or client error it returns a placeholder embedding the
// error description. It never returns an error and never blocks beyond the
// client's own bounded timeout and retries.
func (g *Generator) Generate(ctx context.Context, prompt string) string {
	logger := contextutil.LoggerFromContext(ctx)

	if !g.configured || g.client == nil {
		return PlaceholderPrefix + " no model credential configured; set LLM_API_KEY to enable model-backed expansion"
	}

	out, err := g.client.Chat(ctx, generationSystemPrompt, prompt)
	if err != nil {
		logger.WarnContext(ctx, "generation degraded to placeholder", "error", err)
		return fmt.Sprintf("%s generation call failed: %v", PlaceholderPrefix, err)
	}
	return out
}
