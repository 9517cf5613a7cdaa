package port

import (
	"context"

	"github.com/iepirkumi/tenderlens/internal/domain"
)

// AIProvider abstracts the embedding and chat-completion backend.
// Implementations can target any OpenAI-compatible gateway.
type AIProvider interface {
	// Embed generates a fixed-dimension vector for the given text.
	// Oversized input is head-truncated before submission.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts in one call.
	// The result is index-aligned with the input.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Chat sends a full conversation and returns the complete response.
	Chat(ctx context.Context, messages []domain.Turn) (string, error)

	// ChatStream sends a full conversation and streams the response
	// token-by-token. The channel is closed when the stream ends.
	ChatStream(ctx context.Context, messages []domain.Turn) (<-chan string, error)
}
