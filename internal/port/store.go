package port

import (
	"context"

	"github.com/iepirkumi/tenderlens/internal/domain"
)

// ChunkStore persists document chunks and answers the two query shapes the
// pipeline needs: exact-match listing per document and top-k similarity search.
type ChunkStore interface {
	// InsertChunks persists a batch and reports how many records committed.
	InsertChunks(ctx context.Context, chunks []domain.Chunk) (int, error)

	// DeleteByDocument removes all chunks for a document name.
	// Zero deleted rows is not an error.
	DeleteByDocument(ctx context.Context, name string) (int64, error)

	// ListByDocument returns a document's chunks ordered by chunk index.
	ListByDocument(ctx context.Context, name string) ([]domain.Chunk, error)

	// ListDocuments returns one summary per distinct document name.
	ListDocuments(ctx context.Context) ([]domain.DocumentSummary, error)

	// ListAll returns up to limit chunks across all documents, ordered by
	// (document_name, chunk_index) so every document contributes from its head.
	ListAll(ctx context.Context, limit int) ([]domain.Chunk, error)

	// SearchSimilar returns chunks scoring at or above threshold against the
	// query vector, best first. A missing vector capability is reported as
	// ErrRetrievalUnavailable, distinct from an empty result.
	SearchSimilar(ctx context.Context, vector []float32, threshold float64, topK int) ([]domain.ScoredChunk, error)
}
