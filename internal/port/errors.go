package port

import "errors"

// Sentinel errors used across ports. Adapters wrap these with %w so the
// underlying cause stays attached; callers classify with errors.Is.
var (
	// Ingestion side.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrInvalidEncoding   = errors.New("invalid text encoding")
	ErrExtractionFailed  = errors.New("content extraction failed")
	ErrEmbeddingFailed   = errors.New("embedding service failed")

	// Query side.
	ErrRetrievalUnavailable = errors.New("similarity search unavailable")
	ErrRateLimited          = errors.New("generative service rate limited")
	ErrQuotaExhausted       = errors.New("generative service quota exhausted")
	ErrGenerationFailed     = errors.New("generative service failed")
)
