package domain

import "time"

// Chunk metadata origin tags.
const (
	SourceUploaded = "uploaded_document"
	SourceSeeded   = "seed_corpus"
)

// ChunkMetadata carries the recognized auxiliary facts for a chunk. The set of
// keys is fixed so the contract stays checkable.
type ChunkMetadata struct {
	Source      string `json:"source"`
	TotalChunks int    `json:"total_chunks"`
	HasMarkup   bool   `json:"has_markup,omitempty"`
}

// Chunk is the atomic retrievable unit stored in pgvector.
// Content is what a human sees; PlainText is what was embedded. For plain
// sources the two are identical, for rich-text sources the markup is stripped
// from PlainText.
type Chunk struct {
	ID           string        `json:"id"            db:"id"`
	DocumentName string        `json:"document_name" db:"document_name"`
	ChunkIndex   int           `json:"chunk_index"   db:"chunk_index"`
	Content      string        `json:"content"       db:"content"`
	PlainText    string        `json:"plain_text"    db:"plain_text"`
	Metadata     ChunkMetadata `json:"metadata"      db:"metadata"`
	Vector       []float32     `json:"-"             db:"embedding"`
	CreatedAt    time.Time     `json:"created_at"    db:"created_at"`
}

// ScoredChunk is returned by semantic search, including similarity score.
type ScoredChunk struct {
	Chunk
	Similarity float64 `json:"similarity"`
}
