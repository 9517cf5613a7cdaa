package domain

import "time"

// DocumentSummary is the listing view of a stored document: its identity plus
// chunk count. Documents have no lifecycle record of their own; they exist as
// long as chunks reference their name.
type DocumentSummary struct {
	Name       string    `json:"name"        db:"document_name"`
	ChunkCount int       `json:"chunk_count" db:"chunk_count"`
	CreatedAt  time.Time `json:"created_at"  db:"created_at"`
}

// IngestResult reports the outcome of one ingestion call.
type IngestResult struct {
	DocumentName    string `json:"document_name"`
	ChunksCreated   int    `json:"chunks_created"`
	TotalCharacters int    `json:"total_characters"`
	Message         string `json:"message"`
}
