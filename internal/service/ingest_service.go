package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/iepirkumi/tenderlens/internal/chunker"
	"github.com/iepirkumi/tenderlens/internal/domain"
	"github.com/iepirkumi/tenderlens/internal/extractor"
	"github.com/iepirkumi/tenderlens/internal/port"
)

// IngestService runs the document ingestion pipeline: extract, chunk, embed,
// store.
type IngestService struct {
	ai        port.AIProvider
	chunks    port.ChunkStore
	chunkSize int
	minLen    int
}

// NewIngestService creates a new ingestion service.
func NewIngestService(ai port.AIProvider, chunks port.ChunkStore, chunkSize, minLen int) *IngestService {
	if chunkSize <= 0 {
		chunkSize = chunker.DefaultTargetSize
	}
	if minLen <= 0 {
		minLen = chunker.DefaultMinLength
	}
	return &IngestService{ai: ai, chunks: chunks, chunkSize: chunkSize, minLen: minLen}
}

// IngestRequest describes one uploaded file.
type IngestRequest struct {
	FileName     string
	DocumentName string // defaults to FileName without extension
	Data         []byte
	Replace      bool   // delete existing chunks for the document first
	Origin       string // metadata source tag, defaults to uploaded_document
}

// Ingest processes one document end to end. Extraction and embedding failures
// abort before anything is written; with Replace set, a delete failure is
// logged and the insert proceeds alongside the old chunks.
func (s *IngestService) Ingest(ctx context.Context, req IngestRequest) (*domain.IngestResult, error) {
	name := req.DocumentName
	if name == "" {
		name = strings.TrimSuffix(req.FileName, filepath.Ext(req.FileName))
	}
	origin := req.Origin
	if origin == "" {
		origin = domain.SourceUploaded
	}

	slog.Info("ingesting document", "name", name, "file", req.FileName, "bytes", len(req.Data), "replace", req.Replace)

	ex, err := extractor.Extract(req.FileName, req.Data)
	if err != nil {
		return nil, err
	}

	parts := s.split(ex)
	if len(parts) == 0 {
		return &domain.IngestResult{
			DocumentName:    name,
			ChunksCreated:   0,
			TotalCharacters: len(ex.PlainText),
			Message:         fmt.Sprintf("Dokumentā %q nav indeksējama satura", name),
		}, nil
	}

	// Embed sequentially; the first failure aborts with nothing written.
	chunks := make([]domain.Chunk, len(parts))
	for i, part := range parts {
		vector, err := s.ai.Embed(ctx, part.Plain)
		if err != nil {
			return nil, fmt.Errorf("embed chunk %d of %q: %w", i, name, err)
		}
		chunks[i] = domain.Chunk{
			ID:           uuid.New().String(),
			DocumentName: name,
			ChunkIndex:   i,
			Content:      part.Display,
			PlainText:    part.Plain,
			Metadata: domain.ChunkMetadata{
				Source:      origin,
				TotalChunks: len(parts),
				HasMarkup:   ex.HasMarkup,
			},
			Vector: vector,
		}
	}

	if req.Replace {
		deleted, err := s.chunks.DeleteByDocument(ctx, name)
		if err != nil {
			// Permissive: the insert still proceeds, old chunks just remain
			// alongside the new set.
			slog.Error("delete before replace failed", "name", name, "error", err)
		} else if deleted > 0 {
			slog.Info("replaced existing chunks", "name", name, "deleted", deleted)
		}
	}

	inserted, err := s.chunks.InsertChunks(ctx, chunks)
	if err != nil {
		return nil, fmt.Errorf("store chunks of %q: %w", name, err)
	}

	return &domain.IngestResult{
		DocumentName:    name,
		ChunksCreated:   inserted,
		TotalCharacters: len(ex.PlainText),
		Message:         fmt.Sprintf("Dokuments %q veiksmīgi apstrādāts ar %d fragmentiem", name, inserted),
	}, nil
}

// split applies the chunking policy to an extraction: rich-text sources chunk
// over their aligned blocks, plain sources over blank-line paragraphs.
func (s *IngestService) split(ex *extractor.Extraction) []chunker.BlockChunk {
	if ex.HasMarkup {
		return chunker.SplitBlocks(ex.Blocks, s.chunkSize, s.minLen)
	}
	texts := chunker.SplitText(ex.PlainText, s.chunkSize, s.minLen)
	parts := make([]chunker.BlockChunk, len(texts))
	for i, t := range texts {
		parts[i] = chunker.BlockChunk{Plain: t, Display: t}
	}
	return parts
}
