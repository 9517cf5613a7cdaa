package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/iepirkumi/tenderlens/internal/domain"
	"github.com/iepirkumi/tenderlens/internal/port"
)

// Ensure VectorStore implements the chunk store port.
var _ port.ChunkStore = (*VectorStore)(nil)

// VectorStore handles chunk persistence and pgvector similarity search.
type VectorStore struct {
	store     *PostgresStore
	dimension int
}

// NewVectorStore creates a vector store backed by the given Postgres store.
func NewVectorStore(store *PostgresStore, dimension int) *VectorStore {
	return &VectorStore{store: store, dimension: dimension}
}

// InsertChunks persists a batch of chunks in one transaction and reports how
// many records committed. A failed transaction commits nothing.
func (v *VectorStore) InsertChunks(ctx context.Context, chunks []domain.Chunk) (int, error) {
	if len(chunks) == 0 {
		return 0, nil
	}

	tx, err := v.store.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO document_chunks (id, document_name, chunk_index, content, plain_text, metadata, embedding)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`)
	if err != nil {
		return 0, fmt.Errorf("prepare: %w", err)
	}
	defer stmt.Close()

	for _, c := range chunks {
		metadata, err := json.Marshal(c.Metadata)
		if err != nil {
			return 0, fmt.Errorf("marshal metadata: %w", err)
		}
		if _, err := stmt.ExecContext(ctx,
			c.ID, c.DocumentName, c.ChunkIndex, c.Content, c.PlainText, metadata, vectorToString(c.Vector),
		); err != nil {
			return 0, fmt.Errorf("insert chunk %d of %q: %w", c.ChunkIndex, c.DocumentName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(chunks), nil
}

// DeleteByDocument removes all chunks for a document name.
func (v *VectorStore) DeleteByDocument(ctx context.Context, name string) (int64, error) {
	res, err := v.store.db.ExecContext(ctx, `DELETE FROM document_chunks WHERE document_name = $1`, name)
	if err != nil {
		return 0, fmt.Errorf("delete chunks of %q: %w", name, err)
	}
	deleted, _ := res.RowsAffected()
	return deleted, nil
}

// ListByDocument returns a document's chunks ordered by chunk index.
func (v *VectorStore) ListByDocument(ctx context.Context, name string) ([]domain.Chunk, error) {
	query := `SELECT id, document_name, chunk_index, content, plain_text, metadata, created_at
	          FROM document_chunks
	          WHERE document_name = $1
	          ORDER BY chunk_index ASC`

	rows, err := v.store.db.QueryContext(ctx, query, name)
	if err != nil {
		return nil, fmt.Errorf("list chunks of %q: %w", name, err)
	}
	defer rows.Close()
	return scanChunks(rows)
}

// ListDocuments returns one summary per distinct document name, oldest first.
func (v *VectorStore) ListDocuments(ctx context.Context) ([]domain.DocumentSummary, error) {
	query := `SELECT document_name, COUNT(*), MIN(created_at)
	          FROM document_chunks
	          GROUP BY document_name
	          ORDER BY MIN(created_at) ASC`

	rows, err := v.store.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.DocumentSummary
	for rows.Next() {
		var d domain.DocumentSummary
		if err := rows.Scan(&d.Name, &d.ChunkCount, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// ListAll returns up to limit chunks across all documents. Ordering by
// (chunk_index, document_name) interleaves documents from their heads, so a
// single large document cannot consume the whole window before the others
// contribute.
func (v *VectorStore) ListAll(ctx context.Context, limit int) ([]domain.Chunk, error) {
	query := `SELECT id, document_name, chunk_index, content, plain_text, metadata, created_at
	          FROM document_chunks
	          ORDER BY chunk_index ASC, document_name ASC
	          LIMIT $1`

	rows, err := v.store.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list all chunks: %w", err)
	}
	defer rows.Close()
	return scanChunks(rows)
}

// SearchSimilar performs a cosine similarity search over all documents.
// A database without the pgvector capability reports ErrRetrievalUnavailable
// so the caller can fall back, distinct from a legitimate empty result.
func (v *VectorStore) SearchSimilar(ctx context.Context, vector []float32, threshold float64, topK int) ([]domain.ScoredChunk, error) {
	vectorStr := vectorToString(vector)
	query := `SELECT id, document_name, chunk_index, content, plain_text, metadata, created_at,
	                 1 - (embedding <=> $1::vector) AS similarity
	          FROM document_chunks
	          WHERE 1 - (embedding <=> $1::vector) >= $2
	          ORDER BY embedding <=> $1::vector ASC, created_at ASC, id ASC
	          LIMIT $3`

	rows, err := v.store.db.QueryContext(ctx, query, vectorStr, threshold, topK)
	if err != nil {
		if isVectorUnavailable(err) {
			return nil, fmt.Errorf("%w: %v", port.ErrRetrievalUnavailable, err)
		}
		return nil, fmt.Errorf("search similar: %w", err)
	}
	defer rows.Close()

	var results []domain.ScoredChunk
	for rows.Next() {
		var sc domain.ScoredChunk
		var metadata []byte
		if err := rows.Scan(
			&sc.ID, &sc.DocumentName, &sc.ChunkIndex, &sc.Content, &sc.PlainText,
			&metadata, &sc.CreatedAt, &sc.Similarity,
		); err != nil {
			return nil, fmt.Errorf("scan similar: %w", err)
		}
		if err := json.Unmarshal(metadata, &sc.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
		results = append(results, sc)
	}
	return results, rows.Err()
}

func scanChunks(rows *sql.Rows) ([]domain.Chunk, error) {
	var chunks []domain.Chunk
	for rows.Next() {
		var c domain.Chunk
		var metadata []byte
		if err := rows.Scan(&c.ID, &c.DocumentName, &c.ChunkIndex, &c.Content, &c.PlainText, &metadata, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		if err := json.Unmarshal(metadata, &c.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal metadata: %w", err)
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

// Postgres codes that mean the vector capability itself is missing, as
// opposed to a failing query.
var unavailableCodes = map[pq.ErrorCode]bool{
	"42704": true, // undefined_object: vector type missing
	"42883": true, // undefined_function: <=> operator missing
	"42P01": true, // undefined_table
	"0A000": true, // feature_not_supported
}

func isVectorUnavailable(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return unavailableCodes[pqErr.Code]
	}
	return false
}

// vectorToString converts a float32 slice to pgvector string format: [0.1,0.2,0.3].
func vectorToString(v []float32) string {
	parts := make([]string, len(v))
	for i, val := range v {
		parts[i] = fmt.Sprintf("%g", val)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
