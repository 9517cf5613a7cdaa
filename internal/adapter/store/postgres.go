package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/iepirkumi/tenderlens/internal/domain"
)

// PostgresStore handles the database connection and relational operations.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens a connection and returns a store instance.
func NewPostgresStore(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// Close closes the database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use in transactions.
func (s *PostgresStore) DB() *sql.DB {
	return s.db
}

// EnsureSchema creates the tables this service needs. pgvector is optional:
// when the extension cannot be provisioned the embedding column degrades to
// TEXT, inserts keep working, and similarity search reports itself
// unavailable so retrieval falls back.
func (s *PostgresStore) EnsureSchema(ctx context.Context, dimension int) error {
	embeddingType := fmt.Sprintf("vector(%d)", dimension)
	if _, err := s.db.ExecContext(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		slog.Warn("pgvector extension unavailable, similarity search will be degraded", "error", err)
		embeddingType = "TEXT"
	}

	chunksTable := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS document_chunks (
			id UUID PRIMARY KEY,
			document_name TEXT NOT NULL,
			chunk_index INT NOT NULL,
			content TEXT NOT NULL,
			plain_text TEXT NOT NULL,
			metadata JSONB NOT NULL DEFAULT '{}',
			embedding %s,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`, embeddingType)

	statements := []string{
		chunksTable,
		`CREATE INDEX IF NOT EXISTS idx_document_chunks_name
			ON document_chunks (document_name, chunk_index)`,
		`CREATE TABLE IF NOT EXISTS audit_logs (
			id BIGSERIAL PRIMARY KEY,
			action TEXT NOT NULL,
			resource TEXT NOT NULL,
			details TEXT NOT NULL DEFAULT '',
			ip TEXT NOT NULL DEFAULT '',
			user_agent TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// --- Audit log ---

// WriteAudit persists one audit record.
func (s *PostgresStore) WriteAudit(action, resource, details, ip, userAgent string) error {
	query := `INSERT INTO audit_logs (action, resource, details, ip, user_agent)
	          VALUES ($1, $2, $3, $4, $5)`
	_, err := s.db.Exec(query, action, resource, details, ip, userAgent)
	if err != nil {
		return fmt.Errorf("write audit: %w", err)
	}
	return nil
}

// ListAuditLogs returns the most recent audit entries, newest first.
func (s *PostgresStore) ListAuditLogs(ctx context.Context, limit int) ([]domain.AuditEntry, error) {
	query := `SELECT id, action, resource, details, ip, user_agent, created_at
	          FROM audit_logs ORDER BY created_at DESC LIMIT $1`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var entries []domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry
		if err := rows.Scan(&e.ID, &e.Action, &e.Resource, &e.Details, &e.IP, &e.UserAgent, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
