package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditEntry is one recorded dispatch.
type AuditEntry struct {
	ID        string
	Line      string
	Command   string
	Outcome   string
	CreatedAt time.Time
}

// AuditStore records and lists dispatched console lines.
type AuditStore struct {
	db *sql.DB
}

// NewAuditStore creates an audit store over db.
func NewAuditStore(db *sql.DB) *AuditStore {
	return &AuditStore{db: db}
}

// Record inserts one dispatch entry.
func (s *AuditStore) Record(ctx context.Context, line, command, outcome string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dispatch_log (id, line, command, outcome, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		uuid.NewString(), line, command, outcome,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record dispatch: %w", err)
	}
	return nil
}

// Recent returns the most recent entries, newest first.
func (s *AuditStore) Recent(ctx context.Context, limit int) ([]AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, line, command, outcome, created_at
		 FROM dispatch_log
		 ORDER BY created_at DESC, id
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query dispatch log: %w", err)
	}
	defer rows.Close()

	var entries []AuditEntry
	for rows.Next() {
		var entry AuditEntry
		var created string
		if err := rows.Scan(&entry.ID, &entry.Line, &entry.Command, &entry.Outcome, &created); err != nil {
			return nil, fmt.Errorf("scan dispatch log: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, created); err == nil {
			entry.CreatedAt = ts
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Prune deletes entries older than retention.
func (s *AuditStore) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-retention).Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM dispatch_log WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune dispatch log: %w", err)
	}
	return res.RowsAffected()
}
