// ABOUTME: SQLite-backed audit sink using modernc.org/sqlite.
// ABOUTME: Persists permission decisions beyond the in-memory trail.

package audit

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/lintgate/lintgate/internal/permission"
)

// SQLiteSink stores permission audit entries in a SQLite database.
type SQLiteSink struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteSink opens the audit database at the given path, creating it
// and its parent directories if needed.
func NewSQLiteSink(path string, logger *slog.Logger) (*SQLiteSink, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "audit")

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating audit directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening audit database: %w", err)
	}

	// WAL mode keeps concurrent decision recording from blocking reads.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteSink{db: db, logger: logger}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	logger.Info("audit database initialized", "path", path)
	return s, nil
}

func (s *SQLiteSink) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS permission_audit (
			audit_id TEXT PRIMARY KEY,
			event    TEXT NOT NULL,
			user_id  TEXT NOT NULL,
			groups   TEXT,
			action   TEXT NOT NULL,
			target   TEXT NOT NULL,
			allowed  INTEGER NOT NULL,
			reason   TEXT,
			ts       TEXT NOT NULL,

			CHECK (event IN ('GRANTED', 'DENIED')),
			CHECK (action IN ('tool_access', 'project_access'))
		);

		CREATE INDEX IF NOT EXISTS idx_permission_audit_ts ON permission_audit(ts DESC);
		CREATE INDEX IF NOT EXISTS idx_permission_audit_user ON permission_audit(user_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record implements permission.Sink.
func (s *SQLiteSink) Record(ctx context.Context, e permission.AuditEntry) error {
	query := `
		INSERT INTO permission_audit (audit_id, event, user_id, groups, action, target, allowed, reason, ts)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		e.ID,
		string(e.Event),
		e.UserID,
		strings.Join(e.Groups, ","),
		string(e.Action),
		e.Target,
		e.Allowed,
		e.Reason,
		e.Timestamp.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}

	s.logger.Debug("recorded audit entry", "id", e.ID, "user", e.UserID, "target", e.Target)
	return nil
}

// normalizeLimit applies default (100) and cap (1000) to a query limit.
func normalizeLimit(limit int) int {
	switch {
	case limit <= 0:
		return 100
	case limit > 1000:
		return 1000
	default:
		return limit
	}
}

// Recent returns the most recent entries, newest first.
func (s *SQLiteSink) Recent(ctx context.Context, limit int) ([]permission.AuditEntry, error) {
	limit = normalizeLimit(limit)

	query := `
		SELECT audit_id, event, user_id, groups, action, target, allowed, reason, ts
		FROM permission_audit
		ORDER BY ts DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying audit entries: %w", err)
	}
	defer rows.Close()

	var entries []permission.AuditEntry
	for rows.Next() {
		var e permission.AuditEntry
		var event, action, groupsStr, tsStr string

		if err := rows.Scan(&e.ID, &event, &e.UserID, &groupsStr, &action, &e.Target, &e.Allowed, &e.Reason, &tsStr); err != nil {
			return nil, fmt.Errorf("scanning audit row: %w", err)
		}

		e.Event = permission.AuditEvent(event)
		e.Action = permission.AuditAction(action)
		if groupsStr != "" {
			e.Groups = strings.Split(groupsStr, ",")
		}
		e.Timestamp, err = time.Parse(time.RFC3339, tsStr)
		if err != nil {
			return nil, fmt.Errorf("parsing timestamp: %w", err)
		}

		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating audit rows: %w", err)
	}

	if entries == nil {
		entries = []permission.AuditEntry{}
	}
	return entries, nil
}

// Close closes the underlying database.
func (s *SQLiteSink) Close() error {
	s.logger.Debug("closing audit database")
	return s.db.Close()
}

var _ permission.Sink = (*SQLiteSink)(nil)
