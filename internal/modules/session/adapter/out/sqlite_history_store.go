package out

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"focusfence/internal/modules/session/domain"
	sessionout "focusfence/internal/modules/session/port/out"
)

type SQLiteHistoryStore struct {
	db *sql.DB
}

// NewSQLiteHistoryStore shares db with the key/value store.
func NewSQLiteHistoryStore(db *sql.DB) (sessionout.HistoryStore, error) {
	store := &SQLiteHistoryStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteHistoryStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  origin TEXT NOT NULL,
  outcome TEXT NOT NULL,
  started_at TEXT NOT NULL,
  ended_at TEXT NOT NULL,
  planned_seconds INTEGER NOT NULL,
  elapsed_ticks INTEGER NOT NULL,
  progress REAL NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_ended_at ON sessions(ended_at);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryStore) Append(ctx context.Context, record domain.Record) error {
	const stmt = `
INSERT INTO sessions (id, origin, outcome, started_at, ended_at, planned_seconds, elapsed_ticks, progress)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  outcome=excluded.outcome,
  ended_at=excluded.ended_at,
  elapsed_ticks=excluded.elapsed_ticks,
  progress=excluded.progress;
`
	_, err := s.db.ExecContext(ctx, stmt,
		record.ID,
		string(record.Origin),
		string(record.Outcome),
		record.StartedAt.UTC().Format(time.RFC3339),
		record.EndedAt.UTC().Format(time.RFC3339),
		record.PlannedSeconds,
		record.ElapsedTicks,
		record.Progress,
	)
	if err != nil {
		return fmt.Errorf("append session %s: %w", record.ID, err)
	}
	return nil
}

// List returns the most recent records first. limit <= 0 means all.
func (s *SQLiteHistoryStore) List(ctx context.Context, limit int) ([]domain.Record, error) {
	query := `
SELECT id, origin, outcome, started_at, ended_at, planned_seconds, elapsed_ticks, progress
FROM sessions
ORDER BY ended_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	records := []domain.Record{}
	for rows.Next() {
		var (
			record             domain.Record
			origin, outcome    string
			startedAt, endedAt string
		)
		if err := rows.Scan(&record.ID, &origin, &outcome, &startedAt, &endedAt, &record.PlannedSeconds, &record.ElapsedTicks, &record.Progress); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		record.Origin = domain.Origin(origin)
		record.Outcome = domain.Outcome(outcome)
		if record.StartedAt, err = time.Parse(time.RFC3339, startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at of %s: %w", record.ID, err)
		}
		if record.EndedAt, err = time.Parse(time.RFC3339, endedAt); err != nil {
			return nil, fmt.Errorf("parse ended_at of %s: %w", record.ID, err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return records, nil
}

func (s *SQLiteHistoryStore) Summary(ctx context.Context, since time.Time) (domain.Summary, error) {
	const query = `
SELECT outcome, COUNT(*), COALESCE(SUM(elapsed_ticks), 0)
FROM sessions
WHERE ended_at >= ?
GROUP BY outcome`
	rows, err := s.db.QueryContext(ctx, query, since.UTC().Format(time.RFC3339))
	if err != nil {
		return domain.Summary{}, fmt.Errorf("summarise sessions: %w", err)
	}
	defer rows.Close()

	summary := domain.Summary{}
	for rows.Next() {
		var (
			outcome string
			count   int
			ticks   int
		)
		if err := rows.Scan(&outcome, &count, &ticks); err != nil {
			return domain.Summary{}, fmt.Errorf("scan summary: %w", err)
		}
		summary.FocusedTicks += ticks
		switch domain.Outcome(outcome) {
		case domain.OutcomeCompleted:
			summary.Completed = count
		case domain.OutcomeWithered:
			summary.Withered = count
		case domain.OutcomeAbandoned:
			summary.Abandoned = count
		}
	}
	if err := rows.Err(); err != nil {
		return domain.Summary{}, fmt.Errorf("iterate summary: %w", err)
	}
	return summary, nil
}
