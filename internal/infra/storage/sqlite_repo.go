package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/PatrikSjolin/hollowheart/internal/domain/narration"
	"github.com/PatrikSjolin/hollowheart/internal/events"
)

// ---------------------------------------------------------
// SQLiteSnapshotRepository
// ---------------------------------------------------------

// SQLiteSnapshotRepository implements SnapshotRepository for SQLite.
type SQLiteSnapshotRepository struct {
	db *sql.DB
}

func NewSQLiteSnapshotRepository(db *sql.DB) *SQLiteSnapshotRepository {
	return &SQLiteSnapshotRepository{db: db}
}

func (r *SQLiteSnapshotRepository) Upsert(ctx context.Context, rec SnapshotRecord) error {
	if rec.SavedAt.IsZero() {
		rec.SavedAt = time.Now()
	}
	query := `
		INSERT INTO characters (name, snapshot, depth, record_depth, saved_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			snapshot=excluded.snapshot,
			depth=excluded.depth,
			record_depth=excluded.record_depth,
			saved_at=excluded.saved_at
	`
	_, err := r.db.ExecContext(ctx, query, rec.Name, string(rec.Data), rec.Depth, rec.RecordDepth, rec.SavedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}
	return nil
}

func (r *SQLiteSnapshotRepository) Get(ctx context.Context, name string) (*SnapshotRecord, error) {
	query := `SELECT name, snapshot, depth, record_depth, saved_at FROM characters WHERE name = ?`
	var rec SnapshotRecord
	var data string
	err := r.db.QueryRowContext(ctx, query, name).Scan(&rec.Name, &data, &rec.Depth, &rec.RecordDepth, &rec.SavedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSnapshot
		}
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	rec.Data = []byte(data)
	return &rec, nil
}

func (r *SQLiteSnapshotRepository) Delete(ctx context.Context, name string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM characters WHERE name = ?`, name)
	return err
}

// ---------------------------------------------------------
// SQLiteLogRepository
// ---------------------------------------------------------

// SQLiteLogRepository implements LogRepository for SQLite.
type SQLiteLogRepository struct {
	db *sql.DB
}

func NewSQLiteLogRepository(db *sql.DB) *SQLiteLogRepository {
	return &SQLiteLogRepository{db: db}
}

func (r *SQLiteLogRepository) Append(ctx context.Context, name string, line events.LogLine) error {
	query := `
		INSERT INTO log_lines (character, seq, timestamp, kind, message, style, title)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := r.db.ExecContext(ctx, query,
		name, line.Seq, line.Time, string(line.Kind), line.Message, string(line.Style), line.Title,
	)
	if err != nil {
		return fmt.Errorf("failed to append log line: %w", err)
	}
	return nil
}

func (r *SQLiteLogRepository) Recent(ctx context.Context, name string, limit int) ([]events.LogLine, error) {
	query := `
		SELECT seq, timestamp, kind, message, style, title FROM (
			SELECT seq, timestamp, kind, message, style, title FROM log_lines
			WHERE character = ? ORDER BY seq DESC LIMIT ?
		) ORDER BY seq ASC
	`
	rows, err := r.db.QueryContext(ctx, query, name, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []events.LogLine
	for rows.Next() {
		var l events.LogLine
		var kind, style string
		if err := rows.Scan(&l.Seq, &l.Time, &kind, &l.Message, &style, &l.Title); err != nil {
			return nil, err
		}
		l.Kind = events.LineKind(kind)
		l.Style = narration.Style(style)
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (r *SQLiteLogRepository) LastSeq(ctx context.Context, name string) (int64, error) {
	var seq sql.NullInt64
	err := r.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM log_lines WHERE character = ?`, name).Scan(&seq)
	if err != nil {
		return 0, err
	}
	return seq.Int64, nil
}
