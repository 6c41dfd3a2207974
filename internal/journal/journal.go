// Package journal persists the engine's ordered event record to SQLite.
//
// The journal is observability, not state: the engine never reads it back
// to make decisions, and a write failure is logged and skipped by the
// caller. What it buys is a durable, totally ordered account of every
// reconciliation a session performed - which event fired, in what order,
// and which UI effects it produced - queryable after the session ends.
package journal

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Journal is a durable event journal backed by SQLite.
// Implements the engine's Journal interface.
type Journal struct {
	db *sql.DB
}

// Open creates or opens a journal database at the given path.
// Applies required pragmas and the schema automatically.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//   - Foreign key enforcement
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time; a single connection
	// avoids SQLITE_BUSY under the engine's single-writer loop.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	if j.db == nil {
		return nil
	}
	return j.db.Close()
}

// Record inserts one processed event and its applied effects.
// Uses ON CONFLICT(seq) DO NOTHING for idempotency - re-recording the same
// seq is silently ignored, so a replayed session never duplicates rows.
func (j *Journal) Record(seq int64, kind, detail string, effects []string) error {
	tx, err := j.db.Begin()
	if err != nil {
		return fmt.Errorf("record event %d: %w", seq, err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO events (seq, kind, detail)
		VALUES (?, ?, ?)
		ON CONFLICT(seq) DO NOTHING
	`, seq, kind, detail)
	if err != nil {
		return fmt.Errorf("record event %d: %w", seq, err)
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("record event %d: %w", seq, err)
	}
	if inserted == 0 {
		// Already journaled; keep the original effects.
		return nil
	}

	for i, effect := range effects {
		if _, err := tx.Exec(`
			INSERT INTO effects (event_seq, idx, effect)
			VALUES (?, ?, ?)
		`, seq, i, effect); err != nil {
			return fmt.Errorf("record event %d effect %d: %w", seq, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record event %d: %w", seq, err)
	}
	return nil
}

// Entry is one journaled event with its effects, as read back.
type Entry struct {
	Seq        int64
	Kind       string
	Detail     string
	RecordedAt string
	Effects    []string
}

// LastSeq returns the highest journaled sequence number, or 0 when the
// journal is empty. A resumed session seeds its clock from this.
func (j *Journal) LastSeq() (int64, error) {
	var seq sql.NullInt64
	if err := j.db.QueryRow(`SELECT MAX(seq) FROM events`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("read last seq: %w", err)
	}
	if !seq.Valid {
		return 0, nil
	}
	return seq.Int64, nil
}

// ReadAll returns every journaled entry in sequence order.
func (j *Journal) ReadAll() ([]Entry, error) {
	return j.readEntries(`SELECT seq, kind, detail, recorded_at FROM events ORDER BY seq`)
}

// ReadRange returns entries with from <= seq <= to, in sequence order.
func (j *Journal) ReadRange(from, to int64) ([]Entry, error) {
	return j.readEntries(
		`SELECT seq, kind, detail, recorded_at FROM events WHERE seq >= ? AND seq <= ? ORDER BY seq`,
		from, to)
}

func (j *Journal) readEntries(query string, args ...any) ([]Entry, error) {
	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Seq, &e.Kind, &e.Detail, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan journal row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read journal: %w", err)
	}

	for i := range entries {
		effects, err := j.readEffects(entries[i].Seq)
		if err != nil {
			return nil, err
		}
		entries[i].Effects = effects
	}
	return entries, nil
}

func (j *Journal) readEffects(seq int64) ([]string, error) {
	rows, err := j.db.Query(`SELECT effect FROM effects WHERE event_seq = ? ORDER BY idx`, seq)
	if err != nil {
		return nil, fmt.Errorf("read effects for %d: %w", seq, err)
	}
	defer rows.Close()

	var effects []string
	for rows.Next() {
		var e string
		if err := rows.Scan(&e); err != nil {
			return nil, fmt.Errorf("scan effect row: %w", err)
		}
		effects = append(effects, e)
	}
	return effects, rows.Err()
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}
	return nil
}
