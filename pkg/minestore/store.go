// Package minestore persists finished mining runs (a drained
// co-occurrence output plus the parameters that produced it) to a
// SQLite file for later inspection. This is a result store, not the
// live hash index: the working table itself is never persisted here.
package minestore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver, no cgo

	"github.com/liliang-cn/lshmine/pkg/container"
)

// Kind distinguishes which hash family produced a run.
type Kind string

const (
	KindL1 Kind = "l1"
	KindLp Kind = "lp"
)

// RunParams is the parameter set a run was mined with.
type RunParams struct {
	Kind          Kind
	TupleSize     uint32
	Repetitions   uint32
	Capacity      uint32
	MaxValueOrNil *uint32 // set for Kind == KindL1
	WidthOrNil    *float64 // set for Kind == KindLp
	Seed          uint64
}

// Store is a SQLite-backed archive of finished mining runs.
type Store struct {
	db *sql.DB
}

// Open opens or creates a minestore database at path, with WAL mode
// and a busy timeout so concurrent readers don't fail on a writer.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("minestore: open: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.init(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	tuple_size INTEGER NOT NULL,
	repetitions INTEGER NOT NULL,
	capacity INTEGER NOT NULL,
	max_value INTEGER,
	width REAL,
	seed INTEGER NOT NULL,
	input_size INTEGER NOT NULL,
	created_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS groups (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	member_count INTEGER NOT NULL,
	PRIMARY KEY (run_id, position)
);
CREATE TABLE IF NOT EXISTS group_members (
	run_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	member_index INTEGER NOT NULL,
	record_id INTEGER NOT NULL,
	FOREIGN KEY (run_id, position) REFERENCES groups(run_id, position) ON DELETE CASCADE
);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("minestore: init schema: %w", err)
	}
	return nil
}

// SaveRun persists a finished mining run's parameters and its drained
// co-occurrence groups under runID.
func (s *Store) SaveRun(ctx context.Context, runID string, params RunParams, groups *container.ListDB) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("minestore: begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, kind, tuple_size, repetitions, capacity, max_value, width, seed, input_size, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, string(params.Kind), params.TupleSize, params.Repetitions, params.Capacity,
		nullableUint32(params.MaxValueOrNil), nullableFloat64(params.WidthOrNil), params.Seed,
		groups.Dim, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("minestore: insert run: %w", err)
	}

	for pos, group := range groups.Lists() {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO groups (run_id, position, member_count) VALUES (?, ?, ?)`,
			runID, pos, group.Size(),
		); err != nil {
			return fmt.Errorf("minestore: insert group %d: %w", pos, err)
		}
		for idx, entry := range group.Data() {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO group_members (run_id, position, member_index, record_id) VALUES (?, ?, ?, ?)`,
				runID, pos, idx, entry.Item,
			); err != nil {
				return fmt.Errorf("minestore: insert member %d/%d: %w", pos, idx, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("minestore: commit: %w", err)
	}
	return nil
}

// RunSummary is the parameter and size summary returned by LoadRun.
type RunSummary struct {
	RunParams
	RunID      string
	InputSize  int
	CreatedAt  string
	GroupSizes []int
}

// LoadRun reads a run's parameters and the sizes of its drained groups
// (not the member ids themselves — see LoadGroup for that).
func (s *Store) LoadRun(ctx context.Context, runID string) (*RunSummary, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT kind, tuple_size, repetitions, capacity, max_value, width, seed, input_size, created_at
		 FROM runs WHERE id = ?`, runID)

	var summary RunSummary
	var kind string
	var maxValue sql.NullInt64
	var width sql.NullFloat64
	summary.RunID = runID
	if err := row.Scan(&kind, &summary.TupleSize, &summary.Repetitions, &summary.Capacity,
		&maxValue, &width, &summary.Seed, &summary.InputSize, &summary.CreatedAt); err != nil {
		return nil, fmt.Errorf("minestore: load run %s: %w", runID, err)
	}
	summary.Kind = Kind(kind)
	if maxValue.Valid {
		v := uint32(maxValue.Int64)
		summary.MaxValueOrNil = &v
	}
	if width.Valid {
		summary.WidthOrNil = &width.Float64
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT member_count FROM groups WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("minestore: load groups for %s: %w", runID, err)
	}
	defer rows.Close()
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, fmt.Errorf("minestore: scan group size: %w", err)
		}
		summary.GroupSizes = append(summary.GroupSizes, n)
	}
	return &summary, rows.Err()
}

// DebugString renders the run summary in the same header-block style
// as lsh.HashTable.DebugString: a banner line, one line per parameter,
// and the roster of drained group sizes.
func (s *RunSummary) DebugString() string {
	var b strings.Builder
	b.WriteString("========== Mining run =========\n")
	fmt.Fprintf(&b, "Run: %s\n", s.RunID)
	fmt.Fprintf(&b, "Kind: %s\n", s.Kind)
	fmt.Fprintf(&b, "Table size: %d\n", s.Capacity)
	fmt.Fprintf(&b, "Sketch size: %d\n", s.TupleSize)
	fmt.Fprintf(&b, "Repetitions: %d\n", s.Repetitions)
	if s.MaxValueOrNil != nil {
		fmt.Fprintf(&b, "Max feature value: %d\n", *s.MaxValueOrNil)
	}
	if s.WidthOrNil != nil {
		fmt.Fprintf(&b, "Width: %g\n", *s.WidthOrNil)
	}
	fmt.Fprintf(&b, "Seed: %d\n", s.Seed)
	fmt.Fprintf(&b, "Input size: %d\n", s.InputSize)
	fmt.Fprintf(&b, "Created at: %s\n", s.CreatedAt)
	b.WriteString("Group sizes: ")
	for _, n := range s.GroupSizes {
		fmt.Fprintf(&b, "%d ", n)
	}
	b.WriteByte('\n')
	return b.String()
}

// LoadGroup returns the record ids of the group at position pos within
// run runID, in insertion order.
func (s *Store) LoadGroup(ctx context.Context, runID string, pos int) ([]uint32, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT record_id FROM group_members WHERE run_id = ? AND position = ? ORDER BY member_index`,
		runID, pos)
	if err != nil {
		return nil, fmt.Errorf("minestore: load group %d for %s: %w", pos, runID, err)
	}
	defer rows.Close()

	var members []uint32
	for rows.Next() {
		var id uint32
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("minestore: scan member: %w", err)
		}
		members = append(members, id)
	}
	return members, rows.Err()
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func nullableUint32(v *uint32) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableFloat64(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
