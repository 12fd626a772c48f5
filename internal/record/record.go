// Package record stores engine frames in a SQLite database so runs can be
// replayed or inspected offline.
package record

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"starfield/internal/core"
)

// ErrNoFrame is returned when a frame number was never recorded.
var ErrNoFrame = errors.New("record: no such frame")

const schema = `
CREATE TABLE IF NOT EXISTS frames (
	frame INTEGER PRIMARY KEY,
	scene TEXT NOT NULL,
	count INTEGER NOT NULL);
CREATE TABLE IF NOT EXISTS particles (
	frame INTEGER NOT NULL,
	id    INTEGER NOT NULL,
	x REAL, y REAL, z REAL,
	r REAL, g REAL, b REAL,
	PRIMARY KEY (frame, id));
`

const (
	insertFrame    = `INSERT INTO frames (frame, scene, count) VALUES (?, ?, ?);`
	insertParticle = `INSERT INTO particles VALUES (?, ?, ?, ?, ?, ?, ?, ?);`
	queryHeader    = `SELECT scene, count FROM frames WHERE frame = ?;`
	queryFrame     = `SELECT id, x, y, z, r, g, b FROM particles WHERE frame = ? ORDER BY id ASC;`
	queryFrames    = `SELECT frame FROM frames ORDER BY frame ASC;`
)

// Frame is one recorded snapshot.
type Frame struct {
	Number int
	Scene  string
	Attrs  *core.Attrs
}

// Recorder writes frames to a database file.
type Recorder struct {
	db     *sql.DB
	insert *sql.Stmt
}

// Open creates or opens the database at path. When fresh is set an existing
// file is refused.
func Open(path string, fresh bool) (*Recorder, error) {
	if fresh {
		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("record: %s exists", path)
		}
	}
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=journal_mode(OFF)&_pragma=synchronous(OFF)")
	if err != nil {
		return nil, fmt.Errorf("record: open %s: %w", path, err)
	}
	// sqlite allows one writer at a time.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("record: create tables: %w", err)
	}
	stmt, err := db.Prepare(insertParticle)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("record: prepare: %w", err)
	}
	return &Recorder{db: db, insert: stmt}, nil
}

// Record stores attrs as frame n of scene in a single transaction.
func (r *Recorder) Record(ctx context.Context, n int, scene string, attrs *core.Attrs) error {
	if attrs == nil {
		return fmt.Errorf("record: frame %d has no particles", n)
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	count := attrs.Count()
	if _, err := tx.ExecContext(ctx, insertFrame, n, scene, count); err != nil {
		return fmt.Errorf("record: frame %d: %w", n, err)
	}
	stmt := tx.StmtContext(ctx, r.insert)
	for i := 0; i < count; i++ {
		x, y, z := attrs.Position(i)
		cr, cg, cb := attrs.Color(i)
		if _, err := stmt.ExecContext(ctx, n, i, x, y, z, cr, cg, cb); err != nil {
			return fmt.Errorf("record: frame %d particle %d: %w", n, i, err)
		}
	}
	return tx.Commit()
}

// Frame loads frame n.
func (r *Recorder) Frame(ctx context.Context, n int) (Frame, error) {
	f := Frame{Number: n}
	var count int
	err := r.db.QueryRowContext(ctx, queryHeader, n).Scan(&f.Scene, &count)
	if errors.Is(err, sql.ErrNoRows) {
		return Frame{}, ErrNoFrame
	}
	if err != nil {
		return Frame{}, err
	}
	rows, err := r.db.QueryContext(ctx, queryFrame, n)
	if err != nil {
		return Frame{}, err
	}
	defer rows.Close()

	f.Attrs = core.NewAttrs(count)
	for rows.Next() {
		var id int
		var x, y, z, cr, cg, cb float64
		if err := rows.Scan(&id, &x, &y, &z, &cr, &cg, &cb); err != nil {
			return Frame{}, err
		}
		if id < 0 || id >= count {
			return Frame{}, fmt.Errorf("record: frame %d has particle %d of %d", n, id, count)
		}
		copy(f.Attrs.Positions[id*3:], []float32{float32(x), float32(y), float32(z)})
		copy(f.Attrs.Colors[id*3:], []float32{float32(cr), float32(cg), float32(cb)})
	}
	return f, rows.Err()
}

// Frames lists the recorded frame numbers in order.
func (r *Recorder) Frames(ctx context.Context) ([]int, error) {
	rows, err := r.db.QueryContext(ctx, queryFrames)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// Close releases the database.
func (r *Recorder) Close() error {
	r.insert.Close()
	return r.db.Close()
}
