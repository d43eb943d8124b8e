// Package journal records generated command lists in a SQLite file so a
// run can be inspected or replayed later.
package journal

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/reoring/sempcfg/command"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	mode TEXT NOT NULL,
	source TEXT NOT NULL,
	created INTEGER NOT NULL,
	applied INTEGER,
	error TEXT
);

CREATE TABLE IF NOT EXISTS commands (
	run_id INTEGER NOT NULL REFERENCES runs(id),
	seq INTEGER NOT NULL,
	method TEXT NOT NULL,
	path TEXT NOT NULL,
	payload TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (run_id, seq)
) WITHOUT ROWID;
`

// Run is one recorded command list.
type Run struct {
	ID       int64
	Mode     string
	Source   string
	Created  time.Time
	Commands int
	// Applied is the number of commands the executor confirmed, or -1 when
	// the run was never replayed.
	Applied int
	Error   string
}

// Journal is a handle on the SQLite file.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// Open creates the file and tables if needed.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Journal{db: db, now: time.Now}, nil
}

func (j *Journal) Close() error { return j.db.Close() }

// Record stores l in emission order and returns the new run id.
func (j *Journal) Record(mode, source string, l *command.List) (int64, error) {
	tx, err := j.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`INSERT INTO runs (mode, source, created) VALUES (?, ?, ?)`, mode, source, j.now().Unix())
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(`INSERT INTO commands (run_id, seq, method, path, payload) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer func() { _ = stmt.Close() }()
	for i, c := range l.Commands() {
		if _, err := stmt.Exec(id, i, c.Method.String(), c.Path, c.Payload); err != nil {
			return 0, fmt.Errorf("insert command %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// MarkApplied stores the outcome of replaying run id.
func (j *Journal) MarkApplied(id int64, applied int, runErr error) error {
	var msg sql.NullString
	if runErr != nil {
		msg = sql.NullString{String: runErr.Error(), Valid: true}
	}
	res, err := j.db.Exec(`UPDATE runs SET applied = ?, error = ? WHERE id = ?`, applied, msg, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("journal: no run %d", id)
	}
	return nil
}

// Load returns the commands of run id in their original order.
func (j *Journal) Load(id int64) (*command.List, error) {
	var exists int
	if err := j.db.QueryRow(`SELECT COUNT(*) FROM runs WHERE id = ?`, id).Scan(&exists); err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, fmt.Errorf("journal: no run %d", id)
	}
	rows, err := j.db.Query(`SELECT method, path, payload FROM commands WHERE run_id = ? ORDER BY seq`, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	l := command.NewList()
	for rows.Next() {
		var method, path, payload string
		if err := rows.Scan(&method, &path, &payload); err != nil {
			return nil, err
		}
		m, err := command.ParseMethod(method)
		if err != nil {
			return nil, fmt.Errorf("journal: run %d: %w", id, err)
		}
		l.Append(m, path, payload)
	}
	return l, rows.Err()
}

// Runs lists every recorded run, newest first.
func (j *Journal) Runs() ([]Run, error) {
	rows, err := j.db.Query(`
		SELECT r.id, r.mode, r.source, r.created, COALESCE(r.applied, -1), COALESCE(r.error, ''),
			(SELECT COUNT(*) FROM commands c WHERE c.run_id = r.id)
		FROM runs r ORDER BY r.id DESC`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Run
	for rows.Next() {
		var r Run
		var created int64
		if err := rows.Scan(&r.ID, &r.Mode, &r.Source, &created, &r.Applied, &r.Error, &r.Commands); err != nil {
			return nil, err
		}
		r.Created = time.Unix(created, 0)
		out = append(out, r)
	}
	return out, rows.Err()
}
