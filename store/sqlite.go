package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/younginvestor"
	_ "modernc.org/sqlite"
)

// SQLite keeps all slots in one table of a sqlite database file.
type SQLite struct {
	db *sql.DB
}

var _ Store = (*SQLite)(nil)

const schema = `CREATE TABLE IF NOT EXISTS saves (
	slot TEXT PRIMARY KEY,
	data TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

// NewSQLite opens (or creates) the database at path. ":memory:" is accepted.
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	if err := ensureSQLiteDir(path); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// a single connection keeps ":memory:" databases alive and serializes writes
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("cannot create saves table: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Load(ctx context.Context, slot string) (younginvestor.Snapshot, error) {
	if err := checkSlot(slot); err != nil {
		return younginvestor.Snapshot{}, err
	}
	var data string
	err := s.db.QueryRowContext(ctx, "SELECT data FROM saves WHERE slot = ?;", slot).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return younginvestor.Snapshot{}, fmt.Errorf("slot %q: %w", slot, fs.ErrNotExist)
	}
	if err != nil {
		return younginvestor.Snapshot{}, err
	}
	return jsonCodec.unmarshal([]byte(data))
}

func (s *SQLite) Save(ctx context.Context, slot string, snap younginvestor.Snapshot) error {
	if err := checkSlot(slot); err != nil {
		return err
	}
	data, err := jsonCodec.marshal(snap)
	if err != nil {
		return fmt.Errorf("cannot encode slot %q: %w", slot, err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO saves(slot, data, updated_at) VALUES(?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at;`,
		slot, string(data), time.Now().UTC().Format(time.RFC3339))
	return err
}

func (s *SQLite) List(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT slot FROM saves ORDER BY slot;")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (s *SQLite) Delete(ctx context.Context, slot string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM saves WHERE slot = ?;", slot)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("slot %q: %w", slot, fs.ErrNotExist)
	}
	return nil
}

func (s *SQLite) Close() error { return s.db.Close() }

func ensureSQLiteDir(path string) error {
	if path == ":memory:" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
