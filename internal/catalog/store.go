package catalog

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/atomicstack/marquee/internal/logging/events"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS sections (
    id       TEXT PRIMARY KEY,
    name     TEXT NOT NULL,
    position INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS titles (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    year       INTEGER NOT NULL DEFAULT 0,
    kind       TEXT NOT NULL DEFAULT 'film',
    tagline    TEXT NOT NULL DEFAULT '',
    section_id TEXT NOT NULL REFERENCES sections(id) ON DELETE CASCADE,
    position   INTEGER NOT NULL DEFAULT 0,
    released   INTEGER NOT NULL DEFAULT 1,
    featured   INTEGER NOT NULL DEFAULT 0,
    runtime    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS progress (
    title_id   TEXT PRIMARY KEY REFERENCES titles(id) ON DELETE CASCADE,
    seconds    INTEGER NOT NULL DEFAULT 0,
    updated_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS my_list (
    title_id TEXT PRIMARY KEY REFERENCES titles(id) ON DELETE CASCADE,
    added_at TEXT NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_titles_section ON titles(section_id, position);
`

const titleColumns = `t.id, t.name, t.year, t.kind, t.tagline, t.section_id,
	t.position, t.released, t.featured, t.runtime, COALESCE(p.seconds, 0)`

// Store wraps the sqlite catalog database.
type Store struct {
	db *sql.DB
}

// Open opens sqlite with sensible defaults and ensures the schema exists.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	s := &Store{db: db}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	events.Catalog.Open(path)
	return s, nil
}

func (s *Store) init() error {
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Empty reports whether the catalog holds no titles yet.
func (s *Store) Empty() (bool, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM titles`).Scan(&count); err != nil {
		return false, fmt.Errorf("count titles: %w", err)
	}
	return count == 0, nil
}

// withTx runs fn in a transaction.
func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// Sections returns every shelf in display order, each with its titles in
// position order and resume progress joined in. A non-empty saved list is
// prepended as a synthesized My List section.
func (s *Store) Sections() ([]Section, error) {
	rows, err := s.db.Query(`
		SELECT s.id, s.name, s.position, ` + titleColumns + `
		FROM sections s
		JOIN titles t ON t.section_id = s.id
		LEFT JOIN progress p ON p.title_id = t.id
		ORDER BY s.position ASC, t.position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sections: %w", err)
	}
	defer rows.Close()

	var out []Section
	for rows.Next() {
		var sec Section
		var t Title
		var released, featured int
		if err := rows.Scan(
			&sec.ID, &sec.Name, &sec.Position,
			&t.ID, &t.Name, &t.Year, &t.Kind, &t.Tagline, &t.Section,
			&t.Position, &released, &featured, &t.Runtime, &t.Resume,
		); err != nil {
			return nil, fmt.Errorf("scan section row: %w", err)
		}
		t.Released = released == 1
		t.Featured = featured == 1
		if len(out) == 0 || out[len(out)-1].ID != sec.ID {
			out = append(out, sec)
		}
		last := &out[len(out)-1]
		last.Titles = append(last.Titles, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read sections: %w", err)
	}

	saved, err := s.myList()
	if err != nil {
		return nil, err
	}
	if len(saved) > 0 {
		myList := Section{ID: MyListSectionID, Name: "My List", Position: -1, Titles: saved}
		out = append([]Section{myList}, out...)
	}
	events.Catalog.Refresh(len(out))
	return out, nil
}

// myList returns saved titles in the order they were added.
func (s *Store) myList() ([]Title, error) {
	rows, err := s.db.Query(`
		SELECT ` + titleColumns + `
		FROM my_list m
		JOIN titles t ON t.id = m.title_id
		LEFT JOIN progress p ON p.title_id = t.id
		ORDER BY m.rowid ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query my list: %w", err)
	}
	defer rows.Close()

	var out []Title
	for rows.Next() {
		var t Title
		var released, featured int
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Year, &t.Kind, &t.Tagline, &t.Section,
			&t.Position, &released, &featured, &t.Runtime, &t.Resume,
		); err != nil {
			return nil, fmt.Errorf("scan saved title: %w", err)
		}
		t.Released = released == 1
		t.Featured = featured == 1
		out = append(out, t)
	}
	return out, rows.Err()
}

// Featured returns the hero title, or nil when none is flagged.
func (s *Store) Featured() (*Title, error) {
	row := s.db.QueryRow(`
		SELECT ` + titleColumns + `
		FROM titles t
		LEFT JOIN progress p ON p.title_id = t.id
		WHERE t.featured = 1
		ORDER BY t.position ASC
		LIMIT 1
	`)
	var t Title
	var released, featured int
	err := row.Scan(
		&t.ID, &t.Name, &t.Year, &t.Kind, &t.Tagline, &t.Section,
		&t.Position, &released, &featured, &t.Runtime, &t.Resume,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query featured: %w", err)
	}
	t.Released = released == 1
	t.Featured = featured == 1
	return &t, nil
}

// SaveProgress records how far into a title playback has reached. Negative
// positions clamp to zero.
func (s *Store) SaveProgress(titleID string, seconds int) error {
	if seconds < 0 {
		seconds = 0
	}
	_, err := s.db.Exec(`
		INSERT INTO progress (title_id, seconds, updated_at)
		VALUES (?, ?, datetime('now'))
		ON CONFLICT(title_id) DO UPDATE SET
			seconds = excluded.seconds,
			updated_at = excluded.updated_at
	`, titleID, seconds)
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	events.Catalog.Progress(titleID, seconds)
	return nil
}

// ToggleMyList adds the title to the saved list, or removes it when already
// present. The boolean reports whether the title is saved afterwards.
func (s *Store) ToggleMyList(titleID string) (bool, error) {
	added := false
	err := s.withTx(func(tx *sql.Tx) error {
		res, err := tx.Exec(`DELETE FROM my_list WHERE title_id = ?`, titleID)
		if err != nil {
			return err
		}
		removed, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if removed == 0 {
			if _, err := tx.Exec(`INSERT INTO my_list (title_id) VALUES (?)`, titleID); err != nil {
				return err
			}
			added = true
		}
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("toggle my list: %w", err)
	}
	events.Catalog.ListToggle(titleID, added)
	return added, nil
}
