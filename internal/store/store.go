// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/verte-zerg/bloodroll/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when a component or entry id does not exist.
var ErrNotFound = errors.New("not found")

// Store wraps SQLite access for components and entries.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", withPragmas(path))
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	log.Info().Str("path", path).Msg("database initialized")
	return store, nil
}

func withPragmas(path string) string {
	dsn := path
	if !strings.Contains(path, "?") {
		dsn += "?"
	} else {
		dsn += "&"
	}
	return dsn + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS components (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			unit TEXT NOT NULL,
			normal_min REAL,
			normal_max REAL
		);`,
		`CREATE TABLE IF NOT EXISTS entries (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			component_id INTEGER NOT NULL,
			value REAL NOT NULL,
			date TEXT NOT NULL,
			notes TEXT,
			FOREIGN KEY (component_id) REFERENCES components(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_component ON entries(component_id);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// ListComponents returns all components ordered by name.
func (s *Store) ListComponents(ctx context.Context) ([]model.Component, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, unit, normal_min, normal_max FROM components ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var components []model.Component
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, err
		}
		components = append(components, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return components, nil
}

// GetComponent looks up a single component by id.
func (s *Store) GetComponent(ctx context.Context, id int64) (model.Component, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, unit, normal_min, normal_max FROM components WHERE id = ?`, id)
	c, err := scanComponent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Component{}, fmt.Errorf("component %d: %w", id, ErrNotFound)
	}
	return c, err
}

// FindComponent looks up a component by its exact name.
func (s *Store) FindComponent(ctx context.Context, name string) (model.Component, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, unit, normal_min, normal_max FROM components WHERE name = ?`, name)
	c, err := scanComponent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Component{}, fmt.Errorf("component %q: %w", name, ErrNotFound)
	}
	return c, err
}

// CreateComponent inserts a component and returns its id.
func (s *Store) CreateComponent(ctx context.Context, c model.Component) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO components (name, unit, normal_min, normal_max) VALUES (?, ?, ?, ?)`,
		c.Name, c.Unit, nullFloat(c.NormalMin), nullFloat(c.NormalMax))
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	log.Debug().Int64("component_id", id).Str("name", c.Name).Msg("component created")
	return id, nil
}

// ListEntries returns entries of a component ordered by date descending.
// A limit of zero or less returns the full history.
func (s *Store) ListEntries(ctx context.Context, componentID int64, limit int) ([]model.Entry, error) {
	query := `SELECT id, component_id, value, date, notes
		FROM entries
		WHERE component_id = ?
		ORDER BY date DESC`
	args := []any{componentID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var entries []model.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// GetEntry looks up a single entry by id.
func (s *Store) GetEntry(ctx context.Context, id int64) (model.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, component_id, value, date, notes FROM entries WHERE id = ?`, id)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Entry{}, fmt.Errorf("entry %d: %w", id, ErrNotFound)
	}
	return e, err
}

// AddEntry inserts an entry and returns its id.
func (s *Store) AddEntry(ctx context.Context, e model.Entry) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO entries (component_id, value, date, notes) VALUES (?, ?, ?, ?)`,
		e.ComponentID, e.Value, e.DateString(), e.Notes)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	log.Debug().Int64("entry_id", id).Int64("component_id", e.ComponentID).Msg("entry added")
	return id, nil
}

// UpdateEntry overwrites value, date, and notes of an existing entry.
func (s *Store) UpdateEntry(ctx context.Context, e model.Entry) error {
	if _, err := s.db.ExecContext(ctx,
		`UPDATE entries SET value = ?, date = ?, notes = ? WHERE id = ?`,
		e.Value, e.DateString(), e.Notes, e.ID); err != nil {
		return err
	}
	log.Debug().Int64("entry_id", e.ID).Msg("entry updated")
	return nil
}

// DeleteEntry removes an entry by id.
func (s *Store) DeleteEntry(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id); err != nil {
		return err
	}
	log.Debug().Int64("entry_id", id).Msg("entry deleted")
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanComponent(row scanner) (model.Component, error) {
	var c model.Component
	var lo, hi sql.NullFloat64
	if err := row.Scan(&c.ID, &c.Name, &c.Unit, &lo, &hi); err != nil {
		return model.Component{}, err
	}
	if lo.Valid {
		v := lo.Float64
		c.NormalMin = &v
	}
	if hi.Valid {
		v := hi.Float64
		c.NormalMax = &v
	}
	return c, nil
}

func scanEntry(row scanner) (model.Entry, error) {
	var e model.Entry
	var date string
	var notes sql.NullString
	if err := row.Scan(&e.ID, &e.ComponentID, &e.Value, &date, &notes); err != nil {
		return model.Entry{}, err
	}
	parsed, err := time.Parse(model.DateLayout, date)
	if err != nil {
		return model.Entry{}, fmt.Errorf("entry %d has malformed date %q: %w", e.ID, date, err)
	}
	e.Date = parsed
	e.Notes = notes.String
	return e, nil
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
