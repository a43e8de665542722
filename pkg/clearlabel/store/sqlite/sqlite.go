// Package sqlite is a SQLite-backed store.Store for deployments where the
// hazard database is refreshed out of process and read durably.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/clearlabel/clearlabel/pkg/clearlabel/hazard"
	"github.com/clearlabel/clearlabel/pkg/clearlabel/internalerr"
)

// Store reads and imports hazard datasets in a SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens (and if needed initializes) a SQLite hazard database with WAL
// mode enabled.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrStoreUnavailable, path, err)
	}

	// WAL lets the refresh job write while readers load snapshots.
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrStoreUnavailable, path, err)
	}
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %s: %v", internalerr.ErrStoreUnavailable, path, err)
	}
	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS ingredients (
	name TEXT PRIMARY KEY,
	score INTEGER NOT NULL DEFAULT 5,
	categories TEXT,
	concerns TEXT,
	found_in TEXT,
	alternative_names TEXT
);

CREATE TABLE IF NOT EXISTS safe_alternatives (
	name TEXT PRIMARY KEY,
	alternatives TEXT,
	explanation TEXT
);

CREATE TABLE IF NOT EXISTS toxicity_categories (
	tag TEXT PRIMARY KEY,
	description TEXT
);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// LoadSnapshot implements store.Store, reading the full dataset in one
// pass per table.
func (s *Store) LoadSnapshot(ctx context.Context) (hazard.Dataset, error) {
	ds := hazard.Dataset{
		Alternatives: make(map[string]hazard.Alternative),
		Categories:   make(map[string]string),
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, score, categories, concerns, found_in, alternative_names FROM ingredients`)
	if err != nil {
		return hazard.Dataset{}, fmt.Errorf("load ingredients: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r hazard.Record
		var categories, concerns, foundIn, alts sql.NullString
		if err := rows.Scan(&r.Name, &r.Score, &categories, &concerns, &foundIn, &alts); err != nil {
			return hazard.Dataset{}, fmt.Errorf("scan ingredient: %w", err)
		}
		r.Categories = decodeList(categories)
		r.Concerns = decodeList(concerns)
		r.FoundIn = decodeList(foundIn)
		r.AlternativeNames = decodeList(alts)
		ds.Records = append(ds.Records, r)
	}
	if err := rows.Err(); err != nil {
		return hazard.Dataset{}, fmt.Errorf("iterate ingredients: %w", err)
	}

	altRows, err := s.db.QueryContext(ctx,
		`SELECT name, alternatives, explanation FROM safe_alternatives`)
	if err != nil {
		return hazard.Dataset{}, fmt.Errorf("load alternatives: %w", err)
	}
	defer altRows.Close()

	for altRows.Next() {
		var name, explanation string
		var alternatives sql.NullString
		if err := altRows.Scan(&name, &alternatives, &explanation); err != nil {
			return hazard.Dataset{}, fmt.Errorf("scan alternative: %w", err)
		}
		ds.Alternatives[name] = hazard.Alternative{
			Alternatives: decodeList(alternatives),
			Explanation:  explanation,
		}
	}
	if err := altRows.Err(); err != nil {
		return hazard.Dataset{}, fmt.Errorf("iterate alternatives: %w", err)
	}

	catRows, err := s.db.QueryContext(ctx, `SELECT tag, description FROM toxicity_categories`)
	if err != nil {
		return hazard.Dataset{}, fmt.Errorf("load categories: %w", err)
	}
	defer catRows.Close()

	for catRows.Next() {
		var tag, description string
		if err := catRows.Scan(&tag, &description); err != nil {
			return hazard.Dataset{}, fmt.Errorf("scan category: %w", err)
		}
		ds.Categories[tag] = description
	}
	if err := catRows.Err(); err != nil {
		return hazard.Dataset{}, fmt.Errorf("iterate categories: %w", err)
	}

	return ds, nil
}

// ImportDataset upserts a full dataset in one transaction. Used by the CLI
// import command and by refresh jobs.
func (s *Store) ImportDataset(ctx context.Context, ds hazard.Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, r := range ds.Records {
		_, err := tx.ExecContext(ctx, `
INSERT INTO ingredients (name, score, categories, concerns, found_in, alternative_names)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
	score=excluded.score,
	categories=excluded.categories,
	concerns=excluded.concerns,
	found_in=excluded.found_in,
	alternative_names=excluded.alternative_names`,
			r.Name, r.Score,
			encodeList(r.Categories), encodeList(r.Concerns),
			encodeList(r.FoundIn), encodeList(r.AlternativeNames))
		if err != nil {
			return fmt.Errorf("upsert ingredient %q: %w", r.Name, err)
		}
	}

	for name, alt := range ds.Alternatives {
		_, err := tx.ExecContext(ctx, `
INSERT INTO safe_alternatives (name, alternatives, explanation)
VALUES (?, ?, ?)
ON CONFLICT(name) DO UPDATE SET
	alternatives=excluded.alternatives,
	explanation=excluded.explanation`,
			name, encodeList(alt.Alternatives), alt.Explanation)
		if err != nil {
			return fmt.Errorf("upsert alternative %q: %w", name, err)
		}
	}

	for tag, description := range ds.Categories {
		_, err := tx.ExecContext(ctx, `
INSERT INTO toxicity_categories (tag, description)
VALUES (?, ?)
ON CONFLICT(tag) DO UPDATE SET description=excluded.description`,
			tag, description)
		if err != nil {
			return fmt.Errorf("upsert category %q: %w", tag, err)
		}
	}

	return tx.Commit()
}

func encodeList(list []string) string {
	if len(list) == 0 {
		return "[]"
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func decodeList(s sql.NullString) []string {
	if !s.Valid || s.String == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(s.String), &list); err != nil {
		return nil
	}
	if len(list) == 0 {
		return nil
	}
	return list
}
