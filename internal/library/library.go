// Package library stores procedure definitions in a SQLite database so that
// they outlive the session that made them.
package library

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/zephyrtronium/logo"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Library is a procedure library. It implements logo.Saver. Names are stored
// lowercased, so lookups ignore case the way Logo does.
type Library struct {
	db  *sql.DB
	log *slog.Logger
	// now is the clock, replaced in tests.
	now func() time.Time
}

var _ logo.Saver = (*Library)(nil)

// Entry is a stored definition.
type Entry struct {
	Name    string
	Text    string
	Created time.Time
	Updated time.Time
}

// Erasure is a definition that was erased.
type Erasure struct {
	Name   string
	Text   string
	Erased time.Time
}

// Open opens the library at path, creating it if needed, and brings its
// schema up to date. Use ":memory:" for a library that lasts only as long as
// the process.
func Open(ctx context.Context, path string, log *slog.Logger) (*Library, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open library: %w", err)
	}
	// One connection keeps an in-memory database alive and serializes
	// writers.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open library %s: %w", path, err)
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return New(db, log), nil
}

// New wraps a database whose schema is already up to date.
func New(db *sql.DB, log *slog.Logger) *Library {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Library{db: db, log: log, now: time.Now}
}

// Migrate runs all pending schema migrations.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Version returns the schema version.
func (l *Library) Version(ctx context.Context) (int64, error) {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite"); err != nil {
		return 0, fmt.Errorf("failed to set dialect: %w", err)
	}
	return goose.GetDBVersionContext(ctx, l.db)
}

// Close closes the database.
func (l *Library) Close() error {
	return l.db.Close()
}

// Save stores a definition, replacing any earlier one of the same name.
// Saving the same text again leaves the entry untouched.
func (l *Library) Save(ctx context.Context, name, text string) error {
	name = strings.ToLower(name)
	now := l.now().UnixMilli()
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO procedures (name, text, created_at, updated_at) VALUES (?, ?, ?, ?)
		ON CONFLICT (name) DO UPDATE SET text = excluded.text, updated_at = excluded.updated_at
		WHERE procedures.text <> excluded.text`,
		name, text, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", name, err)
	}
	l.log.DebugContext(ctx, "saved procedure", slog.String("name", name))
	return nil
}

// Delete removes a definition, keeping its text in the erasure log. Deleting
// a name that is not stored is not an error.
func (l *Library) Delete(ctx context.Context, name string) error {
	name = strings.ToLower(name)
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO erasures (name, text, erased_at) SELECT name, text, ? FROM procedures WHERE name = ?`,
		l.now().UnixMilli(), name,
	)
	if err != nil {
		return fmt.Errorf("failed to archive %s: %w", name, err)
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM procedures WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		l.log.DebugContext(ctx, "deleted procedure", slog.String("name", name))
	}
	return nil
}

// ErrNotFound is returned by Get for names that are not stored.
var ErrNotFound = errors.New("library: no such procedure")

// Get returns one stored definition.
func (l *Library) Get(ctx context.Context, name string) (Entry, error) {
	name = strings.ToLower(name)
	row := l.db.QueryRowContext(ctx,
		`SELECT name, text, created_at, updated_at FROM procedures WHERE name = ?`, name)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return Entry{}, fmt.Errorf("failed to get %s: %w", name, err)
	}
	return e, nil
}

// List returns every stored definition in name order.
func (l *Library) List(ctx context.Context) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT name, text, created_at, updated_at FROM procedures ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list procedures: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var r []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to list procedures: %w", err)
		}
		r = append(r, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list procedures: %w", err)
	}
	return r, nil
}

// Erased returns the erasure log, most recent first.
func (l *Library) Erased(ctx context.Context) ([]Erasure, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT name, text, erased_at FROM erasures ORDER BY erased_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list erasures: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var r []Erasure
	for rows.Next() {
		var e Erasure
		var at int64
		if err := rows.Scan(&e.Name, &e.Text, &at); err != nil {
			return nil, fmt.Errorf("failed to list erasures: %w", err)
		}
		e.Erased = time.UnixMilli(at)
		r = append(r, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list erasures: %w", err)
	}
	return r, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(s scanner) (Entry, error) {
	var e Entry
	var created, updated int64
	if err := s.Scan(&e.Name, &e.Text, &created, &updated); err != nil {
		return Entry{}, err
	}
	e.Created = time.UnixMilli(created)
	e.Updated = time.UnixMilli(updated)
	return e, nil
}

// Load defines every stored procedure in an interpreter. A definition that
// fails to load is logged and skipped; Load reports how many loaded.
func (l *Library) Load(ctx context.Context, in *logo.Interp) (int, error) {
	entries, err := l.List(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if err := in.Run(ctx, e.Text); err != nil {
			if ctx.Err() != nil {
				return n, ctx.Err()
			}
			l.log.WarnContext(ctx, "skipped stored procedure", slog.String("name", e.Name), slog.Any("err", err))
			continue
		}
		n++
	}
	return n, nil
}
