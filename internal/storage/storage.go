// Package storage is the domain-submission store: the three operations
// the core assumes exist externally (§5) — upsert, list-pending,
// set-status — backed by SQLite via golang-migrate, adapted from the
// teacher's internal/database package.
package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Store wraps a SQLite connection holding the submissions table. The
// core never depends on a Store being reachable for search queries —
// only the ingestion worker's final status mark needs it, per §5.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database at path and brings its
// schema up to date, following the teacher's Open(path) shape in
// internal/database/db.go almost verbatim — WAL journal mode, a bounded
// connection pool, migrate-then-ready.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open: %w", err)
	}
	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(time.Hour)

	s := &Store{db: conn}
	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("storage: migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return err
	}
	dbDriver, err := sqlite.WithInstance(s.db, &sqlite.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", dbDriver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Submission mirrors one row of the submissions table, per §5's domain
// submission schema.
type Submission struct {
	Name        string
	Source      string
	Status      string
	SubmittedAt time.Time
	UpdatedAt   time.Time
}
