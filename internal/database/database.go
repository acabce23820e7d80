package database

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/charmbracelet/log"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Dialect names the SQL flavour of an opened database.
type Dialect string

const (
	SQLite   Dialect = "sqlite3"
	Postgres Dialect = "postgres"
)

// InitDB opens a SQLite database and ensures the schema is up to date.
// With an empty primaryURL dbPath is a local file (or ":memory:"); otherwise the
// database is the remote Turso primary at primaryURL.
func InitDB(dbPath string, primaryURL string, authToken string) (*sql.DB, func(), error) {
	var (
		db  *sql.DB
		err error
	)
	if primaryURL == "" {
		log.Info("Initializing local-only SQLite database", "path", dbPath)
		db, err = sql.Open("sqlite3", dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open local database: %w", err)
		}
		// One connection keeps ":memory:" databases shared and serialises writers.
		db.SetMaxOpenConns(1)
	} else {
		log.Info("Initializing Turso database", "url", primaryURL)
		db, err = sql.Open("libsql", primaryURL+"?authToken="+authToken)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open db %s: %w", primaryURL, err)
		}
	}

	if err := migrate(db, SQLite); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate sqlite database: %w", err)
	}
	return db, teardown(db), nil
}

// InitPostgres opens the PostgreSQL database at dsn and ensures the schema is up to date.
func InitPostgres(dsn string) (*sql.DB, func(), error) {
	if dsn == "" {
		return nil, nil, fmt.Errorf("postgres backend requires DATABASE_URL")
	}
	log.Info("Initializing PostgreSQL database")
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open postgres database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to postgres database: %w", err)
	}
	if err := migrate(db, Postgres); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to migrate postgres database: %w", err)
	}
	return db, teardown(db), nil
}

func migrate(db *sql.DB, dialect Dialect) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{})
	if err := goose.SetDialect(string(dialect)); err != nil {
		return err
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return err
	}
	log.Info("Database initialized successfully", "dialect", dialect)
	return nil
}

func teardown(db *sql.DB) func() {
	return func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}
}

// gooseLogger routes migration output through the application logger.
type gooseLogger struct{}

func (gooseLogger) Printf(format string, v ...interface{}) {
	log.Debugf(format, v...)
}

func (gooseLogger) Fatalf(format string, v ...interface{}) {
	log.Fatalf(format, v...)
}
