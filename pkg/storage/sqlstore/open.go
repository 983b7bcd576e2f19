package sqlstore

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepostgres "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// OpenSQLite opens (creating if needed) and migrates a SQLite database file.
func OpenSQLite(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("sqlstore: sqlite path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"

	db, err := sql.Open(SQLite.DriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open sqlite db: %w", err)
	}
	return openWith(db, SQLite)
}

// OpenPostgres connects to databaseURL and migrates the schema.
func OpenPostgres(databaseURL string) (*Store, error) {
	if strings.TrimSpace(databaseURL) == "" {
		return nil, errors.New("sqlstore: database url is required")
	}
	db, err := sql.Open(Postgres.DriverName, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	return openWith(db, Postgres)
}

func openWith(db *sql.DB, dialect Dialect) (*Store, error) {
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlstore: ping %s db: %w", dialect.Name, err)
	}
	if err := Migrate(db, dialect); err != nil {
		_ = db.Close()
		return nil, err
	}
	return New(db, dialect), nil
}

// Migrate applies the embedded schema migrations for dialect.
func Migrate(db *sql.DB, dialect Dialect) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations/"+dialect.Name)
	if err != nil {
		return fmt.Errorf("sqlstore: create migration source: %w", err)
	}

	var dbDriver database.Driver
	switch dialect.Name {
	case SQLite.Name:
		dbDriver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	case Postgres.Name:
		dbDriver, err = migratepostgres.WithInstance(db, &migratepostgres.Config{})
	default:
		return fmt.Errorf("sqlstore: unsupported dialect %q", dialect.Name)
	}
	if err != nil {
		return fmt.Errorf("sqlstore: create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, dialect.Name, dbDriver)
	if err != nil {
		return fmt.Errorf("sqlstore: create migrator: %w", err)
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("sqlstore: apply migrations: %w", err)
	}
	return nil
}
