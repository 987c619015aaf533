package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// Dialect captures the SQL differences between the supported drivers.
type Dialect struct {
	// Name of the database/sql driver.
	Driver string

	// CreateExchangesTable is the DDL for the conversations table.
	CreateExchangesTable string

	placeholder func(n int) string
}

// Placeholder returns the bind parameter for the n-th (1-based) argument.
func (d Dialect) Placeholder(n int) string {
	return d.placeholder(n)
}

var (
	SQLite = Dialect{
		Driver: "sqlite",
		CreateExchangesTable: `
    CREATE TABLE IF NOT EXISTS conversations (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        user_message TEXT NOT NULL,
        bot_response TEXT NOT NULL,
        timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
    );`,
		placeholder: func(int) string { return "?" },
	}

	Postgres = Dialect{
		Driver: "postgres",
		CreateExchangesTable: `
    CREATE TABLE IF NOT EXISTS conversations (
        id BIGSERIAL PRIMARY KEY,
        user_message TEXT NOT NULL,
        bot_response TEXT NOT NULL,
        timestamp TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
    );`,
		placeholder: func(n int) string { return fmt.Sprintf("$%d", n) },
	}
)

// DB is an open exchange store together with its dialect.
type DB struct {
	*sql.DB
	Dialect Dialect
}

// DialectFor resolves a configured driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case "sqlite", "sqlite3":
		return SQLite, nil
	case "postgres", "postgresql":
		return Postgres, nil
	}
	return Dialect{}, fmt.Errorf("unsupported database driver %q", driver)
}

// Open connects to the store, verifies it with a ping and makes sure the
// conversations table exists.
func Open(ctx context.Context, driver, dsn string, logger *zap.Logger) (*DB, error) {
	dialect, err := DialectFor(driver)
	if err != nil {
		return nil, err
	}

	if dialect.Driver == SQLite.Driver {
		if dsn, err = sqliteDSN(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(dialect.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database (ping): %w", err)
	}
	logger.Info("database connection established", zap.String("driver", dialect.Driver))

	if _, err := db.ExecContext(ctx, dialect.CreateExchangesTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create conversations table: %w", err)
	}
	logger.Debug("conversations table verified")

	return &DB{DB: db, Dialect: dialect}, nil
}

// sqliteDSN turns a plain file path into a modernc DSN with WAL and a busy
// timeout so per-request connections can write concurrently.
func sqliteDSN(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("empty sqlite path")
	}
	if strings.Contains(path, "_pragma=") {
		return path, nil
	}

	file := strings.TrimPrefix(path, "file:")
	if i := strings.IndexByte(file, '?'); i >= 0 {
		file = file[:i]
	}
	if file != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
			return "", fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	q := url.Values{}
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "journal_mode(WAL)")
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + q.Encode(), nil
}
