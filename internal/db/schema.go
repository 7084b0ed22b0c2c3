package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var Schema string

func isRemote(source string) bool {
	for _, prefix := range []string{"libsql://", "https://", "http://", "wss://", "ws://"} {
		if strings.HasPrefix(source, prefix) {
			return true
		}
	}
	return false
}

// Open opens source, which is either a path to a local sqlite file (or
// `:memory:`) or the url of a libsql server.
func Open(source string) (*sql.DB, error) {
	if isRemote(source) {
		return sql.Open("libsql", source)
	}
	if source != ":memory:" {
		err := os.MkdirAll(filepath.Dir(source), 0o777)
		if err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}
	database, err := sql.Open("sqlite", source)
	if err != nil {
		return nil, err
	}
	// every new connection to :memory: is a new empty database, and a single
	// writer avoids SQLITE_BUSY on files
	database.SetMaxOpenConns(1)
	if source == ":memory:" {
		return database, nil
	}
	_, err = database.Exec("PRAGMA journal_mode=WAL")
	if err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

// Migrate applies the schema, it is safe to run on an existing database.
func Migrate(ctx context.Context, database *sql.DB) error {
	_, err := database.ExecContext(ctx, Schema)
	if err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// OpenMigrated opens source and applies the schema.
func OpenMigrated(ctx context.Context, source string) (*sql.DB, error) {
	database, err := Open(source)
	if err != nil {
		return nil, err
	}
	err = Migrate(ctx, database)
	if err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
