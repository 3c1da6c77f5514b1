package sqliteutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

var remoteSchemes = []string{"libsql://", "http://", "https://", "ws://", "wss://"}

// IsRemote tells if the given database url should be opened with the libsql client
// rather than the embedded sqlite driver.
func IsRemote(dburl string) bool {
	for _, scheme := range remoteSchemes {
		if strings.HasPrefix(dburl, scheme) {
			return true
		}
	}
	return false
}

func openLocal(dburl string) (*sql.DB, error) {
	path := strings.TrimPrefix(dburl, "sqlite://")
	inMemory := path == ":memory:" || strings.Contains(path, "mode=memory")

	if !inMemory && !strings.HasPrefix(path, "file:") {
		_, statErr := os.Stat(path)
		if os.IsNotExist(statErr) {
			f, err := os.Create(path)
			if err != nil {
				return nil, err
			}
			f.Close()
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// see this stackoverflow post for information on why the following
	// lines exist: https://stackoverflow.com/questions/35804884/sqlite-concurrent-writing-performance
	db.SetMaxOpenConns(1)
	if !inMemory {
		_, err = db.Exec("PRAGMA journal_mode=WAL")
		if err != nil {
			db.Close()
			return nil, err
		}
	}
	_, err = db.Exec("PRAGMA foreign_keys=ON")
	if err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// OpenDB opens the database at the given url and creates the given
// schema if it doesn't exist yet.
func OpenDB(ctx context.Context, schema, dburl string) (*sql.DB, error) {
	if dburl == "" {
		return nil, fmt.Errorf("a database url was not specified")
	}

	var db *sql.DB
	var err error
	if IsRemote(dburl) {
		db, err = sql.Open("libsql", dburl)
	} else {
		db, err = openLocal(dburl)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dburl, err)
	}

	err = db.PingContext(ctx)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect %s: %w", dburl, err)
	}

	if schema != "" {
		_, err = db.ExecContext(ctx, schema)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return db, nil
}
