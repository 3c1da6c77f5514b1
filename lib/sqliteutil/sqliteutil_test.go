package sqliteutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsRemote(t *testing.T) {
	table := []struct {
		url    string
		remote bool
	}{
		{url: "libsql://foods-seektam.turso.io", remote: true},
		{url: "https://foods-seektam.turso.io", remote: true},
		{url: "http://127.0.0.1:8080", remote: true},
		{url: "wss://foods-seektam.turso.io", remote: true},
		{url: "foods.db", remote: false},
		{url: "sqlite://foods.db", remote: false},
		{url: "file:foods.db?cache=shared", remote: false},
		{url: ":memory:", remote: false},
	}
	for _, row := range table {
		require.Equal(t, row.remote, IsRemote(row.url), row.url)
	}
}

const testSchema = `create table if not exists foods (name text primary key);`

func TestOpenDBCreatesFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "foods.db")

	db, err := OpenDB(ctx, testSchema, "sqlite://"+path)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "insert into foods(name) values ('누룽지')")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = os.Stat(path)
	require.NoError(t, err)

	// opening again keeps what was written
	db, err = OpenDB(ctx, testSchema, path)
	require.NoError(t, err)
	defer db.Close()

	var name string
	err = db.QueryRowContext(ctx, "select name from foods").Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "누룽지", name)
}

func TestOpenDBErrors(t *testing.T) {
	ctx := context.Background()

	_, err := OpenDB(ctx, testSchema, "")
	require.Error(t, err)

	_, err = OpenDB(ctx, "create tabel", ":memory:")
	require.ErrorContains(t, err, "create schema")
}
