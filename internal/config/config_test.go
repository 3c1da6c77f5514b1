package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"seektam-backend/internal/catalog"
	"seektam-backend/internal/scrapers/koreafood"

	"github.com/stretchr/testify/require"
)

func writeFile(t testing.TB, path, contents string) {
	err := os.WriteFile(path, []byte(contents), 0644)
	require.NoError(t, err)
}

func TestLoadExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seektam.json5")
	writeFile(t, path, `{
		// comments are allowed
		database: "foods.db",
		server: { port: 9000 },
		source: { cloudflare_bypass: true, refresh_cron: "0 4 * * 1" },
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "foods.db", cfg.Database)
	require.Equal(t, 9000, cfg.Server.Port)
	require.True(t, cfg.Source.CloudflareBypass)
	require.Equal(t, koreafood.DefaultBaseUrl, cfg.Source.BaseUrl)
	require.Equal(t, 30, cfg.Source.TimeoutSeconds)
	require.Equal(t, "0 4 * * 1", cfg.Source.RefreshCron)

	policy, err := cfg.Policy()
	require.NoError(t, err)
	require.Equal(t, catalog.PolicyReuse, policy)

	opts := cfg.ClientOptions()
	require.Equal(t, 30*time.Second, opts.Timeout)
	require.True(t, opts.CloudflareBypass)
}

func TestLoadLocalOverride(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{
		database: "foods.db",
		aliment_policy: "reuse",
	}`)
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{
		aliment_policy: "overwrite",
		telemetry: { otlp: { http_endpoint: "http://localhost:4318" } },
	}`)

	cfg, err := Load(filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "foods.db", cfg.Database)
	require.Equal(t, "http://localhost:4318", cfg.Telemetry.Otlp.HttpEndpoint)

	policy, err := cfg.Policy()
	require.NoError(t, err)
	require.Equal(t, catalog.PolicyOverwrite, policy)
}

func TestLoadEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "env.json5")
	writeFile(t, path, `{ server: { port: 8123 } }`)
	t.Setenv(EnvPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 8123, cfg.Server.Port)
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json5"))
	require.Error(t, err)
}

func TestLoadRecursive(t *testing.T) {
	t.Setenv(EnvPath, "")

	root := t.TempDir()
	writeFile(t, filepath.Join(root, DefaultName), `{ database: "libsql://foods.turso.io" }`)
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(nested))
	t.Cleanup(func() { os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "libsql://foods.turso.io", cfg.Database)
	require.Equal(t, 8000, cfg.Server.Port)
}

func TestLoadInvalidPolicy(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")
	writeFile(t, path, `{ aliment_policy: "merge" }`)

	_, err := Load(path)
	require.ErrorContains(t, err, "merge")
}
