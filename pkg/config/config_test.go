package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeSettings(t, `
host: localhost
dbname: testdb
user: u
password: p
port: 5432
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "localhost", cfg.Host)
	require.Equal(t, "testdb", cfg.DBName)
	require.Equal(t, "u", cfg.User)
	require.Equal(t, "p", cfg.Password)
	require.Equal(t, 5432, cfg.Port)
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeSettings(t, `
host: localhost
dbname: testdb
user: u
password: p
port: 5432
`)

	t.Setenv("PGFRAME_HOST", "db.internal")
	t.Setenv("PGFRAME_PORT", "5433")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "db.internal", cfg.Host)
	require.Equal(t, 5433, cfg.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate_MissingKeys(t *testing.T) {
	cfg := Config{Host: "localhost", User: "u", Port: 5432}
	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "dbname")
	require.Contains(t, err.Error(), "password")
}

func TestDSN(t *testing.T) {
	cfg := Config{Host: "localhost", DBName: "testdb", User: "u", Password: "p", Port: 5432}
	require.Equal(t, "host=localhost port=5432 dbname=testdb user=u password=p", cfg.DSN())

	cfg.SSLMode = "disable"
	require.Equal(t, "host=localhost port=5432 dbname=testdb user=u password=p sslmode=disable", cfg.DSN())
}
