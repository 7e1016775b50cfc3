package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "database.db")

	_, err := run(t, "--db", db, "--log-level", "error", "create-table", "users", "id", "name")
	require.NoError(t, err)

	out, err := run(t, "--db", db, "insert", "users", "id=1", "name=Terry")
	require.NoError(t, err)
	assert.Equal(t, "inserted row 0\n", out)

	out, err = run(t, "--db", db, "query", "SELECT", "name", "FROM", "users")
	require.NoError(t, err)
	assert.Contains(t, out, "Terry")
	assert.Contains(t, out, "(1 result)")

	out, err = run(t, "--db", db, "tables")
	require.NoError(t, err)
	assert.Contains(t, out, "users")

	_, err = run(t, "--db", db, "query", "SELECT * FROM ghost")
	assert.Error(t, err)

	_, err = run(t, "--db", db, "insert", "ghost", "id=1")
	assert.Error(t, err)
}

func TestConfig_env(t *testing.T) {
	t.Setenv("NOTSOSQL_DB", "/tmp/from-env.db")
	t.Setenv("NOTSOSQL_LOG_FORMAT", "json")

	v := viper.New()
	require.NoError(t, bindFlags(&cobra.Command{}, v))

	cfg, err := loadConfig(v)
	require.NoError(t, err)
	assert.Equal(t, &Config{
		DB:        "/tmp/from-env.db",
		LogLevel:  "info",
		LogFormat: "json",
	}, cfg)
}
