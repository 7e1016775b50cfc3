package notsosql

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type user struct {
	id   int
	name string
}

func scanUsers(t *testing.T, rows *sql.Rows) []user {
	defer rows.Close()

	users := []user{}
	for rows.Next() {
		var u user
		require.NoError(t, rows.Scan(&u.id, &u.name))
		users = append(users, u)
	}
	require.NoError(t, rows.Err())

	return users
}

func TestDriver_snapshotPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "database.db")
	require.NoError(t, CreateTable(path, "users", []string{"id", "name"}))
	_, err := InsertRow(path, "users", NewRow("id", "1", "name", "Terry"))
	require.NoError(t, err)
	_, err = InsertRow(path, "users", NewRow("id", "2", "name", "Anette"))
	require.NoError(t, err)

	db, err := sql.Open("notsosql", path)
	require.NoError(t, err)
	defer db.Close()

	rows, err := db.Query("SELECT id, name FROM users;")
	require.NoError(t, err)

	cols, err := rows.Columns()
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, cols)

	assert.Equal(t, []user{{1, "Terry"}, {2, "Anette"}}, scanUsers(t, rows))
}

func TestDriver_connector(t *testing.T) {
	mb := NewMemoryBackend()
	require.NoError(t, mb.CreateTable("users", []string{"id", "name"}))
	_, err := mb.InsertRow("users", NewRow("id", "7", "name", "x"))
	require.NoError(t, err)

	db := sql.OpenDB(NewConnector(mb))
	defer db.Close()

	rows, err := db.Query("SELECT * FROM users")
	require.NoError(t, err)
	assert.Equal(t, []user{{7, "x"}}, scanUsers(t, rows))
}

func TestDriver_errors(t *testing.T) {
	db, err := sql.Open("notsosql", MemoryDSN)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Query("SELECT * FROM users")
	assert.True(t, errors.Is(err, ErrTableNotFound))

	_, err = db.Query("SELECT FROM users")
	assert.True(t, errors.Is(err, ErrParse))

	_, err = db.Query("SELECT * FROM users", 1)
	assert.True(t, errors.Is(err, ErrNotSupported))

	_, err = db.Begin()
	assert.True(t, errors.Is(err, ErrNotSupported))
}
