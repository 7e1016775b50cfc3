package notsosql

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackend(t *testing.T) {
	mb := NewMemoryBackend()

	ast, err := Parse("SELECT * FROM test")
	require.NoError(t, err)
	_, err = mb.Select(ast.SelectStatement)
	assert.True(t, errors.Is(err, ErrTableNotFound))

	_, err = mb.InsertRow("test", NewRow("x", "100"))
	assert.True(t, errors.Is(err, ErrTableNotFound))

	require.NoError(t, mb.CreateTable("test", []string{"x", "y", "z"}))
	_, err = mb.InsertRow("test", NewRow("x", "100", "y", "200", "z", "300"))
	require.NoError(t, err)

	for _, test := range []struct {
		source string
		row    []string
	}{
		{"SELECT * FROM test", []string{"100", "200", "300"}},
		{"SELECT x FROM test", []string{"100"}},
		{"SELECT x, y FROM test", []string{"100", "200"}},
		{"SELECT z, x FROM test", []string{"300", "100"}},
		{"SELECT x, x FROM test", []string{"100", "100"}},
	} {
		ast, err := Parse(test.source)
		require.NoError(t, err, test.source)

		res, err := mb.Select(ast.SelectStatement)
		require.NoError(t, err, test.source)
		assert.Equal(t, [][]string{test.row}, res.Strings(), test.source)
	}

	assert.Equal(t, []TableMetadata{
		{Name: "test", Columns: []string{"x", "y", "z"}, Rows: 1, NextID: 1},
	}, mb.GetTables())
}
