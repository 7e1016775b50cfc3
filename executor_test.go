package notsosql

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, se *StorageEngine, source string) (*Results, error) {
	ast, err := Parse(source)
	require.NoError(t, err)

	plan := NewQueryPlanner().PlanNode(ast)
	return NewExecutionEngine(se).Execute(plan)
}

func TestExecute_projection(t *testing.T) {
	se := NewStorageEngine()
	se.CreateTable("users", []string{"id", "name"})
	_, err := se.InsertRow("users", NewRow("id", "1", "name", "a"))
	require.NoError(t, err)

	res, err := execute(t, se, "SELECT id, email FROM users")
	require.NoError(t, err)
	assert.Equal(t, &Results{
		Columns: []string{"id", "email"},
		Rows:    []Row{NewRow("id", "1", "email", "")},
	}, res)
}

func TestExecute_tableNotFound(t *testing.T) {
	_, err := execute(t, NewStorageEngine(), "SELECT * FROM ghost")
	assert.True(t, errors.Is(err, ErrTableNotFound))
	assert.Equal(t, &TableNotFoundError{Name: "ghost"}, err)
}

func TestExecute_insertOrder(t *testing.T) {
	se := NewStorageEngine()
	se.CreateTable("t", []string{"n"})

	// More rows than fit in one tree node, inserted in order
	want := [][]string{}
	for i := 0; i < 100; i++ {
		v := string(rune('a'+i%26)) + string(rune('0'+i/26))
		_, err := se.InsertRow("t", NewRow("n", v))
		require.NoError(t, err)
		want = append(want, []string{v})
	}

	res, err := execute(t, se, "SELECT n FROM t")
	require.NoError(t, err)
	assert.Len(t, res.Rows, 100)
	assert.Equal(t, want, res.Strings())
}

func TestExecute_threeInserts(t *testing.T) {
	se := NewStorageEngine()
	se.CreateTable("t", []string{"x"})

	for i, v := range []string{"100", "200", "300"} {
		id, err := se.InsertRow("t", NewRow("x", v))
		require.NoError(t, err)
		assert.Equal(t, uint64(i), id)
	}

	res, err := execute(t, se, "SELECT x FROM t")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"100"}, {"200"}, {"300"}}, res.Strings())
}

func TestExecute_asterisk(t *testing.T) {
	se := NewStorageEngine()
	se.CreateTable("declared", []string{"id", "name"})
	_, err := se.InsertRow("declared", NewRow("id", "1", "extra", "x"))
	require.NoError(t, err)

	se.CreateTable("undeclared", nil)
	_, err = se.InsertRow("undeclared", NewRow("b", "2"))
	require.NoError(t, err)
	_, err = se.InsertRow("undeclared", NewRow("a", "1", "c", "3"))
	require.NoError(t, err)

	tests := []struct {
		source string
		result *Results
	}{
		{
			source: "SELECT * FROM declared",
			result: &Results{
				Columns: []string{"id", "name"},
				Rows:    []Row{NewRow("id", "1", "name", "")},
			},
		},
		{
			source: "SELECT * FROM undeclared",
			result: &Results{
				Columns: []string{"a", "b", "c"},
				Rows: []Row{
					NewRow("b", "2"),
					NewRow("a", "1", "c", "3"),
				},
			},
		},
		{
			source: "SELECT extra FROM declared",
			result: &Results{
				Columns: []string{"extra"},
				Rows:    []Row{NewRow("extra", "x")},
			},
		},
	}

	for _, test := range tests {
		res, err := execute(t, se, test.source)
		require.NoError(t, err, test.source)
		assert.Equal(t, test.result, res, test.source)
	}

	res, err := execute(t, se, "SELECT * FROM undeclared")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"", "2", ""}, {"1", "", "3"}}, res.Strings())
}

func TestExecute_emptyTable(t *testing.T) {
	se := NewStorageEngine()
	se.CreateTable("t", nil)

	res, err := execute(t, se, "SELECT * FROM t")
	require.NoError(t, err)
	assert.Equal(t, &Results{Columns: []string{}, Rows: []Row{}}, res)
}

func TestExecute_logs(t *testing.T) {
	se := NewStorageEngine()
	se.CreateTable("t", []string{"x"})

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := NewExecutionEngine(se, WithExecutorLogger(logger)).Execute(&QueryPlan{
		Projection: []Identifier{"x"},
		Table:      "t",
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "executing plan")
	assert.Contains(t, buf.String(), "table=t")
}
