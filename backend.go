package notsosql

import "sort"

// Row maps column names to text values. A row may hold columns its table
// never declared and may lack declared ones.
type Row struct {
	Data map[string]string
}

// NewRow builds a row from alternating column, value pairs. A trailing
// column without a value is stored as empty text.
func NewRow(pairs ...string) Row {
	r := Row{Data: map[string]string{}}
	for i := 0; i < len(pairs); i += 2 {
		v := ""
		if i+1 < len(pairs) {
			v = pairs[i+1]
		}
		r.Data[pairs[i]] = v
	}

	return r
}

// Get returns the value stored for column, or empty text.
func (r Row) Get(column string) string {
	return r.Data[column]
}

// Keys returns the row's column names in sorted order.
func (r Row) Keys() []string {
	keys := make([]string, 0, len(r.Data))
	for k := range r.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

func (r Row) clone() Row {
	data := make(map[string]string, len(r.Data))
	for k, v := range r.Data {
		data[k] = v
	}

	return Row{Data: data}
}

// Results are returned after a successful execution of a select query.
// Rows are in row-id order.
type Results struct {
	Columns []string
	Rows    []Row
}

// Strings lays the results out as a grid in column order.
func (r *Results) Strings() [][]string {
	grid := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		line := make([]string, len(r.Columns))
		for i, col := range r.Columns {
			line[i] = row.Get(col)
		}
		grid = append(grid, line)
	}

	return grid
}

type TableMetadata struct {
	Name    string
	Columns []string
	Rows    int
	NextID  uint64
}

// Backend is what the REPL and the sql driver run against.
type Backend interface {
	CreateTable(name string, columns []string) error
	InsertRow(table string, row Row) (uint64, error)
	Select(*SelectStatement) (*Results, error)
	GetTables() []TableMetadata
}
