package notsosql

import (
	"fmt"
	"math"
	"sort"

	"github.com/petar/GoLLRB/llrb"
)

type rowItem struct {
	id  uint64
	row Row
}

func (ri rowItem) Less(than llrb.Item) bool {
	return ri.id < than.(rowItem).id
}

// Table keeps its rows ordered by id. Ids come from nextID, which only
// ever grows, so they stay unique even if rows are removed later.
type Table struct {
	columns []string
	rows    *llrb.LLRB
	nextID  uint64
}

func newTable(columns []string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)

	return &Table{
		columns: cols,
		rows:    llrb.New(),
	}
}

// Columns returns the declared columns. They are metadata only, rows
// are not checked against them.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.columns))
	copy(cols, t.columns)
	return cols
}

func (t *Table) Len() int {
	return t.rows.Len()
}

func (t *Table) NextID() uint64 {
	return t.nextID
}

func (t *Table) Row(id uint64) (Row, bool) {
	item := t.rows.Get(rowItem{id: id})
	if item == nil {
		return Row{}, false
	}

	return item.(rowItem).row, true
}

// Scan calls fn for every row in ascending id order until fn returns
// false.
func (t *Table) Scan(fn func(id uint64, row Row) bool) {
	t.rows.AscendGreaterOrEqual(rowItem{id: 0}, func(i llrb.Item) bool {
		ri := i.(rowItem)
		return fn(ri.id, ri.row)
	})
}

func (t *Table) insert(row Row) (uint64, error) {
	if t.nextID == math.MaxUint64 {
		return 0, ErrRowIDsExhausted
	}

	id := t.nextID
	t.nextID++
	t.rows.ReplaceOrInsert(rowItem{id: id, row: row.clone()})
	return id, nil
}

func (t *Table) clone() *Table {
	c := newTable(t.columns)
	c.nextID = t.nextID
	t.Scan(func(id uint64, row Row) bool {
		c.rows.ReplaceOrInsert(rowItem{id: id, row: row.clone()})
		return true
	})

	return c
}

func (t *Table) equal(other *Table) bool {
	if t.nextID != other.nextID || t.Len() != other.Len() || len(t.columns) != len(other.columns) {
		return false
	}

	for i := range t.columns {
		if t.columns[i] != other.columns[i] {
			return false
		}
	}

	equal := true
	t.Scan(func(id uint64, row Row) bool {
		o, ok := other.Row(id)
		if !ok || len(o.Data) != len(row.Data) {
			equal = false
			return false
		}
		for k, v := range row.Data {
			if ov, ok := o.Data[k]; !ok || ov != v {
				equal = false
				return false
			}
		}
		return true
	})

	return equal
}

// StorageEngine is the whole database: every table and every row. It is
// the unit that gets serialized into a snapshot.
type StorageEngine struct {
	tables map[string]*Table
}

func NewStorageEngine() *StorageEngine {
	return &StorageEngine{
		tables: map[string]*Table{},
	}
}

// CreateTable stores an empty table under name. An existing table with
// the same name is replaced, reported by the return value.
func (se *StorageEngine) CreateTable(name string, columns []string) bool {
	_, replaced := se.tables[name]
	se.tables[name] = newTable(columns)
	return replaced
}

// InsertRow stores a copy of row under the table's next id.
func (se *StorageEngine) InsertRow(table string, row Row) (uint64, error) {
	t, ok := se.tables[table]
	if !ok {
		return 0, &TableNotFoundError{Name: table}
	}

	id, err := t.insert(row)
	if err != nil {
		return 0, fmt.Errorf("insert into %q: %w", table, err)
	}

	return id, nil
}

func (se *StorageEngine) Table(name string) (*Table, bool) {
	t, ok := se.tables[name]
	return t, ok
}

// TableNames returns the table names in sorted order.
func (se *StorageEngine) TableNames() []string {
	names := make([]string, 0, len(se.tables))
	for name := range se.tables {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}

func (se *StorageEngine) GetTables() []TableMetadata {
	tms := []TableMetadata{}
	for _, name := range se.TableNames() {
		t := se.tables[name]
		tms = append(tms, TableMetadata{
			Name:    name,
			Columns: t.Columns(),
			Rows:    t.Len(),
			NextID:  t.nextID,
		})
	}

	return tms
}

// Clone returns a deep copy that shares nothing with se.
func (se *StorageEngine) Clone() *StorageEngine {
	c := NewStorageEngine()
	for name, t := range se.tables {
		c.tables[name] = t.clone()
	}

	return c
}

// Equal reports whether both stores hold the same tables, columns, id
// counters and rows.
func (se *StorageEngine) Equal(other *StorageEngine) bool {
	if len(se.tables) != len(other.tables) {
		return false
	}

	for name, t := range se.tables {
		o, ok := other.tables[name]
		if !ok || !t.equal(o) {
			return false
		}
	}

	return true
}
