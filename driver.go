package notsosql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"sync"
)

// MemoryDSN opens a fresh in-memory backend instead of a snapshot file.
const MemoryDSN = ":memory:"

type Rows struct {
	columns []string
	index   uint64
	rows    [][]string
}

func (r *Rows) Columns() []string {
	return r.columns
}

func (r *Rows) Close() error {
	r.index = uint64(len(r.rows))
	return nil
}

func (r *Rows) Next(dest []driver.Value) error {
	if r.index >= uint64(len(r.rows)) {
		return io.EOF
	}

	for i, cell := range r.rows[r.index] {
		dest[i] = cell
	}

	r.index++
	return nil
}

type Conn struct {
	mu  *sync.Mutex
	bkd Backend
}

func (dc *Conn) doSelect(slct *SelectStatement) (driver.Rows, error) {
	dc.mu.Lock()
	results, err := dc.bkd.Select(slct)
	dc.mu.Unlock()
	if err != nil {
		return nil, err
	}

	return &Rows{
		rows:    results.Strings(),
		columns: results.Columns,
		index:   0,
	}, nil
}

func (dc *Conn) Query(query string, args []driver.Value) (driver.Rows, error) {
	if len(args) > 0 {
		return nil, fmt.Errorf("Parameterization: %w", ErrNotSupported)
	}

	node, err := Parse(query)
	if err != nil {
		return nil, fmt.Errorf("Error while parsing: %w", err)
	}

	return dc.doSelect(node.SelectStatement)
}

func (dc *Conn) Prepare(query string) (driver.Stmt, error) {
	return nil, fmt.Errorf("Prepare: %w", ErrNotSupported)
}

func (dc *Conn) Begin() (driver.Tx, error) {
	return nil, fmt.Errorf("Begin: %w", ErrNotSupported)
}

func (dc *Conn) Close() error {
	return nil
}

type connector struct {
	mu  sync.Mutex
	bkd Backend
}

// NewConnector lets sql.OpenDB share one backend, for example a
// MemoryBackend filled through the library API, across the pool.
func NewConnector(b Backend) driver.Connector {
	return &connector{bkd: b}
}

func (c *connector) Connect(context.Context) (driver.Conn, error) {
	return &Conn{mu: &c.mu, bkd: c.bkd}, nil
}

func (c *connector) Driver() driver.Driver {
	return &Driver{}
}

type Driver struct{}

// Open treats name as a snapshot path, or MemoryDSN for an empty
// in-memory store.
func (d *Driver) Open(name string) (driver.Conn, error) {
	if name == MemoryDSN {
		return &Conn{mu: &sync.Mutex{}, bkd: NewMemoryBackend()}, nil
	}

	f, err := OpenFileSystem(name)
	if err != nil {
		return nil, err
	}

	return &Conn{mu: &sync.Mutex{}, bkd: f}, nil
}

func init() {
	sql.Register("notsosql", &Driver{})
}
