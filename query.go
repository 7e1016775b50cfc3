package notsosql

// RunQuery parses, plans and executes queryText against the snapshot at
// storagePath. It never writes the snapshot.
func RunQuery(storagePath, queryText string, opts ...Option) (*Results, error) {
	node, err := Parse(queryText)
	if err != nil {
		return nil, err
	}

	f, err := OpenFileSystem(storagePath, opts...)
	if err != nil {
		return nil, err
	}

	return f.Select(node.SelectStatement)
}

// CreateTable creates or replaces a table in the snapshot at storagePath.
func CreateTable(storagePath, name string, columns []string, opts ...Option) error {
	f, err := OpenFileSystem(storagePath, opts...)
	if err != nil {
		return err
	}

	return f.CreateTable(name, columns)
}

// InsertRow appends row to table in the snapshot at storagePath and
// returns the row's id.
func InsertRow(storagePath, table string, row Row, opts ...Option) (uint64, error) {
	f, err := OpenFileSystem(storagePath, opts...)
	if err != nil {
		return 0, err
	}

	return f.InsertRow(table, row)
}
