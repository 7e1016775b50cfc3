package notsosql

import (
	"log/slog"
	"sort"
)

// ExecutionEngine runs plans against a store it treats as read-only.
// Callers hand it a snapshot, usually from Clone.
type ExecutionEngine struct {
	storage *StorageEngine
	logger  *slog.Logger
}

type ExecutorOption func(*ExecutionEngine)

func WithExecutorLogger(logger *slog.Logger) ExecutorOption {
	return func(ee *ExecutionEngine) {
		ee.logger = logger
	}
}

func NewExecutionEngine(storage *StorageEngine, opts ...ExecutorOption) *ExecutionEngine {
	ee := &ExecutionEngine{
		storage: storage,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(ee)
	}

	return ee
}

// Execute projects the plan's columns out of every row of the plan's
// table, in row-id order. Columns a row does not have come back as empty
// text.
//
// A * projection expands to the table's declared columns. Tables that
// declare no columns project each row's own keys instead, and the result
// columns are the sorted union of those keys.
func (ee *ExecutionEngine) Execute(plan *QueryPlan) (*Results, error) {
	table, ok := ee.storage.Table(string(plan.Table))
	if !ok {
		ee.logger.Debug("table not found", "table", plan.Table)
		return nil, &TableNotFoundError{Name: string(plan.Table)}
	}

	rowKeys := plan.IsWildcard() && len(table.columns) == 0

	var columns []string
	switch {
	case rowKeys:
		columns = nil
	case plan.IsWildcard():
		columns = table.Columns()
	default:
		for _, id := range plan.Projection {
			columns = append(columns, string(id))
		}
	}

	ee.logger.Debug("executing plan",
		"table", plan.Table,
		"projection", plan.Projection,
		"columns", columns,
		"rows", table.Len())

	seen := map[string]bool{}
	rows := []Row{}
	table.Scan(func(_ uint64, row Row) bool {
		cols := columns
		if rowKeys {
			cols = row.Keys()
			for _, c := range cols {
				seen[c] = true
			}
		}

		data := make(map[string]string, len(cols))
		for _, c := range cols {
			data[c] = row.Get(c)
		}
		rows = append(rows, Row{Data: data})
		return true
	})

	if rowKeys {
		columns = []string{}
		for c := range seen {
			columns = append(columns, c)
		}
		sort.Strings(columns)
	}

	return &Results{
		Columns: columns,
		Rows:    rows,
	}, nil
}
