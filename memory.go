package notsosql

import "log/slog"

// MemoryBackend is a Backend that never touches disk.
type MemoryBackend struct {
	storage *StorageEngine
	logger  *slog.Logger
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		storage: NewStorageEngine(),
		logger:  slog.Default(),
	}
}

func (mb *MemoryBackend) CreateTable(name string, columns []string) error {
	if mb.storage.CreateTable(name, columns) {
		mb.logger.Warn("replacing existing table", "table", name)
	}

	return nil
}

func (mb *MemoryBackend) InsertRow(table string, row Row) (uint64, error) {
	return mb.storage.InsertRow(table, row)
}

func (mb *MemoryBackend) Select(slct *SelectStatement) (*Results, error) {
	plan := NewQueryPlanner().Plan(slct)
	return NewExecutionEngine(mb.storage.Clone(), WithExecutorLogger(mb.logger)).Execute(plan)
}

func (mb *MemoryBackend) GetTables() []TableMetadata {
	return mb.storage.GetTables()
}
