package notsosql

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// FileSystem is a StorageEngine whose every mutation is written to a
// single snapshot file before it becomes visible.
type FileSystem struct {
	storage *StorageEngine
	path    string
	logger  *slog.Logger
}

type Option func(*FileSystem)

func WithLogger(logger *slog.Logger) Option {
	return func(f *FileSystem) {
		f.logger = logger
	}
}

// OpenFileSystem loads the snapshot at path. A missing file gives an
// empty store; a file that cannot be read or decoded is an error rather
// than silently starting over.
func OpenFileSystem(path string, opts ...Option) (*FileSystem, error) {
	f := &FileSystem{
		path:   path,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}

	storage, err := loadFromFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		f.logger.Debug("no snapshot found, starting empty", "path", path)
		storage = NewStorageEngine()
	} else if err != nil {
		return nil, err
	}

	f.storage = storage
	f.logger.Debug("snapshot loaded", "path", path, "tables", len(storage.tables))
	return f, nil
}

func loadFromFile(path string) (*StorageEngine, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, &IOError{Op: "read", Path: path, Err: err}
	}

	return Deserialize(buf)
}

func (f *FileSystem) Path() string {
	return f.path
}

// Snapshot returns a deep copy of the current store for read-only use.
func (f *FileSystem) Snapshot() *StorageEngine {
	return f.storage.Clone()
}

// CreateTable replaces any table of the same name.
func (f *FileSystem) CreateTable(name string, columns []string) error {
	return f.mutate(func(se *StorageEngine) error {
		if se.CreateTable(name, columns) {
			f.logger.Warn("replacing existing table", "table", name)
		}
		return nil
	})
}

func (f *FileSystem) InsertRow(table string, row Row) (uint64, error) {
	var id uint64
	err := f.mutate(func(se *StorageEngine) error {
		var err error
		id, err = se.InsertRow(table, row)
		return err
	})

	return id, err
}

func (f *FileSystem) Select(slct *SelectStatement) (*Results, error) {
	plan := NewQueryPlanner().Plan(slct)
	return NewExecutionEngine(f.Snapshot(), WithExecutorLogger(f.logger)).Execute(plan)
}

func (f *FileSystem) GetTables() []TableMetadata {
	return f.storage.GetTables()
}

// mutate applies fn to a copy of the store, persists the copy and only
// then swaps it in, so a failed write leaves memory and disk unchanged.
func (f *FileSystem) mutate(fn func(*StorageEngine) error) error {
	next := f.storage.Clone()
	if err := fn(next); err != nil {
		return err
	}

	if err := saveToFile(f.path, next); err != nil {
		f.logger.Error("failed to write snapshot", "path", f.path, "err", err)
		return err
	}

	f.storage = next
	return nil
}

// saveToFile writes a temp file next to path and renames it over path.
// Readers see either the old snapshot or the new one, never a torn one.
func saveToFile(path string, se *StorageEngine) error {
	buf, err := se.Serialize()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return &IOError{Op: "create", Path: dir, Err: err}
	}
	tmpPath := tmp.Name()

	cleanup := func(op string, err error) error {
		tmp.Close()
		os.Remove(tmpPath)
		return &IOError{Op: op, Path: tmpPath, Err: err}
	}

	if _, err := tmp.Write(buf); err != nil {
		return cleanup("write", err)
	}

	// Keep the mode of an existing snapshot, CreateTemp always uses 0600.
	if info, err := os.Stat(path); err == nil {
		if err := tmp.Chmod(info.Mode().Perm()); err != nil {
			return cleanup("chmod", err)
		}
	}

	if err := tmp.Sync(); err != nil {
		return cleanup("sync", err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return &IOError{Op: "close", Path: tmpPath, Err: err}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return &IOError{Op: "rename", Path: path, Err: err}
	}

	return syncDir(dir)
}

// syncDir flushes the directory entry so the rename survives a crash.
func syncDir(dir string) error {
	d, err := os.Open(dir)
	if err != nil {
		return &IOError{Op: "open", Path: dir, Err: err}
	}
	defer d.Close()

	if err := d.Sync(); err != nil {
		return &IOError{Op: "sync", Path: dir, Err: err}
	}

	return nil
}
