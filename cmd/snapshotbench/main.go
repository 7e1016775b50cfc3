package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"time"

	notsosql "github.com/Basillica/not-so-sql"
)

// Every insert rewrites the whole snapshot, so insert cost grows with
// the size of the store. This measures how fast.

func doInsert(f *notsosql.FileSystem, inserts int) {
	for i := 0; i < inserts; i++ {
		_, err := f.InsertRow("users", notsosql.NewRow("id", strconv.Itoa(i), "name", fmt.Sprintf("user%d", i)))
		if err != nil {
			panic(err)
		}
	}
}

func doSelect(path string, inserts int) {
	r, err := notsosql.RunQuery(path, "SELECT id, name FROM users")
	if err != nil {
		panic(err)
	}

	if len(r.Rows) != inserts {
		panic(fmt.Sprintf("Expected %d rows, got %d", inserts, len(r.Rows)))
	}

	if inserts == 0 {
		return
	}

	if last := r.Rows[len(r.Rows)-1].Get("id"); last != strconv.Itoa(inserts-1) {
		panic(fmt.Sprintf("Bad last row, got: %s", last))
	}
}

func perf(name string, cb func()) {
	start := time.Now()
	fmt.Println("Starting", name)
	cb()
	fmt.Printf("Finished %s: %f seconds\n", name, time.Since(start).Seconds())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	fmt.Printf("Alloc = %d MiB\n\n", m.Alloc/1024/1024)
}

func main() {
	inserts := flag.Int("inserts", 1000, "number of rows to insert")
	flag.Parse()

	dir, err := os.MkdirTemp("", "snapshotbench")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "bench.db")

	f, err := notsosql.OpenFileSystem(path)
	if err != nil {
		panic(err)
	}

	if err := f.CreateTable("users", []string{"id", "name"}); err != nil {
		panic(err)
	}

	fmt.Printf("Inserting %d rows\n", *inserts)
	perf("INSERT", func() { doInsert(f, *inserts) })
	perf("SELECT", func() { doSelect(path, *inserts) })

	if info, err := os.Stat(path); err == nil {
		fmt.Printf("Snapshot size = %d bytes\n", info.Size())
	}
}
