package main

import (
	"fmt"
	"os"
	"path/filepath"

	notsosql "github.com/Basillica/not-so-sql"
)

func main() {
	dir, err := os.MkdirTemp("", "notsosql")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "database.db")

	err = notsosql.CreateTable(path, "users", []string{"id", "name", "email"})
	if err != nil {
		panic(err)
	}

	for _, row := range []notsosql.Row{
		notsosql.NewRow("id", "1", "name", "anthony etienne", "email", "anthony.etienne@example.com"),
		notsosql.NewRow("id", "2", "name", "etienne anthony"),
	} {
		if _, err := notsosql.InsertRow(path, "users", row); err != nil {
			panic(err)
		}
	}

	results, err := notsosql.RunQuery(path, "SELECT * FROM users")
	if err != nil {
		panic(err)
	}

	for _, col := range results.Columns {
		fmt.Printf("| %s ", col)
	}
	fmt.Println("|")

	for i := 0; i < 20; i++ {
		fmt.Printf("=")
	}
	fmt.Println()

	for _, line := range results.Strings() {
		fmt.Printf("|")
		for _, s := range line {
			fmt.Printf(" %s | ", s)
		}
		fmt.Println()
	}
}
