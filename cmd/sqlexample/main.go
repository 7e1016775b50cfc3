package main

import (
	"database/sql"
	"fmt"

	notsosql "github.com/Basillica/not-so-sql"
)

func main() {
	mb := notsosql.NewMemoryBackend()
	if err := mb.CreateTable("users", []string{"name", "age"}); err != nil {
		panic(err)
	}

	for _, row := range []notsosql.Row{
		notsosql.NewRow("name", "Terry", "age", "45"),
		notsosql.NewRow("name", "Anette", "age", "57"),
	} {
		if _, err := mb.InsertRow("users", row); err != nil {
			panic(err)
		}
	}

	db := sql.OpenDB(notsosql.NewConnector(mb))
	defer db.Close()

	rows, err := db.Query("SELECT name, age FROM users;")
	if err != nil {
		panic(err)
	}

	var name string
	var age uint64
	defer rows.Close()
	for rows.Next() {
		err := rows.Scan(&name, &age)
		if err != nil {
			panic(err)
		}

		fmt.Printf("Name: %s, Age: %d\n", name, age)
	}

	if err = rows.Err(); err != nil {
		panic(err)
	}
}
