package notsosql

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/olekukonko/tablewriter"
)

// RenderResults prints results as a borderless table followed by a row
// count.
func RenderResults(w io.Writer, results *Results) {
	if len(results.Rows) == 0 {
		fmt.Fprintln(w, "(no results)")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader(results.Columns)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.AppendBulk(results.Strings())
	table.Render()

	if len(results.Rows) == 1 {
		fmt.Fprintln(w, "(1 result)")
	} else {
		fmt.Fprintf(w, "(%d results)\n", len(results.Rows))
	}
}

func doSelect(w io.Writer, b Backend, slct *SelectStatement) error {
	results, err := b.Select(slct)
	if err != nil {
		return err
	}

	RenderResults(w, results)
	return nil
}

func DebugTable(w io.Writer, b Backend, name string) {
	// psql behavior is to display all if no name is specified.
	if name == "" {
		DebugTables(w, b)
		return
	}

	var tm *TableMetadata
	for _, t := range b.GetTables() {
		if t.Name == name {
			t := t
			tm = &t
		}
	}

	if tm == nil {
		fmt.Fprintf(w, "Did not find any relation named \"%s\".\n", name)
		return
	}

	fmt.Fprintf(w, "Table \"%s\" (%d rows, next id %d)\n", name, tm.Rows, tm.NextID)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Column", "Type"})
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)

	rows := [][]string{}
	for _, c := range tm.Columns {
		rows = append(rows, []string{c, "text"})
	}

	table.AppendBulk(rows)
	table.Render()

	fmt.Fprintln(w, "")
}

func DebugTables(w io.Writer, b Backend) {
	tables := b.GetTables()
	if len(tables) == 0 {
		fmt.Fprintln(w, "Did not find any relations.")
		return
	}

	fmt.Fprintln(w, "List of relations")

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Name", "Type", "Rows"})
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)

	rows := [][]string{}
	for _, t := range tables {
		rows = append(rows, []string{t.Name, "table", fmt.Sprintf("%d", t.Rows)})
	}

	table.AppendBulk(rows)
	table.Render()

	fmt.Fprintln(w, "")
}

// ParseAssignments turns col=value words into a row. A word without '='
// sets the column to empty text.
func ParseAssignments(words []string) Row {
	row := Row{Data: map[string]string{}}
	for _, word := range words {
		col, value, _ := strings.Cut(word, "=")
		row.Data[col] = value
	}

	return row
}

// evalLine runs one line of REPL input. It returns false when the user
// asked to leave.
func evalLine(w io.Writer, b Backend, line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}

	if trimmed == "quit" || trimmed == "exit" || trimmed == "\\q" {
		return false
	}

	command := strings.Fields(trimmed)[0]
	if command == "\\dt" {
		DebugTables(w, b)
		return true
	}

	if strings.HasPrefix(trimmed, "\\create") {
		fields := strings.Fields(trimmed[len("\\create"):])
		if len(fields) == 0 {
			fmt.Fprintln(w, "Usage: \\create <table> [column ...]")
			return true
		}
		if err := b.CreateTable(fields[0], fields[1:]); err != nil {
			fmt.Fprintln(w, "Error creating table:", err)
			return true
		}
		fmt.Fprintln(w, "ok")
		return true
	}

	if strings.HasPrefix(trimmed, "\\insert") {
		fields := strings.Fields(trimmed[len("\\insert"):])
		if len(fields) == 0 {
			fmt.Fprintln(w, "Usage: \\insert <table> [column=value ...]")
			return true
		}
		id, err := b.InsertRow(fields[0], ParseAssignments(fields[1:]))
		if err != nil {
			fmt.Fprintln(w, "Error inserting values:", err)
			return true
		}
		fmt.Fprintf(w, "ok (row %d)\n", id)
		return true
	}

	if command == "\\d" {
		name := strings.TrimSpace(trimmed[len("\\d"):])
		DebugTable(w, b, name)
		return true
	}

	parseOnly := false
	if strings.HasPrefix(trimmed, "\\p") {
		trimmed = strings.TrimSpace(trimmed[len("\\p"):])
		parseOnly = true
	}

	node, err := Parse(trimmed)
	if err != nil {
		fmt.Fprintln(w, "Error while parsing:", err)
		return true
	}

	if parseOnly {
		fmt.Fprintln(w, node.GenerateCode())
		return true
	}

	if err := doSelect(w, b, node.SelectStatement); err != nil {
		fmt.Fprintln(w, "Error selecting values:", err)
	}

	return true
}

func RunRepl(b Backend) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "# ",
		HistoryFile:     filepath.Join(os.TempDir(), "notsosql_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer l.Close()

	fmt.Println("Welcome to not-so-sql.")
	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if err == io.EOF {
			return nil
		}
		if err != nil {
			fmt.Println("Error while reading line:", err)
			continue
		}

		if !evalLine(os.Stdout, b, line) {
			return nil
		}
	}
}
