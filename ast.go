package notsosql

import (
	"fmt"
	"strings"
)

// Identifier names a table or a column. Comparison is exact, there is
// no case folding.
type Identifier string

// Asterisk is the projection sentinel for SELECT *.
const Asterisk Identifier = "*"

type SelectStatement struct {
	Projection []Identifier
	Table      Identifier
}

func (ss SelectStatement) GenerateCode() string {
	item := []string{}
	for _, i := range ss.Projection {
		if i == Asterisk {
			item = append(item, "\t*")
			continue
		}
		item = append(item, fmt.Sprintf("\t\"%s\"", i))
	}

	return fmt.Sprintf("SELECT\n%s\nFROM\n\t\"%s\";", strings.Join(item, ",\n"), ss.Table)
}

type NodeKind uint

const (
	SelectKind NodeKind = iota
	IdentifierKind
)

// Node is the root of a parsed query. Only one of the payload fields is
// set, matching Kind.
type Node struct {
	SelectStatement *SelectStatement
	Identifier      *Identifier
	Kind            NodeKind
}

func (n Node) GenerateCode() string {
	switch n.Kind {
	case SelectKind:
		return n.SelectStatement.GenerateCode()
	case IdentifierKind:
		return fmt.Sprintf("\"%s\"", *n.Identifier)
	}

	return "?unknown?"
}
