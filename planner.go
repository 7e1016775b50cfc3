package notsosql

import "fmt"

// QueryPlan is what the execution engine runs. It mirrors the select
// statement today so rewrites can happen here without touching the
// parser.
type QueryPlan struct {
	Projection []Identifier
	Table      Identifier
}

// IsWildcard reports whether the plan projects every column.
func (qp QueryPlan) IsWildcard() bool {
	return len(qp.Projection) == 1 && qp.Projection[0] == Asterisk
}

type QueryPlanner struct{}

func NewQueryPlanner() QueryPlanner {
	return QueryPlanner{}
}

func (QueryPlanner) Plan(slct *SelectStatement) *QueryPlan {
	projection := make([]Identifier, len(slct.Projection))
	copy(projection, slct.Projection)

	return &QueryPlan{
		Projection: projection,
		Table:      slct.Table,
	}
}

// PlanNode plans a parsed node. Only select nodes can be planned, anything
// else is a caller bug.
func (qp QueryPlanner) PlanNode(n *Node) *QueryPlan {
	if n.Kind != SelectKind || n.SelectStatement == nil {
		panic(fmt.Sprintf("cannot plan node of kind %d", n.Kind))
	}

	return qp.Plan(n.SelectStatement)
}
