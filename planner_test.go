package notsosql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryPlanner_Plan(t *testing.T) {
	tests := []struct {
		source   string
		plan     *QueryPlan
		wildcard bool
	}{
		{
			source:   "SELECT * FROM users",
			plan:     &QueryPlan{Projection: []Identifier{"*"}, Table: "users"},
			wildcard: true,
		},
		{
			source: "SELECT id, email FROM users",
			plan:   &QueryPlan{Projection: []Identifier{"id", "email"}, Table: "users"},
		},
	}

	qp := NewQueryPlanner()
	for _, test := range tests {
		ast, err := Parse(test.source)
		require.NoError(t, err)

		plan := qp.PlanNode(ast)
		assert.Equal(t, test.plan, plan, test.source)
		assert.Equal(t, test.wildcard, plan.IsWildcard(), test.source)
	}
}

func TestQueryPlanner_copiesProjection(t *testing.T) {
	slct := &SelectStatement{Projection: []Identifier{"a"}, Table: "t"}
	plan := NewQueryPlanner().Plan(slct)

	slct.Projection[0] = "b"
	assert.Equal(t, Identifier("a"), plan.Projection[0])
}

func TestQueryPlanner_rejectsNonSelect(t *testing.T) {
	id := Identifier("x")
	assert.Panics(t, func() {
		NewQueryPlanner().PlanNode(&Node{Kind: IdentifierKind, Identifier: &id})
	})
}

func TestQueryPlan_IsWildcard(t *testing.T) {
	assert.False(t, QueryPlan{Projection: []Identifier{"*", "a"}}.IsWildcard())
	assert.False(t, QueryPlan{}.IsWildcard())
}
