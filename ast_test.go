package notsosql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNode_GenerateCode(t *testing.T) {
	id := Identifier("email")
	tests := []struct {
		result string
		node   Node
	}{
		{
			`SELECT
	*
FROM
	"users";`,
			Node{
				SelectStatement: &SelectStatement{
					Projection: []Identifier{Asterisk},
					Table:      "users",
				},
				Kind: SelectKind,
			},
		},
		{
			`SELECT
	"id",
	"name"
FROM
	"users";`,
			Node{
				SelectStatement: &SelectStatement{
					Projection: []Identifier{"id", "name"},
					Table:      "users",
				},
				Kind: SelectKind,
			},
		},
		{
			`"email"`,
			Node{
				Identifier: &id,
				Kind:       IdentifierKind,
			},
		},
	}

	for _, test := range tests {
		assert.Equal(t, test.result, test.node.GenerateCode())
	}
}

func TestGenerateCode_reparses(t *testing.T) {
	for _, source := range []string{
		"SELECT * FROM users",
		"select a, b from t",
	} {
		ast, err := Parse(source)
		require.NoError(t, err)

		// Generated code quotes identifiers, which the grammar does not
		// accept, so strip the quotes before parsing again.
		code := ast.GenerateCode()
		unquoted := []rune{}
		for _, r := range code {
			if r != '"' {
				unquoted = append(unquoted, r)
			}
		}

		again, err := Parse(string(unquoted))
		require.NoError(t, err, code)
		assert.Equal(t, ast, again)
	}
}
