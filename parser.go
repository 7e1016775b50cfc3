package notsosql

import "strings"

const fromKeyword = "from"

// skipWhitespace returns the first cursor at or after initialCursor that
// does not point at a whitespace token.
func skipWhitespace(tokens []*token, initialCursor uint) uint {
	cursor := initialCursor
	for cursor < uint(len(tokens)) && tokens[cursor].kind == whitespaceKind {
		cursor++
	}

	return cursor
}

// current never runs past the trailing eof token.
func current(tokens []*token, cursor uint) *token {
	if cursor >= uint(len(tokens)) {
		return tokens[len(tokens)-1]
	}

	return tokens[cursor]
}

func isFrom(t *token) bool {
	return t.kind == identifierKind && strings.EqualFold(t.value, fromKeyword)
}

func isAsterisk(t *token) bool {
	return t.kind == operatorKind && t.value == string(Asterisk)
}

func parseToken(tokens []*token, initialCursor uint, kind tokenKind, msg string) (*token, uint, error) {
	cursor := skipWhitespace(tokens, initialCursor)

	t := current(tokens, cursor)
	if t.kind != kind {
		return nil, initialCursor, newParseError(t, msg)
	}

	return t, cursor + 1, nil
}

// * | ident [, ...]
func parseProjection(tokens []*token, initialCursor uint) ([]Identifier, uint, error) {
	cursor := skipWhitespace(tokens, initialCursor)

	if isAsterisk(current(tokens, cursor)) {
		return []Identifier{Asterisk}, cursor + 1, nil
	}

	var projection []Identifier
	for {
		cursor = skipWhitespace(tokens, cursor)

		t := current(tokens, cursor)
		if t.kind != identifierKind || isFrom(t) {
			return nil, initialCursor, newParseError(t, "Expected column name")
		}
		projection = append(projection, Identifier(t.value))
		cursor++

		cursor = skipWhitespace(tokens, cursor)
		if current(tokens, cursor).kind != commaKind {
			break
		}
		cursor++
	}

	return projection, cursor, nil
}

// SELECT projection FROM ident
func parseSelectStatement(tokens []*token, initialCursor uint) (*SelectStatement, uint, error) {
	_, cursor, err := parseToken(tokens, initialCursor, keywordKind, "Expected SELECT")
	if err != nil {
		return nil, initialCursor, err
	}

	projection, cursor, err := parseProjection(tokens, cursor)
	if err != nil {
		return nil, initialCursor, err
	}

	cursor = skipWhitespace(tokens, cursor)
	if t := current(tokens, cursor); !isFrom(t) {
		return nil, initialCursor, newParseError(t, "Expected FROM")
	}
	cursor++

	table, cursor, err := parseToken(tokens, cursor, identifierKind, "Expected table name")
	if err != nil {
		return nil, initialCursor, err
	}

	return &SelectStatement{
		Projection: projection,
		Table:      Identifier(table.value),
	}, cursor, nil
}

// parseEnd accepts one optional semicolon and then requires the end of
// input.
func parseEnd(tokens []*token, initialCursor uint) error {
	cursor := skipWhitespace(tokens, initialCursor)
	if t := current(tokens, cursor); t.kind == operatorKind && t.value == ";" {
		cursor = skipWhitespace(tokens, cursor+1)
	}

	t := current(tokens, cursor)
	if t.kind != eofKind {
		err := newParseError(t, "Expected end of statement")
		err.trailing = true
		return err
	}

	return nil
}

// Parse turns query text into a single select node. All failures are
// *ParseError values.
func Parse(source string) (*Node, error) {
	tokens := lex(source)

	slct, cursor, err := parseSelectStatement(tokens, 0)
	if err != nil {
		return nil, err
	}

	if err := parseEnd(tokens, cursor); err != nil {
		return nil, err
	}

	return &Node{
		Kind:            SelectKind,
		SelectStatement: slct,
	}, nil
}
