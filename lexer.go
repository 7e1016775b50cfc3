package notsosql

import (
	"unicode"
	"unicode/utf8"
)

// location of the token in source code
type location struct {
	line uint
	col  uint
}

// the only keyword recognized by the lexer, FROM is matched by the parser
const selectKeyword = "select"

type tokenKind uint

const (
	keywordKind tokenKind = iota
	identifierKind
	literalKind
	operatorKind
	commaKind
	leftParenKind
	rightParenKind
	whitespaceKind
	eofKind
)

func (k tokenKind) String() string {
	switch k {
	case keywordKind:
		return "keyword"
	case identifierKind:
		return "identifier"
	case literalKind:
		return "literal"
	case operatorKind:
		return "operator"
	case commaKind:
		return "comma"
	case leftParenKind:
		return "left paren"
	case rightParenKind:
		return "right paren"
	case whitespaceKind:
		return "whitespace"
	case eofKind:
		return "end of input"
	default:
		return "unknown"
	}
}

type token struct {
	value string
	kind  tokenKind
	loc   location
}

func (t *token) describe() string {
	if t.kind == eofKind {
		return t.kind.String()
	}

	return t.kind.String() + " '" + t.value + "'"
}

// cursor indicates the current position of the lexer
type cursor struct {
	pointer uint
	loc     location
}

// advance moves the cursor past the rune r.
func (c cursor) advance(r rune, size int) cursor {
	c.pointer += uint(size)
	if r == '\n' {
		c.loc.line++
		c.loc.col = 0
	} else {
		c.loc.col++
	}

	return c
}

func lexSingle(source string, ic cursor) (*token, cursor, bool) {
	r, size := utf8.DecodeRuneInString(source[ic.pointer:])
	cur := ic.advance(r, size)

	var kind tokenKind
	switch {
	case unicode.IsSpace(r):
		kind = whitespaceKind
	case r == ',':
		kind = commaKind
	case r == '(':
		kind = leftParenKind
	case r == ')':
		kind = rightParenKind
	default:
		return nil, ic, false
	}

	return &token{
		value: string(r),
		kind:  kind,
		loc:   ic.loc,
	}, cur, true
}

// isAlphabetic reports the Unicode Alphabetic property: letters,
// letter numbers and the combining marks scripts like Devanagari need.
func isAlphabetic(r rune) bool {
	return unicode.IsLetter(r) || unicode.Is(unicode.Nl, r) || unicode.Is(unicode.Other_Alphabetic, r)
}

// isKeyword compares value against kw ignoring ASCII case only.
func isKeyword(value, kw string) bool {
	if len(value) != len(kw) {
		return false
	}

	for i := 0; i < len(value); i++ {
		c := value[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != kw[i] {
			return false
		}
	}

	return true
}

// lexIdentifier consumes an alphabetic rune followed by any run of
// alphabetic runes and numbers. SELECT in any ASCII case becomes a
// keyword, everything else stays an identifier with its original
// spelling.
func lexIdentifier(source string, ic cursor) (*token, cursor, bool) {
	r, size := utf8.DecodeRuneInString(source[ic.pointer:])
	if !isAlphabetic(r) {
		return nil, ic, false
	}
	cur := ic.advance(r, size)

	for cur.pointer < uint(len(source)) {
		r, size = utf8.DecodeRuneInString(source[cur.pointer:])
		if !isAlphabetic(r) && !unicode.IsNumber(r) {
			break
		}
		cur = cur.advance(r, size)
	}

	value := source[ic.pointer:cur.pointer]
	kind := identifierKind
	if isKeyword(value, selectKeyword) {
		kind = keywordKind
	}

	return &token{
		value: value,
		kind:  kind,
		loc:   ic.loc,
	}, cur, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func lexLiteral(source string, ic cursor) (*token, cursor, bool) {
	cur := ic
	for cur.pointer < uint(len(source)) && isDigit(source[cur.pointer]) {
		cur = cur.advance(rune(source[cur.pointer]), 1)
	}

	// No characters accumulated
	if cur.pointer == ic.pointer {
		return nil, ic, false
	}

	return &token{
		value: source[ic.pointer:cur.pointer],
		kind:  literalKind,
		loc:   ic.loc,
	}, cur, true
}

// lexOperator accepts any single rune. It must run last.
func lexOperator(source string, ic cursor) (*token, cursor, bool) {
	r, size := utf8.DecodeRuneInString(source[ic.pointer:])
	return &token{
		value: string(r),
		kind:  operatorKind,
		loc:   ic.loc,
	}, ic.advance(r, size), true
}

type lexFunc func(string, cursor) (*token, cursor, bool)

var lexers = []lexFunc{lexSingle, lexIdentifier, lexLiteral, lexOperator}

// lexer produces tokens on demand. The sequence always ends with
// exactly one eof token and can be replayed with reset.
type lexer struct {
	source string
	cur    cursor
	done   bool
}

func newLexer(source string) *lexer {
	return &lexer{source: source}
}

// next returns the next token, or false once the eof token has been
// handed out.
func (l *lexer) next() (*token, bool) {
	if l.done {
		return nil, false
	}

	if l.cur.pointer >= uint(len(l.source)) {
		l.done = true
		return &token{kind: eofKind, loc: l.cur.loc}, true
	}

	for _, lx := range lexers {
		if t, newCursor, ok := lx(l.source, l.cur); ok {
			l.cur = newCursor
			return t, true
		}
	}

	// lexOperator accepts everything
	panic("unreachable")
}

func (l *lexer) reset() {
	l.cur = cursor{}
	l.done = false
}

// lex drains a fresh lexer over source.
func lex(source string) []*token {
	var tokens []*token
	l := newLexer(source)
	for {
		t, ok := l.next()
		if !ok {
			return tokens
		}
		tokens = append(tokens, t)
	}
}
