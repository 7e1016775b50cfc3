package notsosql

import (
	"errors"
	"fmt"
)

var (
	// ErrParse matches every *ParseError
	ErrParse                   = errors.New("Parse error")
	// ErrUnexpectedTrailingInput is returned when input remains after a
	// complete statement
	ErrUnexpectedTrailingInput = errors.New("Unexpected trailing input")
	// ErrTableNotFound matches every *TableNotFoundError
	ErrTableNotFound           = errors.New("Table does not exist")
	// ErrStorageDecode is returned when snapshot bytes are not a valid store
	ErrStorageDecode           = errors.New("Storage decode error")
	// ErrIO matches every *IOError
	ErrIO                      = errors.New("I/O error")
	// ErrNotSupported is returned by driver features that do not exist
	ErrNotSupported            = errors.New("Not supported")
	// ErrRowIDsExhausted is returned when a table has handed out every id
	ErrRowIDsExhausted         = errors.New("Row ids exhausted")
)

// ParseError reports the token at which parsing stopped.
type ParseError struct {
	Line     uint
	Col      uint
	Got      string
	Msg      string
	trailing bool
}

func newParseError(t *token, msg string) *ParseError {
	return &ParseError{
		Line: t.loc.line,
		Col:  t.loc.col,
		Got:  t.describe(),
		Msg:  msg,
	}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("[%d,%d]: %s, got: %s", e.Line, e.Col, e.Msg, e.Got)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrParse || (e.trailing && target == ErrUnexpectedTrailingInput)
}

type TableNotFoundError struct {
	Name string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("Table does not exist: %q", e.Name)
}

func (e *TableNotFoundError) Is(target error) bool {
	return target == ErrTableNotFound
}

// DecodeError wraps the reason a snapshot could not be decoded.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("Storage decode error: %s", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func (e *DecodeError) Is(target error) bool {
	return target == ErrStorageDecode
}

func decodeErrorf(format string, args ...interface{}) error {
	return &DecodeError{Err: fmt.Errorf(format, args...)}
}

// IOError is a failed filesystem operation on the snapshot file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("Error during %s %s: %s", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func (e *IOError) Is(target error) bool {
	return target == ErrIO
}
