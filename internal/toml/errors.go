package toml

import "fmt"

// ErrorKind discriminates the failure modes of the parser.
type ErrorKind uint8

const (
	// UnexpectedToken indicates input that does not fit the grammar.
	UnexpectedToken ErrorKind = iota

	// UnterminatedString indicates a string with no closing delimiter.
	UnterminatedString

	// DuplicateKey indicates a key declared twice in the same table.
	DuplicateKey

	// InvalidNumber indicates a malformed integer or float literal.
	InvalidNumber

	// InvalidDateTime indicates a malformed datetime literal.
	InvalidDateTime

	// TypeConflict indicates a key redefined with an incompatible shape,
	// such as a table header over an existing plain value.
	TypeConflict
)

// String returns a human-readable name for the error kind.
func (k ErrorKind) String() string {
	switch k {
	case UnexpectedToken:
		return "unexpected token"
	case UnterminatedString:
		return "unterminated string"
	case DuplicateKey:
		return "duplicate key"
	case InvalidNumber:
		return "invalid number"
	case InvalidDateTime:
		return "invalid datetime"
	case TypeConflict:
		return "type conflict"
	default:
		return "unknown error"
	}
}

// ParseError describes a single terminal parse failure. Line and Col are
// 1-based positions of the offending input.
type ParseError struct {
	Kind    ErrorKind
	Line    int
	Col     int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("toml: line %d, column %d: %s: %s", e.Line, e.Col, e.Kind, e.Message)
}
