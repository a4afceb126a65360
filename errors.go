package protolens

import (
	"fmt"

	"golang.org/x/xerrors"
)

// ParseError is returned when a schema source string fails to match the
// proto3 grammar. No partial AST is produced for the failing file.
type ParseError struct {
	// FileIndex is the position of the offending source within the slice
	// passed to Parse.
	FileIndex int
	Line      int
	Column    int
	// Expected describes, in human-readable form, what the grammar was
	// looking for when it gave up.
	Expected string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("protolens: parse error in file %d at %d:%d: expected %s",
		e.FileIndex, e.Line, e.Column, e.Expected)
}

func newParseError(fileIndex, line, column int, expectedFmt string, args ...interface{}) *ParseError {
	return &ParseError{
		FileIndex: fileIndex,
		Line:      line,
		Column:    column,
		Expected:  fmt.Sprintf(expectedFmt, args...),
	}
}

// SchemaErrorKind classifies a SchemaError.
type SchemaErrorKind int

const (
	// ErrDuplicateType indicates two declarations claimed the same
	// fully-qualified name.
	ErrDuplicateType SchemaErrorKind = iota
	// ErrUnresolvedType indicates a field, oneof member or rpc argument
	// referenced a type name that could not be found in scope.
	ErrUnresolvedType
	// ErrInvalidFieldNumber indicates a field number fell inside the
	// reserved 19000-19999 range.
	ErrInvalidFieldNumber
	// ErrInvalidTypeKind indicates a name resolved to a type of the wrong
	// kind for its context, e.g. an rpc argument naming an enum.
	ErrInvalidTypeKind
)

// SchemaError is returned when the linking pass over a set of ASTs cannot
// build a consistent Context: a duplicate type name, an unresolved type
// reference, or (optionally) a reserved field number.
type SchemaError struct {
	Kind SchemaErrorKind

	// FullName is the fully-qualified name involved in the error: the
	// duplicate name for ErrDuplicateType, or the name that owns the
	// unresolved reference for ErrUnresolvedType.
	FullName string
	// Referent is set for ErrUnresolvedType: the (possibly relative) name
	// that could not be resolved.
	Referent string
	// Number is set for ErrInvalidFieldNumber.
	Number int
}

func (e *SchemaError) Error() string {
	switch e.Kind {
	case ErrDuplicateType:
		return fmt.Sprintf("protolens: duplicate type %q", e.FullName)
	case ErrUnresolvedType:
		return fmt.Sprintf("protolens: type %q referenced from %q could not be resolved", e.Referent, e.FullName)
	case ErrInvalidFieldNumber:
		return fmt.Sprintf("protolens: field number %d in %q falls in the reserved range 19000-19999", e.Number, e.FullName)
	case ErrInvalidTypeKind:
		return fmt.Sprintf("protolens: %q in %q does not name a message type", e.Referent, e.FullName)
	default:
		return "protolens: schema error"
	}
}

func wrapParse(err error) error {
	if err == nil {
		return nil
	}
	return xerrors.Errorf("protolens: %w", err)
}
