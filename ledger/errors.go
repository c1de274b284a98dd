package ledger

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is matched by every *IndexError via errors.Is.
var ErrIndexOutOfRange = errors.New("index out of range")

// ParseError is returned when a date or amount cannot be parsed from text.
// Callers recover locally: the row is skipped or the prompt aborted.
type ParseError struct {
	Field string // Field being parsed (date, amount)
	Value string // Raw input
	Err   error  // Underlying parse failure
}

func (e *ParseError) Error() string {
	switch e.Field {
	case FieldDate.String():
		return fmt.Sprintf("invalid date %q: use YYYY-MM-DD", e.Value)
	case FieldAmount.String():
		return fmt.Sprintf("invalid amount %q: not a number", e.Value)
	}
	return fmt.Sprintf("invalid %s %q", e.Field, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// GetField returns the name of the field that failed to parse.
func (e *ParseError) GetField() string {
	return e.Field
}

// ValidationError is returned when a value parses but is not acceptable,
// such as a kind outside credit/debit/transfer or an unknown field name.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// GetField returns the name of the rejected field.
func (e *ValidationError) GetField() string {
	return e.Field
}

// IndexError is returned when a positional index does not address an entry.
type IndexError struct {
	Index  int
	Length int
}

func (e *IndexError) Error() string {
	if e.Length == 0 {
		return fmt.Sprintf("invalid transaction number %d: ledger is empty", e.Index)
	}
	return fmt.Sprintf("invalid transaction number %d: must be between 0 and %d", e.Index, e.Length-1)
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

// ResourceError is returned when a file cannot be read or written.
type ResourceError struct {
	Op   string // read, write, create
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}
