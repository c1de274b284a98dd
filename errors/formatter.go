// Package errors renders load diagnostics for different consumers. Domain
// error types stay in their own packages (ledger, loader); this package only
// handles presentation.
//
// Two formatters are provided:
//   - TextFormatter: file:line prefixed messages quoting the offending row
//   - JSONFormatter: structured output for scripts and CI
package errors

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

// positional is implemented by errors that point at a line of a file, such
// as *loader.RowError.
type positional interface {
	error
	GetFilename() string
	GetLine() int
}

// fielded is implemented by errors about a single entry field, such as
// *ledger.ParseError and *ledger.ValidationError.
type fielded interface {
	GetField() string
}

// TextFormatter formats errors for command-line output.
type TextFormatter struct {
	sourceLines []string // Optional source content for row context
}

// TextFormatterOption is an option for configuring TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the file content used to quote offending rows verbatim.
// Without it the row is rebuilt from the parsed record, if there is one.
func WithSource(source []byte) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.sourceLines = strings.Split(strings.ReplaceAll(string(source), "\r\n", "\n"), "\n")
	}
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error:
//
//	transactions.csv:3: invalid amount "abc": not a number
//
//	   2,2024-01-16,C001,abc,debit,Groceries
func (tf *TextFormatter) Format(err error) string {
	e, ok := err.(positional)
	if !ok {
		return err.Error()
	}

	var buf bytes.Buffer
	buf.WriteString(e.Error())

	if row := tf.row(err, e.GetLine()); row != "" {
		buf.WriteString("\n\n   ")
		buf.WriteString(row)
		buf.WriteByte('\n')
	}

	return buf.String()
}

// FormatAll formats multiple errors, separating them with blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf bytes.Buffer
	for i, err := range errs {
		buf.WriteString(strings.TrimRight(tf.Format(err), "\n"))

		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}

func (tf *TextFormatter) row(err error, line int) string {
	if line > 0 && line <= len(tf.sourceLines) {
		return tf.sourceLines[line-1]
	}
	if e, ok := err.(interface{ GetRecord() []string }); ok {
		return strings.Join(e.GetRecord(), ",")
	}
	return ""
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format.
type ErrorJSON struct {
	Type     string            `json:"type"`
	Message  string            `json:"message"`
	Position *PositionJSON     `json:"position,omitempty"`
	Details  map[string]string `json:"details,omitempty"`
}

// PositionJSON represents a file position in JSON format.
type PositionJSON struct {
	Filename string `json:"filename"`
	Line     int    `json:"line"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.toJSON(err))
	return string(data)
}

// FormatAll formats multiple errors as a JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	data, _ := json.MarshalIndent(jf.FormatAllToSlice(errs), "", "  ")
	return string(data)
}

// FormatAllToSlice returns errors as a slice of ErrorJSON structs.
func (jf *JSONFormatter) FormatAllToSlice(errs []error) []ErrorJSON {
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		result = append(result, jf.toJSON(err))
	}
	return result
}

func (jf *JSONFormatter) toJSON(err error) ErrorJSON {
	errJSON := ErrorJSON{
		Type:    fmt.Sprintf("%T", err),
		Message: err.Error(),
		Details: make(map[string]string),
	}

	if e, ok := err.(positional); ok {
		errJSON.Position = &PositionJSON{
			Filename: e.GetFilename(),
			Line:     e.GetLine(),
		}
	}

	if e, ok := err.(interface{ GetRecord() []string }); ok && e.GetRecord() != nil {
		errJSON.Details["row"] = strings.Join(e.GetRecord(), ",")
	}

	// The cause of a skipped row carries the field that was rejected.
	cause := err
	if u, ok := err.(interface{ Unwrap() error }); ok && u.Unwrap() != nil {
		cause = u.Unwrap()
	}
	if e, ok := cause.(fielded); ok {
		errJSON.Details["field"] = e.GetField()
		errJSON.Details["cause"] = fmt.Sprintf("%T", cause)
	}

	if len(errJSON.Details) == 0 {
		errJSON.Details = nil
	}

	return errJSON
}
