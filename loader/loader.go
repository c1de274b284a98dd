// Package loader reads transaction files into ledger entries.
//
// A transaction file is comma-separated with a header row. Columns are matched
// by name, so their order does not matter:
//
//	transaction_id,date,customer_id,amount,type,description
//
// Only date, amount and type are required. Rows that cannot be converted, for
// example because of a malformed date or a non-numeric amount, are skipped one
// by one and reported in Result.Skipped; they never abort the load.
//
// Example usage:
//
//	ldr := loader.New()
//	result, err := ldr.Load(ctx, "financial_transactions.csv")
//	if err != nil {
//	    // *ledger.ResourceError or *ledger.ValidationError (bad header)
//	}
//	l := ledger.New()
//	l.Replace(result.Entries)
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/robinvdvleuten/finance/ledger"
	"github.com/robinvdvleuten/finance/telemetry"
)

// Column names of a transaction file.
const (
	ColumnID          = "transaction_id"
	ColumnDate        = "date"
	ColumnCustomer    = "customer_id"
	ColumnAmount      = "amount"
	ColumnType        = "type"
	ColumnDescription = "description"
)

// Header is the column order written by the formatter package.
var Header = []string{ColumnID, ColumnDate, ColumnCustomer, ColumnAmount, ColumnType, ColumnDescription}

var requiredColumns = []string{ColumnDate, ColumnAmount, ColumnType}

// Loader reads transaction files. Configure it with functional options passed
// to New:
//
//	loader := New(WithLogger(logger))
type Loader struct {
	// Logger receives one warning per skipped row.
	Logger *slog.Logger
}

// Option configures how files are loaded.
type Option func(*Loader)

// WithLogger sets the logger used to report skipped rows. The default is
// slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.Logger = logger
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{}

	for _, opt := range opts {
		opt(l)
	}

	if l.Logger == nil {
		l.Logger = slog.Default()
	}

	return l
}

// Result is the outcome of loading one file.
type Result struct {
	// Root is the absolute path of the loaded file, or the name given to
	// LoadReader.
	Root string

	// Entries holds the converted rows in file order. Ids come from the
	// transaction_id column when present and are otherwise left zero for the
	// ledger to assign.
	Entries []ledger.Entry

	// Skipped holds one error per row that could not be converted.
	Skipped []*RowError
}

// RowError describes a row that was skipped during a load.
type RowError struct {
	Filename string
	Line     int      // 1-based line of the row in the file
	Record   []string // Raw fields of the row, nil when the row could not be split
	Err      error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Filename, e.Line, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// GetLine returns the line of the skipped row.
func (e *RowError) GetLine() int {
	return e.Line
}

// GetRecord returns the raw fields of the skipped row.
func (e *RowError) GetRecord() []string {
	return e.Record
}

// GetFilename returns the file the row belongs to.
func (e *RowError) GetFilename() string {
	return e.Filename
}

// Load reads and converts the file at filename.
func (l *Loader) Load(ctx context.Context, filename string) (*Result, error) {
	absPath, err := filepath.Abs(filename)
	if err != nil {
		absPath = filename
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, &ledger.ResourceError{Op: "read", Path: filename, Err: err}
	}
	defer func() { _ = f.Close() }()

	return l.LoadReader(ctx, absPath, f)
}

// LoadReader converts transaction rows read from r. The name is used in
// diagnostics only.
func (l *Loader) LoadReader(ctx context.Context, name string, r io.Reader) (*Result, error) {
	timer := telemetry.FromContext(ctx).Start(fmt.Sprintf("loader.load %s", filepath.Base(name)))
	defer timer.End()

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = false
	// Hand-edited files contain bare quotes such as 5" screen.
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ledger.ValidationError{Field: "header", Reason: "file is empty, a header row is required"}
		}
		return nil, &ledger.ResourceError{Op: "read", Path: name, Err: err}
	}

	cols, err := newColumns(header)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Root:    name,
		Entries: make([]ledger.Entry, 0),
	}

	convertTimer := timer.Child("loader.convert_rows")
	defer convertTimer.End()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			var csvErr *csv.ParseError
			if !errors.As(err, &csvErr) {
				return nil, &ledger.ResourceError{Op: "read", Path: name, Err: err}
			}
			l.skip(result, &RowError{Filename: name, Line: csvErr.StartLine, Err: csvErr.Err})
			continue
		}

		if isBlank(record) {
			continue
		}

		line, _ := reader.FieldPos(0)

		entry, err := cols.entry(record)
		if err != nil {
			l.skip(result, &RowError{Filename: name, Line: line, Record: record, Err: err})
			continue
		}

		result.Entries = append(result.Entries, entry)
	}

	return result, nil
}

func (l *Loader) skip(result *Result, rowErr *RowError) {
	result.Skipped = append(result.Skipped, rowErr)
	l.Logger.Warn("skipping row",
		"file", rowErr.Filename,
		"line", rowErr.Line,
		"row", strings.Join(rowErr.Record, ","),
		"error", rowErr.Err,
	)
}

// columns maps column names to their position in a record.
type columns map[string]int

func newColumns(header []string) (columns, error) {
	cols := make(columns, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		name = strings.ToLower(strings.TrimSpace(name))
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &ledger.ValidationError{
			Field:  "header",
			Value:  strings.Join(header, ","),
			Reason: fmt.Sprintf("missing column(s) %s", strings.Join(missing, ", ")),
		}
	}

	return cols, nil
}

func (c columns) value(record []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

// entry converts one record. Optional columns fall back to zero values.
func (c columns) entry(record []string) (ledger.Entry, error) {
	date, err := ledger.ParseDate(c.value(record, ColumnDate))
	if err != nil {
		return ledger.Entry{}, err
	}

	amount, err := ledger.ParseAmount(c.value(record, ColumnAmount))
	if err != nil {
		return ledger.Entry{}, err
	}

	kind, err := ledger.ParseKind(c.value(record, ColumnType))
	if err != nil {
		return ledger.Entry{}, err
	}

	// An unreadable id is treated as absent; the ledger assigns one.
	id, err := strconv.Atoi(strings.TrimSpace(c.value(record, ColumnID)))
	if err != nil || id < 0 {
		id = 0
	}

	return ledger.Entry{
		ID:          id,
		Date:        date,
		CustomerID:  strings.TrimSpace(c.value(record, ColumnCustomer)),
		Amount:      amount,
		Kind:        kind,
		Description: c.value(record, ColumnDescription),
	}, nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
