// Package formatter writes ledger entries back out, either as a transaction
// file that the loader package reads again or as aligned text tables for the
// terminal.
package formatter

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/robinvdvleuten/finance/ledger"
	"github.com/robinvdvleuten/finance/loader"
	"github.com/robinvdvleuten/finance/output"
	"github.com/robinvdvleuten/finance/telemetry"
)

// Formatter handles writing of entries.
type Formatter struct {
	// Logger receives one warning per entry that could not be written.
	Logger *slog.Logger

	// Styles colours table output. Nil renders plain text.
	Styles *output.Styles
}

// Option is a functional option for configuring a Formatter.
type Option func(*Formatter)

// WithLogger sets the logger used to report skipped entries.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Formatter) {
		f.Logger = logger
	}
}

// WithStyles enables terminal styling of tables.
func WithStyles(styles *output.Styles) Option {
	return func(f *Formatter) {
		f.Styles = styles
	}
}

// New creates a new Formatter with the given options.
func New(opts ...Option) *Formatter {
	f := &Formatter{}

	for _, opt := range opts {
		opt(f)
	}

	if f.Logger == nil {
		f.Logger = slog.Default()
	}

	return f
}

// EntryError describes an entry that was left out of the written file.
type EntryError struct {
	Entry ledger.Entry
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("skipping transaction %d: %v", e.Entry.ID, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// Result reports what Format wrote.
type Result struct {
	Written int
	Skipped []*EntryError
}

// Format writes entries as a transaction file: a header row followed by one
// row per entry with the id as integer, the amount with two decimals and the
// type in lower case. Entries that cannot be represented are skipped and
// reported in the result; the others are still written.
func (f *Formatter) Format(ctx context.Context, entries []ledger.Entry, w io.Writer) (*Result, error) {
	timer := telemetry.FromContext(ctx).Start(fmt.Sprintf("formatter.format (%d entries)", len(entries)))
	defer timer.End()

	cw := csv.NewWriter(w)
	if err := cw.Write(loader.Header); err != nil {
		return nil, err
	}

	result := &Result{}
	for _, e := range entries {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		record, err := Record(e)
		if err != nil {
			entryErr := &EntryError{Entry: e, Err: err}
			result.Skipped = append(result.Skipped, entryErr)
			f.Logger.Warn("skipping transaction", "id", e.ID, "error", err)
			continue
		}

		if err := cw.Write(record); err != nil {
			return nil, err
		}
		result.Written++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return nil, err
	}

	return result, nil
}

// WriteFile overwrites filename with the formatted entries.
func (f *Formatter) WriteFile(ctx context.Context, filename string, entries []ledger.Entry) (*Result, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, &ledger.ResourceError{Op: "create", Path: filename, Err: err}
	}

	result, err := f.Format(ctx, entries, file)
	if err != nil {
		_ = file.Close()
		return nil, &ledger.ResourceError{Op: "write", Path: filename, Err: err}
	}

	if err := file.Close(); err != nil {
		return nil, &ledger.ResourceError{Op: "write", Path: filename, Err: err}
	}

	f.Logger.Debug("transactions saved", "file", filepath.Base(filename), "written", result.Written, "skipped", len(result.Skipped))
	return result, nil
}

// Record converts an entry to the fields of one transaction file row.
func Record(e ledger.Entry) ([]string, error) {
	if e.ID <= 0 {
		return nil, fmt.Errorf("transaction id %d is not positive", e.ID)
	}
	if e.Date.IsZero() {
		return nil, fmt.Errorf("transaction has no date")
	}
	if !e.Kind.Valid() {
		return nil, &ledger.ValidationError{Field: ledger.FieldKind.String(), Value: string(e.Kind), Reason: "must be 'credit', 'debit', or 'transfer'"}
	}

	return []string{
		strconv.Itoa(e.ID),
		e.Date.String(),
		e.CustomerID,
		e.Amount.StringFixed(2),
		e.Kind.String(),
		e.Description,
	}, nil
}
