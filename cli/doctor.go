package cli

import (
	"context"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"
)

// DoctorCmd provides doctor utilities for debugging transaction files.
type DoctorCmd struct {
	Dump DumpCmd `cmd:"" help:"Show the entries and skipped rows a load produces."`
}

// DumpCmd prints the load result as Go values.
type DumpCmd struct{}

type dumpEntry struct {
	ID          int
	Date        string
	CustomerID  string
	Amount      string
	Kind        string
	Description string
}

type dumpRow struct {
	Line   int
	Record []string
	Error  string
}

// Run executes the dump command.
func (cmd *DumpCmd) Run(ctx *kong.Context, globals *Globals) error {
	l, result, err := loadLedger(context.Background(), globals.File)
	if err != nil {
		return err
	}

	entries := make([]dumpEntry, 0, l.Len())
	for _, e := range l.Entries() {
		entries = append(entries, dumpEntry{
			ID:          e.ID,
			Date:        e.Date.String(),
			CustomerID:  e.CustomerID,
			Amount:      e.Amount.StringFixed(2),
			Kind:        e.Kind.String(),
			Description: e.Description,
		})
	}

	skipped := make([]dumpRow, 0, len(result.Skipped))
	for _, rowErr := range result.Skipped {
		skipped = append(skipped, dumpRow{Line: rowErr.Line, Record: rowErr.Record, Error: rowErr.Err.Error()})
	}

	p := repr.New(ctx.Stdout, repr.Indent("  "))
	p.Println(entries)
	p.Println(skipped)

	return nil
}
