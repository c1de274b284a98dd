package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	ferrors "github.com/robinvdvleuten/finance/errors"
)

type CheckCmd struct {
	Format string `help:"Output format (${enum})." enum:"text,json" default:"text"`
}

// Run loads the file and lists every skipped row. The exit code is 1 when
// at least one row was skipped.
func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, finish := startTelemetry(context.Background(), globals, ctx.Stderr, fmt.Sprintf("check %s", filepath.Base(globals.File)))
	defer finish()

	l, result, err := loadLedger(runCtx, globals.File)
	if err != nil {
		printError(ctx.Stderr, err.Error())
		return NewCommandError(1)
	}

	errs := make([]error, len(result.Skipped))
	for i, rowErr := range result.Skipped {
		errs[i] = rowErr
	}

	if cmd.Format != "json" && len(errs) == 0 {
		printSuccess(ctx.Stdout, fmt.Sprintf("Check passed: %d transaction(s)", l.Len()))
		return nil
	}

	formatted := cmd.formatter(globals.File).FormatAll(errs)
	if cmd.Format == "json" {
		_, _ = fmt.Fprintln(ctx.Stdout, formatted)
	} else {
		_, _ = fmt.Fprintln(ctx.Stderr, formatted)
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, fmt.Sprintf("%d invalid row(s) found", len(errs)))
	}

	if len(errs) > 0 {
		return NewCommandError(1)
	}
	return nil
}

// formatter picks the error formatter for the requested output format. Text
// output quotes the offending rows from filename when it can be read.
func (cmd *CheckCmd) formatter(filename string) ferrors.Formatter {
	if cmd.Format == "json" {
		return ferrors.NewJSONFormatter()
	}

	var opts []ferrors.TextFormatterOption
	if source, err := os.ReadFile(filename); err == nil {
		opts = append(opts, ferrors.WithSource(source))
	}
	return ferrors.NewTextFormatter(opts...)
}
