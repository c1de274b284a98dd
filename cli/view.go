package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/finance/formatter"
)

type ViewCmd struct{}

func (cmd *ViewCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, finish := startTelemetry(context.Background(), globals, ctx.Stderr, fmt.Sprintf("view %s", filepath.Base(globals.File)))
	defer finish()

	l, result, err := loadLedger(runCtx, globals.File)
	if err != nil {
		return err
	}
	reportSkipped(ctx.Stderr, result)

	if l.Len() == 0 {
		_, _ = fmt.Fprintln(ctx.Stdout, "No transactions to display.")
		return nil
	}

	f := formatter.New(formatter.WithStyles(stylesFor(ctx.Stdout)))
	return f.FormatTable(l.Entries(), ctx.Stdout)
}
