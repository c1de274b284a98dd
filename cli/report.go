package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/finance/report"
)

type ReportCmd struct {
	Out string `help:"Write the report here instead of the report file ('-' for stdout)." short:"o"`
}

func (cmd *ReportCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, finish := startTelemetry(context.Background(), globals, ctx.Stderr, fmt.Sprintf("report %s", filepath.Base(globals.File)))
	defer finish()

	l, result, err := loadLedger(runCtx, globals.File)
	if err != nil {
		return err
	}
	reportSkipped(ctx.Stderr, result)

	if l.Len() == 0 {
		printInfof(ctx.Stderr, "No transactions to report.")
		return nil
	}

	if cmd.Out == "-" {
		return report.Write(ctx.Stdout, l.Summary())
	}

	destination := globals.ReportFile
	if cmd.Out != "" {
		destination = cmd.Out
	}

	if err := report.WriteFile(destination, l.Summary()); err != nil {
		return err
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Report successfully written to '%s'.", pathStyle.Render(destination)))
	return nil
}
