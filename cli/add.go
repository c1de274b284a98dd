package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/robinvdvleuten/finance/formatter"
	"github.com/robinvdvleuten/finance/ledger"
)

type AddCmd struct {
	Date        string `help:"Transaction date (YYYY-MM-DD)." required:""`
	Customer    string `help:"Customer id." short:"c"`
	Amount      string `help:"Amount; the sign follows the type for credits and debits." required:""`
	Type        string `help:"Transaction type (credit, debit, transfer)." required:"" short:"t"`
	Description string `help:"Free text description." short:"d"`
}

// Run appends one transaction to the file. A missing file starts a new one.
func (cmd *AddCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, finish := startTelemetry(context.Background(), globals, ctx.Stderr, "add")
	defer finish()

	l, result, err := loadLedger(runCtx, globals.File)
	switch {
	case errors.Is(err, os.ErrNotExist):
		l = ledger.New()
		printInfof(ctx.Stderr, "Creating %s", pathStyle.Render(globals.File))
	case err != nil:
		return err
	default:
		reportSkipped(ctx.Stderr, result)
	}

	entry, err := l.Add(ledger.Draft{
		Date:        cmd.Date,
		CustomerID:  cmd.Customer,
		Amount:      cmd.Amount,
		Kind:        cmd.Type,
		Description: cmd.Description,
	})
	if err != nil {
		printError(ctx.Stderr, err.Error())
		return NewCommandError(1)
	}

	if _, err := formatter.New().WriteFile(runCtx, globals.File, l.Entries()); err != nil {
		return err
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Transaction %d added to %s", entry.ID, pathStyle.Render(globals.File)))
	return nil
}
