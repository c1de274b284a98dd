package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/huh"

	"github.com/robinvdvleuten/finance/formatter"
	"github.com/robinvdvleuten/finance/ledger"
	"github.com/robinvdvleuten/finance/loader"
	"github.com/robinvdvleuten/finance/report"
	"github.com/robinvdvleuten/finance/telemetry"
)

// MenuTitle heads the session menu.
const MenuTitle = "Smart Personal Finance Analyzer"

// Menu options in display order. Each one runs a single ledger operation.
var menu = []struct {
	label  string
	action func(*Session, context.Context) error
}{
	{"Load Transactions", (*Session).load},
	{"Add Transaction", (*Session).add},
	{"View Transactions", (*Session).view},
	{"Update Transaction", (*Session).update},
	{"Delete Transaction", (*Session).delete},
	{"Analyze Finances", (*Session).analyze},
	{"Save Transactions", (*Session).save},
	{"Generate Report", (*Session).report},
	{"Exit", nil},
}

// Session runs the interactive menu against one ledger. Operation failures
// are printed and the menu is shown again; only prompt failures or Exit end
// the loop.
type Session struct {
	Ledger   *ledger.Ledger
	Prompter Prompter
	Out      io.Writer

	// Filename is the transaction file used by load and save.
	Filename string

	// ReportFile is where Generate Report writes.
	ReportFile string

	Loader    *loader.Loader
	Formatter *formatter.Formatter
}

// NewSession creates a session with an empty ledger.
func NewSession(prompter Prompter, out io.Writer, filename, reportFile string) *Session {
	return &Session{
		Ledger:     ledger.New(),
		Prompter:   prompter,
		Out:        out,
		Filename:   filename,
		ReportFile: reportFile,
		Loader:     loader.New(),
		Formatter:  formatter.New(formatter.WithStyles(stylesFor(out))),
	}
}

func menuLabels() []string {
	labels := make([]string, len(menu))
	for i, item := range menu {
		labels[i] = item.label
	}
	return labels
}

// Run shows the menu until the user exits or the input ends.
func (s *Session) Run(ctx context.Context) error {
	labels := menuLabels()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		choice, err := s.Prompter.Select(MenuTitle, labels)
		if errors.Is(err, ErrInvalidChoice) {
			_, _ = fmt.Fprintln(s.Out, "Invalid choice. Please select a valid option.")
			continue
		}
		if err != nil {
			return endOfInput(err)
		}

		item := menu[choice]
		if item.action == nil {
			_, _ = fmt.Fprintln(s.Out, "Goodbye!")
			return nil
		}

		timer := telemetry.StartTimer(ctx, "session."+strings.ToLower(strings.Fields(item.label)[0]))
		err = item.action(s, ctx)
		timer.End()

		if err != nil {
			return endOfInput(err)
		}
	}
}

// endOfInput treats exhausted input and an aborted form as a normal exit.
func endOfInput(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, huh.ErrUserAborted) {
		return nil
	}
	return err
}

// Load replaces the ledger with the contents of the transaction file. The
// ledger is left alone when the file cannot be read.
func (s *Session) Load(ctx context.Context) error {
	return s.load(ctx)
}

func (s *Session) load(ctx context.Context) error {
	result, err := s.Loader.Load(ctx, s.Filename)
	if err != nil {
		printError(s.Out, err.Error())
		return nil
	}

	s.Ledger.Replace(result.Entries)
	printSuccess(s.Out, fmt.Sprintf("Loaded %d transaction(s) from %s", s.Ledger.Len(), pathStyle.Render(s.Filename)))
	reportSkipped(s.Out, result)

	return nil
}

func (s *Session) add(ctx context.Context) error {
	var draft ledger.Draft
	var err error

	if draft.Date, err = s.Prompter.Input("Enter the date (YYYY-MM-DD)"); err != nil {
		return err
	}
	if _, err := ledger.ParseDate(draft.Date); err != nil {
		printError(s.Out, err.Error())
		return nil
	}

	if draft.CustomerID, err = s.Prompter.Input("Enter customer ID"); err != nil {
		return err
	}

	if draft.Amount, err = s.Prompter.Input("Enter the amount"); err != nil {
		return err
	}
	if _, err := ledger.ParseAmount(draft.Amount); err != nil {
		printError(s.Out, err.Error())
		return nil
	}

	if draft.Kind, err = s.Prompter.Input("Enter the transaction type (credit/debit/transfer)"); err != nil {
		return err
	}
	if _, err := ledger.ParseKind(draft.Kind); err != nil {
		printError(s.Out, err.Error())
		return nil
	}

	if draft.Description, err = s.Prompter.Input("Enter a description"); err != nil {
		return err
	}

	entry, err := s.Ledger.Add(draft)
	if err != nil {
		printError(s.Out, err.Error())
		return nil
	}

	printSuccess(s.Out, fmt.Sprintf("Transaction %d added successfully!", entry.ID))
	return nil
}

func (s *Session) view(ctx context.Context) error {
	if s.Ledger.Len() == 0 {
		_, _ = fmt.Fprintln(s.Out, "No transactions to display.")
		return nil
	}
	return s.Formatter.FormatTable(s.Ledger.Entries(), s.Out)
}

// pick lists the entries and asks for a position. It returns false after
// printing the reason when no valid position was given.
func (s *Session) pick(verb string) (int, bool, error) {
	_, _ = fmt.Fprintln(s.Out, "Transactions:")
	if err := s.Formatter.FormatIndexed(s.Ledger.Entries(), s.Out); err != nil {
		return 0, false, err
	}

	answer, err := s.Prompter.Input(fmt.Sprintf("Enter the number of the transaction to %s", verb))
	if err != nil {
		return 0, false, err
	}

	index, err := strconv.Atoi(answer)
	if err != nil {
		printError(s.Out, "Invalid input. Please enter a number.")
		return 0, false, nil
	}

	if _, err := s.Ledger.At(index); err != nil {
		printError(s.Out, err.Error())
		return 0, false, nil
	}

	return index, true, nil
}

func (s *Session) update(ctx context.Context) error {
	if s.Ledger.Len() == 0 {
		_, _ = fmt.Fprintln(s.Out, "No transactions available to update.")
		return nil
	}

	index, ok, err := s.pick("update")
	if err != nil || !ok {
		return err
	}

	names := make([]string, 0, len(ledger.Fields()))
	for _, f := range ledger.Fields() {
		names = append(names, f.String())
	}

	answer, err := s.Prompter.Input(fmt.Sprintf("Which field would you like to update? (%s)", strings.Join(names, ", ")))
	if err != nil {
		return err
	}
	field, err := ledger.ParseField(answer)
	if err != nil {
		printError(s.Out, err.Error())
		return nil
	}

	value, err := s.Prompter.Input(fmt.Sprintf("Enter new value for %s", field))
	if err != nil {
		return err
	}
	change, err := field.Parse(value)
	if err != nil {
		printError(s.Out, err.Error())
		return nil
	}

	if _, err := s.Ledger.Update(index, change); err != nil {
		printError(s.Out, err.Error())
		return nil
	}

	printSuccess(s.Out, "Transaction updated successfully!")
	return nil
}

func (s *Session) delete(ctx context.Context) error {
	if s.Ledger.Len() == 0 {
		_, _ = fmt.Fprintln(s.Out, "No transactions to delete.")
		return nil
	}

	index, ok, err := s.pick("delete")
	if err != nil || !ok {
		return err
	}

	entry, err := s.Ledger.Preview(index)
	if err != nil {
		printError(s.Out, err.Error())
		return nil
	}

	confirmed, err := s.Prompter.Confirm(fmt.Sprintf("Are you sure you want to delete transaction %d (ID %d, %s)?", index, entry.ID, entry.Description))
	if err != nil {
		return err
	}
	if !confirmed {
		_, _ = fmt.Fprintln(s.Out, "Deletion cancelled.")
		return nil
	}

	removed, err := s.Ledger.Delete(index)
	if err != nil {
		printError(s.Out, err.Error())
		return nil
	}

	printSuccess(s.Out, fmt.Sprintf("Transaction ID %d deleted successfully.", removed.ID))
	return nil
}

func (s *Session) analyze(ctx context.Context) error {
	if s.Ledger.Len() == 0 {
		_, _ = fmt.Fprintln(s.Out, "No transactions available to analyze.")
		return nil
	}

	lines := report.Lines(report.SummaryTitle, s.Ledger.Summary())
	_, err := fmt.Fprintf(s.Out, "\n%s\n", strings.Join(lines, "\n"))
	return err
}

func (s *Session) save(ctx context.Context) error {
	if s.Ledger.Len() == 0 {
		_, _ = fmt.Fprintln(s.Out, "No transactions to save.")
		return nil
	}

	result, err := s.Formatter.WriteFile(ctx, s.Filename, s.Ledger.Entries())
	if err != nil {
		printError(s.Out, err.Error())
		return nil
	}

	printSuccess(s.Out, fmt.Sprintf("Transactions saved successfully to '%s'.", pathStyle.Render(s.Filename)))
	if n := len(result.Skipped); n > 0 {
		printInfof(s.Out, "Skipped %d transaction(s) that could not be written", n)
	}

	return nil
}

func (s *Session) report(ctx context.Context) error {
	if s.Ledger.Len() == 0 {
		_, _ = fmt.Fprintln(s.Out, "No transactions to report.")
		return nil
	}

	if err := report.WriteFile(s.ReportFile, s.Ledger.Summary()); err != nil {
		printError(s.Out, err.Error())
		return nil
	}

	printSuccess(s.Out, fmt.Sprintf("Report successfully written to '%s'.", pathStyle.Render(s.ReportFile)))
	return nil
}

type SessionCmd struct {
	Load bool `help:"Load the transaction file before showing the menu."`
}

func (cmd *SessionCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, finish := startTelemetry(context.Background(), globals, ctx.Stderr, "session")
	defer finish()

	var prompter Prompter = huhPrompter{}
	if !isTerminal() {
		prompter = NewLinePrompter(os.Stdin, ctx.Stdout)
	}

	session := NewSession(prompter, ctx.Stdout, globals.File, globals.ReportFile)
	if cmd.Load {
		if err := session.Load(runCtx); err != nil {
			return err
		}
	}

	return session.Run(runCtx)
}
