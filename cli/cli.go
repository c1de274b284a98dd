// Package cli implements the finance command line: the interactive session
// and the one-shot commands built on the same ledger operations.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/robinvdvleuten/finance/ledger"
	"github.com/robinvdvleuten/finance/loader"
	"github.com/robinvdvleuten/finance/output"
	"github.com/robinvdvleuten/finance/telemetry"
)

var (
	successSymbol = "✓"
	errorSymbol   = "✗"
	infoSymbol    = "→"

	successStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D787", Dark: "#00D787"})
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#5FAFFF", Dark: "#5FAFFF"})
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00D7D7", Dark: "#00D7D7"})
)

func printSuccess(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		successStyle.Render(successSymbol),
		message,
	)
}

func printError(w io.Writer, message string) {
	_, _ = fmt.Fprintf(w, "%s %s\n",
		errorStyle.Render(errorSymbol),
		errorStyle.Render(message),
	)
}

func printInfof(w io.Writer, format string, args ...interface{}) {
	formatted := fmt.Sprintf(format, args...)
	_, _ = fmt.Fprintf(w, "%s %s\n",
		infoStyle.Render(infoSymbol),
		formatted,
	)
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// stylesFor returns table styles when w is a terminal and nil otherwise.
func stylesFor(w io.Writer) *output.Styles {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return output.NewStyles(w)
	}
	return nil
}

// startTelemetry installs a timing collector on ctx when telemetry is
// enabled. The returned function ends the root timer and writes the report
// to w.
func startTelemetry(ctx context.Context, globals *Globals, w io.Writer, name string) (context.Context, func()) {
	if !globals.Telemetry {
		return ctx, func() {}
	}

	collector := telemetry.NewTimingCollector()
	collector.Styles = stylesFor(w)
	ctx = telemetry.WithCollector(ctx, collector)
	root := collector.Start(name)

	return ctx, func() {
		root.End()
		_, _ = fmt.Fprintln(w)
		collector.Report(w)
	}
}

// loadLedger reads filename into a fresh ledger. Skipped rows are logged by
// the loader and returned in the result.
func loadLedger(ctx context.Context, filename string) (*ledger.Ledger, *loader.Result, error) {
	result, err := loader.New().Load(ctx, filename)
	if err != nil {
		return nil, nil, err
	}

	l := ledger.New()
	l.Replace(result.Entries)

	return l, result, nil
}

// reportSkipped prints a one-line notice for rows left out of a load.
func reportSkipped(w io.Writer, result *loader.Result) {
	writeSkipped(w, stylesFor(w), result)
}

// writeSkipped renders the notice as a warning when styles is set.
func writeSkipped(w io.Writer, styles *output.Styles, result *loader.Result) {
	n := len(result.Skipped)
	if n == 0 {
		return
	}
	if styles == nil {
		printInfof(w, "Skipped %d invalid row(s) in %s", n, pathStyle.Render(result.Root))
		return
	}
	_, _ = fmt.Fprintf(w, "%s %s\n",
		styles.Warning("!"),
		fmt.Sprintf("Skipped %d invalid row(s) in %s", n, styles.FilePath(result.Root)),
	)
}
