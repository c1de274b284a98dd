package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fsnotify/fsnotify"

	"github.com/robinvdvleuten/finance/report"
)

type AnalyzeCmd struct {
	Watch bool `help:"Print the summary again whenever the transaction file changes." short:"w"`
	JSON  bool `help:"Print the summary as JSON." name:"json"`
}

func (cmd *AnalyzeCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.analyze(context.Background(), globals, ctx.Stdout, ctx.Stderr); err != nil {
		return err
	}

	if !cmd.Watch {
		return nil
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	watcher, err := newFileWatcher(globals.File)
	if err != nil {
		return err
	}

	printInfof(ctx.Stderr, "Watching %s for changes (Ctrl+C to stop)", pathStyle.Render(globals.File))

	var mu sync.Mutex
	watcher.Run(runCtx, func() {
		mu.Lock()
		defer mu.Unlock()

		_, _ = fmt.Fprintln(ctx.Stdout)
		if err := cmd.analyze(runCtx, globals, ctx.Stdout, ctx.Stderr); err != nil {
			printError(ctx.Stderr, err.Error())
		}
	})

	return nil
}

func (cmd *AnalyzeCmd) analyze(ctx context.Context, globals *Globals, stdout, stderr io.Writer) error {
	ctx, finish := startTelemetry(ctx, globals, stderr, fmt.Sprintf("analyze %s", filepath.Base(globals.File)))
	defer finish()

	l, result, err := loadLedger(ctx, globals.File)
	if err != nil {
		return err
	}
	reportSkipped(stderr, result)

	if cmd.JSON {
		return report.WriteJSON(stdout, l.Summary())
	}

	if l.Len() == 0 {
		_, _ = fmt.Fprintln(stdout, "No transactions available to analyze.")
		return nil
	}

	_, err = fmt.Fprintln(stdout, strings.Join(report.Lines(report.SummaryTitle, l.Summary()), "\n"))
	return err
}

// debounceDelay absorbs editors writing a file in several steps.
const debounceDelay = 100 * time.Millisecond

// fileWatcher calls back after a watched file changed.
type fileWatcher struct {
	filename string
	watcher  *fsnotify.Watcher
}

// newFileWatcher starts watching filename.
func newFileWatcher(filename string) (*fileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if err := watcher.Add(filename); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filename, err)
	}

	return &fileWatcher{filename: filename, watcher: watcher}, nil
}

// Run processes file system events until ctx is done, calling onChange once
// per burst of changes.
func (w *fileWatcher) Run(ctx context.Context, onChange func()) {
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
		_ = w.watcher.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Remove and rename are how atomic saves show up.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}

			debounceTimer = time.AfterFunc(debounceDelay, func() {
				// Re-add so a file replaced by an atomic save stays watched.
				if err := w.watcher.Add(w.filename); err != nil {
					slog.Warn("failed to watch file", "file", w.filename, "error", err)
				}
				onChange()
			})

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("file watcher error", "error", err)
		}
	}
}
