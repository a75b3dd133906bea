package analyze

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/analyzer"
	"github.com/mbdev87/vscode-amiga-assembly-m68k-register-tracker/pkg/m68k/annotate"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var WatchCmd = &cobra.Command{
	Use:   "watch <file>...",
	Short: "Re-analyze m68k assembly files every time they change",
	Long: `Analyzes the given files, then watches them and prints a fresh report of a file each
time it is saved. Results of an older version of a file are discarded when a newer one is
already being analyzed.

Example:
  m68kregs watch sprite.s blitter.s`,
	Args: cobra.MinimumNArgs(1),
	Run:  runWatch,
}

func init() {
	WatchCmd.Flags().Duration("debounce", 100*time.Millisecond, "Wait this long after the last change before re-analyzing")
	cobra.CheckErr(viper.BindPFlag("watch.debounce", WatchCmd.Flags().Lookup("debounce")))
}

func runWatch(cmd *cobra.Command, args []string) {
	settings, err := settingsFromConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	w := newWatcher(analyzer.New(settings), cmd.OutOrStdout(), outputStyle(), viper.GetDuration("watch.debounce"))

	if err := w.Run(ctx, args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}

// Re-analyzes files on change. Each file has a generation counter bumped on every
// change; a report is printed only if no newer change arrived while it was computed
type watcher struct {
	analyzer *analyzer.Analyzer
	out      io.Writer
	style    *annotate.Style
	debounce time.Duration

	mutex       sync.Mutex
	generations map[string]uint64
	timers      map[string]*time.Timer
}

func newWatcher(a *analyzer.Analyzer, out io.Writer, style *annotate.Style, debounce time.Duration) *watcher {
	return &watcher{
		analyzer:    a,
		out:         out,
		style:       style,
		debounce:    debounce,
		generations: map[string]uint64{},
		timers:      map[string]*time.Timer{},
	}
}

func (w *watcher) Run(ctx context.Context, paths []string) error {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = fsWatcher.Close() }()

	watched := map[string]bool{}

	for _, path := range paths {
		absolute, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		watched[absolute] = true

		// Editors often save by replacing the file, so the directory is watched instead
		if err := fsWatcher.Add(filepath.Dir(absolute)); err != nil {
			return err
		}

		w.refresh(absolute, w.bump(absolute))
	}

	for {
		select {
		case <-ctx.Done():
			w.stopTimers()
			return nil

		case event, ok := <-fsWatcher.Events:
			if !ok {
				return nil
			}

			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 || !watched[event.Name] {
				continue
			}

			slog.Debug("file changed", "path", event.Name, "op", event.Op.String())
			w.schedule(event.Name)

		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return nil
			}

			slog.Error("watcher error", "error", err)
		}
	}
}

// Bumps and returns the generation of a file
func (w *watcher) bump(path string) uint64 {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	w.generations[path]++
	return w.generations[path]
}

func (w *watcher) schedule(path string) {
	generation := w.bump(path)

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Stop()
	}

	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.refresh(path, generation)
	})
}

func (w *watcher) stopTimers() {
	w.mutex.Lock()
	defer w.mutex.Unlock()

	for _, timer := range w.timers {
		timer.Stop()
	}
}

// Analyzes a file and prints its report unless a newer generation superseded it
func (w *watcher) refresh(path string, generation uint64) {
	report, err := analyzeFile(w.analyzer, path, annotate.Severity_Warning)
	if err != nil {
		slog.Error("analysis failed", "path", path, "error", err)
		return
	}

	w.mutex.Lock()
	defer w.mutex.Unlock()

	if w.generations[path] != generation {
		slog.Debug("discarding stale report", "path", path, "generation", generation)
		return
	}

	if err := annotate.Write(w.out, annotate.Format_Text, []annotate.FileReport{report}, w.style); err != nil {
		slog.Error("writing report", "path", path, "error", err)
	}
}
