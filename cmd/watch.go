package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/ethpandaops/robots-tester/internal/config"
	"github.com/ethpandaops/robots-tester/internal/harness"
	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

const defaultWatchDebounce = 300 * time.Millisecond

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the test cases whenever the policy or test case file changes",
	Long: `Run the test cases once, then again every time the robots.txt file or the
test case file is written. Failed runs are reported but do not stop watching.
Press Ctrl+C to exit.

Example:
  robots-tester watch -r robots.txt -t cases.csv`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", defaultWatchDebounce, "Quiet period after a change before re-running")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := newLogger(runVerbose)

	w, err := newFileWatcher(log, watchDebounce, cfg.RobotsFile, cfg.TestCaseFile)
	if err != nil {
		return err
	}

	return w.Run(ctx, func(ctx context.Context) {
		rerun(ctx, log, cfg, cmd.OutOrStdout())
	})
}

// rerun executes a single pass in watch mode. Errors are printed, never returned.
func rerun(ctx context.Context, log logrus.FieldLogger, cfg *config.AppConfig, out io.Writer) {
	err := runOnce(ctx, log, cfg, out, runDetails)

	switch {
	case err == nil:
		log.Info("all test cases passed")
	case errors.Is(err, harness.ErrTestsFailed):
		log.Warn("test cases failed")
	default:
		log.WithError(err).Error("run failed")
	}
}

// fileWatcher triggers a callback after any of a set of files changes.
// Parent directories are watched so editors that replace files on save are seen.
type fileWatcher struct {
	log      logrus.FieldLogger
	debounce time.Duration
	files    map[string]struct{}
	dirs     []string
}

func newFileWatcher(log logrus.FieldLogger, debounce time.Duration, paths ...string) (*fileWatcher, error) {
	w := &fileWatcher{
		log:      log.WithField("component", "watcher"),
		debounce: debounce,
		files:    make(map[string]struct{}, len(paths)),
	}

	seen := make(map[string]struct{}, len(paths))

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", p, err)
		}

		w.files[abs] = struct{}{}

		dir := filepath.Dir(abs)
		if _, ok := seen[dir]; !ok {
			seen[dir] = struct{}{}
			w.dirs = append(w.dirs, dir)
		}
	}

	return w, nil
}

// matches reports whether event changes the content of a watched file.
func (w *fileWatcher) matches(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
		return false
	}

	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}

	_, ok := w.files[abs]
	return ok
}

// Run calls fn once, then after each debounced change, until ctx is cancelled.
// Calls never overlap.
func (w *fileWatcher) Run(ctx context.Context, fn func(context.Context)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range w.dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %q: %w", dir, err)
		}
	}

	fn(ctx)

	w.log.WithField("files", len(w.files)).Info("watching for changes")

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !w.matches(event) {
				continue
			}

			w.log.WithField("file", event.Name).Debug("change detected")
			timer.Reset(w.debounce)

		case <-timer.C:
			fn(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("file watcher error")
		}
	}
}
