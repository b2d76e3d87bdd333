package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/djade-fmt/djade/internal/logging"
	"github.com/djade-fmt/djade/internal/runner"
)

// watchCmd represents the watch command.
var watchCmd = &cobra.Command{
	Use:   "watch <template>...",
	Short: "Reformat template files whenever they change",
	Long: `Watch the given template files and reformat each one in place as it is
written. Formatting is idempotent, so the rewrite triggered by djade's own
write settles immediately.

The watcher runs until interrupted (Ctrl-C).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatchCommand,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatchCommand(cmd *cobra.Command, args []string) error {
	tv, err := parseTargetVersion()
	if err != nil {
		return err
	}

	logger := newLogger().WithComponent("watch")
	r := runner.New(runner.Options{Target: tv}, logger)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	for _, path := range args {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "watching templates", "count", len(args))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			handleWatchEvent(ctx, r, logger, event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn(ctx, err, "watch error")
		}
	}
}

func handleWatchEvent(ctx context.Context, r *runner.Runner, logger logging.Logger, path string) {
	changed, err := r.FormatFile(ctx, path)
	switch {
	case err != nil:
		logger.Warn(ctx, err, "failed to reformat", "path", path)
	case changed:
		logger.Info(ctx, "reformatted", "path", path)
	default:
		logger.Debug(ctx, "already formatted", "path", path)
	}
}
