package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"kanbanwatch/internal/adapters/filesystem"
	"kanbanwatch/internal/adapters/fswatch"
	"kanbanwatch/internal/adapters/metrics"
	"kanbanwatch/internal/adapters/notify"
	"kanbanwatch/internal/adapters/scheduler"
	"kanbanwatch/internal/application"
	"kanbanwatch/internal/domain"
	"kanbanwatch/internal/ports"
)

var (
	watchMetricsAddr string
	watchNoFSNotify  bool
	watchNoJournal   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the board in sync until interrupted",
	Long: `Run a cycle immediately, then every update_time seconds. File system
events under the target folder trigger an early cycle.

The first cycle starts from an empty snapshot, so every file whose link is
not on the board yet is added. Later cycles only look at new files.

Examples:
  kanbanwatch-cli watch
  kanbanwatch-cli watch --metrics-addr :9090`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		settings, vault, err := loadVault()
		if err != nil {
			return err
		}

		var observers []ports.CycleObserver
		if !watchNoJournal {
			journal, err := openJournal(settings)
			if err != nil {
				logger.Warn("cycle journal unavailable", "error", err)
			} else {
				defer journal.Close()
				observers = append(observers, journal)
			}
		}
		if watchMetricsAddr != "" {
			recorder := metrics.NewRecorder()
			observers = append(observers, recorder)
			go serveMetrics(ctx, watchMetricsAddr, recorder.Handler())
		}

		notifier := notify.Multi{notify.NewTerminal(cmd.ErrOrStderr()), notify.NewLogger(logger)}
		engine := application.NewEngine(vault, store, notifier,
			application.WithLogger(logger),
			application.WithObservers(observers...),
		)

		ticker := scheduler.NewDynamicTicker(func() time.Duration {
			return engine.Settings().Interval()
		})

		if !watchNoFSNotify {
			if watcher, err := startWatcher(ctx, vault, settings, ticker.Trigger); err != nil {
				logger.Warn("file watching disabled", "error", err)
			} else {
				defer watcher.Stop()
			}
		}

		logger.Info("watching", "vault", settings.Vault, "target_folder", settings.TargetFolder,
			"board", settings.KanbanBoardLocation, "interval", settings.Interval())

		initial := true
		err = ticker.Run(ctx, func(ctx context.Context) {
			report := engine.RunCycle(ctx)
			if initial {
				initial = false
				logger.Info("initial scan complete", "files", report.SnapshotSize)
			}
		})
		if errors.Is(err, context.Canceled) {
			logger.Info("stopped")
			return nil
		}
		return err
	},
}

// startWatcher watches the target folder, or the whole vault when the
// target is a name prefix rather than a directory
func startWatcher(ctx context.Context, vault *filesystem.Vault, settings domain.Settings, onChange func()) (*fswatch.Watcher, error) {
	root := vault.Root()
	if dir, err := vault.AbsPath(settings.TargetFolder); err == nil {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			root = dir
		}
	}

	watcher, err := fswatch.New(root, onChange, fswatch.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if err := watcher.Start(ctx); err != nil {
		return nil, err
	}
	return watcher, nil
}

func serveMetrics(ctx context.Context, addr string, handler http.Handler) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("metrics server failed", "error", err)
	}
}

func init() {
	watchCmd.Flags().StringVar(&watchMetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	watchCmd.Flags().BoolVar(&watchNoFSNotify, "no-fsnotify", false, "rely on the interval only")
	watchCmd.Flags().BoolVar(&watchNoJournal, "no-journal", false, "do not record cycles in the journal")
	rootCmd.AddCommand(watchCmd)
}
