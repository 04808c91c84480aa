package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"vclock/internal/bootstrap"
	"vclock/internal/platform/config"
	"vclock/internal/platform/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	dataDir    string
	configPath string
	envFile    string
	backend    string
	logLevel   string
}

func (f *rootFlags) options() config.Options {
	return config.Options{
		DataDir:    f.dataDir,
		ConfigPath: f.configPath,
		EnvFile:    f.envFile,
		Backend:    f.backend,
		LogLevel:   f.logLevel,
	}
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "vclock",
		Short:         "Alarm, timer, stopwatch and world clock for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "data directory (default: user config dir/vclock)")
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default: <data-dir>/vclock.yaml)")
	root.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "dotenv file with VCLOCK_* overrides (default: .env)")
	root.PersistentFlags().StringVar(&flags.backend, "backend", "", "storage backend: sqlite|bolt|memory")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug|info|warn|error")

	root.AddCommand(newRunCmd(flags))
	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newAlarmCmd(flags))
	root.AddCommand(newTimerCmd(flags))
	root.AddCommand(newStopwatchCmd(flags))
	root.AddCommand(newClockCmd(flags))
	root.AddCommand(newRecentCmd(flags))
	root.AddCommand(newStoreCmd(flags))
	root.AddCommand(newPrefsCmd(flags))
	root.AddCommand(newSoundsCmd(flags))
	return root
}

func loadApp(ctx context.Context, flags *rootFlags) (*bootstrap.App, error) {
	cfg, err := config.Load(flags.options())
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg, os.Stderr)
}

// withApp builds the application for one command and persists every
// feature when fn returns.
func withApp(cmd *cobra.Command, flags *rootFlags, fn func(ctx context.Context, app *bootstrap.App) error) (err error) {
	ctx := cmd.Context()
	app, err := loadApp(ctx, flags)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, app.Close(context.WithoutCancel(ctx)))
	}()
	return fn(ctx, app)
}

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the vclock terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				return bootstrap.RunTUI(ctx, app)
			})
		},
	}
}

func newRunCmd(flags *rootFlags) *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every feature in the foreground until interrupted",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, flags, func(ctx context.Context, app *bootstrap.App) error {
				out := cmd.OutOrStdout()
				app.AlarmCLI.OnAlarm(func() {
					status := app.AlarmCLI.Status(ctx)
					_, _ = fmt.Fprintf(out, "alarm: %s %s\n", status.Title, status.Display)
				})
				app.TimerCLI.OnFinish(func() {
					_, _ = fmt.Fprintf(out, "timer finished: %s\n", app.TimerCLI.Status(ctx).Title)
				})
				clock := app.ClockCLI()
				clock.StartTicking()
				defer clock.StopTicking()

				watcher, err := config.NewWatcher(flags.options(), app.Config.ConfigPath, app.Reload, app.Logger)
				if err != nil {
					return err
				}
				if err := watcher.Start(ctx); err != nil {
					app.Logger.Warn("config watcher disabled", logging.Err(err))
				}
				defer func() { _ = watcher.Stop() }()

				addr := metricsAddr
				if addr == "" {
					addr = app.Config.MetricsAddr
				}
				if addr != "" {
					srv := &http.Server{Addr: addr, Handler: app.MetricsHandler(), ReadHeaderTimeout: 5 * time.Second}
					go func() {
						if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
							app.Logger.Error("metrics endpoint", logging.Err(err))
						}
					}()
					defer func() {
						shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
						defer cancel()
						_ = srv.Shutdown(shutdownCtx)
					}()
					app.Logger.Info("metrics endpoint listening", "addr", addr)
				}

				if next := app.AlarmCLI.Next(ctx); next != "" {
					_, _ = fmt.Fprintf(out, "next alarm in %s\n", next)
				}
				<-ctx.Done()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9464")
	return cmd
}
