package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	alarminadapter "vclock/internal/modules/alarm/adapter/in"
	alarmservice "vclock/internal/modules/alarm/service"
	alarmusecase "vclock/internal/modules/alarm/usecase"
	feedbackinadapter "vclock/internal/modules/feedback/adapter/in"
	feedbackoutadapter "vclock/internal/modules/feedback/adapter/out"
	feedbackout "vclock/internal/modules/feedback/port/out"
	feedbackservice "vclock/internal/modules/feedback/service"
	feedbackusecase "vclock/internal/modules/feedback/usecase"
	stopwatchinadapter "vclock/internal/modules/stopwatch/adapter/in"
	stopwatchservice "vclock/internal/modules/stopwatch/service"
	stopwatchusecase "vclock/internal/modules/stopwatch/usecase"
	storageinadapter "vclock/internal/modules/storage/adapter/in"
	storageoutadapter "vclock/internal/modules/storage/adapter/out"
	storagedto "vclock/internal/modules/storage/dto"
	storagein "vclock/internal/modules/storage/port/in"
	storageout "vclock/internal/modules/storage/port/out"
	storageservice "vclock/internal/modules/storage/service"
	storageusecase "vclock/internal/modules/storage/usecase"
	timerinadapter "vclock/internal/modules/timer/adapter/in"
	timerservice "vclock/internal/modules/timer/service"
	timerusecase "vclock/internal/modules/timer/usecase"
	worldclockinadapter "vclock/internal/modules/worldclock/adapter/in"
	worldclockoutadapter "vclock/internal/modules/worldclock/adapter/out"
	worldclockin "vclock/internal/modules/worldclock/port/in"
	worldclockservice "vclock/internal/modules/worldclock/service"
	worldclockusecase "vclock/internal/modules/worldclock/usecase"
	"vclock/internal/platform/clock"
	"vclock/internal/platform/config"
	"vclock/internal/platform/id"
	"vclock/internal/platform/logging"
	"vclock/internal/platform/metrics"
	"vclock/internal/platform/schedule"
	uiapp "vclock/internal/ui/app"
)

// App is the application context. It is built once per process and owns
// every long-lived collaborator the features share.
type App struct {
	Config   config.Config
	Logger   *slog.Logger
	Clock    clock.Clock
	Recorder *metrics.PrometheusRecorder

	AlarmCLI     alarminadapter.CLIHandler
	TimerCLI     timerinadapter.CLIHandler
	StopwatchCLI stopwatchinadapter.CLIHandler
	StoreCLI     storageinadapter.CLIHandler
	SoundsCLI    feedbackinadapter.CLIHandler

	store      storagein.Usecase
	worldClock worldclockin.Usecase
	levelVar   *slog.LevelVar
	scheduler  *schedule.Gocron
	closers    []func() error

	mu     sync.RWMutex
	locale string
}

// New wires the features for cfg. Log records go to logOut.
func New(ctx context.Context, cfg config.Config, logOut io.Writer) (*App, error) {
	logger, levelVar, err := logging.New(logOut, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("configure logging: %w", err)
	}
	app := &App{
		Config:   cfg,
		Logger:   logger,
		Clock:    clock.SystemClock{},
		Recorder: metrics.NewPrometheusRecorder(nil),
		levelVar: levelVar,
		locale:   cfg.Locale,
	}
	if err := app.wire(ctx); err != nil {
		_ = app.closeAll()
		return nil, err
	}
	app.scheduler.Start()
	return app, nil
}

func (a *App) wire(ctx context.Context) error {
	cfg := a.Config
	ids := id.UUID{}

	sched, err := schedule.NewGocron(a.Logger)
	if err != nil {
		return err
	}
	a.scheduler = sched
	a.closers = append(a.closers, sched.Close)

	kv, err := openKV(cfg)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, kv.Close)
	storeUC := storageusecase.NewInteractor(storageservice.NewStorageService(a.Clock, ids, kv, a.Logger, a.Recorder))
	a.store = storeUC
	a.seedTimeFormat(ctx, storeUC, cfg.TimeFormat)

	player, err := a.player(cfg)
	if err != nil {
		return err
	}
	notifiers := []feedbackout.Notifier{feedbackoutadapter.NewLogNotifier(a.Logger)}
	if cfg.NATS.URL != "" {
		nats, err := feedbackoutadapter.NewNATSNotifier(cfg.NATS.URL, cfg.NATS.Subject)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, nats.Close)
		notifiers = append(notifiers, nats)
	}
	feedbackUC := feedbackusecase.NewInteractor(feedbackservice.NewFeedbackService(
		player,
		notifiers,
		feedbackoutadapter.NewLogVibrator(a.Logger),
		sched,
		a.Logger,
		a.Recorder,
	))

	catalog, err := worldclockoutadapter.NewEmbeddedCatalog()
	if err != nil {
		return err
	}

	alarmUC := alarmusecase.NewInteractor(alarmservice.NewAlarmService(ctx, a.Clock, sched, storeUC, storeUC, feedbackUC, a.Logger, a.Recorder))
	timerUC := timerusecase.NewInteractor(timerservice.NewTimerService(ctx, a.Clock, sched, storeUC, feedbackUC, a.Logger, a.Recorder))
	stopwatchUC := stopwatchusecase.NewInteractor(stopwatchservice.NewStopwatchService(ctx, a.Clock, sched, storeUC, a.Logger, a.Recorder), a.Clock)
	a.worldClock = worldclockusecase.NewInteractor(worldclockservice.NewWorldClockService(ctx, a.Clock, sched, storeUC, catalog, ids, a.Logger, a.Recorder), storeUC)

	a.AlarmCLI = alarminadapter.NewCLIHandler(alarmUC)
	a.TimerCLI = timerinadapter.NewCLIHandler(timerUC)
	a.StopwatchCLI = stopwatchinadapter.NewCLIHandler(stopwatchUC)
	a.StoreCLI = storageinadapter.NewCLIHandler(storeUC)
	a.SoundsCLI = feedbackinadapter.NewCLIHandler(feedbackUC)
	return nil
}

func openKV(cfg config.Config) (storageout.KV, error) {
	if cfg.Backend != config.BackendMemory {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	switch cfg.Backend {
	case config.BackendBolt:
		return storageoutadapter.NewBoltKV(cfg.DBPath)
	case config.BackendMemory:
		return storageoutadapter.NewMemoryKV(0), nil
	default:
		return storageoutadapter.NewSQLiteKV(cfg.DBPath)
	}
}

func (a *App) player(cfg config.Config) (feedbackout.Player, error) {
	if cfg.SoundPlugin.Binary == "" {
		return feedbackoutadapter.NewBellPlayer(os.Stdout, a.scheduler, a.Logger, a.Recorder), nil
	}
	p, err := feedbackoutadapter.NewPluginPlayer(cfg.SoundPlugin.Binary, cfg.SoundPlugin.SHA256, os.Stderr)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, p.Close)
	return p, nil
}

// seedTimeFormat applies the configured clock format until the user
// stores visual settings of their own.
func (a *App) seedTimeFormat(ctx context.Context, store storagein.Usecase, format int) {
	var existing map[string]any
	if found, _ := store.Load(ctx, storagedto.KeyVisualSettings, &existing); found {
		return
	}
	if _, err := store.UpdateVisualSettings(ctx, storagedto.VisualSettingsUpdate{TimeFormat: &format}); err != nil {
		a.Logger.Warn("seed time format", logging.Err(err))
	}
}

// ClockCLI returns the world clock handler bound to the current locale.
func (a *App) ClockCLI() worldclockinadapter.CLIHandler {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return worldclockinadapter.NewCLIHandler(a.worldClock, a.locale)
}

// Reload applies the settings that can change while running: the log
// level and the locale.
func (a *App) Reload(cfg config.Config) {
	if lvl, err := logging.ParseLevel(cfg.LogLevel); err == nil {
		a.levelVar.Set(lvl)
	}
	a.mu.Lock()
	a.locale = cfg.Locale
	a.mu.Unlock()
}

func (a *App) MetricsHandler() http.Handler {
	return a.Recorder.Handler()
}

// Close persists every feature and releases the scheduler, the store and
// the feedback transports.
func (a *App) Close(ctx context.Context) error {
	a.AlarmCLI.Close()
	a.TimerCLI.Close(ctx)
	a.StopwatchCLI.Close(ctx)
	a.ClockCLI().Close()
	a.SoundsCLI.Stop(ctx)
	return a.closeAll()
}

func (a *App) closeAll() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func RunTUI(ctx context.Context, app *App) error {
	model := uiapp.NewModel(ctx, uiapp.Handlers{
		Alarm:     app.AlarmCLI,
		Timer:     app.TimerCLI,
		Stopwatch: app.StopwatchCLI,
		Clock:     app.ClockCLI(),
		Store:     app.StoreCLI,
		Sounds:    app.SoundsCLI,
	})
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
