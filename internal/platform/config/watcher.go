package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"vclock/internal/platform/logging"
)

// Watcher reloads the configuration when the YAML file changes and hands
// the result to onChange. Bursts of events are debounced.
type Watcher struct {
	path     string
	opts     Options
	onChange func(Config)
	logger   *slog.Logger
	debounce time.Duration

	watcher  *fsnotify.Watcher
	reloadCh chan struct{}
	stopOnce sync.Once
	stopCh   chan struct{}
}

func NewWatcher(opts Options, path string, onChange func(Config), logger *slog.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	return &Watcher{
		path:     abs,
		opts:     opts,
		onChange: onChange,
		logger:   logging.OrDiscard(logger),
		debounce: 500 * time.Millisecond,
		watcher:  fw,
		reloadCh: make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
	}, nil
}

// SetDebounce overrides the delay between the last event and the reload.
func (w *Watcher) SetDebounce(d time.Duration) { w.debounce = d }

// Start watches the directory holding the file; editors often replace the
// file instead of writing it in place.
func (w *Watcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("watch config directory %s: %w", dir, err)
	}
	w.logger.Info("watching configuration", slog.String("path", w.path))
	go w.watchLoop(ctx)
	go w.reloadLoop(ctx)
	return nil
}

func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.stopCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) watchLoop(ctx context.Context) {
	name := filepath.Base(w.path)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stopCh:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			switch {
			case event.Has(fsnotify.Write), event.Has(fsnotify.Create), event.Has(fsnotify.Rename):
				w.trigger()
			case event.Has(fsnotify.Remove):
				w.logger.Warn("configuration file removed", slog.String("path", event.Name))
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("configuration watcher", logging.Err(err))
		}
	}
}

func (w *Watcher) reloadLoop(ctx context.Context) {
	var timer *time.Timer
	stop := func() {
		if timer != nil {
			timer.Stop()
		}
	}
	for {
		select {
		case <-ctx.Done():
			stop()
			return
		case <-w.stopCh:
			stop()
			return
		case <-w.reloadCh:
			stop()
			timer = time.AfterFunc(w.debounce, w.reload)
		}
	}
}

func (w *Watcher) trigger() {
	select {
	case w.reloadCh <- struct{}{}:
	default:
	}
}

func (w *Watcher) reload() {
	opts := w.opts
	opts.ConfigPath = w.path
	cfg, err := Load(opts)
	if err != nil {
		w.logger.Error("reload configuration", logging.Err(err))
		return
	}
	w.logger.Info("configuration reloaded", slog.String("log_level", cfg.LogLevel), slog.String("locale", cfg.Locale))
	if w.onChange != nil {
		w.onChange(cfg)
	}
}
