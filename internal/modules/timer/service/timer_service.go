package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	feedbackdomain "vclock/internal/modules/feedback/domain"
	feedbackdto "vclock/internal/modules/feedback/dto"
	feedbackin "vclock/internal/modules/feedback/port/in"
	storagedto "vclock/internal/modules/storage/dto"
	storagein "vclock/internal/modules/storage/port/in"
	"vclock/internal/modules/timer/domain"
	"vclock/internal/platform/clock"
	apperrors "vclock/internal/platform/errors"
	"vclock/internal/platform/logging"
	"vclock/internal/platform/metrics"
	"vclock/internal/platform/schedule"
)

const feature = "timer"

// TimerService counts down from a fixed duration or to a target date.
// Remaining time is always derived from the start timestamp; the 100ms
// tick only refreshes observers and a one-shot deadline finishes the
// countdown on time.
type TimerService struct {
	clock    clock.Clock
	sched    schedule.Scheduler
	store    storagein.Store
	feedback feedbackin.Usecase
	logger   *slog.Logger
	metrics  metrics.Recorder

	mu            sync.Mutex
	settings      domain.Settings
	data          domain.Data
	tick          schedule.Handle
	deadline      schedule.Handle
	onTick        func(remainingMs int64)
	onFinish      func()
	onStateChange func(domain.State)
}

// NewTimerService loads the persisted settings and data. A timer that was
// running is restored as paused.
func NewTimerService(ctx context.Context, clock clock.Clock, sched schedule.Scheduler, store storagein.Store, feedback feedbackin.Usecase, logger *slog.Logger, rec metrics.Recorder) *TimerService {
	s := &TimerService{
		clock:    clock,
		sched:    sched,
		store:    store,
		feedback: feedback,
		logger:   logging.OrDiscard(logger).With(logging.Feature(feature)),
		metrics:  metrics.OrNoop(rec),
		settings: domain.DefaultSettings(),
	}
	now := clock.Now()
	s.data = domain.IdleData(s.settings.TotalMs(now))

	settings := domain.DefaultSettings()
	if found, _ := store.Load(ctx, storagedto.KeyTimerSettings, &settings); found {
		s.settings = settings.Normalize()
		s.data = domain.IdleData(s.settings.TotalMs(now))
	}
	data := s.data
	if found, _ := store.Load(ctx, storagedto.KeyTimerData, &data); found {
		restored := data.Restore()
		if data.State == domain.StateRunning {
			s.logger.Info("restoring running timer as paused", slog.Int64("remaining_ms", restored.RemainingMs))
		}
		s.data = restored
	}
	return s
}

func (s *TimerService) Settings() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// Snapshot returns the runtime data with the remaining time brought up to
// date for a running timer.
func (s *TimerService) Snapshot() domain.Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh(s.clock.Now())
	return s.data
}

func (s *TimerService) Progress() float64 {
	return s.Snapshot().Progress()
}

func (s *TimerService) Start(ctx context.Context) error {
	s.mu.Lock()
	now := s.clock.Now()
	var recent *domain.Recent
	switch s.data.State {
	case domain.StateRunning:
		s.mu.Unlock()
		return nil
	case domain.StateFinished:
		s.mu.Unlock()
		return fmt.Errorf("timer finished, stop or reset it first: %w", apperrors.ErrInvalidState)
	case domain.StateIdle:
		total := s.settings.TotalMs(now)
		start := now.UnixMilli()
		s.data = domain.Data{State: domain.StateRunning, RemainingMs: total, TotalMs: total, StartTime: &start}
		r := s.settings.Recent(total)
		recent = &r
	case domain.StatePaused:
		start := now.UnixMilli() - s.data.PausedTime
		s.data.StartTime = &start
		s.data.RemainingMs = max(0, s.data.TotalMs-s.data.PausedTime)
		s.data.State = domain.StateRunning
	}
	s.arm(ctx)
	s.save(ctx)
	stateCb := s.onStateChange
	remaining := s.data.RemainingMs
	s.mu.Unlock()

	if recent != nil {
		_ = s.store.AddRecentItem(ctx, storagedto.KeyRecentTimers, *recent)
	}
	s.logger.Info("timer started", slog.Int64("remaining_ms", remaining))
	if stateCb != nil {
		stateCb(domain.StateRunning)
	}
	if remaining <= 0 {
		s.onTickDue(ctx)
	}
	return nil
}

func (s *TimerService) Pause(ctx context.Context) {
	s.mu.Lock()
	if s.data.State != domain.StateRunning {
		s.mu.Unlock()
		return
	}
	s.disarm()
	now := s.clock.Now()
	s.refresh(now)
	s.data.PausedTime = s.data.TotalMs - s.data.RemainingMs
	s.data.State = domain.StatePaused
	s.save(ctx)
	stateCb := s.onStateChange
	s.mu.Unlock()

	if stateCb != nil {
		stateCb(domain.StatePaused)
	}
}

func (s *TimerService) Resume(ctx context.Context) error {
	s.mu.Lock()
	paused := s.data.State == domain.StatePaused
	s.mu.Unlock()
	if !paused {
		return nil
	}
	return s.Start(ctx)
}

// Stop returns to idle with the full duration remaining.
func (s *TimerService) Stop(ctx context.Context) {
	s.mu.Lock()
	s.disarm()
	s.data = domain.IdleData(s.data.TotalMs)
	s.save(ctx)
	stateCb := s.onStateChange
	s.mu.Unlock()

	if stateCb != nil {
		stateCb(domain.StateIdle)
	}
}

// Reset stops the timer and reports the full duration to the tick
// observer.
func (s *TimerService) Reset(ctx context.Context) {
	s.Stop(ctx)
	s.mu.Lock()
	total, onTick := s.data.TotalMs, s.onTick
	s.mu.Unlock()
	if onTick != nil {
		onTick(total)
	}
}

// AddTime extends a running or paused countdown. The start timestamp is
// kept, so the remaining time grows by exactly the added amount.
func (s *TimerService) AddTime(ctx context.Context, seconds int) error {
	if seconds <= 0 {
		return fmt.Errorf("seconds %d must be positive: %w", seconds, apperrors.ErrInvalidInput)
	}
	s.mu.Lock()
	if s.data.State != domain.StateRunning && s.data.State != domain.StatePaused {
		state := s.data.State
		s.mu.Unlock()
		return fmt.Errorf("cannot add time to a %s timer: %w", state, apperrors.ErrInvalidState)
	}
	extra := int64(seconds) * 1000
	s.refresh(s.clock.Now())
	s.data.TotalMs += extra
	s.data.RemainingMs += extra
	if s.data.State == domain.StateRunning {
		s.deadline = schedule.Stop(s.deadline)
		s.deadline = s.sched.After(time.Duration(s.data.RemainingMs)*time.Millisecond, s.dueFunc(ctx))
	}
	s.save(ctx)
	remaining, onTick := s.data.RemainingMs, s.onTick
	s.mu.Unlock()

	if onTick != nil {
		onTick(remaining)
	}
	return nil
}

// Configure replaces the settings. With resetCountdown the timer goes
// back to idle on the new target, and starts again when auto start is on.
func (s *TimerService) Configure(ctx context.Context, next domain.Settings, resetCountdown bool) error {
	s.mu.Lock()
	s.settings = next
	if !resetCountdown {
		s.save(ctx)
		s.mu.Unlock()
		return nil
	}
	s.disarm()
	s.data = domain.IdleData(next.TotalMs(s.clock.Now()))
	s.save(ctx)
	remaining, onTick, stateCb := s.data.RemainingMs, s.onTick, s.onStateChange
	s.mu.Unlock()

	if stateCb != nil {
		stateCb(domain.StateIdle)
	}
	if onTick != nil {
		onTick(remaining)
	}
	if next.AutoStart {
		return s.Start(ctx)
	}
	return nil
}

func (s *TimerService) onTickDue(ctx context.Context) {
	s.mu.Lock()
	if s.data.State != domain.StateRunning {
		s.mu.Unlock()
		return
	}
	s.refresh(s.clock.Now())
	finished := s.data.RemainingMs <= 0
	if finished {
		s.disarm()
		s.data.State = domain.StateFinished
		s.data.RemainingMs = 0
		s.save(ctx)
	}
	remaining := s.data.RemainingMs
	settings := s.settings
	onTick, onFinish, stateCb := s.onTick, s.onFinish, s.onStateChange
	s.mu.Unlock()

	s.metrics.IncTick(feature)
	if onTick != nil {
		onTick(remaining)
	}
	if !finished {
		return
	}
	s.finish(ctx, settings)
	if stateCb != nil {
		stateCb(domain.StateFinished)
	}
	if onFinish != nil {
		onFinish()
	}
}

func (s *TimerService) finish(ctx context.Context, settings domain.Settings) {
	s.metrics.IncTimerFinished()
	s.logger.Info("timer finished", logging.Sound(settings.Sound))
	s.feedback.Play(ctx, feedbackdto.PlayInput{Sound: settings.Sound, Volume: 1})
	s.feedback.Notify(ctx, feedbackdto.NotifyInput{
		Title: settings.NotificationTitle(),
		Body:  domain.FinishedBody,
		Icon:  domain.NotificationIcon,
		Tag:   domain.FinishedTag,
	})
	s.feedback.Vibrate(ctx, feedbackdomain.TimerVibration)
}

func (s *TimerService) OnTick(fn func(remainingMs int64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTick = fn
}

func (s *TimerService) OnFinish(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onFinish = fn
}

func (s *TimerService) OnStateChange(fn func(domain.State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onStateChange = fn
}

// Destroy cancels the tick and drops the callbacks.
func (s *TimerService) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disarm()
	s.onTick, s.onFinish, s.onStateChange = nil, nil, nil
}

// Close persists the current remaining time and releases the scheduler
// handles. A running timer comes back paused at this point.
func (s *TimerService) Close(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh(s.clock.Now())
	s.disarm()
	s.save(ctx)
}

// arm must be called with s.mu held.
func (s *TimerService) arm(ctx context.Context) {
	s.disarm()
	due := s.dueFunc(ctx)
	s.tick = s.sched.Every(domain.TickInterval, due)
	s.deadline = s.sched.After(time.Duration(s.data.RemainingMs)*time.Millisecond, due)
}

// disarm must be called with s.mu held.
func (s *TimerService) disarm() {
	s.tick = schedule.Stop(s.tick)
	s.deadline = schedule.Stop(s.deadline)
}

func (s *TimerService) dueFunc(ctx context.Context) func() {
	tickCtx := context.WithoutCancel(ctx)
	return func() { s.onTickDue(tickCtx) }
}

// refresh must be called with s.mu held.
func (s *TimerService) refresh(now time.Time) {
	if s.data.State != domain.StateRunning || s.data.StartTime == nil {
		return
	}
	elapsed := now.UnixMilli() - *s.data.StartTime
	s.data.RemainingMs = max(0, s.data.TotalMs-elapsed)
}

// save must be called with s.mu held. Store failures are logged and
// counted by the store.
func (s *TimerService) save(ctx context.Context) {
	_ = s.store.Save(ctx, storagedto.KeyTimerSettings, s.settings)
	_ = s.store.Save(ctx, storagedto.KeyTimerData, s.data)
}
