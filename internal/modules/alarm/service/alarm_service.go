package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"vclock/internal/modules/alarm/domain"
	feedbackdomain "vclock/internal/modules/feedback/domain"
	feedbackdto "vclock/internal/modules/feedback/dto"
	feedbackin "vclock/internal/modules/feedback/port/in"
	storagedto "vclock/internal/modules/storage/dto"
	storagein "vclock/internal/modules/storage/port/in"
	"vclock/internal/platform/clock"
	"vclock/internal/platform/logging"
	"vclock/internal/platform/metrics"
	"vclock/internal/platform/schedule"
	"vclock/internal/platform/timefmt"
)

const feature = "alarm"

// AlarmService is the daily alarm. While active it polls once a second and
// fires when a poll lands inside the target minute. A target minute that
// passes entirely between two polls is recorded as missed.
type AlarmService struct {
	clock    clock.Clock
	sched    schedule.Scheduler
	store    storagein.Store
	prefs    storagein.Preferences
	feedback feedbackin.Usecase
	logger   *slog.Logger
	metrics  metrics.Recorder

	mu        sync.Mutex
	settings  domain.Settings
	triggered bool
	lastFired time.Time
	lastPoll  time.Time
	poll      schedule.Handle
	autoStop  schedule.Handle
	onTick    func(string)
	onAlarm   func()
}

// NewAlarmService loads the persisted settings and resumes polling when
// the alarm was left active.
func NewAlarmService(ctx context.Context, clock clock.Clock, sched schedule.Scheduler, store storagein.Store, prefs storagein.Preferences, feedback feedbackin.Usecase, logger *slog.Logger, rec metrics.Recorder) *AlarmService {
	s := &AlarmService{
		clock:    clock,
		sched:    sched,
		store:    store,
		prefs:    prefs,
		feedback: feedback,
		logger:   logging.OrDiscard(logger).With(logging.Feature(feature)),
		metrics:  metrics.OrNoop(rec),
		settings: domain.DefaultSettings(),
	}
	loaded := domain.DefaultSettings()
	if found, _ := store.Load(ctx, storagedto.KeyAlarmSettings, &loaded); found {
		s.settings = loaded.Normalize()
	}
	if s.settings.IsActive {
		s.logger.Info("resuming active alarm", slog.String("at", s.settings.Display()))
		s.Start(ctx)
	}
	return s
}

func (s *AlarmService) Settings() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

func (s *AlarmService) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.IsActive
}

func (s *AlarmService) IsTriggered() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.triggered
}

// SetAlarm replaces the configuration with an inactive one and records it
// in the recent alarms list. A ringing alarm is silenced first.
func (s *AlarmService) SetAlarm(ctx context.Context, next domain.Settings) domain.Settings {
	s.mu.Lock()
	wasTriggered := s.triggered
	s.poll = schedule.Stop(s.poll)
	s.autoStop = schedule.Stop(s.autoStop)
	next.IsActive = false
	s.settings = next
	s.triggered = false
	s.save(ctx)
	s.mu.Unlock()

	if wasTriggered {
		s.feedback.Stop(ctx)
	}
	_ = s.store.AddRecentItem(ctx, storagedto.KeyRecentAlarms, next.Recent())
	s.logger.Info("alarm set", slog.String("at", next.Display()), slog.Bool("repeat", next.Repeat))
	return next
}

// UpdateSettings stores an edited configuration without touching the
// active flag or the poll.
func (s *AlarmService) UpdateSettings(ctx context.Context, next domain.Settings) domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	next.IsActive = s.settings.IsActive
	s.settings = next
	s.save(ctx)
	return next
}

func (s *AlarmService) Start(ctx context.Context) {
	s.mu.Lock()
	if s.poll != nil {
		s.mu.Unlock()
		return
	}
	s.settings.IsActive = true
	s.triggered = false
	s.lastPoll = s.clock.Now()
	s.save(ctx)
	pollCtx := context.WithoutCancel(ctx)
	s.poll = s.sched.Every(domain.PollInterval, func() { s.check(pollCtx) })
	s.mu.Unlock()

	s.logger.Info("alarm started", logging.State("active"))
	s.check(ctx)
}

func (s *AlarmService) Stop(ctx context.Context) {
	s.mu.Lock()
	s.poll = schedule.Stop(s.poll)
	s.autoStop = schedule.Stop(s.autoStop)
	s.settings.IsActive = false
	s.triggered = false
	s.save(ctx)
	s.mu.Unlock()

	s.feedback.Stop(ctx)
	s.logger.Info("alarm stopped", logging.State("inactive"))
}

// Dismiss silences a ringing alarm but keeps it armed for the next day.
func (s *AlarmService) Dismiss(ctx context.Context) {
	s.mu.Lock()
	wasTriggered := s.triggered
	s.autoStop = schedule.Stop(s.autoStop)
	s.triggered = false
	s.mu.Unlock()
	if wasTriggered {
		s.feedback.Stop(ctx)
	}
}

func (s *AlarmService) check(ctx context.Context) {
	s.mu.Lock()
	if !s.settings.IsActive {
		s.mu.Unlock()
		return
	}
	now := s.clock.Now()
	fire, missed := false, false
	var target time.Time
	if !s.triggered {
		target = s.settings.LastOccurrence(now)
		switch {
		case target.Equal(s.lastFired):
		case now.Before(target.Add(domain.FireWindow)):
			fire = true
		case s.lastPoll.Before(target):
			missed = true
		}
		if fire || missed {
			s.lastFired = target
		}
	}
	s.lastPoll = now
	settings := s.settings
	if fire {
		s.triggered = true
		if !settings.Repeat {
			stopCtx := context.WithoutCancel(ctx)
			s.autoStop = s.sched.After(domain.AutoStopAfter, func() { s.Stop(stopCtx) })
		}
	}
	onTick, onAlarm := s.onTick, s.onAlarm
	s.mu.Unlock()

	s.metrics.IncTick(feature)
	if fire {
		s.trigger(ctx, settings, onAlarm)
	}
	if missed {
		s.metrics.IncAlarmMissed()
		s.logger.Warn("alarm minute passed without a poll", slog.Time("target", target), slog.Time("observed", now))
	}
	if onTick != nil {
		onTick(s.formatNow(ctx, now))
	}
}

func (s *AlarmService) trigger(ctx context.Context, settings domain.Settings, onAlarm func()) {
	s.metrics.IncAlarmTriggered()
	s.logger.Info("alarm triggered", slog.String("at", settings.Display()), logging.Sound(settings.Sound))
	s.feedback.Play(ctx, feedbackdto.PlayInput{Sound: settings.Sound, Loop: settings.Repeat, Volume: 1})
	s.feedback.Notify(ctx, feedbackdto.NotifyInput{
		Title:              settings.NotificationTitle(),
		Body:               settings.NotificationBody(),
		Icon:               domain.NotificationIcon,
		RequireInteraction: true,
	})
	s.feedback.Vibrate(ctx, feedbackdomain.AlarmVibration)
	if onAlarm != nil {
		onAlarm()
	}
}

// TimeUntil reports the time left to the next occurrence, or false while
// the alarm is inactive.
func (s *AlarmService) TimeUntil() (timefmt.Breakdown, bool) {
	s.mu.Lock()
	settings := s.settings
	s.mu.Unlock()
	if !settings.IsActive {
		return timefmt.Breakdown{}, false
	}
	now := s.clock.Now()
	return timefmt.TimeUntil(settings.NextOccurrence(now), now), true
}

// CurrentTimeString renders the wall clock in the user's time format.
func (s *AlarmService) CurrentTimeString(ctx context.Context) string {
	return s.formatNow(ctx, s.clock.Now())
}

func (s *AlarmService) formatNow(ctx context.Context, now time.Time) string {
	format24h := s.prefs != nil && s.prefs.VisualSettings(ctx).TimeFormat == 24
	return timefmt.FormatTime(now, format24h)
}

func (s *AlarmService) TestSound(ctx context.Context, sound string) {
	if sound == "" {
		sound = s.Settings().Sound
	}
	s.feedback.Test(ctx, feedbackdto.TestInput{Sound: sound, Duration: feedbackdomain.DefaultTestDuration})
}

func (s *AlarmService) OnTick(fn func(string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTick = fn
}

func (s *AlarmService) OnAlarm(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onAlarm = fn
}

// Destroy stops the alarm and drops the callbacks.
func (s *AlarmService) Destroy(ctx context.Context) {
	s.Stop(ctx)
	s.mu.Lock()
	s.onTick, s.onAlarm = nil, nil
	s.mu.Unlock()
}

// Close releases the scheduler handles and leaves the persisted state as
// is, so an active alarm resumes on the next start.
func (s *AlarmService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.poll = schedule.Stop(s.poll)
	s.autoStop = schedule.Stop(s.autoStop)
}

// save must be called with s.mu held. Store failures are logged and
// counted by the store; the in-memory settings stay authoritative.
func (s *AlarmService) save(ctx context.Context) {
	_ = s.store.Save(ctx, storagedto.KeyAlarmSettings, s.settings)
}
