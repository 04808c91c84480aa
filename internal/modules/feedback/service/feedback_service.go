package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"vclock/internal/modules/feedback/domain"
	feedbackout "vclock/internal/modules/feedback/port/out"
	apperrors "vclock/internal/platform/errors"
	"vclock/internal/platform/logging"
	"vclock/internal/platform/metrics"
	"vclock/internal/platform/schedule"
)

type pendingPlay struct {
	sound string
	opts  domain.PlayOptions
}

// FeedbackService owns the single audio channel of the process. Playing a
// sound replaces whatever was playing.
type FeedbackService struct {
	player    feedbackout.Player
	notifiers []feedbackout.Notifier
	vibrator  feedbackout.Vibrator
	sched     schedule.Scheduler
	logger    *slog.Logger
	metrics   metrics.Recorder

	mu       sync.Mutex
	current  string
	playing  bool
	pending  *pendingPlay
	testStop schedule.Handle
}

func NewFeedbackService(player feedbackout.Player, notifiers []feedbackout.Notifier, vibrator feedbackout.Vibrator, sched schedule.Scheduler, logger *slog.Logger, rec metrics.Recorder) *FeedbackService {
	return &FeedbackService{
		player:    player,
		notifiers: notifiers,
		vibrator:  vibrator,
		sched:     sched,
		logger:    logging.OrDiscard(logger),
		metrics:   metrics.OrNoop(rec),
	}
}

func (s *FeedbackService) Play(ctx context.Context, sound string, opts domain.PlayOptions) {
	s.Stop(ctx)
	sound = domain.ResolveSound(sound)
	opts.Volume = domain.ClampVolume(opts.Volume)

	err := s.player.Play(ctx, sound, opts)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = sound
	switch {
	case err == nil:
		s.playing = true
	case errors.Is(err, apperrors.ErrPlaybackBlocked):
		s.pending = &pendingPlay{sound: sound, opts: opts}
		s.metrics.IncFeedbackError("blocked")
		s.logger.Warn("playback blocked until next interaction", logging.Sound(sound))
	default:
		s.current = ""
		s.metrics.IncFeedbackError("play")
		s.logger.Error("play sound", logging.Sound(sound), logging.Err(err))
	}
}

func (s *FeedbackService) Stop(ctx context.Context) {
	s.mu.Lock()
	s.testStop = schedule.Stop(s.testStop)
	active := s.current != ""
	s.current = ""
	s.playing = false
	s.pending = nil
	s.mu.Unlock()
	if !active {
		return
	}
	if err := s.player.Stop(ctx); err != nil {
		s.metrics.IncFeedbackError("stop")
		s.logger.Error("stop sound", logging.Err(err))
	}
}

// Test plays sound at the preview volume and stops it after d.
func (s *FeedbackService) Test(ctx context.Context, sound string, d time.Duration) {
	if d <= 0 {
		d = domain.DefaultTestDuration
	}
	s.Play(ctx, sound, domain.PlayOptions{Volume: domain.TestVolume})
	stopCtx := context.WithoutCancel(ctx)
	h := s.sched.After(d, func() { s.Stop(stopCtx) })
	s.mu.Lock()
	s.testStop = h
	s.mu.Unlock()
}

// Interact retries a playback that was blocked. The retry happens once;
// a second refusal is only logged.
func (s *FeedbackService) Interact(ctx context.Context) {
	s.mu.Lock()
	p := s.pending
	s.pending = nil
	s.mu.Unlock()
	if p == nil {
		return
	}
	err := s.player.Play(ctx, p.sound, p.opts)
	if err != nil {
		s.metrics.IncFeedbackError("retry")
		s.logger.Error("playback still failed", logging.Sound(p.sound), logging.Err(err))
		return
	}
	s.mu.Lock()
	if s.current == p.sound {
		s.playing = true
	}
	s.mu.Unlock()
}

func (s *FeedbackService) Notify(ctx context.Context, n domain.Notification) {
	for _, notifier := range s.notifiers {
		if err := notifier.Notify(ctx, n); err != nil {
			s.metrics.IncFeedbackError("notify")
			s.logger.Error("send notification", slog.String("title", n.Title), logging.Err(err))
		}
	}
}

func (s *FeedbackService) Vibrate(ctx context.Context, pattern []int) {
	if s.vibrator == nil || len(pattern) == 0 {
		return
	}
	if err := s.vibrator.Vibrate(ctx, pattern); err != nil {
		s.metrics.IncFeedbackError("vibrate")
		s.logger.Error("vibrate", logging.Err(err))
	}
}

func (s *FeedbackService) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playing
}

func (s *FeedbackService) CurrentSound() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *FeedbackService) HasPending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending != nil
}
