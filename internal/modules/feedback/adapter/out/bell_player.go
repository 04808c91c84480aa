package out

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"vclock/internal/modules/feedback/domain"
	feedbackout "vclock/internal/modules/feedback/port/out"
	"vclock/internal/platform/logging"
	"vclock/internal/platform/metrics"
	"vclock/internal/platform/schedule"
)

const bellRepeat = 2 * time.Second

// BellPlayer rings the terminal bell. Looping sounds ring every two
// seconds until stopped or until a ring fails; a zero volume stays silent.
type BellPlayer struct {
	w       io.Writer
	sched   schedule.Scheduler
	logger  *slog.Logger
	metrics metrics.Recorder

	mu   sync.Mutex
	loop schedule.Handle
}

func NewBellPlayer(w io.Writer, sched schedule.Scheduler, logger *slog.Logger, rec metrics.Recorder) *BellPlayer {
	return &BellPlayer{
		w:       w,
		sched:   sched,
		logger:  logging.OrDiscard(logger).With(logging.Feature("feedback")),
		metrics: metrics.OrNoop(rec),
	}
}

var _ feedbackout.Player = (*BellPlayer)(nil)

func (b *BellPlayer) Play(_ context.Context, sound string, opts domain.PlayOptions) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loop = schedule.Stop(b.loop)
	if opts.Volume <= 0 {
		return nil
	}
	if err := b.ring(); err != nil {
		return err
	}
	if opts.Loop && b.sched != nil {
		b.loop = b.sched.Every(bellRepeat, func() { b.ringLoop(sound) })
	}
	return nil
}

func (b *BellPlayer) Stop(context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.loop = schedule.Stop(b.loop)
	return nil
}

func (b *BellPlayer) ringLoop(sound string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loop == nil {
		return
	}
	if err := b.ring(); err != nil {
		b.loop = schedule.Stop(b.loop)
		b.metrics.IncFeedbackError("loop")
		b.logger.Warn("bell loop stopped", logging.Sound(sound), logging.Err(err))
	}
}

func (b *BellPlayer) ring() error {
	if _, err := io.WriteString(b.w, "\a"); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	return nil
}
