package schedule

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"vclock/internal/platform/logging"
)

// Gocron schedules callbacks on a gocron scheduler. Periodic jobs run in
// singleton mode so a slow callback never overlaps itself.
type Gocron struct {
	scheduler gocron.Scheduler
	logger    *slog.Logger
}

func NewGocron(logger *slog.Logger) (*Gocron, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create gocron scheduler: %w", err)
	}
	return &Gocron{scheduler: s, logger: logging.OrDiscard(logger)}, nil
}

// Start begins running registered jobs.
func (g *Gocron) Start() {
	g.scheduler.Start()
}

// Close stops the scheduler and waits for running jobs.
func (g *Gocron) Close() error {
	return g.scheduler.Shutdown()
}

func (g *Gocron) Every(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		interval = time.Millisecond
	}
	job, err := g.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(fn),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		g.logger.Error("schedule periodic job", slog.Duration("interval", interval), logging.Err(err))
		return noopHandle{}
	}
	return &gocronHandle{g: g, job: job}
}

func (g *Gocron) After(delay time.Duration, fn func()) Handle {
	start := gocron.OneTimeJobStartImmediately()
	if delay > 0 {
		start = gocron.OneTimeJobStartDateTime(time.Now().Add(delay))
	}
	job, err := g.scheduler.NewJob(gocron.OneTimeJob(start), gocron.NewTask(fn))
	if err != nil {
		g.logger.Error("schedule one-shot job", slog.Duration("delay", delay), logging.Err(err))
		return noopHandle{}
	}
	return &gocronHandle{g: g, job: job}
}

type gocronHandle struct {
	g    *Gocron
	job  gocron.Job
	once sync.Once
}

func (h *gocronHandle) Cancel() {
	h.once.Do(func() {
		// one-shot jobs may already be gone
		_ = h.g.scheduler.RemoveJob(h.job.ID())
	})
}
