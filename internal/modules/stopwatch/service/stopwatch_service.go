package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"vclock/internal/modules/stopwatch/domain"
	storagedto "vclock/internal/modules/storage/dto"
	storagein "vclock/internal/modules/storage/port/in"
	"vclock/internal/platform/clock"
	apperrors "vclock/internal/platform/errors"
	"vclock/internal/platform/logging"
	"vclock/internal/platform/metrics"
	"vclock/internal/platform/schedule"
)

const feature = "stopwatch"

// StopwatchService measures elapsed time from a start timestamp. The tick
// rate follows the display precision and never feeds the measurement.
type StopwatchService struct {
	clock   clock.Clock
	sched   schedule.Scheduler
	store   storagein.Store
	logger  *slog.Logger
	metrics metrics.Recorder

	mu            sync.Mutex
	state         domain.State
	running       bool
	startedAt     time.Time
	tick          schedule.Handle
	onTick        func(elapsedMs int64)
	onLap         func(domain.Lap)
	onStateChange func(running bool)
}

func NewStopwatchService(ctx context.Context, clock clock.Clock, sched schedule.Scheduler, store storagein.Store, logger *slog.Logger, rec metrics.Recorder) *StopwatchService {
	s := &StopwatchService{
		clock:   clock,
		sched:   sched,
		store:   store,
		logger:  logging.OrDiscard(logger).With(logging.Feature(feature)),
		metrics: metrics.OrNoop(rec),
		state:   domain.DefaultState(),
	}
	loaded := domain.DefaultState()
	if found, _ := store.Load(ctx, storagedto.KeyStopwatchState, &loaded); found {
		s.state = loaded.Normalize()
	}
	return s
}

// Snapshot returns the state with a live elapsed value.
func (s *StopwatchService) Snapshot() domain.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Elapsed = s.elapsed(s.clock.Now())
	st.IsRunning = s.running
	st.Laps = append([]domain.Lap(nil), s.state.Laps...)
	return st
}

func (s *StopwatchService) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.startedAt = s.clock.Now().Add(-time.Duration(s.state.Elapsed) * time.Millisecond)
	s.running = true
	s.arm()
	s.save(ctx)
	stateCb := s.onStateChange
	s.mu.Unlock()

	if stateCb != nil {
		stateCb(true)
	}
}

func (s *StopwatchService) Pause(ctx context.Context) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.tick = schedule.Stop(s.tick)
	s.state.Elapsed = s.elapsed(s.clock.Now())
	s.running = false
	s.save(ctx)
	stateCb := s.onStateChange
	s.mu.Unlock()

	if stateCb != nil {
		stateCb(false)
	}
}

// Reset clears the elapsed time and every lap. The precision is kept.
func (s *StopwatchService) Reset(ctx context.Context) {
	s.mu.Lock()
	s.tick = schedule.Stop(s.tick)
	s.running = false
	s.state = domain.State{Laps: []domain.Lap{}, Precision: s.state.Precision}
	s.save(ctx)
	stateCb, onTick := s.onStateChange, s.onTick
	s.mu.Unlock()

	if stateCb != nil {
		stateCb(false)
	}
	if onTick != nil {
		onTick(0)
	}
}

// Lap records a checkpoint. It fails unless the stopwatch is running.
func (s *StopwatchService) Lap(ctx context.Context) (domain.Lap, error) {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return domain.Lap{}, fmt.Errorf("stopwatch is not running: %w", apperrors.ErrInvalidState)
	}
	now := s.clock.Now()
	lap := domain.NewLap(s.state.Laps, s.elapsed(now), now)
	s.state.Laps = append(s.state.Laps, lap)
	s.save(ctx)
	onLap := s.onLap
	s.mu.Unlock()

	s.metrics.IncLapRecorded()
	if onLap != nil {
		onLap(lap)
	}
	return lap, nil
}

func (s *StopwatchService) DeleteLap(ctx context.Context, number int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	laps, ok := domain.DeleteLap(s.state.Laps, number)
	if !ok {
		return false
	}
	s.state.Laps = laps
	s.save(ctx)
	return true
}

func (s *StopwatchService) ClearLaps(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Laps = []domain.Lap{}
	s.save(ctx)
}

// SetPrecision changes the display precision and re-arms the tick at the
// matching rate.
func (s *StopwatchService) SetPrecision(ctx context.Context, precision int) error {
	if err := domain.ValidatePrecision(precision); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Precision = precision
	if s.running {
		s.arm()
	}
	s.save(ctx)
	return nil
}

func (s *StopwatchService) onTickDue() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	elapsed := s.elapsed(s.clock.Now())
	onTick := s.onTick
	s.mu.Unlock()

	s.metrics.IncTick(feature)
	if onTick != nil {
		onTick(elapsed)
	}
}

func (s *StopwatchService) OnTick(fn func(elapsedMs int64)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTick = fn
}

func (s *StopwatchService) OnLap(fn func(domain.Lap)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onLap = fn
}

func (s *StopwatchService) OnStateChange(fn func(running bool)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onStateChange = fn
}

func (s *StopwatchService) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tick = schedule.Stop(s.tick)
	s.onTick, s.onLap, s.onStateChange = nil, nil, nil
}

// Close stores the live elapsed time and releases the tick. The next load
// comes back paused there.
func (s *StopwatchService) Close(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		s.state.Elapsed = s.elapsed(s.clock.Now())
	}
	s.tick = schedule.Stop(s.tick)
	s.save(ctx)
}

// arm must be called with s.mu held.
func (s *StopwatchService) arm() {
	s.tick = schedule.Stop(s.tick)
	s.tick = s.sched.Every(domain.TickRate(s.state.Precision), s.onTickDue)
}

// elapsed must be called with s.mu held.
func (s *StopwatchService) elapsed(now time.Time) int64 {
	if !s.running {
		return s.state.Elapsed
	}
	return now.Sub(s.startedAt).Milliseconds()
}

// save must be called with s.mu held. The running flag is never stored.
func (s *StopwatchService) save(ctx context.Context) {
	st := s.state
	st.Elapsed = s.elapsed(s.clock.Now())
	st.IsRunning = false
	_ = s.store.Save(ctx, storagedto.KeyStopwatchState, st)
}
