package service_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	feedbackdto "vclock/internal/modules/feedback/dto"
	storageout "vclock/internal/modules/storage/adapter/out"
	storagedto "vclock/internal/modules/storage/dto"
	storagein "vclock/internal/modules/storage/port/in"
	storageservice "vclock/internal/modules/storage/service"
	storageusecase "vclock/internal/modules/storage/usecase"
	"vclock/internal/modules/timer/domain"
	"vclock/internal/modules/timer/service"
	apperrors "vclock/internal/platform/errors"
	"vclock/internal/platform/id"
	"vclock/internal/platform/schedule"
)

type fakeFeedback struct {
	plays    []feedbackdto.PlayInput
	notes    []feedbackdto.NotifyInput
	patterns [][]int
}

func (f *fakeFeedback) Play(_ context.Context, in feedbackdto.PlayInput) {
	f.plays = append(f.plays, in)
}
func (f *fakeFeedback) Stop(context.Context)                        {}
func (f *fakeFeedback) Test(context.Context, feedbackdto.TestInput) {}
func (f *fakeFeedback) Interact(context.Context)                    {}
func (f *fakeFeedback) Notify(_ context.Context, in feedbackdto.NotifyInput) {
	f.notes = append(f.notes, in)
}
func (f *fakeFeedback) Vibrate(_ context.Context, p []int) { f.patterns = append(f.patterns, p) }
func (f *fakeFeedback) Status() feedbackdto.PlaybackStatus { return feedbackdto.PlaybackStatus{} }
func (f *fakeFeedback) Sounds() []feedbackdto.SoundOutput  { return nil }

type timerMetrics struct {
	ticks, finished int
}

func (m *timerMetrics) IncTick(string)          { m.ticks++ }
func (m *timerMetrics) IncAlarmTriggered()      {}
func (m *timerMetrics) IncAlarmMissed()         {}
func (m *timerMetrics) IncTimerFinished()       { m.finished++ }
func (m *timerMetrics) IncLapRecorded()         {}
func (m *timerMetrics) IncStoreError(string)    {}
func (m *timerMetrics) IncFeedbackError(string) {}

type harness struct {
	sim   *schedule.Simulated
	store storagein.Usecase
	fb    *fakeFeedback
	rec   *timerMetrics
}

func newHarness() *harness {
	return newHarnessWithQuota(0)
}

func newHarnessWithQuota(quota int) *harness {
	sim := schedule.NewSimulated(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	store := storageusecase.NewInteractor(storageservice.NewStorageService(sim, id.UUID{}, storageout.NewMemoryKV(quota), nil, nil))
	return &harness{sim: sim, store: store, fb: &fakeFeedback{}, rec: &timerMetrics{}}
}

func (h *harness) service(ctx context.Context) *service.TimerService {
	return service.NewTimerService(ctx, h.sim, h.sim, h.store, h.fb, nil, h.rec)
}

func configure(t *testing.T, ctx context.Context, svc *service.TimerService, d time.Duration) {
	t.Helper()
	total := int(d / time.Second)
	next, err := svc.Settings().WithDuration(total/3600, (total%3600)/60, total%60)
	if err != nil {
		t.Fatalf("with duration: %v", err)
	}
	if err := svc.Configure(ctx, next, true); err != nil {
		t.Fatalf("configure: %v", err)
	}
}

func TestDurationCountdownFinishesAfterExactlyD(t *testing.T) {
	t.Parallel()
	for _, d := range []time.Duration{0, time.Second, 5 * time.Second, 90 * time.Second, time.Hour + 30*time.Second} {
		ctx := context.Background()
		h := newHarness()
		svc := h.service(ctx)
		configure(t, ctx, svc, d)
		if err := svc.Start(ctx); err != nil {
			t.Fatalf("start: %v", err)
		}
		if d > 0 {
			h.sim.Advance(d - time.Millisecond)
			if got := svc.Snapshot(); got.State != domain.StateRunning || got.RemainingMs != 1 {
				t.Fatalf("D=%v: one millisecond before the end expected running/1ms, got %+v", d, got)
			}
			h.sim.Advance(time.Millisecond)
		}
		got := svc.Snapshot()
		if got.State != domain.StateFinished || got.RemainingMs != 0 {
			t.Fatalf("D=%v: expected finished with zero remaining, got %+v", d, got)
		}
		if h.sim.Pending() != 0 {
			t.Fatalf("D=%v: finished timer must not keep ticking", d)
		}
		if h.rec.finished != 1 || len(h.fb.plays) != 1 {
			t.Fatalf("D=%v: expected one finish, got metric=%d plays=%d", d, h.rec.finished, len(h.fb.plays))
		}
	}
}

func TestPauseResumePreservesRemainingAndFinishes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness()
	svc := h.service(ctx)
	configure(t, ctx, svc, 10*time.Second)
	finishes := 0
	svc.OnFinish(func() { finishes++ })

	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	h.sim.Advance(3250 * time.Millisecond)
	svc.Pause(ctx)
	if got := svc.Snapshot(); got.State != domain.StatePaused || got.RemainingMs != 6750 {
		t.Fatalf("unexpected paused snapshot %+v", got)
	}
	h.sim.Advance(time.Hour)
	if err := svc.Resume(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}
	if got := svc.Snapshot(); got.RemainingMs != 6750 {
		t.Fatalf("resume must not drift, remaining %d", got.RemainingMs)
	}
	h.sim.Advance(6750 * time.Millisecond)
	if got := svc.Snapshot(); got.State != domain.StateFinished {
		t.Fatalf("expected finished, got %+v", got)
	}
	if finishes != 1 {
		t.Fatalf("expected one finish callback, got %d", finishes)
	}
	if got := h.fb.plays[0]; got.Sound != "classic-bell.mp3" || got.Loop || got.Volume != 1 {
		t.Fatalf("unexpected play %+v", got)
	}
	if n := h.fb.notes[0]; n.Title != "Timer" || n.Body != "Your timer has finished!" || n.Tag != "timer-finished" {
		t.Fatalf("unexpected notification %+v", n)
	}
	if !reflect.DeepEqual(h.fb.patterns[0], []int{300, 100, 300, 100, 300}) {
		t.Fatalf("unexpected vibration %v", h.fb.patterns[0])
	}
}

func TestAddTimeExtendsWithoutJump(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness()
	svc := h.service(ctx)
	configure(t, ctx, svc, 10*time.Second)

	if err := svc.AddTime(ctx, 30); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("adding to an idle timer must fail, got %v", err)
	}
	_ = svc.Start(ctx)
	h.sim.Advance(4 * time.Second)
	if err := svc.AddTime(ctx, 0); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if err := svc.AddTime(ctx, 30); err != nil {
		t.Fatalf("add time: %v", err)
	}
	got := svc.Snapshot()
	if got.RemainingMs != 36000 || got.TotalMs != 40000 {
		t.Fatalf("unexpected snapshot after add %+v", got)
	}
	h.sim.Advance(36*time.Second - time.Millisecond)
	if svc.Snapshot().State != domain.StateRunning {
		t.Fatalf("timer finished early")
	}
	h.sim.Advance(time.Millisecond)
	if svc.Snapshot().State != domain.StateFinished {
		t.Fatalf("timer must finish at the extended deadline")
	}
}

func TestRunningTimerIsRestoredPaused(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness()
	first := h.service(ctx)
	configure(t, ctx, first, time.Minute)
	_ = first.Start(ctx)
	h.sim.Advance(15 * time.Second)
	first.Close(ctx)

	second := h.service(ctx)
	got := second.Snapshot()
	if got.State != domain.StatePaused || got.RemainingMs != 45000 {
		t.Fatalf("expected paused at 45s, got %+v", got)
	}
	h.sim.Advance(10 * time.Minute)
	if second.Snapshot().RemainingMs != 45000 {
		t.Fatalf("restored timer must not run on its own")
	}
	if err := second.Start(ctx); err != nil {
		t.Fatalf("resume restored timer: %v", err)
	}
	h.sim.Advance(45 * time.Second)
	if second.Snapshot().State != domain.StateFinished {
		t.Fatalf("restored timer must finish after the remaining time")
	}
}

func TestFinishedIsTerminalUntilStop(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness()
	svc := h.service(ctx)
	configure(t, ctx, svc, 2*time.Second)
	var states []domain.State
	svc.OnStateChange(func(s domain.State) { states = append(states, s) })

	_ = svc.Start(ctx)
	h.sim.Advance(2 * time.Second)
	if err := svc.Start(ctx); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("starting a finished timer must fail, got %v", err)
	}
	svc.Stop(ctx)
	got := svc.Snapshot()
	if got.State != domain.StateIdle || got.RemainingMs != 2000 || got.StartTime != nil {
		t.Fatalf("stop must return to idle with the full duration, got %+v", got)
	}
	want := []domain.State{domain.StateRunning, domain.StateFinished, domain.StateIdle}
	if !reflect.DeepEqual(states, want) {
		t.Fatalf("state changes = %v, want %v", states, want)
	}
}

func TestStopCancelsTicks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness()
	svc := h.service(ctx)
	configure(t, ctx, svc, time.Minute)
	ticks := 0
	svc.OnTick(func(int64) { ticks++ })

	_ = svc.Start(ctx)
	h.sim.Advance(time.Second)
	if ticks != 10 {
		t.Fatalf("expected ten ticks per second, got %d", ticks)
	}
	svc.Stop(ctx)
	h.sim.Advance(time.Minute)
	if ticks != 10 || h.sim.Pending() != 0 {
		t.Fatalf("no tick may fire after stop: ticks=%d pending=%d", ticks, h.sim.Pending())
	}
}

func TestDateModeCountsDownToTarget(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness()
	svc := h.service(ctx)

	past, _ := svc.Settings().WithTargetDate(h.sim.Now().Add(-time.Hour))
	if err := svc.Configure(ctx, past, true); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if got := svc.Snapshot(); got.TotalMs != 0 {
		t.Fatalf("a past target clamps to zero, got %+v", got)
	}

	future, _ := svc.Settings().WithTargetDate(h.sim.Now().Add(1500 * time.Millisecond))
	_ = svc.Configure(ctx, future, true)
	_ = svc.Start(ctx)
	h.sim.Advance(1500 * time.Millisecond)
	if got := svc.Snapshot(); got.State != domain.StateFinished {
		t.Fatalf("expected finished at the target date, got %+v", got)
	}
}

func TestStartFromIdleRecordsRecentTimer(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness()
	svc := h.service(ctx)
	configure(t, ctx, svc, 3*time.Minute)
	_ = svc.Start(ctx)
	svc.Pause(ctx)
	_ = svc.Resume(ctx)

	items, err := h.store.RecentItems(ctx, storagedto.KeyRecentTimers)
	if err != nil || len(items) != 1 {
		t.Fatalf("expected a single recent timer, got %d (%v)", len(items), err)
	}
}

func TestAutoStartStartsAfterConfigure(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness()
	svc := h.service(ctx)
	next, _ := svc.Settings().WithAutoStart(true).WithDuration(0, 1, 0)
	if err := svc.Configure(ctx, next, true); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if got := svc.Snapshot(); got.State != domain.StateRunning || got.TotalMs != 60000 {
		t.Fatalf("auto start must run the new countdown, got %+v", got)
	}
}

func TestTimerRunsWhenStoreRejectsWrites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarnessWithQuota(8)
	svc := h.service(ctx)
	configure(t, ctx, svc, 5*time.Second)
	finishes := 0
	svc.OnFinish(func() { finishes++ })

	if got := svc.Snapshot(); got.State != domain.StateIdle || got.TotalMs != 5000 {
		t.Fatalf("configure must apply in memory, got %+v", got)
	}
	if err := svc.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	h.sim.Advance(2 * time.Second)
	svc.Pause(ctx)
	if got := svc.Snapshot(); got.State != domain.StatePaused || got.RemainingMs != 3000 {
		t.Fatalf("unexpected paused snapshot %+v", got)
	}
	if err := svc.Resume(ctx); err != nil {
		t.Fatalf("resume: %v", err)
	}
	h.sim.Advance(3 * time.Second)
	if got := svc.Snapshot(); got.State != domain.StateFinished || finishes != 1 || len(h.fb.plays) != 1 {
		t.Fatalf("timer must finish without a working store: %+v finishes=%d", got, finishes)
	}
	if items, _ := h.store.RecentItems(ctx, storagedto.KeyRecentTimers); len(items) != 0 {
		t.Fatalf("nothing should have been persisted, got %d recent items", len(items))
	}
}
