package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"vclock/internal/modules/stopwatch/domain"
	"vclock/internal/modules/stopwatch/service"
	storageout "vclock/internal/modules/storage/adapter/out"
	storagedto "vclock/internal/modules/storage/dto"
	storagein "vclock/internal/modules/storage/port/in"
	storageservice "vclock/internal/modules/storage/service"
	storageusecase "vclock/internal/modules/storage/usecase"
	apperrors "vclock/internal/platform/errors"
	"vclock/internal/platform/id"
	"vclock/internal/platform/schedule"
)

type lapMetrics struct {
	ticks, laps int
}

func (m *lapMetrics) IncTick(string)          { m.ticks++ }
func (m *lapMetrics) IncAlarmTriggered()      {}
func (m *lapMetrics) IncAlarmMissed()         {}
func (m *lapMetrics) IncTimerFinished()       {}
func (m *lapMetrics) IncLapRecorded()         { m.laps++ }
func (m *lapMetrics) IncStoreError(string)    {}
func (m *lapMetrics) IncFeedbackError(string) {}

func newService(t *testing.T) (*service.StopwatchService, *schedule.Simulated, storagein.Usecase, *lapMetrics) {
	t.Helper()
	return newServiceWithQuota(t, 0)
}

func newServiceWithQuota(t *testing.T, quota int) (*service.StopwatchService, *schedule.Simulated, storagein.Usecase, *lapMetrics) {
	t.Helper()
	sim := schedule.NewSimulated(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	store := storageusecase.NewInteractor(storageservice.NewStorageService(sim, id.UUID{}, storageout.NewMemoryKV(quota), nil, nil))
	rec := &lapMetrics{}
	return service.NewStopwatchService(context.Background(), sim, sim, store, nil, rec), sim, store, rec
}

func TestElapsedComesFromStartTimestamp(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, sim, _, rec := newService(t)
	svc.Start(ctx)
	sim.Advance(1234 * time.Millisecond)
	if got := svc.Snapshot().Elapsed; got != 1234 {
		t.Fatalf("expected 1234ms, got %d", got)
	}
	if rec.ticks != 123 {
		t.Fatalf("precision 2 ticks every 10ms, got %d ticks", rec.ticks)
	}

	svc.Pause(ctx)
	sim.Advance(time.Minute)
	svc.Start(ctx)
	sim.Advance(766 * time.Millisecond)
	if got := svc.Snapshot().Elapsed; got != 2000 {
		t.Fatalf("pause must freeze elapsed, got %d", got)
	}
}

func TestLapSequenceChainsAndRenumbersOnDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, sim, _, rec := newService(t)

	if _, err := svc.Lap(ctx); !errors.Is(err, apperrors.ErrInvalidState) {
		t.Fatalf("lap while stopped must fail, got %v", err)
	}
	svc.Start(ctx)
	for _, step := range []time.Duration{1100 * time.Millisecond, 900 * time.Millisecond, 1500 * time.Millisecond, 700 * time.Millisecond} {
		sim.Advance(step)
		if _, err := svc.Lap(ctx); err != nil {
			t.Fatalf("lap: %v", err)
		}
	}
	laps := svc.Snapshot().Laps
	var prev int64
	for i, lap := range laps {
		if lap.Number != i+1 || lap.LapTime+prev != lap.TotalTime {
			t.Fatalf("lap %d breaks the chain: %+v", i+1, lap)
		}
		prev = lap.TotalTime
	}
	if rec.laps != 4 {
		t.Fatalf("expected four recorded laps, got %d", rec.laps)
	}

	if !svc.DeleteLap(ctx, 2) {
		t.Fatalf("delete lap 2")
	}
	laps = svc.Snapshot().Laps
	if len(laps) != 3 || laps[0].Number != 1 || laps[1].Number != 2 || laps[2].Number != 3 {
		t.Fatalf("expected dense numbering after delete, got %+v", laps)
	}
	if svc.DeleteLap(ctx, 7) {
		t.Fatalf("deleting a missing lap must report false")
	}
}

func TestStateIsNeverPersistedRunning(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, sim, store, _ := newService(t)
	svc.Start(ctx)
	sim.Advance(2 * time.Second)
	_, _ = svc.Lap(ctx)
	sim.Advance(500 * time.Millisecond)
	svc.Close(ctx)

	var persisted domain.State
	if _, err := store.Load(ctx, storagedto.KeyStopwatchState, &persisted); err != nil {
		t.Fatalf("load: %v", err)
	}
	if persisted.IsRunning || persisted.Elapsed != 2500 || len(persisted.Laps) != 1 {
		t.Fatalf("unexpected persisted state %+v", persisted)
	}

	reloaded := service.NewStopwatchService(ctx, sim, sim, store, nil, nil)
	got := reloaded.Snapshot()
	if got.IsRunning || got.Elapsed != 2500 {
		t.Fatalf("reload must come back paused at 2.5s, got %+v", got)
	}
	reloaded.Start(ctx)
	sim.Advance(500 * time.Millisecond)
	if reloaded.Snapshot().Elapsed != 3000 {
		t.Fatalf("resume after reload must continue from the saved elapsed")
	}
}

func TestResetKeepsPrecisionAndNotifiesZero(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, sim, _, _ := newService(t)
	if err := svc.SetPrecision(ctx, 0); err != nil {
		t.Fatalf("set precision: %v", err)
	}
	var last int64 = -1
	svc.OnTick(func(ms int64) { last = ms })
	svc.Start(ctx)
	sim.Advance(3 * time.Second)
	if last != 3000 {
		t.Fatalf("expected a tick at 3s, got %d", last)
	}
	_, _ = svc.Lap(ctx)
	svc.Reset(ctx)
	got := svc.Snapshot()
	if got.Elapsed != 0 || len(got.Laps) != 0 || got.Precision != 0 || got.IsRunning {
		t.Fatalf("unexpected state after reset %+v", got)
	}
	if last != 0 || sim.Pending() != 0 {
		t.Fatalf("reset must report zero and cancel the tick")
	}
}

func TestSetPrecisionRearmsTick(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, sim, _, rec := newService(t)
	svc.Start(ctx)
	if err := svc.SetPrecision(ctx, 1); err != nil {
		t.Fatalf("set precision: %v", err)
	}
	if sim.Pending() != 1 {
		t.Fatalf("re-arming must replace the tick, %d timers", sim.Pending())
	}
	sim.Advance(time.Second)
	if rec.ticks != 10 {
		t.Fatalf("precision 1 ticks every 100ms, got %d", rec.ticks)
	}
	if err := svc.SetPrecision(ctx, 4); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestStopwatchLapsWhenStoreRejectsWrites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc, sim, store, rec := newServiceWithQuota(t, 5)
	var laps []domain.Lap
	svc.OnLap(func(l domain.Lap) { laps = append(laps, l) })

	svc.Start(ctx)
	sim.Advance(1500 * time.Millisecond)
	lap, err := svc.Lap(ctx)
	if err != nil {
		t.Fatalf("lap must not depend on the store: %v", err)
	}
	if lap.Number != 1 || lap.TotalTime != 1500 || lap.LapTime != 1500 {
		t.Fatalf("unexpected lap %+v", lap)
	}
	if len(laps) != 1 || rec.laps != 1 {
		t.Fatalf("lap callback and metric must fire: callbacks=%d metric=%d", len(laps), rec.laps)
	}
	svc.Pause(ctx)
	if got := svc.Snapshot(); got.IsRunning || got.Elapsed != 1500 || len(got.Laps) != 1 {
		t.Fatalf("in-memory state must stay authoritative, got %+v", got)
	}
	var persisted domain.State
	if found, _ := store.Load(ctx, storagedto.KeyStopwatchState, &persisted); found {
		t.Fatalf("nothing should have been persisted, got %+v", persisted)
	}
}
