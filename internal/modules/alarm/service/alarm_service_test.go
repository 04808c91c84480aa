package service_test

import (
	"context"
	"reflect"
	"testing"
	"time"

	"vclock/internal/modules/alarm/domain"
	"vclock/internal/modules/alarm/service"
	feedbackdto "vclock/internal/modules/feedback/dto"
	storageout "vclock/internal/modules/storage/adapter/out"
	storagedto "vclock/internal/modules/storage/dto"
	storagein "vclock/internal/modules/storage/port/in"
	storageservice "vclock/internal/modules/storage/service"
	storageusecase "vclock/internal/modules/storage/usecase"
	"vclock/internal/platform/id"
	"vclock/internal/platform/schedule"
	"vclock/internal/platform/timefmt"
)

type fakeFeedback struct {
	plays    []feedbackdto.PlayInput
	notes    []feedbackdto.NotifyInput
	patterns [][]int
	tests    []feedbackdto.TestInput
	stops    int
}

func (f *fakeFeedback) Play(_ context.Context, in feedbackdto.PlayInput) {
	f.plays = append(f.plays, in)
}
func (f *fakeFeedback) Stop(context.Context) { f.stops++ }
func (f *fakeFeedback) Test(_ context.Context, in feedbackdto.TestInput) {
	f.tests = append(f.tests, in)
}
func (f *fakeFeedback) Interact(context.Context) {}
func (f *fakeFeedback) Notify(_ context.Context, in feedbackdto.NotifyInput) {
	f.notes = append(f.notes, in)
}
func (f *fakeFeedback) Vibrate(_ context.Context, p []int) { f.patterns = append(f.patterns, p) }
func (f *fakeFeedback) Status() feedbackdto.PlaybackStatus { return feedbackdto.PlaybackStatus{} }
func (f *fakeFeedback) Sounds() []feedbackdto.SoundOutput  { return nil }

type alarmMetrics struct {
	ticks, triggered, missed int
}

func (m *alarmMetrics) IncTick(string)          { m.ticks++ }
func (m *alarmMetrics) IncAlarmTriggered()      { m.triggered++ }
func (m *alarmMetrics) IncAlarmMissed()         { m.missed++ }
func (m *alarmMetrics) IncTimerFinished()       {}
func (m *alarmMetrics) IncLapRecorded()         {}
func (m *alarmMetrics) IncStoreError(string)    {}
func (m *alarmMetrics) IncFeedbackError(string) {}

type harness struct {
	sim   *schedule.Simulated
	store storagein.Usecase
	fb    *fakeFeedback
	rec   *alarmMetrics
}

func newHarness(start time.Time) *harness {
	return newHarnessWithQuota(start, 0)
}

// newHarnessWithQuota backs the store with a memory KV that rejects writes
// beyond quota bytes.
func newHarnessWithQuota(start time.Time, quota int) *harness {
	sim := schedule.NewSimulated(start)
	store := storageusecase.NewInteractor(storageservice.NewStorageService(sim, id.UUID{}, storageout.NewMemoryKV(quota), nil, nil))
	return &harness{sim: sim, store: store, fb: &fakeFeedback{}, rec: &alarmMetrics{}}
}

func (h *harness) service(ctx context.Context) *service.AlarmService {
	return service.NewAlarmService(ctx, h.sim, h.sim, h.store, h.store, h.fb, nil, h.rec)
}

func at(hour, minute, second int) time.Time {
	return time.Date(2026, 3, 1, hour, minute, second, 0, time.UTC)
}

func sevenAM(t *testing.T, repeat bool) domain.Settings {
	t.Helper()
	s, err := domain.DefaultSettings().WithTime(7, 0, timefmt.AM)
	if err != nil {
		t.Fatalf("with time: %v", err)
	}
	return s.WithRepeat(repeat)
}

func TestAlarmFiresOnceWithinTargetMinute(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(at(6, 59, 58))
	svc := h.service(ctx)
	svc.SetAlarm(ctx, sevenAM(t, true))
	svc.Start(ctx)

	h.sim.Advance(3 * time.Second)
	if len(h.fb.plays) != 1 {
		t.Fatalf("expected one play at 07:00:00, got %d", len(h.fb.plays))
	}
	if got := h.fb.plays[0]; got.Sound != "buzzer.mp3" || !got.Loop || got.Volume != 1 {
		t.Fatalf("unexpected play input %+v", got)
	}
	if len(h.fb.notes) != 1 || h.fb.notes[0].Body != "It's 7:00 AM" || !h.fb.notes[0].RequireInteraction {
		t.Fatalf("unexpected notifications %+v", h.fb.notes)
	}
	if len(h.fb.patterns) != 1 || !reflect.DeepEqual(h.fb.patterns[0], []int{200, 100, 200, 100, 200}) {
		t.Fatalf("unexpected vibration %+v", h.fb.patterns)
	}

	h.sim.Advance(55 * time.Second)
	if len(h.fb.plays) != 1 || h.rec.triggered != 1 {
		t.Fatalf("alarm must not fire again inside the minute: plays=%d triggered=%d", len(h.fb.plays), h.rec.triggered)
	}
	if !svc.IsTriggered() || !svc.IsActive() {
		t.Fatalf("repeating alarm stays active and triggered until stopped")
	}
}

func TestNonRepeatingAlarmStopsAfterAMinute(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(at(6, 59, 58))
	svc := h.service(ctx)
	svc.SetAlarm(ctx, sevenAM(t, false))
	svc.Start(ctx)

	h.sim.Advance(3 * time.Second)
	if len(h.fb.plays) != 1 || h.fb.plays[0].Loop {
		t.Fatalf("expected one non-looping play, got %+v", h.fb.plays)
	}
	h.sim.Advance(60 * time.Second)
	if svc.IsActive() || svc.IsTriggered() {
		t.Fatalf("alarm must auto-stop after a minute")
	}
	if h.fb.stops == 0 {
		t.Fatalf("auto-stop must stop the sound")
	}
	if h.sim.Pending() != 0 {
		t.Fatalf("auto-stop must cancel the poll, %d timers left", h.sim.Pending())
	}

	var persisted domain.Settings
	if _, err := h.store.Load(ctx, storagedto.KeyAlarmSettings, &persisted); err != nil || persisted.IsActive {
		t.Fatalf("stopped alarm must be persisted inactive: %+v %v", persisted, err)
	}
}

func TestDismissKeepsRepeatingAlarmArmedForNextDay(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(at(6, 59, 58))
	svc := h.service(ctx)
	svc.SetAlarm(ctx, sevenAM(t, true))
	svc.Start(ctx)

	h.sim.Advance(5 * time.Second)
	svc.Dismiss(ctx)
	if svc.IsTriggered() || !svc.IsActive() {
		t.Fatalf("dismiss must silence but keep the alarm active")
	}
	h.sim.Advance(24 * time.Hour)
	if len(h.fb.plays) != 2 {
		t.Fatalf("expected the alarm to ring again the next day, got %d plays", len(h.fb.plays))
	}
}

func TestSetAlarmWhileRingingSilencesPlayback(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(at(6, 59, 58))
	svc := h.service(ctx)
	svc.SetAlarm(ctx, sevenAM(t, true))
	svc.Start(ctx)

	h.sim.Advance(3 * time.Second)
	if !svc.IsTriggered() || len(h.fb.plays) != 1 || !h.fb.plays[0].Loop {
		t.Fatalf("expected a looping alarm to be ringing")
	}
	stops := h.fb.stops
	svc.SetAlarm(ctx, sevenAM(t, true))
	if h.fb.stops != stops+1 {
		t.Fatalf("re-setting a ringing alarm must stop playback, stops %d -> %d", stops, h.fb.stops)
	}
	if svc.IsTriggered() || svc.IsActive() {
		t.Fatalf("re-set alarm must be idle and inactive")
	}
	if h.sim.Pending() != 0 {
		t.Fatalf("re-set alarm must cancel the poll, %d timers left", h.sim.Pending())
	}

	svc.SetAlarm(ctx, sevenAM(t, false))
	if h.fb.stops != stops+1 {
		t.Fatalf("setting a silent alarm must not touch playback")
	}
}

func TestAlarmKeepsWorkingWhenStoreIsFull(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarnessWithQuota(at(6, 59, 58), 8)
	svc := h.service(ctx)
	var rang int
	svc.OnAlarm(func() { rang++ })

	set := svc.SetAlarm(ctx, sevenAM(t, false))
	if set.Hour != 7 || svc.IsActive() {
		t.Fatalf("set must apply in memory, got %+v", set)
	}
	svc.Start(ctx)
	if !svc.IsActive() {
		t.Fatalf("start must arm the alarm even when saving fails")
	}
	h.sim.Advance(3 * time.Second)
	if rang != 1 || len(h.fb.plays) != 1 || !svc.IsTriggered() {
		t.Fatalf("alarm must ring without a working store: rang=%d plays=%d", rang, len(h.fb.plays))
	}
	if recent, _ := h.store.RecentItems(ctx, storagedto.KeyRecentAlarms); len(recent) != 0 {
		t.Fatalf("nothing should have been persisted, got %d recent items", len(recent))
	}
	svc.Stop(ctx)
	if svc.IsActive() || svc.IsTriggered() {
		t.Fatalf("stop must apply in memory")
	}
}

func TestSkippedTicksInsideMinuteStillFire(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(at(6, 59, 0))
	svc := h.service(ctx)
	svc.SetAlarm(ctx, sevenAM(t, false))
	svc.Start(ctx)

	h.sim.Set(at(7, 0, 30))
	h.sim.Advance(time.Second)
	if len(h.fb.plays) != 1 || h.rec.missed != 0 {
		t.Fatalf("poll inside the target minute must fire: plays=%d missed=%d", len(h.fb.plays), h.rec.missed)
	}
}

func TestMinutePassedBetweenPollsIsRecordedAsMissed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(at(6, 59, 0))
	svc := h.service(ctx)
	svc.SetAlarm(ctx, sevenAM(t, false))
	svc.Start(ctx)

	h.sim.Set(at(7, 2, 0))
	h.sim.Advance(2 * time.Second)
	if len(h.fb.plays) != 0 {
		t.Fatalf("a missed alarm must not ring late")
	}
	if h.rec.missed != 1 {
		t.Fatalf("expected one missed occurrence, got %d", h.rec.missed)
	}
	if !svc.IsActive() {
		t.Fatalf("a missed alarm stays armed")
	}
}

func TestStartIsIdempotentAndStopCancelsPoll(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(at(6, 0, 0))
	svc := h.service(ctx)
	svc.Start(ctx)
	svc.Start(ctx)
	if h.sim.Pending() != 1 {
		t.Fatalf("expected a single poll, got %d timers", h.sim.Pending())
	}
	svc.Stop(ctx)
	if h.sim.Pending() != 0 || svc.IsActive() {
		t.Fatalf("stop must cancel the poll and deactivate")
	}
}

func TestActiveAlarmResumesOnLoad(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(at(6, 0, 0))
	first := h.service(ctx)
	first.SetAlarm(ctx, sevenAM(t, false))
	first.Start(ctx)
	first.Close()
	if h.sim.Pending() != 0 {
		t.Fatalf("close must release the poll")
	}

	second := h.service(ctx)
	if !second.IsActive() || h.sim.Pending() != 1 {
		t.Fatalf("persisted active alarm must resume polling")
	}
	h.sim.Advance(time.Hour)
	if len(h.fb.plays) != 1 {
		t.Fatalf("resumed alarm must fire, got %d plays", len(h.fb.plays))
	}
}

func TestTickCallbackUsesTimeFormat(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(at(14, 5, 9))
	svc := h.service(ctx)
	var ticks []string
	svc.OnTick(func(s string) { ticks = append(ticks, s) })

	svc.Start(ctx)
	if len(ticks) != 1 || ticks[0] != "02:05:09 PM" {
		t.Fatalf("unexpected first tick %v", ticks)
	}
	format := 24
	if _, err := h.store.UpdateVisualSettings(ctx, storagedto.VisualSettingsUpdate{TimeFormat: &format}); err != nil {
		t.Fatalf("update visual settings: %v", err)
	}
	h.sim.Advance(time.Second)
	if ticks[len(ticks)-1] != "14:05:10" {
		t.Fatalf("expected 24h tick, got %v", ticks)
	}
	if h.rec.ticks != 2 {
		t.Fatalf("expected two counted ticks, got %d", h.rec.ticks)
	}
}

func TestTestSoundDefaultsToConfiguredSound(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h := newHarness(at(6, 0, 0))
	svc := h.service(ctx)
	svc.TestSound(ctx, "")
	svc.TestSound(ctx, "alarm-3.mp3")
	if len(h.fb.tests) != 2 || h.fb.tests[0].Sound != "buzzer.mp3" || h.fb.tests[1].Sound != "alarm-3.mp3" {
		t.Fatalf("unexpected test sounds %+v", h.fb.tests)
	}
	if h.fb.tests[0].Duration != 3*time.Second {
		t.Fatalf("expected a three second preview, got %v", h.fb.tests[0].Duration)
	}
}
