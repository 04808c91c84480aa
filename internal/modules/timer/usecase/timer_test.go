package usecase_test

import (
	"context"
	"testing"
	"time"

	feedbackdto "vclock/internal/modules/feedback/dto"
	storageout "vclock/internal/modules/storage/adapter/out"
	storageservice "vclock/internal/modules/storage/service"
	storageusecase "vclock/internal/modules/storage/usecase"
	timerhandler "vclock/internal/modules/timer/adapter/in"
	"vclock/internal/modules/timer/dto"
	"vclock/internal/modules/timer/service"
	"vclock/internal/modules/timer/usecase"
	"vclock/internal/platform/id"
	"vclock/internal/platform/schedule"
)

type silentFeedback struct{}

func (silentFeedback) Play(context.Context, feedbackdto.PlayInput)     {}
func (silentFeedback) Stop(context.Context)                            {}
func (silentFeedback) Test(context.Context, feedbackdto.TestInput)     {}
func (silentFeedback) Interact(context.Context)                        {}
func (silentFeedback) Notify(context.Context, feedbackdto.NotifyInput) {}
func (silentFeedback) Vibrate(context.Context, []int)                  {}
func (silentFeedback) Status() feedbackdto.PlaybackStatus              { return feedbackdto.PlaybackStatus{} }
func (silentFeedback) Sounds() []feedbackdto.SoundOutput               { return nil }

func newHandler(t *testing.T) (timerhandler.CLIHandler, *schedule.Simulated) {
	t.Helper()
	ctx := context.Background()
	sim := schedule.NewSimulated(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	store := storageusecase.NewInteractor(storageservice.NewStorageService(sim, id.UUID{}, storageout.NewMemoryKV(0), nil, nil))
	svc := service.NewTimerService(ctx, sim, sim, store, silentFeedback{}, nil, nil)
	return timerhandler.NewCLIHandler(usecase.NewInteractor(svc)), sim
}

func TestSetAcceptsPresetsAndClockInput(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h, _ := newHandler(t)

	cases := map[string]int64{
		"10 min":  600_000,
		"5:30":    330_000,
		"1:30:00": 5_400_000,
		"90":      90_000,
	}
	for input, want := range cases {
		out, err := h.Set(ctx, input)
		if err != nil {
			t.Fatalf("Set(%q): %v", input, err)
		}
		if out.TotalMs != want || out.State != "idle" {
			t.Fatalf("Set(%q) = %+v, want total %d", input, out, want)
		}
	}
	if _, err := h.Set(ctx, "abc"); err == nil {
		t.Fatalf("expected an error for unparsable input")
	}
}

func TestStatusReportsDisplayAndProgress(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h, sim := newHandler(t)
	if _, err := h.Set(ctx, "1:00"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := h.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	sim.Advance(15 * time.Second)
	out := h.Status(ctx)
	if out.Display != "00:45" || out.Progress != 25 || out.State != "running" {
		t.Fatalf("unexpected status %+v", out)
	}
	if _, err := h.Add(ctx, "x"); err == nil {
		t.Fatalf("expected an error for a non-numeric add")
	}
	out, err := h.Add(ctx, "15")
	if err != nil || out.Display != "01:00" {
		t.Fatalf("unexpected status after add %+v (%v)", out, err)
	}
}

func TestTargetParsesLocalTime(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	h, _ := newHandler(t)
	out, err := h.Target(ctx, "2026-03-01 13:30", time.UTC)
	if err != nil {
		t.Fatalf("target: %v", err)
	}
	if out.Mode != "date" || out.TotalMs != 90*60*1000 {
		t.Fatalf("unexpected target status %+v", out)
	}
	if _, err := h.Target(ctx, "tomorrow", time.UTC); err == nil {
		t.Fatalf("expected an error for an unparsable target")
	}
}

func TestPresetsAreListedInOrder(t *testing.T) {
	t.Parallel()
	h, _ := newHandler(t)
	presets := h.Presets()
	if len(presets) != 12 || presets[0] != (dto.PresetOutput{Label: "1 min", Seconds: 60}) || presets[11].Seconds != 14400 {
		t.Fatalf("unexpected presets %+v", presets)
	}
}
