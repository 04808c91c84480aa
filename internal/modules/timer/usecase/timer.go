package usecase

import (
	"context"
	"time"

	"vclock/internal/modules/timer/domain"
	"vclock/internal/modules/timer/dto"
	timerin "vclock/internal/modules/timer/port/in"
	"vclock/internal/modules/timer/service"
	"vclock/internal/platform/timefmt"
)

type Interactor struct {
	svc *service.TimerService
}

func NewInteractor(svc *service.TimerService) timerin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Start(ctx context.Context) (dto.TimerOutput, error) {
	if err := i.svc.Start(ctx); err != nil {
		return dto.TimerOutput{}, err
	}
	return i.Status(ctx), nil
}

func (i *Interactor) Pause(ctx context.Context) dto.TimerOutput {
	i.svc.Pause(ctx)
	return i.Status(ctx)
}

func (i *Interactor) Resume(ctx context.Context) (dto.TimerOutput, error) {
	if err := i.svc.Resume(ctx); err != nil {
		return dto.TimerOutput{}, err
	}
	return i.Status(ctx), nil
}

func (i *Interactor) Stop(ctx context.Context) dto.TimerOutput {
	i.svc.Stop(ctx)
	return i.Status(ctx)
}

func (i *Interactor) Reset(ctx context.Context) dto.TimerOutput {
	i.svc.Reset(ctx)
	return i.Status(ctx)
}

func (i *Interactor) AddTime(ctx context.Context, seconds int) (dto.TimerOutput, error) {
	if err := i.svc.AddTime(ctx, seconds); err != nil {
		return dto.TimerOutput{}, err
	}
	return i.Status(ctx), nil
}

func (i *Interactor) SetDuration(ctx context.Context, input dto.DurationInput) (dto.TimerOutput, error) {
	next, err := i.svc.Settings().WithDuration(input.Hours, input.Minutes, input.Seconds)
	if err != nil {
		return dto.TimerOutput{}, err
	}
	if err := i.svc.Configure(ctx, next, true); err != nil {
		return dto.TimerOutput{}, err
	}
	return i.Status(ctx), nil
}

func (i *Interactor) SetTargetDate(ctx context.Context, target time.Time) (dto.TimerOutput, error) {
	next, err := i.svc.Settings().WithTargetDate(target)
	if err != nil {
		return dto.TimerOutput{}, err
	}
	if err := i.svc.Configure(ctx, next, true); err != nil {
		return dto.TimerOutput{}, err
	}
	return i.Status(ctx), nil
}

func (i *Interactor) UpdateSettings(ctx context.Context, input dto.SettingsUpdate) (dto.TimerOutput, error) {
	next := i.svc.Settings()
	var err error
	if input.Sound != nil {
		if next, err = next.WithSound(*input.Sound); err != nil {
			return dto.TimerOutput{}, err
		}
	}
	if input.Title != nil {
		next = next.WithTitle(*input.Title)
	}
	if input.AutoStart != nil {
		next = next.WithAutoStart(*input.AutoStart)
	}
	if err := i.svc.Configure(ctx, next, false); err != nil {
		return dto.TimerOutput{}, err
	}
	return i.Status(ctx), nil
}

func (i *Interactor) Status(context.Context) dto.TimerOutput {
	settings := i.svc.Settings()
	data := i.svc.Snapshot()
	return dto.TimerOutput{
		State:       string(data.State),
		Mode:        string(settings.Mode),
		RemainingMs: data.RemainingMs,
		TotalMs:     data.TotalMs,
		Progress:    data.Progress(),
		Display:     timefmt.FormatTimerDisplay(data.RemainingMs),
		Hours:       settings.Hours,
		Minutes:     settings.Minutes,
		Seconds:     settings.Seconds,
		TargetDate:  settings.TargetDate,
		Sound:       settings.Sound,
		Title:       settings.Title,
		AutoStart:   settings.AutoStart,
	}
}

func (i *Interactor) Presets() []dto.PresetOutput {
	presets := domain.Presets()
	out := make([]dto.PresetOutput, 0, len(presets))
	for _, p := range presets {
		out = append(out, dto.PresetOutput{Label: p.Label, Seconds: p.Seconds})
	}
	return out
}

func (i *Interactor) OnTick(fn func(int64)) {
	i.svc.OnTick(fn)
}

func (i *Interactor) OnFinish(fn func()) {
	i.svc.OnFinish(fn)
}

func (i *Interactor) OnStateChange(fn func(string)) {
	if fn == nil {
		i.svc.OnStateChange(nil)
		return
	}
	i.svc.OnStateChange(func(s domain.State) { fn(string(s)) })
}

func (i *Interactor) Destroy() {
	i.svc.Destroy()
}

func (i *Interactor) Close(ctx context.Context) {
	i.svc.Close(ctx)
}
