package usecase

import (
	"context"

	"vclock/internal/modules/alarm/domain"
	"vclock/internal/modules/alarm/dto"
	alarmin "vclock/internal/modules/alarm/port/in"
	"vclock/internal/modules/alarm/service"
	"vclock/internal/platform/timefmt"
)

type Interactor struct {
	svc *service.AlarmService
}

func NewInteractor(svc *service.AlarmService) alarmin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) SetAlarm(ctx context.Context, input dto.SetAlarmInput) (dto.AlarmOutput, error) {
	current := i.svc.Settings()
	meridian, err := timefmt.ParseMeridian(input.Meridian)
	if err != nil {
		return dto.AlarmOutput{}, err
	}
	next, err := current.WithTime(input.Hour, input.Minute, meridian)
	if err != nil {
		return dto.AlarmOutput{}, err
	}
	if input.Sound != "" {
		if next, err = next.WithSound(input.Sound); err != nil {
			return dto.AlarmOutput{}, err
		}
	}
	if input.Repeat != nil {
		next = next.WithRepeat(*input.Repeat)
	}
	if input.Title != "" {
		next = next.WithTitle(input.Title)
	}
	return i.toOutput(i.svc.SetAlarm(ctx, next)), nil
}

func (i *Interactor) UpdateSettings(ctx context.Context, input dto.SettingsUpdate) (dto.AlarmOutput, error) {
	next := i.svc.Settings()
	var err error
	if input.Hour != nil || input.Minute != nil || input.Meridian != nil {
		hour, minute, meridian := next.Hour, next.Minute, next.Meridian
		if input.Hour != nil {
			hour = *input.Hour
		}
		if input.Minute != nil {
			minute = *input.Minute
		}
		if input.Meridian != nil {
			if meridian, err = timefmt.ParseMeridian(*input.Meridian); err != nil {
				return dto.AlarmOutput{}, err
			}
		}
		if next, err = next.WithTime(hour, minute, meridian); err != nil {
			return dto.AlarmOutput{}, err
		}
	}
	if input.Sound != nil {
		if next, err = next.WithSound(*input.Sound); err != nil {
			return dto.AlarmOutput{}, err
		}
	}
	if input.Repeat != nil {
		next = next.WithRepeat(*input.Repeat)
	}
	if input.Title != nil {
		next = next.WithTitle(*input.Title)
	}
	return i.toOutput(i.svc.UpdateSettings(ctx, next)), nil
}

func (i *Interactor) Start(ctx context.Context) dto.AlarmOutput {
	i.svc.Start(ctx)
	return i.Status(ctx)
}

func (i *Interactor) Stop(ctx context.Context) {
	i.svc.Stop(ctx)
}

func (i *Interactor) Dismiss(ctx context.Context) {
	i.svc.Dismiss(ctx)
}

func (i *Interactor) Status(context.Context) dto.AlarmOutput {
	return i.toOutput(i.svc.Settings())
}

func (i *Interactor) TimeUntil(context.Context) (dto.TimeUntilOutput, bool) {
	b, ok := i.svc.TimeUntil()
	if !ok {
		return dto.TimeUntilOutput{}, false
	}
	return dto.TimeUntilOutput{
		Hours:   b.TotalSeconds / 3600,
		Minutes: (b.TotalSeconds % 3600) / 60,
		Seconds: b.TotalSeconds % 60,
	}, true
}

func (i *Interactor) CurrentTime(ctx context.Context) string {
	return i.svc.CurrentTimeString(ctx)
}

func (i *Interactor) TestSound(ctx context.Context, sound string) {
	i.svc.TestSound(ctx, sound)
}

func (i *Interactor) OnTick(fn func(string)) {
	i.svc.OnTick(fn)
}

func (i *Interactor) OnAlarm(fn func()) {
	i.svc.OnAlarm(fn)
}

func (i *Interactor) Destroy(ctx context.Context) {
	i.svc.Destroy(ctx)
}

func (i *Interactor) Close() {
	i.svc.Close()
}

func (i *Interactor) toOutput(s domain.Settings) dto.AlarmOutput {
	return dto.AlarmOutput{
		Hour:      s.Hour,
		Minute:    s.Minute,
		Meridian:  string(s.Meridian),
		Sound:     s.Sound,
		Repeat:    s.Repeat,
		Title:     s.Title,
		IsActive:  s.IsActive,
		Triggered: i.svc.IsTriggered(),
		Display:   s.Display(),
	}
}
