package in

import (
	"context"

	"vclock/internal/modules/alarm/dto"
)

type Usecase interface {
	SetAlarm(ctx context.Context, input dto.SetAlarmInput) (dto.AlarmOutput, error)
	UpdateSettings(ctx context.Context, input dto.SettingsUpdate) (dto.AlarmOutput, error)
	Start(ctx context.Context) dto.AlarmOutput
	Stop(ctx context.Context)
	Dismiss(ctx context.Context)
	Status(ctx context.Context) dto.AlarmOutput
	// TimeUntil reports false while the alarm is inactive.
	TimeUntil(ctx context.Context) (dto.TimeUntilOutput, bool)
	CurrentTime(ctx context.Context) string
	TestSound(ctx context.Context, sound string)
	OnTick(fn func(current string))
	OnAlarm(fn func())
	Destroy(ctx context.Context)
	Close()
}
