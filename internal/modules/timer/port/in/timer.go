package in

import (
	"context"
	"time"

	"vclock/internal/modules/timer/dto"
)

type Usecase interface {
	Start(ctx context.Context) (dto.TimerOutput, error)
	Pause(ctx context.Context) dto.TimerOutput
	Resume(ctx context.Context) (dto.TimerOutput, error)
	Stop(ctx context.Context) dto.TimerOutput
	Reset(ctx context.Context) dto.TimerOutput
	AddTime(ctx context.Context, seconds int) (dto.TimerOutput, error)
	SetDuration(ctx context.Context, input dto.DurationInput) (dto.TimerOutput, error)
	SetTargetDate(ctx context.Context, target time.Time) (dto.TimerOutput, error)
	UpdateSettings(ctx context.Context, input dto.SettingsUpdate) (dto.TimerOutput, error)
	Status(ctx context.Context) dto.TimerOutput
	Presets() []dto.PresetOutput
	OnTick(fn func(remainingMs int64))
	OnFinish(fn func())
	OnStateChange(fn func(state string))
	Destroy()
	Close(ctx context.Context)
}
