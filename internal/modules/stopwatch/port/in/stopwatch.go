package in

import (
	"context"

	"vclock/internal/modules/stopwatch/dto"
)

type Usecase interface {
	Start(ctx context.Context) dto.StopwatchOutput
	Pause(ctx context.Context) dto.StopwatchOutput
	Reset(ctx context.Context) dto.StopwatchOutput
	Lap(ctx context.Context) (dto.LapOutput, error)
	DeleteLap(ctx context.Context, number int) bool
	ClearLaps(ctx context.Context)
	SetPrecision(ctx context.Context, precision int) (dto.StopwatchOutput, error)
	Status(ctx context.Context) dto.StopwatchOutput
	Stats(ctx context.Context) dto.StatsOutput
	// Export renders the laps as "csv" or "markdown".
	Export(ctx context.Context, format string) (string, error)
	// Inspect summarizes a markdown export without touching the stopwatch.
	Inspect(ctx context.Context, doc string) (dto.StatsOutput, error)
	OnTick(fn func(elapsedMs int64))
	OnLap(fn func(dto.LapOutput))
	OnStateChange(fn func(running bool))
	Destroy()
	Close(ctx context.Context)
}
