package usecase

import (
	"context"

	"vclock/internal/modules/stopwatch/domain"
	"vclock/internal/modules/stopwatch/dto"
	stopwatchin "vclock/internal/modules/stopwatch/port/in"
	"vclock/internal/modules/stopwatch/service"
	"vclock/internal/platform/clock"
	"vclock/internal/platform/timefmt"
)

type Interactor struct {
	svc   *service.StopwatchService
	clock clock.Clock
}

func NewInteractor(svc *service.StopwatchService, clock clock.Clock) stopwatchin.Usecase {
	return &Interactor{svc: svc, clock: clock}
}

func (i *Interactor) Start(ctx context.Context) dto.StopwatchOutput {
	i.svc.Start(ctx)
	return i.Status(ctx)
}

func (i *Interactor) Pause(ctx context.Context) dto.StopwatchOutput {
	i.svc.Pause(ctx)
	return i.Status(ctx)
}

func (i *Interactor) Reset(ctx context.Context) dto.StopwatchOutput {
	i.svc.Reset(ctx)
	return i.Status(ctx)
}

func (i *Interactor) Lap(ctx context.Context) (dto.LapOutput, error) {
	lap, err := i.svc.Lap(ctx)
	if err != nil {
		return dto.LapOutput{}, err
	}
	return toLapOutput(lap), nil
}

func (i *Interactor) DeleteLap(ctx context.Context, number int) bool {
	return i.svc.DeleteLap(ctx, number)
}

func (i *Interactor) ClearLaps(ctx context.Context) {
	i.svc.ClearLaps(ctx)
}

func (i *Interactor) SetPrecision(ctx context.Context, precision int) (dto.StopwatchOutput, error) {
	if err := i.svc.SetPrecision(ctx, precision); err != nil {
		return dto.StopwatchOutput{}, err
	}
	return i.Status(ctx), nil
}

func (i *Interactor) Status(context.Context) dto.StopwatchOutput {
	st := i.svc.Snapshot()
	laps := make([]dto.LapOutput, 0, len(st.Laps))
	for _, lap := range st.Laps {
		laps = append(laps, toLapOutput(lap))
	}
	return dto.StopwatchOutput{
		ElapsedMs: st.Elapsed,
		Display:   timefmt.FormatStopwatch(st.Elapsed, st.Precision),
		Running:   st.IsRunning,
		Precision: st.Precision,
		Laps:      laps,
	}
}

func (i *Interactor) Stats(context.Context) dto.StatsOutput {
	return toStatsOutput(i.svc.Snapshot().Laps)
}

func (i *Interactor) Inspect(_ context.Context, doc string) (dto.StatsOutput, error) {
	laps, err := domain.ParseLapsMarkdown(doc)
	if err != nil {
		return dto.StatsOutput{}, err
	}
	return toStatsOutput(laps), nil
}

func toStatsOutput(laps []domain.Lap) dto.StatsOutput {
	stats := domain.ComputeStats(laps)
	out := dto.StatsOutput{Count: stats.Count, AverageMs: stats.AverageMs}
	if stats.Count == 0 {
		return out
	}
	fastest, slowest := toLapOutput(*stats.Fastest), toLapOutput(*stats.Slowest)
	out.Fastest, out.Slowest = &fastest, &slowest
	out.AverageDisplay = timefmt.FormatStopwatch(int64(stats.AverageMs), 3)
	return out
}

func (i *Interactor) Export(_ context.Context, format string) (string, error) {
	f, err := domain.ParseExportFormat(format)
	if err != nil {
		return "", err
	}
	st := i.svc.Snapshot()
	if f == domain.ExportMarkdown {
		return domain.LapsMarkdown(st.Laps, st.Elapsed, i.clock.Now())
	}
	return domain.LapsCSV(st.Laps)
}

func (i *Interactor) OnTick(fn func(int64)) {
	i.svc.OnTick(fn)
}

func (i *Interactor) OnLap(fn func(dto.LapOutput)) {
	if fn == nil {
		i.svc.OnLap(nil)
		return
	}
	i.svc.OnLap(func(lap domain.Lap) { fn(toLapOutput(lap)) })
}

func (i *Interactor) OnStateChange(fn func(bool)) {
	i.svc.OnStateChange(fn)
}

func (i *Interactor) Destroy() {
	i.svc.Destroy()
}

func (i *Interactor) Close(ctx context.Context) {
	i.svc.Close(ctx)
}

func toLapOutput(lap domain.Lap) dto.LapOutput {
	return dto.LapOutput{
		Number:       lap.Number,
		LapTime:      lap.LapTime,
		TotalTime:    lap.TotalTime,
		Timestamp:    lap.Timestamp,
		LapDisplay:   timefmt.FormatStopwatch(lap.LapTime, 3),
		TotalDisplay: timefmt.FormatStopwatch(lap.TotalTime, 3),
	}
}
