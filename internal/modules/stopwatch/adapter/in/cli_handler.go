package in

import (
	"context"
	"fmt"
	"strconv"

	"vclock/internal/modules/stopwatch/dto"
	stopwatchin "vclock/internal/modules/stopwatch/port/in"
	apperrors "vclock/internal/platform/errors"
)

type CLIHandler struct {
	usecase stopwatchin.Usecase
}

func NewCLIHandler(usecase stopwatchin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Start(ctx context.Context) dto.StopwatchOutput {
	return h.usecase.Start(ctx)
}

func (h CLIHandler) Pause(ctx context.Context) dto.StopwatchOutput {
	return h.usecase.Pause(ctx)
}

// Toggle starts a paused stopwatch and pauses a running one.
func (h CLIHandler) Toggle(ctx context.Context) dto.StopwatchOutput {
	if h.usecase.Status(ctx).Running {
		return h.usecase.Pause(ctx)
	}
	return h.usecase.Start(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) dto.StopwatchOutput {
	return h.usecase.Reset(ctx)
}

func (h CLIHandler) Lap(ctx context.Context) (dto.LapOutput, error) {
	return h.usecase.Lap(ctx)
}

func (h CLIHandler) DeleteLap(ctx context.Context, number string) error {
	n, err := strconv.Atoi(number)
	if err != nil {
		return fmt.Errorf("lap number %q: %w", number, apperrors.ErrInvalidInput)
	}
	if !h.usecase.DeleteLap(ctx, n) {
		return fmt.Errorf("lap %d: %w", n, apperrors.ErrNotFound)
	}
	return nil
}

func (h CLIHandler) ClearLaps(ctx context.Context) {
	h.usecase.ClearLaps(ctx)
}

func (h CLIHandler) SetPrecision(ctx context.Context, precision string) (dto.StopwatchOutput, error) {
	p, err := strconv.Atoi(precision)
	if err != nil {
		return dto.StopwatchOutput{}, fmt.Errorf("precision %q: %w", precision, apperrors.ErrInvalidInput)
	}
	return h.usecase.SetPrecision(ctx, p)
}

func (h CLIHandler) Status(ctx context.Context) dto.StopwatchOutput {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Stats(ctx context.Context) dto.StatsOutput {
	return h.usecase.Stats(ctx)
}

func (h CLIHandler) Export(ctx context.Context, format string) (string, error) {
	return h.usecase.Export(ctx, format)
}

func (h CLIHandler) Inspect(ctx context.Context, doc string) (dto.StatsOutput, error) {
	return h.usecase.Inspect(ctx, doc)
}

func (h CLIHandler) Close(ctx context.Context) {
	h.usecase.Close(ctx)
}
