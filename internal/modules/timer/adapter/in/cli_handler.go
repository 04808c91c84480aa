package in

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"vclock/internal/modules/timer/dto"
	timerin "vclock/internal/modules/timer/port/in"
	apperrors "vclock/internal/platform/errors"
	"vclock/internal/platform/timefmt"
)

type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Set accepts "90", "5:30", "1:30:00" or a preset label such as "10 min".
func (h CLIHandler) Set(ctx context.Context, input string) (dto.TimerOutput, error) {
	for _, p := range h.usecase.Presets() {
		if strings.EqualFold(strings.TrimSpace(input), p.Label) {
			return h.usecase.SetDuration(ctx, dto.DurationInput{Seconds: p.Seconds})
		}
	}
	hms, err := timefmt.ParseTimerInput(input)
	if err != nil {
		return dto.TimerOutput{}, err
	}
	return h.usecase.SetDuration(ctx, dto.DurationInput{Hours: hms.Hours, Minutes: hms.Minutes, Seconds: hms.Seconds})
}

// Target parses an RFC 3339 timestamp or a local "2006-01-02 15:04" time.
func (h CLIHandler) Target(ctx context.Context, input string, loc *time.Location) (dto.TimerOutput, error) {
	input = strings.TrimSpace(input)
	target, err := time.Parse(time.RFC3339, input)
	if err != nil {
		target, err = time.ParseInLocation("2006-01-02 15:04", input, loc)
	}
	if err != nil {
		return dto.TimerOutput{}, fmt.Errorf("target %q: %w", input, apperrors.ErrInvalidInput)
	}
	return h.usecase.SetTargetDate(ctx, target)
}

func (h CLIHandler) Start(ctx context.Context) (dto.TimerOutput, error) {
	return h.usecase.Start(ctx)
}

func (h CLIHandler) Pause(ctx context.Context) dto.TimerOutput {
	return h.usecase.Pause(ctx)
}

func (h CLIHandler) Resume(ctx context.Context) (dto.TimerOutput, error) {
	return h.usecase.Resume(ctx)
}

func (h CLIHandler) Stop(ctx context.Context) dto.TimerOutput {
	return h.usecase.Stop(ctx)
}

func (h CLIHandler) Reset(ctx context.Context) dto.TimerOutput {
	return h.usecase.Reset(ctx)
}

func (h CLIHandler) Add(ctx context.Context, seconds string) (dto.TimerOutput, error) {
	n, err := strconv.Atoi(strings.TrimSpace(seconds))
	if err != nil {
		return dto.TimerOutput{}, fmt.Errorf("seconds %q: %w", seconds, apperrors.ErrInvalidInput)
	}
	return h.usecase.AddTime(ctx, n)
}

func (h CLIHandler) Update(ctx context.Context, input dto.SettingsUpdate) (dto.TimerOutput, error) {
	return h.usecase.UpdateSettings(ctx, input)
}

func (h CLIHandler) Status(ctx context.Context) dto.TimerOutput {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) Presets() []dto.PresetOutput {
	return h.usecase.Presets()
}

func (h CLIHandler) OnFinish(fn func()) {
	h.usecase.OnFinish(fn)
}

func (h CLIHandler) Close(ctx context.Context) {
	h.usecase.Close(ctx)
}
