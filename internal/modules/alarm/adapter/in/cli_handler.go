package in

import (
	"context"
	"fmt"
	"strconv"

	"vclock/internal/modules/alarm/dto"
	alarmin "vclock/internal/modules/alarm/port/in"
)

type CLIHandler struct {
	usecase alarmin.Usecase
}

func NewCLIHandler(usecase alarmin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

// Set parses "7", "30", "am" style arguments.
func (h CLIHandler) Set(ctx context.Context, hour, minute, meridian, sound, title string, repeat *bool) (dto.AlarmOutput, error) {
	hh, err := strconv.Atoi(hour)
	if err != nil {
		return dto.AlarmOutput{}, fmt.Errorf("hour %q: %w", hour, err)
	}
	mm, err := strconv.Atoi(minute)
	if err != nil {
		return dto.AlarmOutput{}, fmt.Errorf("minute %q: %w", minute, err)
	}
	return h.usecase.SetAlarm(ctx, dto.SetAlarmInput{
		Hour:     hh,
		Minute:   mm,
		Meridian: meridian,
		Sound:    sound,
		Repeat:   repeat,
		Title:    title,
	})
}

func (h CLIHandler) Update(ctx context.Context, input dto.SettingsUpdate) (dto.AlarmOutput, error) {
	return h.usecase.UpdateSettings(ctx, input)
}

func (h CLIHandler) Start(ctx context.Context) dto.AlarmOutput {
	return h.usecase.Start(ctx)
}

func (h CLIHandler) Stop(ctx context.Context) {
	h.usecase.Stop(ctx)
}

func (h CLIHandler) Dismiss(ctx context.Context) {
	h.usecase.Dismiss(ctx)
}

func (h CLIHandler) Status(ctx context.Context) dto.AlarmOutput {
	return h.usecase.Status(ctx)
}

// Next renders the countdown to the next occurrence, or "" while the alarm
// is off.
func (h CLIHandler) Next(ctx context.Context) string {
	left, ok := h.usecase.TimeUntil(ctx)
	if !ok {
		return ""
	}
	return fmt.Sprintf("%dh %02dm %02ds", left.Hours, left.Minutes, left.Seconds)
}

func (h CLIHandler) CurrentTime(ctx context.Context) string {
	return h.usecase.CurrentTime(ctx)
}

func (h CLIHandler) TestSound(ctx context.Context, sound string) {
	h.usecase.TestSound(ctx, sound)
}

func (h CLIHandler) OnAlarm(fn func()) {
	h.usecase.OnAlarm(fn)
}

func (h CLIHandler) OnTick(fn func(string)) {
	h.usecase.OnTick(fn)
}

func (h CLIHandler) Close() {
	h.usecase.Close()
}
