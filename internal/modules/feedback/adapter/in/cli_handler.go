package in

import (
	"context"
	"time"

	"vclock/internal/modules/feedback/dto"
	feedbackin "vclock/internal/modules/feedback/port/in"
)

type CLIHandler struct {
	usecase feedbackin.Usecase
}

func NewCLIHandler(usecase feedbackin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Sounds() []dto.SoundOutput {
	return h.usecase.Sounds()
}

func (h CLIHandler) TestSound(ctx context.Context, sound string, d time.Duration) {
	h.usecase.Test(ctx, dto.TestInput{Sound: sound, Duration: d})
}

func (h CLIHandler) Stop(ctx context.Context) {
	h.usecase.Stop(ctx)
}

// Interact is wired to key presses in the TUI and retries blocked playback.
func (h CLIHandler) Interact(ctx context.Context) {
	h.usecase.Interact(ctx)
}

func (h CLIHandler) Status() dto.PlaybackStatus {
	return h.usecase.Status()
}
