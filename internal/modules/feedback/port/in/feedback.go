package in

import (
	"context"

	"vclock/internal/modules/feedback/dto"
)

// Usecase is the sound, notification and vibration surface features call
// when they fire. None of these calls fail the caller's operation.
type Usecase interface {
	Play(ctx context.Context, input dto.PlayInput)
	Stop(ctx context.Context)
	Test(ctx context.Context, input dto.TestInput)
	Interact(ctx context.Context)
	Notify(ctx context.Context, input dto.NotifyInput)
	Vibrate(ctx context.Context, pattern []int)
	Status() dto.PlaybackStatus
	Sounds() []dto.SoundOutput
}
