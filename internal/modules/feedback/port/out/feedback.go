package out

import (
	"context"

	"vclock/internal/modules/feedback/domain"
)

// Player produces sound. Play returns an error wrapping
// apperrors.ErrPlaybackBlocked when the device refuses to play until the
// user interacts.
type Player interface {
	Play(ctx context.Context, sound string, opts domain.PlayOptions) error
	Stop(ctx context.Context) error
}

type Notifier interface {
	Notify(ctx context.Context, n domain.Notification) error
}

type Vibrator interface {
	Vibrate(ctx context.Context, pattern []int) error
}
