package in

import (
	"context"

	"vclock/internal/modules/storage/dto"
)

// Store is the typed view features use for their own state. Failures are
// logged and counted by the implementation before they are returned.
type Store interface {
	Load(ctx context.Context, key dto.Key, dst any) (bool, error)
	Save(ctx context.Context, key dto.Key, value any) error
	Remove(ctx context.Context, key dto.Key) error
	AddRecentItem(ctx context.Context, kind dto.Key, data any) error
}

// Preferences exposes display settings shared by every feature.
type Preferences interface {
	VisualSettings(ctx context.Context) dto.VisualSettings
	UpdateVisualSettings(ctx context.Context, input dto.VisualSettingsUpdate) (dto.VisualSettings, error)
	Theme(ctx context.Context) (string, bool)
	SetTheme(ctx context.Context, theme string) error
	ToggleTheme(ctx context.Context, fallback string) (string, error)
}

type Usecase interface {
	Store
	Preferences
	RecentItems(ctx context.Context, kind dto.Key) ([]dto.RecentItemOutput, error)
	Export(ctx context.Context) (string, error)
	Import(ctx context.Context, data string) error
	Clear(ctx context.Context) error
	Usage(ctx context.Context) (dto.UsageOutput, error)
}
