package in

import (
	"context"

	"vclock/internal/modules/storage/dto"
	storagein "vclock/internal/modules/storage/port/in"
)

type CLIHandler struct {
	usecase storagein.Usecase
}

func NewCLIHandler(usecase storagein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) RecentAlarms(ctx context.Context) ([]dto.RecentItemOutput, error) {
	return h.usecase.RecentItems(ctx, dto.KeyRecentAlarms)
}

func (h CLIHandler) RecentTimers(ctx context.Context) ([]dto.RecentItemOutput, error) {
	return h.usecase.RecentItems(ctx, dto.KeyRecentTimers)
}

func (h CLIHandler) Export(ctx context.Context) (string, error) {
	return h.usecase.Export(ctx)
}

func (h CLIHandler) Import(ctx context.Context, data string) error {
	return h.usecase.Import(ctx, data)
}

func (h CLIHandler) Clear(ctx context.Context) error {
	return h.usecase.Clear(ctx)
}

func (h CLIHandler) Usage(ctx context.Context) (dto.UsageOutput, error) {
	return h.usecase.Usage(ctx)
}

func (h CLIHandler) VisualSettings(ctx context.Context) dto.VisualSettings {
	return h.usecase.VisualSettings(ctx)
}

func (h CLIHandler) SetTimeFormat(ctx context.Context, format int) (dto.VisualSettings, error) {
	return h.usecase.UpdateVisualSettings(ctx, dto.VisualSettingsUpdate{TimeFormat: &format})
}

func (h CLIHandler) UpdateVisualSettings(ctx context.Context, input dto.VisualSettingsUpdate) (dto.VisualSettings, error) {
	return h.usecase.UpdateVisualSettings(ctx, input)
}

func (h CLIHandler) Theme(ctx context.Context) (string, bool) {
	return h.usecase.Theme(ctx)
}

func (h CLIHandler) SetTheme(ctx context.Context, theme string) error {
	return h.usecase.SetTheme(ctx, theme)
}

func (h CLIHandler) ToggleTheme(ctx context.Context, fallback string) (string, error) {
	return h.usecase.ToggleTheme(ctx, fallback)
}
