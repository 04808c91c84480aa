package usecase

import (
	"context"

	"vclock/internal/modules/storage/domain"
	"vclock/internal/modules/storage/dto"
	storagein "vclock/internal/modules/storage/port/in"
	"vclock/internal/modules/storage/service"
)

type Interactor struct {
	svc *service.StorageService
}

func NewInteractor(svc *service.StorageService) storagein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Load(ctx context.Context, key dto.Key, dst any) (bool, error) {
	return i.svc.Get(ctx, string(key), dst)
}

func (i *Interactor) Save(ctx context.Context, key dto.Key, value any) error {
	return i.svc.Set(ctx, string(key), value)
}

func (i *Interactor) Remove(ctx context.Context, key dto.Key) error {
	return i.svc.Remove(ctx, string(key))
}

func (i *Interactor) AddRecentItem(ctx context.Context, kind dto.Key, data any) error {
	return i.svc.AddRecentItem(ctx, string(kind), data)
}

func (i *Interactor) RecentItems(ctx context.Context, kind dto.Key) ([]dto.RecentItemOutput, error) {
	items, err := i.svc.RecentItems(ctx, string(kind))
	if err != nil {
		return nil, err
	}
	out := make([]dto.RecentItemOutput, 0, len(items))
	for _, it := range items {
		out = append(out, dto.RecentItemOutput{ID: it.ID, Timestamp: it.Timestamp, Data: it.Data})
	}
	return out, nil
}

func (i *Interactor) Export(ctx context.Context) (string, error) {
	return i.svc.Export(ctx)
}

func (i *Interactor) Import(ctx context.Context, data string) error {
	return i.svc.Import(ctx, data)
}

func (i *Interactor) Clear(ctx context.Context) error {
	return i.svc.Clear(ctx)
}

func (i *Interactor) Usage(ctx context.Context) (dto.UsageOutput, error) {
	used, keys, err := i.svc.UsedSpace(ctx)
	if err != nil {
		return dto.UsageOutput{}, err
	}
	return dto.UsageOutput{UsedBytes: used, Keys: keys, SpaceAvailable: i.svc.HasSpaceAvailable(ctx)}, nil
}

func (i *Interactor) VisualSettings(ctx context.Context) dto.VisualSettings {
	return toVisualDTO(i.svc.VisualSettings(ctx))
}

func (i *Interactor) UpdateVisualSettings(ctx context.Context, input dto.VisualSettingsUpdate) (dto.VisualSettings, error) {
	v := i.svc.VisualSettings(ctx)
	var err error
	if input.FontFamily != nil {
		if v, err = v.WithFontFamily(*input.FontFamily); err != nil {
			return dto.VisualSettings{}, err
		}
	}
	if input.TextColor != nil {
		if v, err = v.WithTextColor(*input.TextColor); err != nil {
			return dto.VisualSettings{}, err
		}
	}
	if input.FontSize != nil {
		if v, err = v.WithFontSize(domain.FontSize(*input.FontSize)); err != nil {
			return dto.VisualSettings{}, err
		}
	}
	if input.TimeFormat != nil {
		if v, err = v.WithTimeFormat(*input.TimeFormat); err != nil {
			return dto.VisualSettings{}, err
		}
	}
	if input.ShowDate != nil {
		v = v.WithShowDate(*input.ShowDate)
	}
	if err := i.svc.SaveVisualSettings(ctx, v); err != nil {
		return dto.VisualSettings{}, err
	}
	return toVisualDTO(v), nil
}

func (i *Interactor) Theme(ctx context.Context) (string, bool) {
	t, ok := i.svc.Theme(ctx)
	return string(t), ok
}

func (i *Interactor) SetTheme(ctx context.Context, theme string) error {
	t, err := domain.ParseTheme(theme)
	if err != nil {
		return err
	}
	return i.svc.SetTheme(ctx, t)
}

// ToggleTheme flips the saved theme. fallback stands in for the current
// theme when none was saved, e.g. the terminal background.
func (i *Interactor) ToggleTheme(ctx context.Context, fallback string) (string, error) {
	current, ok := i.svc.Theme(ctx)
	if !ok {
		parsed, err := domain.ParseTheme(fallback)
		if err != nil {
			parsed = domain.ThemeLight
		}
		current = parsed
	}
	next := current.Toggle()
	if err := i.svc.SetTheme(ctx, next); err != nil {
		return "", err
	}
	return string(next), nil
}

func toVisualDTO(v domain.VisualSettings) dto.VisualSettings {
	return dto.VisualSettings{
		FontFamily: v.FontFamily,
		TextColor:  v.TextColor,
		FontSize:   string(v.FontSize),
		TimeFormat: v.TimeFormat,
		ShowDate:   v.ShowDate,
	}
}
