package in

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"vclock/internal/modules/worldclock/dto"
	worldclockin "vclock/internal/modules/worldclock/port/in"
	apperrors "vclock/internal/platform/errors"
	"vclock/internal/platform/slug"
	"vclock/internal/platform/timefmt"
)

type CLIHandler struct {
	usecase worldclockin.Usecase
	locale  string
}

func NewCLIHandler(usecase worldclockin.Usecase, locale string) CLIHandler {
	return CLIHandler{usecase: usecase, locale: locale}
}

func (h CLIHandler) Locale() string {
	return h.locale
}

func (h CLIHandler) List(ctx context.Context) []dto.UserCityOutput {
	return h.usecase.UserCities(ctx)
}

// Add accepts a dataset id ("new-york") or an exact city name ("New York").
func (h CLIHandler) Add(ctx context.Context, city string) (dto.UserCityOutput, error) {
	cityID, err := h.resolveCityID(ctx, city)
	if err != nil {
		return dto.UserCityOutput{}, err
	}
	out, ok := h.usecase.AddCity(ctx, cityID)
	if !ok {
		return dto.UserCityOutput{}, fmt.Errorf("city %q is already on the list: %w", cityID, apperrors.ErrDuplicate)
	}
	return out, nil
}

// Remove accepts a user city id or the dataset id of a tracked city.
func (h CLIHandler) Remove(ctx context.Context, ref string) error {
	id, err := h.trackedID(ctx, ref)
	if err != nil {
		return err
	}
	h.usecase.RemoveCity(ctx, id)
	return nil
}

func (h CLIHandler) Move(ctx context.Context, ref, position string) error {
	order, err := strconv.Atoi(position)
	if err != nil {
		return fmt.Errorf("position %q: %w", position, apperrors.ErrInvalidInput)
	}
	id, err := h.trackedID(ctx, ref)
	if err != nil {
		return err
	}
	h.usecase.MoveCity(ctx, id, order)
	return nil
}

func (h CLIHandler) Clear(ctx context.Context) {
	h.usecase.ClearAllCities(ctx)
}

// Search lists dataset cities matching query, optionally limited to one
// continent.
func (h CLIHandler) Search(ctx context.Context, query, continent string) []dto.CityOutput {
	if continent == "" {
		return h.usecase.Search(ctx, query)
	}
	out := []dto.CityOutput{}
	for _, c := range h.usecase.ByContinent(ctx, continent) {
		if query == "" || strings.Contains(strings.ToLower(c.Name+" "+c.Country), strings.ToLower(query)) {
			out = append(out, c)
		}
	}
	return out
}

func (h CLIHandler) Continents(ctx context.Context) []string {
	return h.usecase.Continents(ctx)
}

func (h CLIHandler) Times(ctx context.Context) []dto.CityTimeOutput {
	return h.usecase.AllTimes(ctx, h.locale)
}

// Diff renders how far the first city is ahead of the second, e.g. "+14h".
func (h CLIHandler) Diff(ctx context.Context, from, to string) (string, error) {
	a, err := h.timezone(ctx, from)
	if err != nil {
		return "", err
	}
	b, err := h.timezone(ctx, to)
	if err != nil {
		return "", err
	}
	d, err := h.usecase.TimeDifference(ctx, a, b)
	if err != nil {
		return "", err
	}
	return timefmt.FormatOffset(d), nil
}

func (h CLIHandler) StartTicking() {
	h.usecase.StartTicking()
}

func (h CLIHandler) StopTicking() {
	h.usecase.StopTicking()
}

func (h CLIHandler) Close() {
	h.usecase.Destroy()
}

func (h CLIHandler) resolveCityID(ctx context.Context, city string) (string, error) {
	ref := strings.TrimSpace(city)
	if c, ok := h.usecase.City(ctx, strings.ToLower(ref)); ok {
		return c.ID, nil
	}
	// Dataset ids are slugs of the city name, so "São Paulo" finds sao-paulo.
	if c, ok := h.usecase.City(ctx, slug.Make(ref)); ok {
		return c.ID, nil
	}
	for _, c := range h.usecase.Search(ctx, ref) {
		if strings.EqualFold(c.Name, ref) {
			return c.ID, nil
		}
	}
	return "", fmt.Errorf("city %q: %w", city, apperrors.ErrNotFound)
}

// timezone accepts a dataset id, a city name or an IANA zone name.
func (h CLIHandler) timezone(ctx context.Context, ref string) (string, error) {
	if cityID, err := h.resolveCityID(ctx, ref); err == nil {
		c, _ := h.usecase.City(ctx, cityID)
		return c.Timezone, nil
	}
	if _, err := h.usecase.UTCOffset(ctx, ref); err != nil {
		return "", fmt.Errorf("city or timezone %q: %w", ref, apperrors.ErrNotFound)
	}
	return ref, nil
}

func (h CLIHandler) trackedID(ctx context.Context, ref string) (string, error) {
	for _, uc := range h.usecase.UserCities(ctx) {
		if uc.ID == ref || uc.City.ID == ref {
			return uc.ID, nil
		}
	}
	return "", fmt.Errorf("tracked city %q: %w", ref, apperrors.ErrNotFound)
}
