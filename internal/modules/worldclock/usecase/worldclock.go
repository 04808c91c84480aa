package usecase

import (
	"context"
	"time"

	storagein "vclock/internal/modules/storage/port/in"
	"vclock/internal/modules/worldclock/domain"
	"vclock/internal/modules/worldclock/dto"
	worldclockin "vclock/internal/modules/worldclock/port/in"
	"vclock/internal/modules/worldclock/service"
	"vclock/internal/platform/timefmt"
)

type Interactor struct {
	svc   *service.WorldClockService
	prefs storagein.Preferences
}

func NewInteractor(svc *service.WorldClockService, prefs storagein.Preferences) worldclockin.Usecase {
	return &Interactor{svc: svc, prefs: prefs}
}

func (i *Interactor) AddCity(ctx context.Context, cityID string) (dto.UserCityOutput, bool) {
	uc, ok := i.svc.AddCity(ctx, cityID)
	if !ok {
		return dto.UserCityOutput{}, false
	}
	return i.toUserCityOutput(uc), true
}

func (i *Interactor) RemoveCity(ctx context.Context, userCityID string) bool {
	return i.svc.RemoveCity(ctx, userCityID)
}

func (i *Interactor) MoveCity(ctx context.Context, userCityID string, newOrder int) bool {
	return i.svc.MoveCity(ctx, userCityID, newOrder)
}

func (i *Interactor) ClearAllCities(ctx context.Context) {
	i.svc.ClearAllCities(ctx)
}

func (i *Interactor) UserCities(context.Context) []dto.UserCityOutput {
	list := i.svc.UserCities()
	out := make([]dto.UserCityOutput, 0, len(list))
	for _, uc := range list {
		out = append(out, i.toUserCityOutput(uc))
	}
	return out
}

func (i *Interactor) AllTimes(ctx context.Context, locale string) []dto.CityTimeOutput {
	format24h := i.prefs.VisualSettings(ctx).TimeFormat == 24
	times := i.svc.AllTimes()
	local := i.svc.Local()
	list := i.svc.UserCities()
	out := make([]dto.CityTimeOutput, 0, len(list))
	for _, uc := range list {
		t, ok := times[uc.ID]
		if !ok {
			continue
		}
		city, _ := i.svc.City(uc.CityID)
		out = append(out, dto.CityTimeOutput{
			UserCityID: uc.ID,
			City:       toCityOutput(city),
			Time:       t,
			Display:    timefmt.FormatZoneTime(t, format24h),
			Date:       timefmt.FormatDate(t),
			UTCOffset:  timefmt.UTCOffset(t.Location(), t),
			Relative:   timefmt.RelativeOffset(t.Location(), local, t),
			Daytime:    domain.IsDaytime(t.Hour()),
			Label:      domain.TimeOfDayLabel(locale, t.Hour()),
		})
	}
	return out
}

func (i *Interactor) City(_ context.Context, cityID string) (dto.CityOutput, bool) {
	city, ok := i.svc.City(cityID)
	if !ok {
		return dto.CityOutput{}, false
	}
	return toCityOutput(city), true
}

func (i *Interactor) AllAvailableCities(context.Context) []dto.CityOutput {
	return toCityOutputs(i.svc.AllAvailableCities())
}

func (i *Interactor) Search(_ context.Context, query string) []dto.CityOutput {
	return toCityOutputs(i.svc.Search(query))
}

func (i *Interactor) ByContinent(_ context.Context, continent string) []dto.CityOutput {
	return toCityOutputs(i.svc.ByContinent(continent))
}

func (i *Interactor) Continents(context.Context) []string {
	return i.svc.Continents()
}

func (i *Interactor) TimeDifference(_ context.Context, tz1, tz2 string) (time.Duration, error) {
	return i.svc.TimeDifference(tz1, tz2)
}

func (i *Interactor) OffsetFromLocal(_ context.Context, timezone string) (string, error) {
	t, err := i.svc.TimeIn(timezone)
	if err != nil {
		return "", err
	}
	return timefmt.RelativeOffset(t.Location(), i.svc.Local(), t), nil
}

func (i *Interactor) UTCOffset(_ context.Context, timezone string) (string, error) {
	t, err := i.svc.TimeIn(timezone)
	if err != nil {
		return "", err
	}
	return timefmt.UTCOffset(t.Location(), t), nil
}

func (i *Interactor) IsDaytime(_ context.Context, timezone string) (bool, error) {
	return i.svc.IsDaytime(timezone)
}

func (i *Interactor) Describe(_ context.Context, timezone, locale string) (string, error) {
	return i.svc.Describe(timezone, locale)
}

func (i *Interactor) StartTicking() {
	i.svc.StartTicking()
}

func (i *Interactor) StopTicking() {
	i.svc.StopTicking()
}

func (i *Interactor) OnTick(fn func(map[string]time.Time)) {
	i.svc.OnTick(fn)
}

func (i *Interactor) Destroy() {
	i.svc.Destroy()
}

func (i *Interactor) toUserCityOutput(uc domain.UserCity) dto.UserCityOutput {
	city, _ := i.svc.City(uc.CityID)
	return dto.UserCityOutput{ID: uc.ID, Order: uc.Order, AddedAt: uc.AddedAt, City: toCityOutput(city)}
}

func toCityOutput(c domain.City) dto.CityOutput {
	return dto.CityOutput{
		ID:        c.ID,
		Name:      c.Name,
		Country:   c.Country,
		Timezone:  c.Timezone,
		UTCOffset: c.UTCOffset,
		Continent: c.Continent,
	}
}

func toCityOutputs(cities []domain.City) []dto.CityOutput {
	out := make([]dto.CityOutput, 0, len(cities))
	for _, c := range cities {
		out = append(out, toCityOutput(c))
	}
	return out
}
