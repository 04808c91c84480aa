package in

import (
	"context"
	"time"

	"vclock/internal/modules/worldclock/dto"
)

type Usecase interface {
	// AddCity returns false when cityID is unknown or already tracked.
	AddCity(ctx context.Context, cityID string) (dto.UserCityOutput, bool)
	RemoveCity(ctx context.Context, userCityID string) bool
	MoveCity(ctx context.Context, userCityID string, newOrder int) bool
	ClearAllCities(ctx context.Context)
	UserCities(ctx context.Context) []dto.UserCityOutput
	// AllTimes returns one card per tracked city in list order.
	AllTimes(ctx context.Context, locale string) []dto.CityTimeOutput
	City(ctx context.Context, cityID string) (dto.CityOutput, bool)
	AllAvailableCities(ctx context.Context) []dto.CityOutput
	Search(ctx context.Context, query string) []dto.CityOutput
	ByContinent(ctx context.Context, continent string) []dto.CityOutput
	Continents(ctx context.Context) []string
	TimeDifference(ctx context.Context, tz1, tz2 string) (time.Duration, error)
	OffsetFromLocal(ctx context.Context, timezone string) (string, error)
	UTCOffset(ctx context.Context, timezone string) (string, error)
	IsDaytime(ctx context.Context, timezone string) (bool, error)
	Describe(ctx context.Context, timezone, locale string) (string, error)
	StartTicking()
	StopTicking()
	OnTick(fn func(times map[string]time.Time))
	Destroy()
}
