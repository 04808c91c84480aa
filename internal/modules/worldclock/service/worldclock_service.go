package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	storagedto "vclock/internal/modules/storage/dto"
	storagein "vclock/internal/modules/storage/port/in"
	"vclock/internal/modules/worldclock/domain"
	worldclockout "vclock/internal/modules/worldclock/port/out"
	"vclock/internal/platform/clock"
	apperrors "vclock/internal/platform/errors"
	"vclock/internal/platform/id"
	"vclock/internal/platform/logging"
	"vclock/internal/platform/metrics"
	"vclock/internal/platform/schedule"
	"vclock/internal/platform/timefmt"
)

const feature = "worldclock"

// WorldClockService keeps the user's ordered city list and reports the
// current time in each of them.
type WorldClockService struct {
	clock   clock.Clock
	sched   schedule.Scheduler
	store   storagein.Store
	catalog worldclockout.CityCatalog
	ids     id.Generator
	logger  *slog.Logger
	metrics metrics.Recorder

	mu        sync.Mutex
	cities    []domain.UserCity
	locations map[string]*time.Location
	tick      schedule.Handle
	onTick    func(map[string]time.Time)
}

func NewWorldClockService(ctx context.Context, clock clock.Clock, sched schedule.Scheduler, store storagein.Store, catalog worldclockout.CityCatalog, ids id.Generator, logger *slog.Logger, rec metrics.Recorder) *WorldClockService {
	s := &WorldClockService{
		clock:     clock,
		sched:     sched,
		store:     store,
		catalog:   catalog,
		ids:       ids,
		logger:    logging.OrDiscard(logger).With(logging.Feature(feature)),
		metrics:   metrics.OrNoop(rec),
		cities:    []domain.UserCity{},
		locations: map[string]*time.Location{},
	}
	var saved domain.ClockSettings
	found, _ := store.Load(ctx, storagedto.KeyClockSettings, &saved)
	if !found {
		for _, cityID := range domain.DefaultCityIDs {
			s.AddCity(ctx, cityID)
		}
		return s
	}
	s.cities = s.resolve(saved.Cities)
	return s
}

// resolve maps persisted entries onto the dataset. Entries that match no
// city are dropped.
func (s *WorldClockService) resolve(saved []domain.SavedCity) []domain.UserCity {
	out := make([]domain.UserCity, 0, len(saved))
	for _, sc := range saved {
		city, ok := s.catalog.ByID(sc.CityID)
		if !ok {
			city, ok = s.catalog.ByTimezone(sc.Timezone)
		}
		if !ok {
			s.logger.Warn("dropping unknown city", logging.City(sc.CityID), slog.String("timezone", sc.Timezone))
			continue
		}
		if slices.ContainsFunc(out, func(u domain.UserCity) bool { return u.CityID == city.ID }) {
			continue
		}
		uc := domain.UserCity{ID: sc.ID, CityID: city.ID, Order: sc.Order, AddedAt: sc.AddedAt}
		if uc.ID == "" {
			uc.ID = s.ids.New()
		}
		out = append(out, uc)
	}
	return domain.Renumber(out)
}

// AddCity appends a dataset city. It returns false for an unknown id or a
// city that is already tracked.
func (s *WorldClockService) AddCity(ctx context.Context, cityID string) (domain.UserCity, bool) {
	if _, ok := s.catalog.ByID(cityID); !ok {
		return domain.UserCity{}, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.ContainsFunc(s.cities, func(u domain.UserCity) bool { return u.CityID == cityID }) {
		return domain.UserCity{}, false
	}
	uc := domain.UserCity{
		ID:      s.ids.New(),
		CityID:  cityID,
		Order:   len(s.cities),
		AddedAt: s.clock.Now().UnixMilli(),
	}
	s.cities = append(s.cities, uc)
	s.save(ctx)
	return uc, true
}

func (s *WorldClockService) RemoveCity(ctx context.Context, userCityID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := domain.Remove(s.cities, userCityID)
	if !ok {
		return false
	}
	s.cities = next
	s.save(ctx)
	return true
}

// MoveCity places a tracked city at newOrder, clamped to the list bounds.
func (s *WorldClockService) MoveCity(ctx context.Context, userCityID string, newOrder int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, ok := domain.Move(s.cities, userCityID, newOrder)
	if !ok {
		return false
	}
	s.cities = next
	s.save(ctx)
	return true
}

// ClearAllCities empties the list. The empty list is stored, so defaults
// are not seeded again on the next load.
func (s *WorldClockService) ClearAllCities(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cities = []domain.UserCity{}
	s.save(ctx)
}

func (s *WorldClockService) UserCities() []domain.UserCity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.cities)
}

func (s *WorldClockService) City(cityID string) (domain.City, bool) {
	return s.catalog.ByID(cityID)
}

func (s *WorldClockService) AllAvailableCities() []domain.City {
	return s.catalog.All()
}

// Search matches the query against city names and countries.
func (s *WorldClockService) Search(query string) []domain.City {
	out := []domain.City{}
	for _, c := range s.catalog.All() {
		if c.Matches(query) {
			out = append(out, c)
		}
	}
	return out
}

func (s *WorldClockService) ByContinent(continent string) []domain.City {
	out := []domain.City{}
	for _, c := range s.catalog.All() {
		if strings.EqualFold(c.Continent, strings.TrimSpace(continent)) {
			out = append(out, c)
		}
	}
	return out
}

func (s *WorldClockService) Continents() []string {
	return domain.Continents(s.catalog.All())
}

// AllTimes returns the current time of every tracked city keyed by the
// user city id.
func (s *WorldClockService) AllTimes() map[string]time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allTimes(s.clock.Now())
}

// TimeIn returns the current time in an IANA timezone.
func (s *WorldClockService) TimeIn(timezone string) (time.Time, error) {
	loc, err := s.location(timezone)
	if err != nil {
		return time.Time{}, err
	}
	return s.clock.Now().In(loc), nil
}

// TimeDifference is how far tz1 is ahead of tz2 right now.
func (s *WorldClockService) TimeDifference(tz1, tz2 string) (time.Duration, error) {
	a, err := s.location(tz1)
	if err != nil {
		return 0, err
	}
	b, err := s.location(tz2)
	if err != nil {
		return 0, err
	}
	return timefmt.OffsetBetween(a, b, s.clock.Now()), nil
}

// Local is the zone the clock reports in.
func (s *WorldClockService) Local() *time.Location {
	return s.clock.Now().Location()
}

func (s *WorldClockService) IsDaytime(timezone string) (bool, error) {
	t, err := s.TimeIn(timezone)
	if err != nil {
		return false, err
	}
	return domain.IsDaytime(t.Hour()), nil
}

func (s *WorldClockService) Describe(timezone, locale string) (string, error) {
	t, err := s.TimeIn(timezone)
	if err != nil {
		return "", err
	}
	return domain.TimeOfDayLabel(locale, t.Hour()), nil
}

// StartTicking reports all times now and then every second. A running tick
// is replaced.
func (s *WorldClockService) StartTicking() {
	s.mu.Lock()
	s.tick = schedule.Stop(s.tick)
	s.tick = s.sched.Every(domain.TickInterval, s.onTickDue)
	s.mu.Unlock()

	s.onTickDue()
}

func (s *WorldClockService) StopTicking() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tick = schedule.Stop(s.tick)
}

func (s *WorldClockService) Ticking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tick != nil
}

func (s *WorldClockService) onTickDue() {
	s.mu.Lock()
	times := s.allTimes(s.clock.Now())
	onTick := s.onTick
	s.mu.Unlock()

	s.metrics.IncTick(feature)
	if onTick != nil {
		onTick(times)
	}
}

func (s *WorldClockService) OnTick(fn func(map[string]time.Time)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onTick = fn
}

func (s *WorldClockService) Destroy() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tick = schedule.Stop(s.tick)
	s.onTick = nil
}

// allTimes must be called with s.mu held.
func (s *WorldClockService) allTimes(now time.Time) map[string]time.Time {
	out := make(map[string]time.Time, len(s.cities))
	for _, uc := range s.cities {
		city, ok := s.catalog.ByID(uc.CityID)
		if !ok {
			continue
		}
		loc, err := s.locationLocked(city.Timezone)
		if err != nil {
			continue
		}
		out[uc.ID] = now.In(loc)
	}
	return out
}

func (s *WorldClockService) location(timezone string) (*time.Location, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locationLocked(timezone)
}

// locationLocked must be called with s.mu held.
func (s *WorldClockService) locationLocked(timezone string) (*time.Location, error) {
	if loc, ok := s.locations[timezone]; ok {
		return loc, nil
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil || timezone == "" {
		return nil, fmt.Errorf("timezone %q: %w", timezone, apperrors.ErrNotFound)
	}
	s.locations[timezone] = loc
	return loc, nil
}

// save must be called with s.mu held.
func (s *WorldClockService) save(ctx context.Context) {
	saved := domain.ClockSettings{Cities: make([]domain.SavedCity, 0, len(s.cities))}
	for _, uc := range s.cities {
		city, _ := s.catalog.ByID(uc.CityID)
		saved.Cities = append(saved.Cities, domain.SavedCity{
			ID:       uc.ID,
			CityID:   uc.CityID,
			Name:     city.Name,
			Timezone: city.Timezone,
			Order:    uc.Order,
			AddedAt:  uc.AddedAt,
		})
	}
	_ = s.store.Save(ctx, storagedto.KeyClockSettings, saved)
}
