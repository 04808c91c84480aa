package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	storageout "vclock/internal/modules/storage/adapter/out"
	storagedto "vclock/internal/modules/storage/dto"
	storagein "vclock/internal/modules/storage/port/in"
	storageservice "vclock/internal/modules/storage/service"
	storageusecase "vclock/internal/modules/storage/usecase"
	worldclockout "vclock/internal/modules/worldclock/adapter/out"
	"vclock/internal/modules/worldclock/domain"
	"vclock/internal/modules/worldclock/service"
	apperrors "vclock/internal/platform/errors"
	"vclock/internal/platform/id"
	"vclock/internal/platform/schedule"
)

var noon = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newStore(sim *schedule.Simulated) storagein.Usecase {
	return newStoreWithQuota(sim, 0)
}

func newStoreWithQuota(sim *schedule.Simulated, quota int) storagein.Usecase {
	return storageusecase.NewInteractor(storageservice.NewStorageService(sim, id.UUID{}, storageout.NewMemoryKV(quota), nil, nil))
}

func newService(t *testing.T, sim *schedule.Simulated, store storagein.Store) *service.WorldClockService {
	t.Helper()
	catalog, err := worldclockout.NewEmbeddedCatalog()
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	return service.NewWorldClockService(context.Background(), sim, sim, store, catalog, id.UUID{}, nil, nil)
}

func cityIDs(list []domain.UserCity) []string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, c.CityID)
	}
	return out
}

func assertDense(t *testing.T, list []domain.UserCity) {
	t.Helper()
	for i, c := range list {
		if c.Order != i {
			t.Fatalf("order is not dense: %+v", list)
		}
	}
}

func TestDefaultsSeededOnlyWithoutStoredList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sim := schedule.NewSimulated(noon)
	store := newStore(sim)

	svc := newService(t, sim, store)
	if got := cityIDs(svc.UserCities()); len(got) != 4 || got[0] != "new-york" || got[3] != "sydney" {
		t.Fatalf("expected default cities, got %v", got)
	}

	svc.ClearAllCities(ctx)
	reloaded := newService(t, sim, store)
	if got := reloaded.UserCities(); len(got) != 0 {
		t.Fatalf("a cleared list must stay empty, got %v", cityIDs(got))
	}
}

func TestAddCityRejectsDuplicatesAndUnknownIDs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sim := schedule.NewSimulated(noon)
	svc := newService(t, sim, newStore(sim))

	before := svc.UserCities()
	if _, ok := svc.AddCity(ctx, "tokyo"); ok {
		t.Fatalf("adding a tracked city must fail")
	}
	if _, ok := svc.AddCity(ctx, "atlantis"); ok {
		t.Fatalf("adding an unknown city must fail")
	}
	if got := svc.UserCities(); len(got) != len(before) {
		t.Fatalf("list changed on rejected add: %v", cityIDs(got))
	}

	sim.Advance(time.Second)
	uc, ok := svc.AddCity(ctx, "paris")
	if !ok || uc.Order != 4 || uc.AddedAt != noon.Add(time.Second).UnixMilli() || uc.ID == "" {
		t.Fatalf("unexpected added city %+v, %v", uc, ok)
	}
}

func TestRemoveAndMoveKeepOrderDense(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sim := schedule.NewSimulated(noon)
	store := newStore(sim)
	svc := newService(t, sim, store)

	list := svc.UserCities()
	if !svc.RemoveCity(ctx, list[1].ID) {
		t.Fatalf("remove london failed")
	}
	if svc.RemoveCity(ctx, "missing") {
		t.Fatalf("removing an unknown id must fail")
	}
	list = svc.UserCities()
	assertDense(t, list)

	if !svc.MoveCity(ctx, list[2].ID, 0) {
		t.Fatalf("move failed")
	}
	list = svc.UserCities()
	assertDense(t, list)
	if got := cityIDs(list); got[0] != "sydney" || got[1] != "new-york" || got[2] != "tokyo" {
		t.Fatalf("unexpected order %v", got)
	}

	reloaded := newService(t, sim, store)
	if got := cityIDs(reloaded.UserCities()); len(got) != 3 || got[0] != "sydney" {
		t.Fatalf("order was not persisted: %v", got)
	}
	if reloaded.UserCities()[0].ID != list[0].ID {
		t.Fatalf("user city ids must survive a reload")
	}
}

func TestLoadResolvesLegacyEntriesAndDropsUnknown(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sim := schedule.NewSimulated(noon)
	store := newStore(sim)
	legacy := map[string]any{"cities": []map[string]any{
		{"id": "a", "name": "Tokyo", "timezone": "Asia/Tokyo", "order": 3},
		{"id": "b", "name": "Nowhere", "timezone": "Nowhere/Land", "order": 1},
		{"id": "c", "name": "Lima", "timezone": "America/Lima", "order": 2},
	}}
	if err := store.Save(ctx, storagedto.KeyClockSettings, legacy); err != nil {
		t.Fatalf("seed: %v", err)
	}

	list := newService(t, sim, store).UserCities()
	if got := cityIDs(list); len(got) != 2 || got[0] != "lima" || got[1] != "tokyo" {
		t.Fatalf("unexpected resolved cities %v", got)
	}
	assertDense(t, list)
	if list[1].ID != "a" {
		t.Fatalf("stored id must be kept, got %q", list[1].ID)
	}
}

func TestAllTimesAndTicks(t *testing.T) {
	t.Parallel()
	sim := schedule.NewSimulated(noon)
	svc := newService(t, sim, newStore(sim))

	var calls int
	var last map[string]time.Time
	svc.OnTick(func(times map[string]time.Time) {
		calls++
		last = times
	})
	svc.StartTicking()
	if calls != 1 {
		t.Fatalf("StartTicking must report immediately, got %d calls", calls)
	}
	sim.Advance(3 * time.Second)
	if calls != 4 {
		t.Fatalf("expected 4 ticks, got %d", calls)
	}

	want := map[string]int{"new-york": 7, "london": 12, "tokyo": 21, "sydney": 23}
	for _, uc := range svc.UserCities() {
		got, ok := last[uc.ID]
		if !ok {
			t.Fatalf("no time for %s", uc.CityID)
		}
		if got.Hour() != want[uc.CityID] || !got.Equal(noon.Add(3*time.Second)) {
			t.Fatalf("%s: got %v", uc.CityID, got)
		}
	}

	svc.StopTicking()
	sim.Advance(5 * time.Second)
	if calls != 4 || svc.Ticking() {
		t.Fatalf("StopTicking must cancel the tick, got %d calls", calls)
	}
}

func TestZoneQueries(t *testing.T) {
	t.Parallel()
	sim := schedule.NewSimulated(noon)
	svc := newService(t, sim, newStore(sim))

	diff, err := svc.TimeDifference("Asia/Tokyo", "America/New_York")
	if err != nil || diff != 14*time.Hour {
		t.Fatalf("TimeDifference = %v, %v", diff, err)
	}
	if _, err := svc.TimeDifference("Asia/Tokyo", "Nowhere/Land"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown zone must be ErrNotFound, got %v", err)
	}

	day, err := svc.IsDaytime("America/New_York")
	if err != nil || !day {
		t.Fatalf("New York at 07:00 is daytime, got %v, %v", day, err)
	}
	if day, _ := svc.IsDaytime("Asia/Tokyo"); day {
		t.Fatalf("Tokyo at 21:00 is night")
	}

	if label, _ := svc.Describe("America/New_York", "es-MX"); label != "Mañana" {
		t.Fatalf("Describe = %q", label)
	}
	if label, _ := svc.Describe("Europe/London", "fr"); label != "Noon" {
		t.Fatalf("Describe fallback = %q", label)
	}
}

func TestCatalogQueries(t *testing.T) {
	t.Parallel()
	sim := schedule.NewSimulated(noon)
	svc := newService(t, sim, newStore(sim))

	if got := svc.Search("united states"); len(got) < 5 {
		t.Fatalf("expected US cities, got %d", len(got))
	}
	if got := svc.Search("TOKYO"); len(got) != 1 || got[0].ID != "tokyo" {
		t.Fatalf("Search(TOKYO) = %+v", got)
	}
	for _, c := range svc.ByContinent("south america") {
		if c.Continent != "South America" {
			t.Fatalf("ByContinent returned %+v", c)
		}
	}
	if got := svc.Continents(); len(got) != 6 || got[0] != "Africa" {
		t.Fatalf("Continents = %v", got)
	}
}

func TestCityListWorksWhenStoreRejectsWrites(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	sim := schedule.NewSimulated(noon)
	store := newStoreWithQuota(sim, 8)
	svc := newService(t, sim, store)

	if got := cityIDs(svc.UserCities()); len(got) != 4 || got[0] != "new-york" {
		t.Fatalf("defaults must be seeded in memory, got %v", got)
	}
	uc, ok := svc.AddCity(ctx, "paris")
	if !ok {
		t.Fatalf("add must apply in memory")
	}
	if !svc.MoveCity(ctx, uc.ID, 0) {
		t.Fatalf("move must apply in memory")
	}
	list := svc.UserCities()
	if list[0].CityID != "paris" || len(list) != 5 {
		t.Fatalf("unexpected list %v", cityIDs(list))
	}
	assertDense(t, list)

	var ticks []map[string]time.Time
	svc.OnTick(func(m map[string]time.Time) { ticks = append(ticks, m) })
	svc.StartTicking()
	sim.Advance(time.Second)
	svc.StopTicking()
	if len(ticks) != 2 || len(ticks[1]) != 5 {
		t.Fatalf("expected two ticks over five cities, got %d", len(ticks))
	}

	var saved domain.ClockSettings
	if found, _ := store.Load(ctx, storagedto.KeyClockSettings, &saved); found {
		t.Fatalf("nothing should have been persisted, got %d cities", len(saved.Cities))
	}
}
