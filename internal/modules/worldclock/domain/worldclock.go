package domain

import (
	"slices"
	"strings"
	"time"
)

const (
	TickInterval = time.Second
	dayStartHour = 6
	dayEndHour   = 18
)

// DefaultCityIDs is the list seeded when no city list was ever stored.
var DefaultCityIDs = []string{"new-york", "london", "tokyo", "sydney"}

// City is one read-only entry of the timezone dataset.
type City struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Country   string `yaml:"country"`
	Timezone  string `yaml:"timezone"`
	UTCOffset string `yaml:"utcOffset"`
	Continent string `yaml:"continent"`
}

// Matches reports whether query is a case-insensitive substring of the
// city name or country.
func (c City) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	return strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Country), q)
}

// UserCity is a city the user tracks.
type UserCity struct {
	ID      string
	CityID  string
	Order   int
	AddedAt int64
}

// SavedCity is the persisted shape of a UserCity. Older entries carry only
// the timezone, so CityID and AddedAt are optional.
type SavedCity struct {
	ID       string `json:"id"`
	CityID   string `json:"cityId,omitempty"`
	Name     string `json:"name"`
	Timezone string `json:"timezone"`
	Order    int    `json:"order"`
	AddedAt  int64  `json:"addedAt,omitempty"`
}

// ClockSettings is stored under the clockSettings key.
type ClockSettings struct {
	Cities []SavedCity `json:"cities"`
}

// Renumber sorts cities by order and rewrites order as 0..N-1.
func Renumber(cities []UserCity) []UserCity {
	out := slices.Clone(cities)
	slices.SortStableFunc(out, func(a, b UserCity) int { return a.Order - b.Order })
	for i := range out {
		out[i].Order = i
	}
	return out
}

// Move places the city with the given id at newOrder, clamped to the list
// bounds, and renumbers the rest.
func Move(cities []UserCity, id string, newOrder int) ([]UserCity, bool) {
	ordered := Renumber(cities)
	idx := slices.IndexFunc(ordered, func(c UserCity) bool { return c.ID == id })
	if idx < 0 {
		return cities, false
	}
	newOrder = max(0, min(newOrder, len(ordered)-1))
	moved := ordered[idx]
	ordered = slices.Delete(ordered, idx, idx+1)
	ordered = slices.Insert(ordered, newOrder, moved)
	for i := range ordered {
		ordered[i].Order = i
	}
	return ordered, true
}

// Remove drops the city with the given id and renumbers the rest.
func Remove(cities []UserCity, id string) ([]UserCity, bool) {
	idx := slices.IndexFunc(cities, func(c UserCity) bool { return c.ID == id })
	if idx < 0 {
		return cities, false
	}
	return Renumber(slices.Delete(slices.Clone(cities), idx, idx+1)), true
}

// IsDaytime reports whether a local hour falls in [06:00, 18:00).
func IsDaytime(hour int) bool {
	return hour >= dayStartHour && hour < dayEndHour
}

// Continents returns the distinct continents of the dataset, sorted.
func Continents(cities []City) []string {
	out := make([]string, 0, 8)
	for _, c := range cities {
		if !slices.Contains(out, c.Continent) {
			out = append(out, c.Continent)
		}
	}
	slices.Sort(out)
	return out
}
