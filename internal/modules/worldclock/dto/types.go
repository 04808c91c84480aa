package dto

import "time"

type CityOutput struct {
	ID        string
	Name      string
	Country   string
	Timezone  string
	UTCOffset string
	Continent string
}

type UserCityOutput struct {
	ID      string
	Order   int
	AddedAt int64
	City    CityOutput
}

// CityTimeOutput is one world clock card.
type CityTimeOutput struct {
	UserCityID string
	City       CityOutput
	Time       time.Time
	Display    string
	Date       string
	// UTCOffset is the live offset, which differs from City.UTCOffset
	// during daylight saving time.
	UTCOffset string
	Relative  string
	Daytime   bool
	Label     string
}
