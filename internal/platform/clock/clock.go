package clock

import "time"

// Clock abstracts time to keep services deterministic in tests.
type Clock interface {
	Now() time.Time
}

// SystemClock reports local wall-clock time. Alarms and the world clock
// compare against the local calendar, so it is intentionally not UTC.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
