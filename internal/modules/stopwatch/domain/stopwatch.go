package domain

import (
	"fmt"
	"time"

	apperrors "vclock/internal/platform/errors"
)

const DefaultPrecision = 2

type Lap struct {
	Number    int   `json:"number"`
	LapTime   int64 `json:"lapTime"`
	TotalTime int64 `json:"totalTime"`
	Timestamp int64 `json:"timestamp"`
}

// State is the persisted stopwatch. IsRunning is always stored as false;
// a reload comes back paused at Elapsed.
type State struct {
	Elapsed   int64 `json:"elapsed"`
	IsRunning bool  `json:"isRunning"`
	Laps      []Lap `json:"laps"`
	Precision int   `json:"precision"`
}

func DefaultState() State {
	return State{Laps: []Lap{}, Precision: DefaultPrecision}
}

func ValidatePrecision(p int) error {
	if p < 0 || p > 3 {
		return fmt.Errorf("precision %d must be 0-3: %w", p, apperrors.ErrInvalidInput)
	}
	return nil
}

// TickRate is the display refresh interval for a precision: 1s, 100ms,
// 10ms or 1ms.
func TickRate(precision int) time.Duration {
	switch precision {
	case 3:
		return time.Millisecond
	case 2:
		return 10 * time.Millisecond
	case 1:
		return 100 * time.Millisecond
	}
	return time.Second
}

// Normalize repairs persisted state one field at a time.
func (s State) Normalize() State {
	s.IsRunning = false
	if s.Elapsed < 0 {
		s.Elapsed = 0
	}
	if ValidatePrecision(s.Precision) != nil {
		s.Precision = DefaultPrecision
	}
	if s.Laps == nil {
		s.Laps = []Lap{}
	}
	s.Laps = Renumber(s.Laps)
	return s
}

// NewLap records a checkpoint at elapsed after the given laps.
func NewLap(laps []Lap, elapsed int64, at time.Time) Lap {
	var previous int64
	if len(laps) > 0 {
		previous = laps[len(laps)-1].TotalTime
	}
	return Lap{
		Number:    len(laps) + 1,
		LapTime:   elapsed - previous,
		TotalTime: elapsed,
		Timestamp: at.UnixMilli(),
	}
}

// DeleteLap removes the lap with the given number and renumbers the rest.
func DeleteLap(laps []Lap, number int) ([]Lap, bool) {
	for i, lap := range laps {
		if lap.Number != number {
			continue
		}
		out := make([]Lap, 0, len(laps)-1)
		out = append(out, laps[:i]...)
		out = append(out, laps[i+1:]...)
		return Renumber(out), true
	}
	return laps, false
}

func Renumber(laps []Lap) []Lap {
	for i := range laps {
		laps[i].Number = i + 1
	}
	return laps
}

type Stats struct {
	Fastest   *Lap
	Slowest   *Lap
	AverageMs float64
	Count     int
}

// ComputeStats finds the fastest and slowest laps by lap time. Ties keep
// the earlier lap. An empty list yields zero stats.
func ComputeStats(laps []Lap) Stats {
	if len(laps) == 0 {
		return Stats{}
	}
	fastest, slowest := laps[0], laps[0]
	var sum int64
	for _, lap := range laps {
		if lap.LapTime < fastest.LapTime {
			fastest = lap
		}
		if lap.LapTime > slowest.LapTime {
			slowest = lap
		}
		sum += lap.LapTime
	}
	return Stats{
		Fastest:   &fastest,
		Slowest:   &slowest,
		AverageMs: float64(sum) / float64(len(laps)),
		Count:     len(laps),
	}
}
