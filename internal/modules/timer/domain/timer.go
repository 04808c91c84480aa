package domain

import (
	"fmt"
	"strings"
	"time"

	feedbackdomain "vclock/internal/modules/feedback/domain"
	apperrors "vclock/internal/platform/errors"
)

const (
	TickInterval = 100 * time.Millisecond
	maxDuration  = 100 * time.Hour

	DefaultTitle     = "Timer"
	FinishedTitle    = "Timer Finished"
	FinishedBody     = "Your timer has finished!"
	FinishedTag      = "timer-finished"
	NotificationIcon = "timer"
)

type Mode string

const (
	ModeDuration Mode = "duration"
	ModeDate     Mode = "date"
)

type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StatePaused   State = "paused"
	StateFinished State = "finished"
)

func (s State) Valid() bool {
	switch s {
	case StateIdle, StateRunning, StatePaused, StateFinished:
		return true
	}
	return false
}

type Settings struct {
	Mode       Mode       `json:"mode"`
	Hours      int        `json:"hours"`
	Minutes    int        `json:"minutes"`
	Seconds    int        `json:"seconds"`
	TargetDate *time.Time `json:"targetDate,omitempty"`
	Sound      string     `json:"sound"`
	Title      string     `json:"title"`
	AutoStart  bool       `json:"autoStart"`
}

func DefaultSettings() Settings {
	return Settings{
		Mode:    ModeDuration,
		Minutes: 5,
		Sound:   feedbackdomain.DefaultTimerSound,
		Title:   DefaultTitle,
	}
}

// WithDuration switches to duration mode. Fields are non-negative and the
// total is capped at 100 hours.
func (s Settings) WithDuration(hours, minutes, seconds int) (Settings, error) {
	if hours < 0 || minutes < 0 || seconds < 0 {
		return s, fmt.Errorf("duration %d:%d:%d must not be negative: %w", hours, minutes, seconds, apperrors.ErrInvalidInput)
	}
	total := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
	if total > maxDuration {
		return s, fmt.Errorf("duration %s exceeds %s: %w", total, maxDuration, apperrors.ErrInvalidInput)
	}
	s.Mode = ModeDuration
	s.Hours, s.Minutes, s.Seconds = hours, minutes, seconds
	return s, nil
}

func (s Settings) WithTargetDate(target time.Time) (Settings, error) {
	if target.IsZero() {
		return s, fmt.Errorf("target date is required: %w", apperrors.ErrInvalidInput)
	}
	s.Mode = ModeDate
	s.TargetDate = &target
	return s, nil
}

func (s Settings) WithSound(sound string) (Settings, error) {
	sound = strings.TrimSpace(sound)
	if sound == "" {
		return s, fmt.Errorf("sound is required: %w", apperrors.ErrInvalidInput)
	}
	s.Sound = sound
	return s, nil
}

func (s Settings) WithTitle(title string) Settings {
	s.Title = strings.TrimSpace(title)
	return s
}

func (s Settings) WithAutoStart(auto bool) Settings {
	s.AutoStart = auto
	return s
}

// Normalize repairs persisted values one field at a time.
func (s Settings) Normalize() Settings {
	d := DefaultSettings()
	if s.Mode != ModeDuration && s.Mode != ModeDate {
		s.Mode = d.Mode
	}
	if s.Mode == ModeDate && s.TargetDate == nil {
		s.Mode = ModeDuration
	}
	if s.Hours < 0 {
		s.Hours = 0
	}
	if s.Minutes < 0 {
		s.Minutes = 0
	}
	if s.Seconds < 0 {
		s.Seconds = 0
	}
	if strings.TrimSpace(s.Sound) == "" {
		s.Sound = d.Sound
	}
	return s
}

// TotalMs is the countdown length at now. A target date in the past gives
// zero.
func (s Settings) TotalMs(now time.Time) int64 {
	if s.Mode == ModeDate && s.TargetDate != nil {
		return max(0, s.TargetDate.Sub(now).Milliseconds())
	}
	return int64(s.Hours)*3_600_000 + int64(s.Minutes)*60_000 + int64(s.Seconds)*1000
}

func (s Settings) NotificationTitle() string {
	if s.Title == "" {
		return FinishedTitle
	}
	return s.Title
}

// Data is the persisted runtime state. StartTime is epoch milliseconds and
// nil until the timer first runs.
type Data struct {
	State       State  `json:"state"`
	RemainingMs int64  `json:"remainingMs"`
	TotalMs     int64  `json:"totalMs"`
	StartTime   *int64 `json:"startTime"`
	PausedTime  int64  `json:"pausedTime"`
}

func IdleData(totalMs int64) Data {
	return Data{State: StateIdle, RemainingMs: totalMs, TotalMs: totalMs}
}

// Restore repairs persisted data and turns a running timer into a paused
// one at its last known remaining time.
func (d Data) Restore() Data {
	if !d.State.Valid() {
		d.State = StateIdle
	}
	if d.TotalMs < 0 {
		d.TotalMs = 0
	}
	d.RemainingMs = min(max(d.RemainingMs, 0), d.TotalMs)
	switch d.State {
	case StateRunning:
		d.State = StatePaused
		d.PausedTime = d.TotalMs - d.RemainingMs
	case StatePaused:
		d.PausedTime = d.TotalMs - d.RemainingMs
	case StateFinished:
		d.RemainingMs = 0
	}
	return d
}

// Progress is the elapsed share of the countdown in percent.
func (d Data) Progress() float64 {
	if d.TotalMs == 0 {
		return 0
	}
	return float64(d.TotalMs-d.RemainingMs) / float64(d.TotalMs) * 100
}

type Preset struct {
	Label   string
	Seconds int
}

func Presets() []Preset {
	return []Preset{
		{"1 min", 60},
		{"3 min", 180},
		{"5 min", 300},
		{"10 min", 600},
		{"15 min", 900},
		{"20 min", 1200},
		{"30 min", 1800},
		{"45 min", 2700},
		{"1 hour", 3600},
		{"2 hours", 7200},
		{"3 hours", 10800},
		{"4 hours", 14400},
	}
}

// Recent is the shape stored in the recent timers list.
type Recent struct {
	Mode       Mode       `json:"mode"`
	Hours      int        `json:"hours"`
	Minutes    int        `json:"minutes"`
	Seconds    int        `json:"seconds"`
	TargetDate *time.Time `json:"targetDate,omitempty"`
	Title      string     `json:"title"`
	TotalMs    int64      `json:"totalMs"`
}

func (s Settings) Recent(totalMs int64) Recent {
	return Recent{
		Mode:       s.Mode,
		Hours:      s.Hours,
		Minutes:    s.Minutes,
		Seconds:    s.Seconds,
		TargetDate: s.TargetDate,
		Title:      s.Title,
		TotalMs:    totalMs,
	}
}
