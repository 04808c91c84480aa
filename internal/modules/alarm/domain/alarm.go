package domain

import (
	"fmt"
	"strings"
	"time"

	feedbackdomain "vclock/internal/modules/feedback/domain"
	apperrors "vclock/internal/platform/errors"
	"vclock/internal/platform/timefmt"
)

const (
	PollInterval = time.Second
	// AutoStopAfter ends a non-repeating alarm that nobody dismissed.
	AutoStopAfter = time.Minute
	// FireWindow is how long after the target a poll may still fire it.
	FireWindow = time.Minute

	DefaultNotificationTitle = "Alarm Clock"
	NotificationIcon         = "alarm-clock"
)

// Settings is the persisted alarm configuration. The triggered flag is
// runtime-only and lives in the service.
type Settings struct {
	Hour     int              `json:"hour"`
	Minute   int              `json:"minute"`
	Meridian timefmt.Meridian `json:"meridian"`
	Sound    string           `json:"sound"`
	Repeat   bool             `json:"repeat"`
	Title    string           `json:"title"`
	IsActive bool             `json:"isActive"`
}

func DefaultSettings() Settings {
	return Settings{
		Hour:     7,
		Minute:   0,
		Meridian: timefmt.AM,
		Sound:    feedbackdomain.DefaultAlarmSound,
	}
}

func (s Settings) WithTime(hour, minute int, m timefmt.Meridian) (Settings, error) {
	if hour < 1 || hour > 12 {
		return s, fmt.Errorf("hour %d must be 1-12: %w", hour, apperrors.ErrInvalidInput)
	}
	if minute < 0 || minute > 59 {
		return s, fmt.Errorf("minute %d must be 0-59: %w", minute, apperrors.ErrInvalidInput)
	}
	if m != timefmt.AM && m != timefmt.PM {
		return s, fmt.Errorf("meridian %q: %w", m, apperrors.ErrInvalidInput)
	}
	s.Hour, s.Minute, s.Meridian = hour, minute, m
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

func (s Settings) WithRepeat(repeat bool) Settings {
	s.Repeat = repeat
	return s
}

func (s Settings) WithTitle(title string) Settings {
	s.Title = strings.TrimSpace(title)
	return s
}

// Normalize repairs persisted values one field at a time.
func (s Settings) Normalize() Settings {
	d := DefaultSettings()
	if s.Hour < 1 || s.Hour > 12 {
		s.Hour = d.Hour
	}
	if s.Minute < 0 || s.Minute > 59 {
		s.Minute = d.Minute
	}
	if m, err := timefmt.ParseMeridian(string(s.Meridian)); err == nil {
		s.Meridian = m
	} else {
		s.Meridian = d.Meridian
	}
	if strings.TrimSpace(s.Sound) == "" {
		s.Sound = d.Sound
	}
	return s
}

func (s Settings) Hour24() int {
	return timefmt.ConvertTo24Hour(s.Hour, s.Meridian)
}

// LastOccurrence is the latest target instant at or before now.
func (s Settings) LastOccurrence(now time.Time) time.Time {
	t := time.Date(now.Year(), now.Month(), now.Day(), s.Hour24(), s.Minute, 0, 0, now.Location())
	if t.After(now) {
		t = t.AddDate(0, 0, -1)
	}
	return t
}

// NextOccurrence is the first target instant strictly after now.
func (s Settings) NextOccurrence(now time.Time) time.Time {
	t := time.Date(now.Year(), now.Month(), now.Day(), s.Hour24(), s.Minute, 0, 0, now.Location())
	if !t.After(now) {
		t = t.AddDate(0, 0, 1)
	}
	return t
}

// Display renders the target as "7:05 AM".
func (s Settings) Display() string {
	return fmt.Sprintf("%d:%02d %s", s.Hour, s.Minute, s.Meridian)
}

func (s Settings) NotificationTitle() string {
	if s.Title == "" {
		return DefaultNotificationTitle
	}
	return s.Title
}

func (s Settings) NotificationBody() string {
	return "It's " + s.Display()
}

// Recent is the shape stored in the recent alarms list.
type Recent struct {
	Hour     int              `json:"hour"`
	Minute   int              `json:"minute"`
	Meridian timefmt.Meridian `json:"meridian"`
	Sound    string           `json:"sound"`
	Title    string           `json:"title"`
}

func (s Settings) Recent() Recent {
	return Recent{Hour: s.Hour, Minute: s.Minute, Meridian: s.Meridian, Sound: s.Sound, Title: s.Title}
}
