// Package timefmt holds the pure clock conversions and display formats
// shared by the alarm, timer, stopwatch and world clock.
package timefmt

import (
	"fmt"
	"strings"
	"time"

	apperrors "vclock/internal/platform/errors"
)

type Meridian string

const (
	AM Meridian = "AM"
	PM Meridian = "PM"
)

// ParseMeridian accepts am/pm in any case.
func ParseMeridian(s string) (Meridian, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "AM":
		return AM, nil
	case "PM":
		return PM, nil
	}
	return "", fmt.Errorf("meridian %q: %w", s, apperrors.ErrInvalidInput)
}

type Hour12 struct {
	Hour     int
	Meridian Meridian
}

// ConvertTo24Hour maps a 1-12 hour and meridian to 0-23. 12 AM is 0 and
// 12 PM is 12.
func ConvertTo24Hour(hour int, m Meridian) int {
	if m == AM {
		if hour == 12 {
			return 0
		}
		return hour
	}
	if hour == 12 {
		return 12
	}
	return hour + 12
}

func ConvertTo12Hour(hour int) Hour12 {
	m := AM
	if hour >= 12 {
		m = PM
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return Hour12{Hour: h, Meridian: m}
}

// FormatClock renders HH:MM:SS, with a trailing meridian in 12-hour mode.
func FormatClock(hours, minutes, seconds int, format24h bool) string {
	if format24h {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	h := ConvertTo12Hour(hours)
	return fmt.Sprintf("%02d:%02d:%02d %s", h.Hour, minutes, seconds, h.Meridian)
}

// FormatTime renders the wall-clock part of t; see FormatClock.
func FormatTime(t time.Time, format24h bool) string {
	return FormatClock(t.Hour(), t.Minute(), t.Second(), format24h)
}

// FormatZoneTime renders t the way the world clock cards show it:
// "3:04:05 PM" or "15:04:05".
func FormatZoneTime(t time.Time, format24h bool) string {
	if format24h {
		return t.Format("15:04:05")
	}
	return t.Format("3:04:05 PM")
}

// FormatDate renders a long date such as "Sunday, March 1, 2026".
func FormatDate(t time.Time) string {
	return t.Format("Monday, January 2, 2006")
}

// FormatMilliseconds renders [HH:]MM:SS followed by precision digits of the
// millisecond part.
func FormatMilliseconds(ms int64, precision int) string {
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60

	var b strings.Builder
	if hours > 0 {
		fmt.Fprintf(&b, "%02d:", hours)
	}
	fmt.Fprintf(&b, "%02d:%02d", minutes, seconds)
	if p := clampPrecision(precision); p > 0 {
		b.WriteString(".")
		b.WriteString(fmt.Sprintf("%03d", ms%1000)[:p])
	}
	return b.String()
}

// FormatDuration renders whole seconds as "1d 2h 3m 4s", dropping zero
// units. Zero renders as "0s".
func FormatDuration(totalSeconds int64) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	days := totalSeconds / 86400
	hours := (totalSeconds % 86400) / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	parts := make([]string, 0, 4)
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	if seconds > 0 || len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%ds", seconds))
	}
	return strings.Join(parts, " ")
}

type Breakdown struct {
	Days         int64
	Hours        int64
	Minutes      int64
	Seconds      int64
	TotalSeconds int64
}

// TimeUntil splits the time left until target. A target at or before now
// yields the zero Breakdown.
func TimeUntil(target, now time.Time) Breakdown {
	diff := target.Sub(now)
	if diff <= 0 {
		return Breakdown{}
	}
	total := int64(diff / time.Second)
	return Breakdown{
		Days:         total / 86400,
		Hours:        (total % 86400) / 3600,
		Minutes:      (total % 3600) / 60,
		Seconds:      total % 60,
		TotalSeconds: total,
	}
}

func clampPrecision(p int) int {
	if p < 0 {
		return 0
	}
	if p > 3 {
		return 3
	}
	return p
}
