package domain

import (
	"encoding/json"
	"fmt"
	"regexp"

	apperrors "vclock/internal/platform/errors"
)

// Prefix namespaces every key the application writes.
const Prefix = "vclock_"

const MaxRecent = 5

type RecentItem struct {
	ID        string          `json:"id"`
	Timestamp int64           `json:"timestamp"`
	Data      json.RawMessage `json:"data"`
}

// recentKeys are the keys holding RecentItem lists.
var recentKeys = map[string]bool{"recentAlarms": true, "recentTimers": true}

func IsRecentKey(key string) bool { return recentKeys[key] }

// CapRecent drops entries beyond MaxRecent.
func CapRecent(items []RecentItem) []RecentItem {
	return items[:min(len(items), MaxRecent)]
}

// PushRecent puts item first and drops entries beyond MaxRecent.
func PushRecent(items []RecentItem, item RecentItem) []RecentItem {
	out := make([]RecentItem, 0, MaxRecent)
	out = append(out, item)
	for _, it := range items {
		if len(out) == MaxRecent {
			break
		}
		out = append(out, it)
	}
	return out
}

type FontSize string

const (
	FontSM FontSize = "sm"
	FontMD FontSize = "md"
	FontLG FontSize = "lg"
	FontXL FontSize = "xl"
)

type VisualSettings struct {
	FontFamily string   `json:"fontFamily"`
	TextColor  string   `json:"textColor"`
	FontSize   FontSize `json:"fontSize"`
	TimeFormat int      `json:"timeFormat"`
	ShowDate   bool     `json:"showDate"`
}

func DefaultVisualSettings() VisualSettings {
	return VisualSettings{
		FontFamily: "Digital-7",
		TextColor:  "#3b82f6",
		FontSize:   FontLG,
		TimeFormat: 12,
		ShowDate:   true,
	}
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func (v VisualSettings) WithFontFamily(name string) (VisualSettings, error) {
	if name == "" {
		return v, fmt.Errorf("font family is required: %w", apperrors.ErrInvalidInput)
	}
	v.FontFamily = name
	return v, nil
}

func (v VisualSettings) WithTextColor(color string) (VisualSettings, error) {
	if !hexColor.MatchString(color) {
		return v, fmt.Errorf("text color %q: %w", color, apperrors.ErrInvalidInput)
	}
	v.TextColor = color
	return v, nil
}

func (v VisualSettings) WithFontSize(size FontSize) (VisualSettings, error) {
	switch size {
	case FontSM, FontMD, FontLG, FontXL:
		v.FontSize = size
		return v, nil
	}
	return v, fmt.Errorf("font size %q: %w", size, apperrors.ErrInvalidInput)
}

func (v VisualSettings) WithTimeFormat(format int) (VisualSettings, error) {
	if format != 12 && format != 24 {
		return v, fmt.Errorf("time format %d: %w", format, apperrors.ErrInvalidInput)
	}
	v.TimeFormat = format
	return v, nil
}

func (v VisualSettings) WithShowDate(show bool) VisualSettings {
	v.ShowDate = show
	return v
}

// Normalize replaces out-of-range persisted values with defaults.
func (v VisualSettings) Normalize() VisualSettings {
	d := DefaultVisualSettings()
	if v.FontFamily == "" {
		v.FontFamily = d.FontFamily
	}
	if !hexColor.MatchString(v.TextColor) {
		v.TextColor = d.TextColor
	}
	if _, err := v.WithFontSize(v.FontSize); err != nil {
		v.FontSize = d.FontSize
	}
	if v.TimeFormat != 12 && v.TimeFormat != 24 {
		v.TimeFormat = d.TimeFormat
	}
	return v
}

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

func ParseTheme(s string) (Theme, error) {
	switch Theme(s) {
	case ThemeLight, ThemeDark:
		return Theme(s), nil
	}
	return "", fmt.Errorf("theme %q: %w", s, apperrors.ErrInvalidInput)
}

func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}
