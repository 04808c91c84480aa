package dto

import "encoding/json"

// Key names a persisted value. The store adds the namespace prefix.
type Key string

const (
	KeyAlarmSettings  Key = "alarmSettings"
	KeyTimerSettings  Key = "timerSettings"
	KeyTimerData      Key = "timerData"
	KeyStopwatchState Key = "stopwatchState"
	KeyClockSettings  Key = "clockSettings"
	KeyRecentAlarms   Key = "recentAlarms"
	KeyRecentTimers   Key = "recentTimers"
	KeyVisualSettings Key = "visualSettings"
	KeyTheme          Key = "theme"
)

type RecentItemOutput struct {
	ID        string
	Timestamp int64
	Data      json.RawMessage
}

type VisualSettings struct {
	FontFamily string
	TextColor  string
	FontSize   string
	TimeFormat int
	ShowDate   bool
}

// VisualSettingsUpdate changes only the fields that are set.
type VisualSettingsUpdate struct {
	FontFamily *string
	TextColor  *string
	FontSize   *string
	TimeFormat *int
	ShowDate   *bool
}

type UsageOutput struct {
	UsedBytes      int
	Keys           int
	SpaceAvailable bool
}
