package dto

import "time"

type DurationInput struct {
	Hours   int
	Minutes int
	Seconds int
}

// SettingsUpdate changes only the fields that are set.
type SettingsUpdate struct {
	Sound     *string
	Title     *string
	AutoStart *bool
}

type TimerOutput struct {
	State       string
	Mode        string
	RemainingMs int64
	TotalMs     int64
	Progress    float64
	Display     string
	Hours       int
	Minutes     int
	Seconds     int
	TargetDate  *time.Time
	Sound       string
	Title       string
	AutoStart   bool
}

type PresetOutput struct {
	Label   string
	Seconds int
}
