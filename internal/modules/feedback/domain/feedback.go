package domain

import "time"

const (
	DefaultAlarmSound   = "buzzer.mp3"
	DefaultTimerSound   = "classic-bell.mp3"
	TestVolume          = 0.7
	DefaultTestDuration = 3 * time.Second
)

var (
	AlarmVibration = []int{200, 100, 200, 100, 200}
	TimerVibration = []int{300, 100, 300, 100, 300}
)

type Sound struct {
	ID   string
	Name string
	File string
}

// Catalog lists the bundled sounds.
func Catalog() []Sound {
	return []Sound{
		{ID: "alarm-1", Name: "Classic Alarm", File: "alarm-1.mp3"},
		{ID: "alarm-2", Name: "Beep Beep", File: "alarm-2.mp3"},
		{ID: "alarm-3", Name: "Rooster", File: "alarm-3.mp3"},
		{ID: "alarm-4", Name: "Bell", File: "alarm-4.mp3"},
		{ID: "alarm-5", Name: "Chime", File: "alarm-5.mp3"},
		{ID: "alarm-6", Name: "Digital", File: "alarm-6.mp3"},
		{ID: "buzzer", Name: "Buzzer", File: DefaultAlarmSound},
		{ID: "classic-bell", Name: "Classic Bell", File: DefaultTimerSound},
	}
}

// ResolveSound accepts a catalog id or a file name and returns the file.
// Unknown names pass through so custom files keep working.
func ResolveSound(name string) string {
	for _, s := range Catalog() {
		if s.ID == name || s.File == name {
			return s.File
		}
	}
	return name
}

type PlayOptions struct {
	Loop   bool
	Volume float64
}

func ClampVolume(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

type Notification struct {
	Title              string `json:"title"`
	Body               string `json:"body"`
	Icon               string `json:"icon,omitempty"`
	Tag                string `json:"tag,omitempty"`
	RequireInteraction bool   `json:"requireInteraction,omitempty"`
}
