package dto

import "time"

type PlayInput struct {
	Sound  string
	Loop   bool
	Volume float64
}

type TestInput struct {
	Sound    string
	Duration time.Duration
}

type NotifyInput struct {
	Title              string
	Body               string
	Icon               string
	Tag                string
	RequireInteraction bool
}

type PlaybackStatus struct {
	Playing      bool
	CurrentSound string
	Pending      bool
}

type SoundOutput struct {
	ID   string
	Name string
	File string
}
