package dto

type SetAlarmInput struct {
	Hour     int
	Minute   int
	Meridian string
	Sound    string
	// Repeat keeps the current setting when nil.
	Repeat *bool
	Title  string
}

// SettingsUpdate changes only the fields that are set. Hour, Minute and
// Meridian are validated together.
type SettingsUpdate struct {
	Hour     *int
	Minute   *int
	Meridian *string
	Sound    *string
	Repeat   *bool
	Title    *string
}

type AlarmOutput struct {
	Hour      int
	Minute    int
	Meridian  string
	Sound     string
	Repeat    bool
	Title     string
	IsActive  bool
	Triggered bool
	Display   string
}

type TimeUntilOutput struct {
	Hours   int64
	Minutes int64
	Seconds int64
}
