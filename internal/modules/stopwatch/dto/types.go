package dto

type LapOutput struct {
	Number       int
	LapTime      int64
	TotalTime    int64
	Timestamp    int64
	LapDisplay   string
	TotalDisplay string
}

type StopwatchOutput struct {
	ElapsedMs int64
	Display   string
	Running   bool
	Precision int
	Laps      []LapOutput
}

type StatsOutput struct {
	Count     int
	Fastest   *LapOutput
	Slowest   *LapOutput
	AverageMs float64
	// AverageDisplay is empty when there are no laps.
	AverageDisplay string
}
