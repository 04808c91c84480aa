package metrics

// Recorder receives feature counters. NoopRecorder is the default when
// metrics are not configured.
type Recorder interface {
	IncTick(feature string)
	IncAlarmTriggered()
	IncAlarmMissed()
	IncTimerFinished()
	IncLapRecorded()
	IncStoreError(op string)
	IncFeedbackError(kind string)
}

type NoopRecorder struct{}

func (NoopRecorder) IncTick(string)          {}
func (NoopRecorder) IncAlarmTriggered()      {}
func (NoopRecorder) IncAlarmMissed()         {}
func (NoopRecorder) IncTimerFinished()       {}
func (NoopRecorder) IncLapRecorded()         {}
func (NoopRecorder) IncStoreError(string)    {}
func (NoopRecorder) IncFeedbackError(string) {}

// OrNoop returns r, or NoopRecorder when r is nil.
func OrNoop(r Recorder) Recorder {
	if r == nil {
		return NoopRecorder{}
	}
	return r
}
