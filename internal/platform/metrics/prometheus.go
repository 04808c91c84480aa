package metrics

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "vclock"

// PrometheusRecorder implements Recorder with Prometheus counters.
type PrometheusRecorder struct {
	registry        *prom.Registry
	ticks           *prom.CounterVec
	alarmsTriggered prom.Counter
	alarmsMissed    prom.Counter
	timersFinished  prom.Counter
	laps            prom.Counter
	storeErrors     *prom.CounterVec
	feedbackErrors  *prom.CounterVec
}

// NewPrometheusRecorder registers the vclock counters on reg (a fresh
// registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		registry: reg,
		ticks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "ticks_total",
			Help:      "Poll ticks processed per feature",
		}, []string{"feature"}),
		alarmsTriggered: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "alarms_triggered_total",
			Help:      "Alarms that fired",
		}),
		alarmsMissed: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "alarms_missed_total",
			Help:      "Alarm occurrences skipped because no poll observed the target minute",
		}),
		timersFinished: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "timers_finished_total",
			Help:      "Countdown timers that reached zero",
		}),
		laps: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "laps_recorded_total",
			Help:      "Stopwatch laps recorded",
		}),
		storeErrors: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Persistence failures by operation",
		}, []string{"op"}),
		feedbackErrors: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "feedback_errors_total",
			Help:      "Sound, notification and vibration failures by kind",
		}, []string{"kind"}),
	}
	reg.MustRegister(pr.ticks, pr.alarmsTriggered, pr.alarmsMissed, pr.timersFinished, pr.laps, pr.storeErrors, pr.feedbackErrors)
	return pr
}

func (p *PrometheusRecorder) IncTick(feature string) {
	p.ticks.WithLabelValues(feature).Inc()
}

func (p *PrometheusRecorder) IncAlarmTriggered() {
	p.alarmsTriggered.Inc()
}

func (p *PrometheusRecorder) IncAlarmMissed() {
	p.alarmsMissed.Inc()
}

func (p *PrometheusRecorder) IncTimerFinished() {
	p.timersFinished.Inc()
}

func (p *PrometheusRecorder) IncLapRecorded() {
	p.laps.Inc()
}

func (p *PrometheusRecorder) IncStoreError(op string) {
	p.storeErrors.WithLabelValues(op).Inc()
}

func (p *PrometheusRecorder) IncFeedbackError(k string) {
	p.feedbackErrors.WithLabelValues(k).Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (p *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}
