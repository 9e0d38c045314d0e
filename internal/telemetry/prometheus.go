package telemetry

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusSink maps recorded events onto a counter vector, plus a latency
// histogram fed from the duration_ms attribute when present.
type PrometheusSink struct {
	events    *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

func NewPrometheusSink(reg prometheus.Registerer) *PrometheusSink {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &PrometheusSink{
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "course_match",
			Name:      "events_total",
			Help:      "Availability pipeline events by type and skill category.",
		}, []string{"event", "category"}),
		durations: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "course_match",
			Name:      "event_duration_seconds",
			Help:      "Latency of timed pipeline events.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"event"}),
	}
}

func (s *PrometheusSink) Record(event string, attrs map[string]string) {
	category := ""
	if attrs != nil {
		category = attrs["category"]
	}
	s.events.WithLabelValues(event, category).Inc()

	if attrs == nil {
		return
	}
	if raw, ok := attrs["duration_ms"]; ok {
		if ms, err := strconv.ParseFloat(raw, 64); err == nil && ms >= 0 {
			s.durations.WithLabelValues(event).Observe(ms / 1000.0)
		}
	}
}

var _ Sink = (*PrometheusSink)(nil)
