package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	QuizAnswers = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutorbot_quiz_answers_total",
			Help: "Checked quiz answers by mode (quiz, mistakes) and result",
		},
		[]string{"mode", "result"},
	)

	CapabilityCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutorbot_capability_calls_total",
			Help: "Language model calls by capability and status",
		},
		[]string{"capability", "status"},
	)

	CapabilityDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tutorbot_capability_duration_seconds",
			Help:    "Duration of language model calls",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30},
		},
		[]string{"capability"},
	)

	Updates = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tutorbot_updates_total",
			Help: "Handled Telegram updates by kind",
		},
		[]string{"kind"},
	)
)

func init() {
	prometheus.MustRegister(QuizAnswers, CapabilityCalls, CapabilityDuration, Updates)
}

// Handler отдает метрики в формате Prometheus
func Handler() http.Handler {
	return promhttp.Handler()
}
