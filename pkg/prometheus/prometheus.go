package prometheus

import "github.com/prometheus/client_golang/prometheus"

var (
	CommandCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_commands_total",
			Help: "Count of processed commands",
		},
		[]string{"command", "status"},
	)
	CommandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bot_command_duration_seconds",
			Help:    "Time taken to process command",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"command"},
	)
	CallbackCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_callbacks_total",
			Help: "Count of processed callback events",
		},
		[]string{"event", "status"},
	)
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bot_active_sessions_total",
			Help: "Current number of browse sessions",
		},
	)

	CacheOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_cache_operations_total",
			Help: "Count of movie cache lookups by outcome",
		},
		[]string{"result"},
	)

	APIFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_api_failures_total",
			Help: "Count of failed API calls",
		},
		[]string{"method"},
	)

	MessagesSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_messages_sent_total",
			Help: "Count of sent messages",
		},
		[]string{"type"}, // text, photo, menu
	)
)

func Init() {
	prometheus.MustRegister(
		CommandCounter,
		CommandDuration,
		CallbackCounter,
		ActiveSessions,
		CacheOperations,
		APIFailures,
		MessagesSent,
	)
}
