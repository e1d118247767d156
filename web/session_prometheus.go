package web

import "github.com/prometheus/client_golang/prometheus"

var (
	sessionRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "codestudio_arena",
			Subsystem: "session",
			Name:      "requests_total",
			Help:      "Session requests total.",
		},
		[]string{"path", "code"},
	)
	runCodeDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "codestudio_arena",
			Subsystem: "session",
			Name:      "run_code_duration_seconds",
			Help:      "RunCode duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"code", "language"},
	)
	submitCodeDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "codestudio_arena",
			Subsystem: "session",
			Name:      "submit_code_duration_seconds",
			Help:      "SubmitCode duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"code", "verdict"},
	)
	activeSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "codestudio_arena",
			Subsystem: "session",
			Name:      "active_sessions",
			Help:      "Contest sessions currently held in memory.",
		},
	)
	websocketClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "codestudio_arena",
			Subsystem: "notify",
			Name:      "websocket_clients",
			Help:      "Connected websocket clients.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		sessionRequestsTotal,
		runCodeDurationSeconds,
		submitCodeDurationSeconds,
		activeSessions,
		websocketClients,
	)
}
