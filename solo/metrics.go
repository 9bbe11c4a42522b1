package solo

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "quilibrium"
	subsystem        = "wasmlib"
)

var (
	// Host call metrics
	HostCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "host_calls_total",
			Help:      "Total number of sandbox host calls",
		},
		[]string{"function"},
	)

	HostCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "host_call_duration_seconds",
			Help:      "Time taken to serve a sandbox host call",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"function"},
	)

	HostCallErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "host_call_errors_total",
			Help:      "Total number of failed sandbox host calls",
		},
		[]string{"function"},
	)

	// Request metrics
	InvocationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "invocations_total",
			Help:      "Total number of contract invocations",
		},
		[]string{"status"}, // status: success, aborted, error
	)
)
