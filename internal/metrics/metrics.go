package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the client-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	apiCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodhub",
			Subsystem: "api",
			Name:      "calls_total",
			Help:      "Total number of REST calls by endpoint and outcome.",
		},
		[]string{"endpoint", "outcome"},
	)

	apiDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "foodhub",
			Subsystem: "api",
			Name:      "call_duration_seconds",
			Help:      "Duration of REST calls.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		},
		[]string{"endpoint"},
	)

	pushRouted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodhub",
			Subsystem: "push",
			Name:      "messages_total",
			Help:      "Push messages routed to a local notification channel.",
		},
		[]string{"channel"},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodhub",
			Subsystem: "mockapi",
			Name:      "requests_total",
			Help:      "Requests served by the development backend.",
		},
		[]string{"code", "method"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "foodhub",
			Subsystem: "mockapi",
			Name:      "request_duration_seconds",
			Help:      "Latency of requests served by the development backend.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

func init() {
	Registry.MustRegister(apiCalls, apiDuration, pushRouted, httpRequests, httpDuration)
}

// ObserveCall records one REST call.
func ObserveCall(endpoint, outcome string, elapsed time.Duration) {
	apiCalls.WithLabelValues(endpoint, outcome).Inc()
	apiDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// CallCounter returns the counter behind one endpoint/outcome pair.
func CallCounter(endpoint, outcome string) prometheus.Counter {
	return apiCalls.WithLabelValues(endpoint, outcome)
}

// PushCounter returns the counter of messages routed to channel.
func PushCounter(channel string) prometheus.Counter {
	return pushRouted.WithLabelValues(channel)
}

// ObservePush records one routed push message.
func ObservePush(channel string) {
	pushRouted.WithLabelValues(channel).Inc()
}

// InstrumentHandler counts and times every request served by next.
func InstrumentHandler(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerDuration(httpDuration,
		promhttp.InstrumentHandlerCounter(httpRequests, next))
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
