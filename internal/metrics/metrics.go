package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Broadcast loop metrics
var (
	TicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stream_ticks_total",
			Help: "Broadcast ticks that had at least one subscriber",
		},
	)

	SkippedTicksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "stream_skipped_ticks_total",
			Help: "Broadcast ticks skipped because no connection was registered",
		},
	)

	TickDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "stream_tick_duration_seconds",
			Help:    "Wall time spent processing one broadcast tick",
			Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2, 5},
		},
	)

	MessagesSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stream_messages_sent_total",
			Help: "Messages pushed to streaming clients by event",
		},
		[]string{"event"},
	)

	SendFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stream_send_failures_total",
			Help: "Failed pushes that caused a connection to be dropped, by event",
		},
		[]string{"event"},
	)

	FallbackPricesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stream_fallback_prices_total",
			Help: "Synthetic prices substituted because the quote source was unavailable",
		},
		[]string{"symbol"},
	)

	ConnectedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "stream_connected_clients",
			Help: "Currently registered streaming connections",
		},
	)
)

// Quote source metrics
var (
	QuoteRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_requests_total",
			Help: "Upstream quote requests by outcome (ok, error, empty, rejected)",
		},
		[]string{"outcome"},
	)

	QuoteCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quote_cache_lookups_total",
			Help: "Quote cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	// CircuitBreakerState tracks the upstream breaker (0=closed, 1=half-open, 2=open)
	CircuitBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "quote_circuit_breaker_state",
			Help: "Quote upstream circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
	)
)

// Processor metrics
var (
	TicksProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "processor_ticks_total",
			Help: "Tick messages consumed from Kafka by status",
		},
		[]string{"status"},
	)
)
