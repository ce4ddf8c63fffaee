// Package metrics defines the service's prometheus collectors.
package metrics

import (
	"logistics/internal/core/domain/model/delivery"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics implements commands.Observer and carries the HTTP collectors.
type Metrics struct {
	escrowDeposited prometheus.Counter
	escrowDisbursed *prometheus.CounterVec
	outboxPublished prometheus.Counter

	HTTPRequestsTotal      *prometheus.CounterVec
	HTTPRequestDuration    *prometheus.HistogramVec
	RateLimitExceededTotal prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		escrowDeposited: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "escrow_deposited_total",
			Help: "Total amount deposited into delivery escrows",
		}),
		escrowDisbursed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_disbursed_total",
				Help: "Total amount paid out of delivery escrows",
			},
			[]string{"kind"},
		),
		outboxPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "outbox_published_total",
			Help: "Total number of outbox messages published to the broker",
		}),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		RateLimitExceededTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "rate_limit_exceeded_total",
			Help: "Total number of rejected HTTP requests due to rate limiting",
		}),
	}

	reg.MustRegister(
		m.escrowDeposited,
		m.escrowDisbursed,
		m.outboxPublished,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.RateLimitExceededTotal,
	)

	return m
}

func (m *Metrics) EscrowDeposited(amount uint64) {
	m.escrowDeposited.Add(float64(amount))
}

func (m *Metrics) EscrowDisbursed(kind delivery.PayoutKind, amount uint64) {
	m.escrowDisbursed.WithLabelValues(string(kind)).Add(float64(amount))
}

func (m *Metrics) OutboxPublished(count int) {
	m.outboxPublished.Add(float64(count))
}
