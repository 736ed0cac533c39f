package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func init() {
	register(
		ticketsIssuedTotal,
		ticketValidationsTotal,
		ticketValidationSeconds,
	)
}

var (
	ticketsIssuedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_issued_total",
			Help: "Total number of viewer tickets issued by the redeem flow.",
		},
	)

	ticketValidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_validations_total",
			Help: "Ticket validation outcomes at the gateway.",
		},
		[]string{"result"}, // 'ok', 'malformed', 'tampered', 'expired', 'replayed', 'error'
	)

	ticketValidationSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "ticket_validation_seconds",
			Help:    "Latency of ticket validation including the replay guard.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func IncTicketsIssued() {
	ticketsIssuedTotal.Inc()
}

func IncTicketValidation(result string) {
	ticketValidationsTotal.WithLabelValues(result).Inc()
}

func ObserveTicketValidation(d time.Duration) {
	ticketValidationSeconds.Observe(d.Seconds())
}
