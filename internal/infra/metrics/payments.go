package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		chargesTotal,
		chargedAmountIRR,
		accessCodesMintedTotal,
		accessCodesDeactivatedTotal,
	)
}

var (
	chargesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_charges_total",
			Help: "Checkout charge attempts by provider and outcome.",
		},
		[]string{"provider", "outcome"}, // outcome: 'paid', 'declined'
	)

	chargedAmountIRR = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_charged_amount_irr_total",
			Help: "Total amount charged successfully, in IRR.",
		},
	)

	accessCodesMintedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "access_codes_minted_total",
			Help: "Access codes minted by checkout and the admin API.",
		},
	)

	accessCodesDeactivatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "access_codes_deactivated_total",
			Help: "Expired access codes deactivated by the cleanup worker.",
		},
	)
)

func IncCharge(provider, outcome string) {
	chargesTotal.WithLabelValues(provider, outcome).Inc()
}

func AddChargedAmount(amountIRR int64) {
	chargedAmountIRR.Add(float64(amountIRR))
}

func AddAccessCodesMinted(n int) {
	accessCodesMintedTotal.Add(float64(n))
}

func AddAccessCodesDeactivated(n int) {
	accessCodesDeactivatedTotal.Add(float64(n))
}
