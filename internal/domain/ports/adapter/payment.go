package adapter

import "context"

// PaymentProvider is the hex port for the external payment service. The
// provider is a black box: it accepts a charge request and returns its
// transaction reference, or an error when the charge is declined.
type PaymentProvider interface {
	Name() string

	// Charge submits a charge in IRR minor units and returns the provider's
	// transaction reference on success.
	Charge(ctx context.Context, amountIRR int64, description string, meta map[string]interface{}) (txRef string, err error)
}
