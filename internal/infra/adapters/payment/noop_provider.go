package payment

import (
	"context"
	"fmt"
	"sync"

	"school-platform/internal/domain/ports/adapter"
)

var _ adapter.PaymentProvider = (*NoopProvider)(nil)

// NoopProvider approves every charge and hands back a synthetic transaction
// reference. Used in development and tests; swap for a real gateway in prod.
type NoopProvider struct {
	mu      sync.Mutex
	seq     int64
	charges map[string]int64 // txRef -> amount (IRR)
}

func NewNoopProvider() *NoopProvider {
	return &NoopProvider{
		charges: make(map[string]int64),
	}
}

func (p *NoopProvider) Name() string { return "noop" }

func (p *NoopProvider) next() string {
	p.seq++
	return fmt.Sprintf("noop-%d", p.seq)
}

func (p *NoopProvider) Charge(ctx context.Context, amountIRR int64, description string, meta map[string]interface{}) (string, error) {
	if amountIRR <= 0 {
		return "", fmt.Errorf("noop: non-positive amount %d", amountIRR)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	txRef := p.next()
	p.charges[txRef] = amountIRR
	return txRef, nil
}

// Charged reports the amount recorded against a transaction reference.
func (p *NoopProvider) Charged(txRef string) (int64, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	amount, ok := p.charges[txRef]
	return amount, ok
}
