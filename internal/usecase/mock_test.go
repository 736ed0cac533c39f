//go:build !integration

package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"school-platform/internal/domain"
	"school-platform/internal/domain/model"
	"school-platform/internal/domain/ports/adapter"
	"school-platform/internal/domain/ports/repository"
)

// -----------------------------
// In-memory repositories
// -----------------------------

type memBookRepo struct {
	mu   sync.Mutex
	byID map[string]*model.Book
}

var _ repository.BookRepository = (*memBookRepo)(nil)

func newMemBookRepo() *memBookRepo { return &memBookRepo{byID: map[string]*model.Book{}} }

func (m *memBookRepo) Save(ctx context.Context, book *model.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *book
	m.byID[book.ID] = &cp
	return nil
}

func (m *memBookRepo) FindByID(ctx context.Context, id string) (*model.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *memBookRepo) ListActive(ctx context.Context) ([]*model.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Book
	for _, b := range m.byID {
		if b.Active {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memBookRepo) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memAccessCodeRepo struct {
	mu     sync.Mutex
	byCode map[string]*model.AccessCode
}

var _ repository.AccessCodeRepository = (*memAccessCodeRepo)(nil)

func newMemAccessCodeRepo() *memAccessCodeRepo {
	return &memAccessCodeRepo{byCode: map[string]*model.AccessCode{}}
}

func (m *memAccessCodeRepo) Save(ctx context.Context, code *model.AccessCode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *code
	m.byCode[code.Code] = &cp
	return nil
}

func (m *memAccessCodeRepo) FindByCode(ctx context.Context, code string) (*model.AccessCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ac, ok := m.byCode[code]
	if !ok {
		return nil, domain.ErrCodeNotFound
	}
	cp := *ac
	return &cp, nil
}

func (m *memAccessCodeRepo) ListByBook(ctx context.Context, bookID string) ([]*model.AccessCode, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.AccessCode
	for _, ac := range m.byCode {
		if ac.BookID == bookID {
			cp := *ac
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memAccessCodeRepo) DeactivateExpired(ctx context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, ac := range m.byCode {
		if ac.Active && ac.ExpiresAt != nil && !now.Before(*ac.ExpiresAt) {
			ac.Active = false
			n++
		}
	}
	return n, nil
}

type memOrderRepo struct {
	mu   sync.Mutex
	byID map[string]*model.Order
}

var _ repository.OrderRepository = (*memOrderRepo)(nil)

func newMemOrderRepo() *memOrderRepo { return &memOrderRepo{byID: map[string]*model.Order{}} }

func (m *memOrderRepo) Save(ctx context.Context, order *model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *order
	m.byID[order.ID] = &cp
	return nil
}

func (m *memOrderRepo) FindByID(ctx context.Context, id string) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memOrderRepo) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, txRef *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	o.Status = status
	o.TxRef = txRef
	o.UpdatedAt = time.Now()
	return nil
}

// -----------------------------
// Cart store
// -----------------------------

type memCartStore struct {
	mu   sync.Mutex
	byID map[string]*model.Cart
}

var _ CartStore = (*memCartStore)(nil)

func newMemCartStore() *memCartStore { return &memCartStore{byID: map[string]*model.Cart{}} }

func (m *memCartStore) Get(ctx context.Context, cartID string) (*model.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[cartID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	cp.Items = append([]model.CartItem(nil), c.Items...)
	return &cp, nil
}

func (m *memCartStore) Save(ctx context.Context, cart *model.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *cart
	cp.Items = append([]model.CartItem(nil), cart.Items...)
	m.byID[cart.ID] = &cp
	return nil
}

func (m *memCartStore) Delete(ctx context.Context, cartID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.byID, cartID)
	return nil
}

// -----------------------------
// Payment provider
// -----------------------------

type mockPaymentProvider struct {
	mu      sync.Mutex
	seq     int
	Charges []int64

	ChargeFunc func(ctx context.Context, amountIRR int64, description string, meta map[string]interface{}) (string, error)
}

var _ adapter.PaymentProvider = (*mockPaymentProvider)(nil)

func (p *mockPaymentProvider) Name() string { return "mock" }

func (p *mockPaymentProvider) Charge(ctx context.Context, amountIRR int64, description string, meta map[string]interface{}) (string, error) {
	if p.ChargeFunc != nil {
		return p.ChargeFunc(ctx, amountIRR, description, meta)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	p.Charges = append(p.Charges, amountIRR)
	return fmt.Sprintf("tx-%d", p.seq), nil
}
