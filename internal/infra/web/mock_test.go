//go:build !integration

package web

import (
	"context"
	"sync"
	"time"

	"school-platform/internal/domain"
	"school-platform/internal/domain/model"
	"school-platform/internal/usecase"
)

// stubResolver maps fixed subject/code pairs to locators.
type stubResolver struct {
	entries map[string]string // "subject|code" -> locator
	err     error
}

func (s *stubResolver) Resolve(ctx context.Context, subject, accessCode string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if url, ok := s.entries[subject+"|"+accessCode]; ok {
		return url, nil
	}
	return "", domain.ErrCodeNotFound
}

type mockCatalogUC struct {
	mu    sync.Mutex
	books map[string]*model.Book
	codes []string
}

var _ usecase.CatalogUseCase = (*mockCatalogUC)(nil)

func newMockCatalogUC() *mockCatalogUC {
	return &mockCatalogUC{books: make(map[string]*model.Book)}
}

func (m *mockCatalogUC) Create(ctx context.Context, subject, title, description, contentURL string, priceIRR int64) (*model.Book, error) {
	if subject == "" || title == "" || contentURL == "" {
		return nil, domain.ErrInvalidArgument
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b := &model.Book{ID: "b-" + title, Subject: subject, Title: title, Description: description, ContentURL: contentURL, PriceIRR: priceIRR, Active: true, CreatedAt: time.Now()}
	m.books[b.ID] = b
	return b, nil
}

func (m *mockCatalogUC) Update(ctx context.Context, book *model.Book) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[book.ID]; !ok {
		return domain.ErrNotFound
	}
	m.books[book.ID] = book
	return nil
}

func (m *mockCatalogUC) Get(ctx context.Context, id string) (*model.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.books[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *mockCatalogUC) List(ctx context.Context) ([]*model.Book, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.Book, 0, len(m.books))
	for _, b := range m.books {
		cp := *b
		out = append(out, &cp)
	}
	return out, nil
}

func (m *mockCatalogUC) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.books, id)
	return nil
}

func (m *mockCatalogUC) GenerateAccessCodes(ctx context.Context, bookID string, count int, expiresAt *time.Time) ([]string, error) {
	if count <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.books[bookID]; !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]string, count)
	for i := range out {
		out[i] = "TEST-CODE-000" + string(rune('1'+i))
		m.codes = append(m.codes, out[i])
	}
	return out, nil
}

type mockCartUC struct {
	mu    sync.Mutex
	carts map[string]*model.Cart
}

var _ usecase.CartUseCase = (*mockCartUC)(nil)

func newMockCartUC() *mockCartUC {
	return &mockCartUC{carts: make(map[string]*model.Cart)}
}

func (m *mockCartUC) Add(ctx context.Context, cartID, bookID string) (*model.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[cartID]
	if !ok {
		c = &model.Cart{ID: cartID}
		m.carts[cartID] = c
	}
	if !c.Contains(bookID) {
		c.Items = append(c.Items, model.CartItem{BookID: bookID})
	}
	c.UpdatedAt = time.Now()
	cp := *c
	return &cp, nil
}

func (m *mockCartUC) Remove(ctx context.Context, cartID, bookID string) (*model.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.carts[cartID]
	if !ok {
		c = &model.Cart{ID: cartID}
	}
	items := c.Items[:0]
	for _, it := range c.Items {
		if it.BookID != bookID {
			items = append(items, it)
		}
	}
	c.Items = items
	cp := *c
	return &cp, nil
}

func (m *mockCartUC) Get(ctx context.Context, cartID string) (*model.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.carts[cartID]; ok {
		cp := *c
		return &cp, nil
	}
	return &model.Cart{ID: cartID}, nil
}

func (m *mockCartUC) Clear(ctx context.Context, cartID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, cartID)
	return nil
}

type mockCheckoutUC struct {
	order *model.Order
	codes []string
	err   error
}

var _ usecase.CheckoutUseCase = (*mockCheckoutUC)(nil)

func (m *mockCheckoutUC) Checkout(ctx context.Context, cartID string) (*model.Order, []string, error) {
	if m.err != nil {
		return nil, nil, m.err
	}
	return m.order, m.codes, nil
}
