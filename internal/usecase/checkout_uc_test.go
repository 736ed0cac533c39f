//go:build !integration

package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"school-platform/internal/domain"
	"school-platform/internal/domain/model"
)

type checkoutFixture struct {
	carts    *memCartStore
	books    *memBookRepo
	orders   *memOrderRepo
	codes    *memAccessCodeRepo
	provider *mockPaymentProvider
	uc       *checkoutUC
}

func newCheckoutFixture(t *testing.T) *checkoutFixture {
	t.Helper()
	f := &checkoutFixture{
		carts:    newMemCartStore(),
		books:    newMemBookRepo(),
		orders:   newMemOrderRepo(),
		codes:    newMemAccessCodeRepo(),
		provider: &mockPaymentProvider{},
	}
	logger := zerolog.Nop()
	f.uc = NewCheckoutUseCase(f.carts, f.books, f.orders, f.codes, f.provider, &logger)
	return f
}

func TestCheckoutUC_HappyPath(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newCheckoutFixture(t)
	seedBook(t, f.books, "bio", "Biology", 450_000)
	seedBook(t, f.books, "chem", "Chemistry", 390_000)
	cartUC := NewCartUseCase(f.carts, f.books)
	if _, err := cartUC.Add(ctx, "cart-1", "bio"); err != nil {
		t.Fatalf("Add bio: %v", err)
	}
	if _, err := cartUC.Add(ctx, "cart-1", "chem"); err != nil {
		t.Fatalf("Add chem: %v", err)
	}

	order, codes, err := f.uc.Checkout(ctx, "cart-1")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if order.Status != model.OrderStatusPaid {
		t.Fatalf("expected paid order, got %s", order.Status)
	}
	if order.AmountIRR != 840_000 {
		t.Fatalf("expected total 840000, got %d", order.AmountIRR)
	}
	if order.TxRef == nil || *order.TxRef == "" {
		t.Fatalf("expected provider tx ref on paid order")
	}
	if len(codes) != 2 {
		t.Fatalf("expected one access code per book, got %d", len(codes))
	}
	for _, c := range codes {
		ac, err := f.codes.FindByCode(ctx, c)
		if err != nil {
			t.Fatalf("stored code %q: %v", c, err)
		}
		if ac.OrderID == nil || *ac.OrderID != order.ID {
			t.Fatalf("code %q not linked to order", c)
		}
	}

	// Cart is cleared after a successful checkout.
	if _, err := f.carts.Get(ctx, "cart-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected cart to be gone, got %v", err)
	}

	// The provider saw exactly one charge for the order total.
	if len(f.provider.Charges) != 1 || f.provider.Charges[0] != 840_000 {
		t.Fatalf("unexpected charges %v", f.provider.Charges)
	}
}

func TestCheckoutUC_EmptyCart(t *testing.T) {
	t.Parallel()

	f := newCheckoutFixture(t)
	if _, _, err := f.uc.Checkout(context.Background(), "nope"); !errors.Is(err, domain.ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
}

func TestCheckoutUC_ChargeDeclined(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newCheckoutFixture(t)
	seedBook(t, f.books, "bio", "Biology", 450_000)
	cartUC := NewCartUseCase(f.carts, f.books)
	if _, err := cartUC.Add(ctx, "cart-1", "bio"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	f.provider.ChargeFunc = func(ctx context.Context, amountIRR int64, description string, meta map[string]interface{}) (string, error) {
		return "", errors.New("insufficient funds")
	}

	_, _, err := f.uc.Checkout(ctx, "cart-1")
	if !errors.Is(err, domain.ErrPaymentDeclined) {
		t.Fatalf("expected ErrPaymentDeclined, got %v", err)
	}

	// The failed order is recorded and no codes were minted.
	var failed *model.Order
	for id := range f.orders.byID {
		failed = f.orders.byID[id]
	}
	if failed == nil || failed.Status != model.OrderStatusFailed {
		t.Fatalf("expected a failed order record, got %+v", failed)
	}
	if got, _ := f.codes.ListByBook(ctx, "bio"); len(got) != 0 {
		t.Fatalf("expected no codes after declined charge, got %d", len(got))
	}

	// The cart survives so the customer can retry.
	if _, err := f.carts.Get(ctx, "cart-1"); err != nil {
		t.Fatalf("expected cart to survive declined charge: %v", err)
	}
}
