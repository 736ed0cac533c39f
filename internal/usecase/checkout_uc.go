// File: internal/usecase/checkout_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"school-platform/internal/domain"
	"school-platform/internal/domain/model"
	"school-platform/internal/domain/ports/adapter"
	"school-platform/internal/domain/ports/repository"
)

// Compile-time check
var _ CheckoutUseCase = (*checkoutUC)(nil)

type CheckoutUseCase interface {
	// Checkout charges the provider for everything in the cart, persists the
	// order, mints one access code per purchased book and clears the cart.
	Checkout(ctx context.Context, cartID string) (*model.Order, []string, error)
}

type checkoutUC struct {
	carts    CartStore
	books    repository.BookRepository
	orders   repository.OrderRepository
	codes    repository.AccessCodeRepository
	provider adapter.PaymentProvider
	log      *zerolog.Logger
}

func NewCheckoutUseCase(
	carts CartStore,
	books repository.BookRepository,
	orders repository.OrderRepository,
	codes repository.AccessCodeRepository,
	provider adapter.PaymentProvider,
	logger *zerolog.Logger,
) *checkoutUC {
	l := logger.With().Str("component", "CheckoutUC").Logger()
	return &checkoutUC{carts: carts, books: books, orders: orders, codes: codes, provider: provider, log: &l}
}

func (u *checkoutUC) Checkout(ctx context.Context, cartID string) (*model.Order, []string, error) {
	if cartID == "" {
		return nil, nil, domain.ErrInvalidArgument
	}
	cart, err := u.carts.Get(ctx, cartID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil, domain.ErrCartEmpty
	}
	if err != nil {
		return nil, nil, err
	}
	if len(cart.Items) == 0 {
		return nil, nil, domain.ErrCartEmpty
	}

	items := make([]model.OrderItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		book, err := u.books.FindByID(ctx, it.BookID)
		if err != nil {
			return nil, nil, err
		}
		items = append(items, model.OrderItem{BookID: book.ID, Title: book.Title, PriceIRR: book.PriceIRR})
	}

	order, err := model.NewOrder(uuid.NewString(), cartID, items)
	if err != nil {
		return nil, nil, err
	}
	if err := u.orders.Save(ctx, order); err != nil {
		return nil, nil, err
	}

	desc := fmt.Sprintf("order %s (%d items)", order.ID, len(items))
	txRef, err := u.provider.Charge(ctx, order.AmountIRR, desc, map[string]interface{}{"order_id": order.ID})
	if err != nil {
		_ = u.orders.UpdateStatus(ctx, order.ID, model.OrderStatusFailed, nil)
		u.log.Warn().Err(err).Str("order_id", order.ID).Msg("charge declined")
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrPaymentDeclined, err)
	}
	if err := u.orders.UpdateStatus(ctx, order.ID, model.OrderStatusPaid, &txRef); err != nil {
		return nil, nil, err
	}
	order.Status = model.OrderStatusPaid
	order.TxRef = &txRef

	codes := make([]string, 0, len(items))
	for _, it := range items {
		code, err := generateAccessCode()
		if err != nil {
			return nil, nil, err
		}
		ac := &model.AccessCode{
			ID:        uuid.NewString(),
			Code:      code,
			BookID:    it.BookID,
			OrderID:   &order.ID,
			Active:    true,
			CreatedAt: time.Now(),
		}
		if err := u.codes.Save(ctx, ac); err != nil {
			return nil, nil, err
		}
		codes = append(codes, code)
	}

	if err := u.carts.Delete(ctx, cartID); err != nil {
		// The order is already paid; a stale cart is not worth failing over.
		u.log.Warn().Err(err).Str("cart_id", cartID).Msg("clearing cart failed")
	}
	u.log.Info().Str("order_id", order.ID).Int64("amount_irr", order.AmountIRR).Msg("checkout complete")
	return order, codes, nil
}
