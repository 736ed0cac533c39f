package model

import (
	"time"

	"school-platform/internal/domain"
)

type OrderStatus string

const (
	OrderStatusPending OrderStatus = "pending"
	OrderStatusPaid    OrderStatus = "paid"
	OrderStatusFailed  OrderStatus = "failed"
)

// OrderItem is one purchased book inside an order.
type OrderItem struct {
	BookID   string `json:"book_id"`
	Title    string `json:"title"`
	PriceIRR int64  `json:"price_irr"`
}

// Order records a checkout attempt against the payment provider. TxRef is
// the provider's transaction reference, set once the charge succeeds.
type Order struct {
	ID        string      `json:"id"`
	CartID    string      `json:"cart_id"`
	Items     []OrderItem `json:"items"`
	AmountIRR int64       `json:"amount_irr"`
	Status    OrderStatus `json:"status"`
	TxRef     *string     `json:"tx_ref,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewOrder validates and constructs a pending order.
func NewOrder(id, cartID string, items []OrderItem) (*Order, error) {
	if id == "" || cartID == "" || len(items) == 0 {
		return nil, domain.ErrInvalidArgument
	}
	var total int64
	for _, it := range items {
		total += it.PriceIRR
	}
	now := time.Now()
	return &Order{
		ID:        id,
		CartID:    cartID,
		Items:     items,
		AmountIRR: total,
		Status:    OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}
