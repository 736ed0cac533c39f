package repository

import (
	"context"

	"school-platform/internal/domain/model"
)

// OrderRepository is the port for checkout order persistence.
type OrderRepository interface {
	Save(ctx context.Context, order *model.Order) error
	FindByID(ctx context.Context, id string) (*model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus, txRef *string) error
}
