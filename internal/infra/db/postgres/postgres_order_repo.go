package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"school-platform/internal/domain"
	"school-platform/internal/domain/model"
	"school-platform/internal/domain/ports/repository"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Ensure interface compliance
var _ repository.OrderRepository = (*PostgresOrderRepo)(nil)

type PostgresOrderRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresOrderRepo(pool *pgxpool.Pool) *PostgresOrderRepo {
	return &PostgresOrderRepo{pool: pool}
}

func (r *PostgresOrderRepo) Save(ctx context.Context, order *model.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("marshal order items: %w", err)
	}
	const sql = `
INSERT INTO orders (id, cart_id, items, amount_irr, status, tx_ref, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE
  SET status     = EXCLUDED.status,
      tx_ref     = EXCLUDED.tx_ref,
      updated_at = EXCLUDED.updated_at;
`
	_, err = r.pool.Exec(ctx, sql,
		order.ID, order.CartID, items, order.AmountIRR, string(order.Status), order.TxRef, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("Save order: %w", err)
	}
	return nil
}

func (r *PostgresOrderRepo) FindByID(ctx context.Context, id string) (*model.Order, error) {
	const sql = `
SELECT id, cart_id, items, amount_irr, status, tx_ref, created_at, updated_at
  FROM orders
 WHERE id = $1;
`
	row := r.pool.QueryRow(ctx, sql, id)
	var o model.Order
	var items []byte
	var status string
	if err := row.Scan(&o.ID, &o.CartID, &items, &o.AmountIRR, &status, &o.TxRef, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("FindByID order: %w", err)
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("unmarshal order items: %w", err)
	}
	o.Status = model.OrderStatus(status)
	return &o, nil
}

func (r *PostgresOrderRepo) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, txRef *string) error {
	const sql = `
UPDATE orders
   SET status = $2, tx_ref = $3, updated_at = $4
 WHERE id = $1;
`
	tag, err := r.pool.Exec(ctx, sql, id, string(status), txRef, time.Now())
	if err != nil {
		return fmt.Errorf("UpdateStatus order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
