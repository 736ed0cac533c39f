package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"school-platform/internal/domain"
	"school-platform/internal/domain/model"
	"school-platform/internal/domain/ports/repository"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Ensure interface compliance
var _ repository.AccessCodeRepository = (*PostgresAccessCodeRepo)(nil)

type PostgresAccessCodeRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresAccessCodeRepo(pool *pgxpool.Pool) *PostgresAccessCodeRepo {
	return &PostgresAccessCodeRepo{pool: pool}
}

func (r *PostgresAccessCodeRepo) Save(ctx context.Context, code *model.AccessCode) error {
	const sql = `
INSERT INTO access_codes (id, code, book_id, order_id, active, created_at, expires_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE
  SET active     = EXCLUDED.active,
      expires_at = EXCLUDED.expires_at;
`
	_, err := r.pool.Exec(ctx, sql,
		code.ID, code.Code, code.BookID, code.OrderID, code.Active, code.CreatedAt, code.ExpiresAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Unique collision on the human-readable code; vanishingly rare
			// with a 12-char alphabet but callers can simply regenerate.
			return domain.ErrAlreadyExists
		}
		return fmt.Errorf("Save access code: %w", err)
	}
	return nil
}

func (r *PostgresAccessCodeRepo) FindByCode(ctx context.Context, code string) (*model.AccessCode, error) {
	const sql = `
SELECT id, code, book_id, order_id, active, created_at, expires_at
  FROM access_codes
 WHERE code = $1;
`
	row := r.pool.QueryRow(ctx, sql, code)
	var ac model.AccessCode
	if err := row.Scan(&ac.ID, &ac.Code, &ac.BookID, &ac.OrderID, &ac.Active, &ac.CreatedAt, &ac.ExpiresAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrCodeNotFound
		}
		return nil, fmt.Errorf("FindByCode access code: %w", err)
	}
	return &ac, nil
}

func (r *PostgresAccessCodeRepo) ListByBook(ctx context.Context, bookID string) ([]*model.AccessCode, error) {
	const sql = `
SELECT id, code, book_id, order_id, active, created_at, expires_at
  FROM access_codes
 WHERE book_id = $1
 ORDER BY created_at;
`
	rows, err := r.pool.Query(ctx, sql, bookID)
	if err != nil {
		return nil, fmt.Errorf("ListByBook access codes: %w", err)
	}
	defer rows.Close()
	var out []*model.AccessCode
	for rows.Next() {
		var ac model.AccessCode
		if err := rows.Scan(&ac.ID, &ac.Code, &ac.BookID, &ac.OrderID, &ac.Active, &ac.CreatedAt, &ac.ExpiresAt); err != nil {
			return nil, err
		}
		out = append(out, &ac)
	}
	return out, rows.Err()
}

func (r *PostgresAccessCodeRepo) DeactivateExpired(ctx context.Context, now time.Time) (int, error) {
	const sql = `
UPDATE access_codes
   SET active = FALSE
 WHERE active = TRUE AND expires_at IS NOT NULL AND expires_at <= $1;
`
	tag, err := r.pool.Exec(ctx, sql, now)
	if err != nil {
		return 0, fmt.Errorf("DeactivateExpired access codes: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
