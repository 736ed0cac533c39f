package postgres

import (
	"context"
	"fmt"

	"school-platform/internal/domain"
	"school-platform/internal/domain/model"
	"school-platform/internal/domain/ports/repository"
	"school-platform/internal/infra/security"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Ensure interface compliance
var _ repository.BookRepository = (*PostgresBookRepo)(nil)

// PostgresBookRepo stores books with the content locator sealed at rest, so
// a database dump cannot bypass the ticket gateway.
type PostgresBookRepo struct {
	pool   *pgxpool.Pool
	cipher *security.ContentCipher
}

func NewPostgresBookRepo(pool *pgxpool.Pool, cipher *security.ContentCipher) *PostgresBookRepo {
	return &PostgresBookRepo{pool: pool, cipher: cipher}
}

func (r *PostgresBookRepo) Save(ctx context.Context, book *model.Book) error {
	sealed, err := r.cipher.Seal(book.ContentURL)
	if err != nil {
		return fmt.Errorf("seal content url: %w", err)
	}
	const sql = `
INSERT INTO books (id, subject, title, description, price_irr, content_url, active, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE
  SET subject     = EXCLUDED.subject,
      title       = EXCLUDED.title,
      description = EXCLUDED.description,
      price_irr   = EXCLUDED.price_irr,
      content_url = EXCLUDED.content_url,
      active      = EXCLUDED.active;
`
	_, err = r.pool.Exec(ctx, sql,
		book.ID, book.Subject, book.Title, book.Description, book.PriceIRR, sealed, book.Active, book.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Save book: %w", err)
	}
	return nil
}

func (r *PostgresBookRepo) scan(row pgx.Row) (*model.Book, error) {
	var b model.Book
	var sealed string
	if err := row.Scan(&b.ID, &b.Subject, &b.Title, &b.Description, &b.PriceIRR, &sealed, &b.Active, &b.CreatedAt); err != nil {
		return nil, err
	}
	url, err := r.cipher.Open(sealed)
	if err != nil {
		return nil, fmt.Errorf("open content url: %w", err)
	}
	b.ContentURL = url
	return &b, nil
}

func (r *PostgresBookRepo) FindByID(ctx context.Context, id string) (*model.Book, error) {
	const sql = `
SELECT id, subject, title, description, price_irr, content_url, active, created_at
  FROM books
 WHERE id = $1;
`
	b, err := r.scan(r.pool.QueryRow(ctx, sql, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("FindByID book: %w", err)
	}
	return b, nil
}

func (r *PostgresBookRepo) ListActive(ctx context.Context) ([]*model.Book, error) {
	const sql = `
SELECT id, subject, title, description, price_irr, content_url, active, created_at
  FROM books
 WHERE active = TRUE
 ORDER BY subject, title;
`
	rows, err := r.pool.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("ListActive books: %w", err)
	}
	defer rows.Close()
	var out []*model.Book
	for rows.Next() {
		b, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresBookRepo) Delete(ctx context.Context, id string) error {
	// Soft delete: codes already sold against the book must keep resolving.
	const sql = `UPDATE books SET active = FALSE WHERE id = $1;`
	tag, err := r.pool.Exec(ctx, sql, id)
	if err != nil {
		return fmt.Errorf("Delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
