// File: internal/usecase/catalog_uc.go
package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"school-platform/internal/domain"
	"school-platform/internal/domain/model"
	"school-platform/internal/domain/ports/repository"
)

// Compile-time check
var _ CatalogUseCase = (*catalogUC)(nil)

// CatalogUseCase manages the book catalog and the entitlement codes minted
// against it.
type CatalogUseCase interface {
	Create(ctx context.Context, subject, title, description, contentURL string, priceIRR int64) (*model.Book, error)
	Update(ctx context.Context, book *model.Book) error
	Get(ctx context.Context, id string) (*model.Book, error)
	List(ctx context.Context) ([]*model.Book, error)
	Delete(ctx context.Context, id string) error
	// GenerateAccessCodes mints count fresh codes for a book, optionally
	// bounded by an expiry, and returns the human-readable code strings.
	GenerateAccessCodes(ctx context.Context, bookID string, count int, expiresAt *time.Time) ([]string, error)
}

type catalogUC struct {
	books repository.BookRepository
	codes repository.AccessCodeRepository
}

func NewCatalogUseCase(books repository.BookRepository, codes repository.AccessCodeRepository) *catalogUC {
	return &catalogUC{books: books, codes: codes}
}

func (u *catalogUC) Create(ctx context.Context, subject, title, description, contentURL string, priceIRR int64) (*model.Book, error) {
	book, err := model.NewBook(uuid.NewString(), subject, title, contentURL, priceIRR)
	if err != nil {
		return nil, err
	}
	book.Description = description
	if err := u.books.Save(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

func (u *catalogUC) Update(ctx context.Context, book *model.Book) error {
	if book.IsZero() {
		return domain.ErrInvalidArgument
	}
	if _, err := u.books.FindByID(ctx, book.ID); err != nil {
		return err
	}
	return u.books.Save(ctx, book)
}

func (u *catalogUC) Get(ctx context.Context, id string) (*model.Book, error) {
	if id == "" {
		return nil, domain.ErrInvalidArgument
	}
	return u.books.FindByID(ctx, id)
}

func (u *catalogUC) List(ctx context.Context) ([]*model.Book, error) {
	return u.books.ListActive(ctx)
}

func (u *catalogUC) Delete(ctx context.Context, id string) error {
	if id == "" {
		return domain.ErrInvalidArgument
	}
	return u.books.Delete(ctx, id)
}

func (u *catalogUC) GenerateAccessCodes(ctx context.Context, bookID string, count int, expiresAt *time.Time) ([]string, error) {
	if count <= 0 {
		return nil, domain.ErrInvalidArgument
	}
	if _, err := u.books.FindByID(ctx, bookID); err != nil {
		return nil, err
	}

	out := make([]string, 0, count)
	for i := 0; i < count; i++ {
		code, err := generateAccessCode()
		if err != nil {
			return nil, err
		}
		ac := &model.AccessCode{
			ID:        uuid.NewString(),
			Code:      code,
			BookID:    bookID,
			Active:    true,
			CreatedAt: time.Now(),
			ExpiresAt: expiresAt,
		}
		if err := u.codes.Save(ctx, ac); err != nil {
			return nil, err
		}
		out = append(out, code)
	}
	return out, nil
}
