// File: internal/usecase/cart_uc.go
package usecase

import (
	"context"
	"errors"
	"time"

	"school-platform/internal/domain"
	"school-platform/internal/domain/model"
	"school-platform/internal/domain/ports/repository"
)

// CartStore is the port for transient cart state. The Redis implementation
// bounds every cart with a TTL; an abandoned cart simply evaporates.
type CartStore interface {
	Get(ctx context.Context, cartID string) (*model.Cart, error)
	Save(ctx context.Context, cart *model.Cart) error
	Delete(ctx context.Context, cartID string) error
}

// Compile-time check
var _ CartUseCase = (*cartUC)(nil)

type CartUseCase interface {
	Add(ctx context.Context, cartID, bookID string) (*model.Cart, error)
	Remove(ctx context.Context, cartID, bookID string) (*model.Cart, error)
	Get(ctx context.Context, cartID string) (*model.Cart, error)
	Clear(ctx context.Context, cartID string) error
}

type cartUC struct {
	carts CartStore
	books repository.BookRepository
}

func NewCartUseCase(carts CartStore, books repository.BookRepository) *cartUC {
	return &cartUC{carts: carts, books: books}
}

func (u *cartUC) load(ctx context.Context, cartID string) (*model.Cart, error) {
	cart, err := u.carts.Get(ctx, cartID)
	if errors.Is(err, domain.ErrNotFound) {
		return &model.Cart{ID: cartID}, nil
	}
	return cart, err
}

func (u *cartUC) Add(ctx context.Context, cartID, bookID string) (*model.Cart, error) {
	if cartID == "" || bookID == "" {
		return nil, domain.ErrInvalidArgument
	}
	book, err := u.books.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if !book.Active {
		return nil, domain.ErrNotFound
	}

	cart, err := u.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if !cart.Contains(bookID) {
		cart.Items = append(cart.Items, model.CartItem{BookID: bookID})
	}
	cart.UpdatedAt = time.Now()
	if err := u.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (u *cartUC) Remove(ctx context.Context, cartID, bookID string) (*model.Cart, error) {
	if cartID == "" || bookID == "" {
		return nil, domain.ErrInvalidArgument
	}
	cart, err := u.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	kept := cart.Items[:0]
	for _, it := range cart.Items {
		if it.BookID != bookID {
			kept = append(kept, it)
		}
	}
	cart.Items = kept
	cart.UpdatedAt = time.Now()
	if err := u.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (u *cartUC) Get(ctx context.Context, cartID string) (*model.Cart, error) {
	if cartID == "" {
		return nil, domain.ErrInvalidArgument
	}
	return u.load(ctx, cartID)
}

func (u *cartUC) Clear(ctx context.Context, cartID string) error {
	if cartID == "" {
		return domain.ErrInvalidArgument
	}
	return u.carts.Delete(ctx, cartID)
}
