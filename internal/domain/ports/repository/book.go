package repository

import (
	"context"

	"school-platform/internal/domain/model"
)

// BookRepository is the port for catalog persistence.
type BookRepository interface {
	Save(ctx context.Context, book *model.Book) error
	FindByID(ctx context.Context, id string) (*model.Book, error)
	ListActive(ctx context.Context) ([]*model.Book, error)
	Delete(ctx context.Context, id string) error
}
