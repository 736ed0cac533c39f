package repository

import (
	"context"
	"time"

	"school-platform/internal/domain/model"
)

// AccessCodeRepository is the port for managing entitlement codes.
type AccessCodeRepository interface {
	// Save creates or updates an access code.
	Save(ctx context.Context, code *model.AccessCode) error
	// FindByCode finds a code by its human-readable form.
	FindByCode(ctx context.Context, code string) (*model.AccessCode, error)
	// ListByBook returns all codes minted for a book.
	ListByBook(ctx context.Context, bookID string) ([]*model.AccessCode, error)
	// DeactivateExpired flips Active off for codes past their expiry and
	// returns how many were touched.
	DeactivateExpired(ctx context.Context, now time.Time) (int, error)
}
