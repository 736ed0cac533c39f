// File: internal/infra/adapters/resolver/repo_resolver.go
package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"school-platform/internal/domain"
	"school-platform/internal/domain/ports/adapter"
	"school-platform/internal/domain/ports/repository"
)

var _ adapter.ContentResolver = (*RepoResolver)(nil)

// RepoResolver maps an access code to its book's content locator using the
// persistent repositories. Every rejection collapses to ErrCodeNotFound so a
// caller probing codes cannot tell "unknown" from "revoked" or "wrong subject".
type RepoResolver struct {
	codes repository.AccessCodeRepository
	books repository.BookRepository
	now   func() time.Time
}

func NewRepoResolver(codes repository.AccessCodeRepository, books repository.BookRepository) *RepoResolver {
	return &RepoResolver{codes: codes, books: books, now: time.Now}
}

func (r *RepoResolver) Resolve(ctx context.Context, subject, accessCode string) (string, error) {
	ac, err := r.codes.FindByCode(ctx, accessCode)
	if err != nil {
		if errors.Is(err, domain.ErrCodeNotFound) {
			return "", domain.ErrCodeNotFound
		}
		return "", fmt.Errorf("resolve code: %w", err)
	}
	if !ac.Usable(r.now()) {
		return "", domain.ErrCodeNotFound
	}
	book, err := r.books.FindByID(ctx, ac.BookID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", domain.ErrCodeNotFound
		}
		return "", fmt.Errorf("resolve book: %w", err)
	}
	// Sold codes keep resolving after a book is retired from the catalog, so
	// only the subject binding is checked here.
	if !strings.EqualFold(book.Subject, subject) {
		return "", domain.ErrCodeNotFound
	}
	return book.ContentURL, nil
}
