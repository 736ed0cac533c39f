package model

import (
	"time"

	"school-platform/internal/domain"
)

// Book is a licensed digital title sold through the catalog. ContentURL is
// the absolute locator of the hosted content at the provider; it is never
// exposed to clients directly, only through the ticket gateway.
type Book struct {
	ID          string `json:"id"`
	Subject     string `json:"subject"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	PriceIRR    int64  `json:"price_irr"`
	ContentURL  string `json:"-"`
	Active      bool   `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

func (b *Book) IsZero() bool { return b == nil || b.ID == "" }

// NewBook validates and constructs a book.
func NewBook(id, subject, title, contentURL string, priceIRR int64) (*Book, error) {
	if id == "" || subject == "" || title == "" || contentURL == "" || priceIRR < 0 {
		return nil, domain.ErrInvalidArgument
	}
	return &Book{
		ID:         id,
		Subject:    subject,
		Title:      title,
		ContentURL: contentURL,
		PriceIRR:   priceIRR,
		Active:     true,
		CreatedAt:  time.Now(),
	}, nil
}
