package model

import "time"

// Cart is transient pre-checkout state, kept in Redis keyed by a client-held
// cart id. It never outlives its TTL and is cleared on successful checkout.
type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type CartItem struct {
	BookID string `json:"book_id"`
}

// Contains reports whether the cart already holds the given book.
func (c *Cart) Contains(bookID string) bool {
	for _, it := range c.Items {
		if it.BookID == bookID {
			return true
		}
	}
	return false
}
