package model

import "time"

// AccessCode is an entitlement code that unlocks viewer access to one book.
// Codes are minted at checkout (or by an admin) and stay redeemable until
// deactivated or past ExpiresAt; redeeming is not single-use, the code is
// the durable entitlement and the short-lived ticket is the capability.
type AccessCode struct {
	ID        string
	Code      string
	BookID    string
	OrderID   *string // nil for admin-minted codes
	Active    bool
	CreatedAt time.Time
	ExpiresAt *time.Time // nil means no expiry
}

// Usable reports whether the code can still be redeemed at the given time.
func (a *AccessCode) Usable(now time.Time) bool {
	if a == nil || !a.Active {
		return false
	}
	if a.ExpiresAt != nil && !now.Before(*a.ExpiresAt) {
		return false
	}
	return true
}
