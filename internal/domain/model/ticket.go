package model

import (
	"time"

	"school-platform/internal/domain"
)

// TicketScopeViewer is the scope literal carried by viewer tickets.
const TicketScopeViewer = "viewer"

// MaxTicketTTL is the policy ceiling on ticket lifetimes. Issue requests
// above it are rejected rather than clamped, so a caller can never mint a
// long-lived capability.
const MaxTicketTTL = 5 * time.Minute

// TicketClaims is the claim set embedded in a viewer ticket. The JSON field
// names are part of the wire format and must not change: the encoded ticket
// is base64url(JSON claims) joined with a keyed integrity code.
type TicketClaims struct {
	Sub        string `json:"sub"`
	Subject    string `json:"subject"`
	AccessCode string `json:"accessCode"`
	URL        string `json:"url"`
	IssuedAt   int64  `json:"iat"`
	ExpiresAt  int64  `json:"exp"`
	// Nonce is only populated when the replay guard is enabled; omitting it
	// otherwise keeps the default encoding identical across deployments.
	Nonce string `json:"jti,omitempty"`
}

// Expired reports whether the ticket is no longer fresh at the given time.
// A ticket is expired at exactly ExpiresAt, not one second later.
func (c *TicketClaims) Expired(now time.Time) bool {
	return now.Unix() >= c.ExpiresAt
}

// ScopeClaims are the caller-supplied claims bound into a ticket.
type ScopeClaims struct {
	Subject    string
	AccessCode string
}

// Validate checks that the required scope claims are present.
func (s ScopeClaims) Validate() error {
	if s.Subject == "" || s.AccessCode == "" {
		return domain.ErrInvalidArgument
	}
	return nil
}
