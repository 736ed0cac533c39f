// File: internal/usecase/ticket_uc.go
package usecase

import (
	"context"
	"encoding/json"
	"net/url"
	"time"

	"github.com/oklog/ulid/v2"

	"school-platform/internal/domain"
	"school-platform/internal/domain/model"
	"school-platform/internal/domain/ports/adapter"
)

// Compile-time check
var _ TicketUseCase = (*ticketUC)(nil)

// ReplayGuard remembers redeemed ticket nonces until the ticket expires.
// It is an optional hardening layer: without it the gateway is stateless and
// a ticket validates any number of times inside its TTL window.
type ReplayGuard interface {
	// FirstUse records the nonce and reports whether this was its first use.
	FirstUse(ctx context.Context, nonce string, ttl time.Duration) (bool, error)
}

type TicketUseCase interface {
	// Issue mints a signed viewer ticket for a resolved resource locator.
	// The TTL is bounded by model.MaxTicketTTL; requests above the ceiling
	// are rejected, never clamped.
	Issue(resourceLocator string, claims model.ScopeClaims, ttl time.Duration) (string, error)
	// Validate redeems a ticket string at the given time and returns the
	// embedded resource locator. Failure kinds (malformed, tampered,
	// expired, replayed) are distinct errors for telemetry; callers must
	// collapse them before they reach a client.
	Validate(ctx context.Context, token string, now time.Time) (string, error)
}

type ticketUC struct {
	signer adapter.ClaimSigner
	guard  ReplayGuard // nil disables replay protection
	now    func() time.Time
}

// NewTicketUseCase constructs the issuer/validator pair. guard may be nil.
func NewTicketUseCase(signer adapter.ClaimSigner, guard ReplayGuard) *ticketUC {
	return &ticketUC{signer: signer, guard: guard, now: time.Now}
}

func (u *ticketUC) Issue(resourceLocator string, claims model.ScopeClaims, ttl time.Duration) (string, error) {
	if err := claims.Validate(); err != nil {
		return "", err
	}
	loc, err := url.Parse(resourceLocator)
	if err != nil || !loc.IsAbs() || loc.Host == "" {
		return "", domain.ErrInvalidArgument
	}
	if ttl <= 0 || ttl > model.MaxTicketTTL {
		return "", domain.ErrInvalidArgument
	}

	issuedAt := u.now()
	tc := model.TicketClaims{
		Sub:        model.TicketScopeViewer,
		Subject:    claims.Subject,
		AccessCode: claims.AccessCode,
		URL:        resourceLocator,
		IssuedAt:   issuedAt.Unix(),
		ExpiresAt:  issuedAt.Add(ttl).Unix(),
	}
	if u.guard != nil {
		tc.Nonce = ulid.Make().String()
	}
	payload, err := json.Marshal(&tc)
	if err != nil {
		return "", err
	}
	return u.signer.Encode(payload), nil
}

func (u *ticketUC) Validate(ctx context.Context, token string, now time.Time) (string, error) {
	payload, err := u.signer.Decode(token)
	if err != nil {
		return "", err
	}
	var tc model.TicketClaims
	if err := json.Unmarshal(payload, &tc); err != nil {
		return "", domain.ErrMalformedToken
	}
	// A well-signed token with the wrong scope or no locator is not a viewer
	// ticket at all.
	if tc.Sub != model.TicketScopeViewer || tc.URL == "" {
		return "", domain.ErrMalformedToken
	}
	if tc.Expired(now) {
		return "", domain.ErrExpiredTicket
	}
	if u.guard != nil && tc.Nonce != "" {
		remaining := time.Unix(tc.ExpiresAt, 0).Sub(now)
		first, err := u.guard.FirstUse(ctx, tc.Nonce, remaining)
		if err != nil {
			return "", err
		}
		if !first {
			return "", domain.ErrReplayedTicket
		}
	}
	return tc.URL, nil
}
