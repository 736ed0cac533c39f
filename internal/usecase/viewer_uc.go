// File: internal/usecase/viewer_uc.go
package usecase

import (
	"context"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"school-platform/internal/domain"
	"school-platform/internal/domain/model"
	"school-platform/internal/domain/ports/adapter"
)

// Compile-time check
var _ ViewerUseCase = (*viewerUC)(nil)

type ViewerUseCase interface {
	// Redeem exchanges a subject/access-code pair for a viewer URL embedding
	// a fresh ticket. The returned title echoes the subject.
	Redeem(ctx context.Context, subject, accessCode string) (viewerURL, title string, err error)
}

type viewerUC struct {
	resolver adapter.ContentResolver
	tickets  TicketUseCase
	ttl      time.Duration
	log      *zerolog.Logger
}

// NewViewerUseCase builds the redeem flow. A non-positive ttl falls back to
// the policy ceiling.
func NewViewerUseCase(resolver adapter.ContentResolver, tickets TicketUseCase, ttl time.Duration, logger *zerolog.Logger) *viewerUC {
	if ttl <= 0 || ttl > model.MaxTicketTTL {
		ttl = model.MaxTicketTTL
	}
	l := logger.With().Str("component", "ViewerUC").Logger()
	return &viewerUC{resolver: resolver, tickets: tickets, ttl: ttl, log: &l}
}

func (u *viewerUC) Redeem(ctx context.Context, subject, accessCode string) (string, string, error) {
	if subject == "" || accessCode == "" {
		return "", "", domain.ErrInvalidArgument
	}

	locator, err := u.resolver.Resolve(ctx, subject, accessCode)
	if err != nil {
		u.log.Warn().Err(err).Str("subject", subject).Msg("content resolution failed")
		return "", "", err
	}

	tok, err := u.tickets.Issue(locator, model.ScopeClaims{Subject: subject, AccessCode: accessCode}, u.ttl)
	if err != nil {
		return "", "", err
	}

	q := url.Values{}
	q.Set("ticket", tok)
	q.Set("title", subject)
	return "/viewer?" + q.Encode(), subject, nil
}
