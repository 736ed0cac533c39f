package sched

import (
	"context"
	"time"

	"school-platform/internal/domain/ports/repository"
	"school-platform/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// CodeExpiryWorker periodically deactivates access codes whose expiry date
// has passed, so the resolver never has to reason about stale rows.
type CodeExpiryWorker struct {
	interval time.Duration
	codes    repository.AccessCodeRepository
	log      *zerolog.Logger
}

func NewCodeExpiryWorker(interval time.Duration, codes repository.AccessCodeRepository, logger *zerolog.Logger) *CodeExpiryWorker {
	wlog := logger.With().Str("component", "CodeExpiryWorker").Logger()
	return &CodeExpiryWorker{
		interval: interval,
		codes:    codes,
		log:      &wlog,
	}
}

func (w *CodeExpiryWorker) Run(ctx context.Context) error {
	w.log.Info().Msg("Starting code expiry worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping code expiry worker")
			return ctx.Err()
		case <-ticker.C:
			n, err := w.codes.DeactivateExpired(ctx, time.Now())
			if err != nil {
				w.log.Error().Err(err).Msg("code expiry worker error")
			}
			if n > 0 {
				metrics.AddAccessCodesDeactivated(n)
				w.log.Info().Int("count", n).Msg("expired access codes deactivated")
			}
		}
	}
}
