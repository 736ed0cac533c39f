package redis

import (
	"context"
	"time"

	"school-platform/internal/usecase"
)

// Compile-time check
var _ usecase.ReplayGuard = (*ReplayGuard)(nil)

// ReplayGuard remembers redeemed ticket nonces with a TTL matching the
// ticket's remaining lifetime. SETNX makes the first-use check atomic across
// gateway replicas sharing one Redis.
type ReplayGuard struct {
	client RedisClient
}

func NewReplayGuard(client RedisClient) *ReplayGuard {
	return &ReplayGuard{client: client}
}

func seenKey(nonce string) string { return "ticket_seen:" + nonce }

func (g *ReplayGuard) FirstUse(ctx context.Context, nonce string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		// The ticket is about to expire anyway; treat it as seen.
		return false, nil
	}
	return g.client.SetNX(ctx, seenKey(nonce), 1, ttl)
}
