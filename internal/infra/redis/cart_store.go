package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"school-platform/internal/domain"
	"school-platform/internal/domain/model"
	"school-platform/internal/usecase"
)

// Compile-time check
var _ usecase.CartStore = (*CartStore)(nil)

// CartStore keeps carts in Redis under a TTL, so abandoned carts clean
// themselves up.
type CartStore struct {
	client RedisClient
	ttl    time.Duration
}

func NewCartStore(client RedisClient, ttl time.Duration) *CartStore {
	return &CartStore{client: client, ttl: ttl}
}

func cartKey(cartID string) string { return "cart:" + cartID }

func (s *CartStore) Get(ctx context.Context, cartID string) (*model.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(cartID))
	if errors.Is(err, ErrKeyMissing) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var cart model.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *CartStore) Save(ctx context.Context, cart *model.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cartKey(cart.ID), data, s.ttl)
}

func (s *CartStore) Delete(ctx context.Context, cartID string) error {
	return s.client.Del(ctx, cartKey(cartID))
}
