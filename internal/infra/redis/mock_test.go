//go:build !integration

package redis

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// memClient is an in-memory RedisClient with coarse TTL support, enough to
// exercise the stores without a server.
type memClient struct {
	mu      sync.Mutex
	values  map[string]string
	expires map[string]time.Time
	now     func() time.Time
}

var _ RedisClient = (*memClient)(nil)

func newMemClient() *memClient {
	return &memClient{
		values:  map[string]string{},
		expires: map[string]time.Time{},
		now:     time.Now,
	}
}

func (m *memClient) expired(key string) bool {
	exp, ok := m.expires[key]
	return ok && !m.now().Before(exp)
}

func (m *memClient) Ping(ctx context.Context) error { return nil }

func (m *memClient) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = fmt.Sprintf("%s", value)
	if expiration > 0 {
		m.expires[key] = m.now().Add(expiration)
	} else {
		delete(m.expires, key)
	}
	return nil
}

func (m *memClient) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.values[key]; ok && !m.expired(key) {
		return false, nil
	}
	m.values[key] = fmt.Sprint(value)
	if expiration > 0 {
		m.expires[key] = m.now().Add(expiration)
	}
	return true, nil
}

func (m *memClient) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok || m.expired(key) {
		return "", ErrKeyMissing
	}
	return v, nil
}

func (m *memClient) Incr(ctx context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	if v, ok := m.values[key]; ok && !m.expired(key) {
		fmt.Sscanf(v, "%d", &n)
	}
	n++
	m.values[key] = fmt.Sprintf("%d", n)
	return n, nil
}

func (m *memClient) Expire(ctx context.Context, key string, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expires[key] = m.now().Add(expiration)
	return nil
}

func (m *memClient) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
		delete(m.expires, k)
	}
	return nil
}

func (m *memClient) Close() error { return nil }
