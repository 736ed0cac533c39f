package redis

import "errors"

// ErrKeyMissing hides the driver's sentinel from callers of RedisClient.
var ErrKeyMissing = errors.New("redis: key missing")
