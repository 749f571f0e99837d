// Package cache holds the Redis-backed token denylist. Logged-out
// tokens are denied by hash until their natural expiry.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"

	"github.com/hangang-korean/admin-service/internal/config"
	"github.com/hangang-korean/admin-service/internal/core/ports"
)

const denylistKeyPrefix = "denylist:"

type RedisDenylist struct {
	client *redis.Client
	cb     *gobreaker.CircuitBreaker
}

var _ ports.TokenDenylist = (*RedisDenylist)(nil)

func NewRedisDenylist(client *redis.Client) *RedisDenylist {
	return &RedisDenylist{
		client: client,
		cb:     config.NewCircuitBreaker("Redis-Denylist"),
	}
}

func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return denylistKeyPrefix + hex.EncodeToString(sum[:])
}

func (d *RedisDenylist) Deny(ctx context.Context, token string, ttl time.Duration) error {
	_, err := d.cb.Execute(func() (interface{}, error) {
		return nil, d.client.Set(ctx, tokenKey(token), "1", ttl).Err()
	})
	return err
}

func (d *RedisDenylist) IsDenied(ctx context.Context, token string) (bool, error) {
	result, err := d.cb.Execute(func() (interface{}, error) {
		n, err := d.client.Exists(ctx, tokenKey(token)).Result()
		if err != nil {
			return false, err
		}
		return n > 0, nil
	})
	if err != nil {
		return false, err
	}
	return result.(bool), nil
}
