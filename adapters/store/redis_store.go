package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/qlap/traingate/ports"
)

// RedisDenyList is a Redis implementation of the DenyList interface,
// shared by all instances of the service.
type RedisDenyList struct {
	client *redis.Client
	prefix string
}

// NewRedisDenyList creates a new Redis deny-list
func NewRedisDenyList(client *redis.Client) ports.DenyList {
	return &RedisDenyList{
		client: client,
		prefix: "traingate:revoked:",
	}
}

// Revoke records a token identifier in Redis with the given TTL
func (s *RedisDenyList) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	key := s.prefix + tokenID

	if err := s.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// IsRevoked checks whether a token identifier is on the deny-list in Redis
func (s *RedisDenyList) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	key := s.prefix + tokenID

	val, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}

	return val > 0, nil
}
