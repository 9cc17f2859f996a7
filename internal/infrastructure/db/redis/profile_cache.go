package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/housewarrior/housewarrior/internal/core/domain"
)

const profileTTL = 15 * time.Minute

// ProfileCache stores sanitized user records under a TTL so repeated profile
// reads skip MongoDB. Key format: profile:<user_id>
type ProfileCache struct {
	client *redis.Client
}

// NewProfileCache creates a ProfileCache wrapping the given Redis client.
func NewProfileCache(client *redis.Client) *ProfileCache {
	return &ProfileCache{client: client}
}

// Get returns the cached profile for userID, or ok=false on a miss.
func (p *ProfileCache) Get(ctx context.Context, userID string) (*domain.User, bool, error) {
	raw, err := p.client.Get(ctx, p.key(userID)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("profile cache get: %w", err)
	}

	var user domain.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, false, fmt.Errorf("profile cache decode: %w", err)
	}
	return &user, true, nil
}

// Set caches the user (expires after profileTTL). The caller is expected to
// pass a sanitized record; the password hash is never serialized either way.
func (p *ProfileCache) Set(ctx context.Context, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("profile cache encode: %w", err)
	}
	return p.client.Set(ctx, p.key(user.ID), raw, profileTTL).Err()
}

func (p *ProfileCache) key(userID string) string {
	return "profile:" + userID
}
