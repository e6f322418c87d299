package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/taskhive/backend/domain"
	"github.com/taskhive/backend/repository"
)

type userCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewUserCache creates a Redis-backed user cache for the token-verification
// path. Users are immutable after registration, so the TTL only bounds how
// long a deleted account can still pass verification.
func NewUserCache(client *redislib.Client, ttl time.Duration) repository.UserCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &userCache{
		client: client,
		prefix: "user:",
		ttl:    ttl,
	}
}

func (c *userCache) Get(ctx context.Context, id string) (*domain.User, error) {
	result, err := c.client.Get(ctx, c.key(id)).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal([]byte(result), &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *userCache) Save(ctx context.Context, user *domain.User) error {
	if user == nil || user.ID == "" {
		return domain.NewError(domain.ErrCodeInvalid, "invalid payload")
	}

	// PasswordHash is tagged json:"-", so the digest never reaches Redis.
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(user.ID), payload, c.ttl).Err()
}

func (c *userCache) key(id string) string {
	return fmt.Sprintf("%s%s", c.prefix, id)
}
