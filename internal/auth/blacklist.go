package auth

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Blacklist records used-up refresh tokens by JTI. Revoke must be atomic:
// two concurrent logouts with the same token may see exactly one succeed.
type Blacklist interface {
	// Revoke marks jti as used for ttl. Returns false when it was already
	// revoked.
	Revoke(ctx context.Context, jti string, ttl time.Duration) (bool, error)
}

type RedisBlacklist struct{ rdb *redis.Client }

func NewRedisBlacklist(rdb *redis.Client) *RedisBlacklist { return &RedisBlacklist{rdb: rdb} }

func (b *RedisBlacklist) Revoke(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	// SETNX is the check-then-insert in one round trip.
	return b.rdb.SetNX(ctx, "revoked:"+jti, 1, ttl).Result()
}
