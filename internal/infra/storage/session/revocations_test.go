package session

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisRevocations_UnreachableRedis(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, MaxRetries: -1})
	defer client.Close()

	store := NewRedisRevocations(client)
	ctx := context.Background()

	err := store.Revoke(ctx, "jti-1", time.Now().Add(time.Hour))
	assert.ErrorIs(t, err, ErrRedis)

	revoked, err := store.IsRevoked(ctx, "jti-1")
	assert.ErrorIs(t, err, ErrRedis)
	assert.False(t, revoked)
}
