package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "juice:session:revoked:"

// ErrRedis ошибка обращения к Redis
var ErrRedis = errors.New("session: redis error")

// RedisRevocations отозванные сессии в Redis: ключ живет до истечения токена
// Общий для всех экземпляров сервиса
type RedisRevocations struct {
	client *redis.Client
	now    func() time.Time
}

// NewRedisRevocations создает хранилище поверх клиента
func NewRedisRevocations(client *redis.Client) *RedisRevocations {
	return &RedisRevocations{client: client, now: time.Now}
}

// Revoke помечает сессию отозванной до until
func (r *RedisRevocations) Revoke(ctx context.Context, sessionID string, until time.Time) error {
	ttl := until.Sub(r.now())
	if ttl < time.Second {
		ttl = time.Second
	}
	if err := r.client.SetEx(ctx, keyPrefix+sessionID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("%w: revoke %s: %v", ErrRedis, sessionID, err)
	}
	return nil
}

// IsRevoked true, если сессия отозвана
func (r *RedisRevocations) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	n, err := r.client.Exists(ctx, keyPrefix+sessionID).Result()
	if err != nil {
		return false, fmt.Errorf("%w: check %s: %v", ErrRedis, sessionID, err)
	}
	return n > 0, nil
}
