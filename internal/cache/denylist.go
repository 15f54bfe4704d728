package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenDenylist — минимальный контракт денайлиста отозванных токенов.
// Ключ — jti сессионного токена; запись живёт не дольше остаточного TTL
// самого токена, после чего токен и так недействителен по exp.
type TokenDenylist interface {
	// Deny помечает токен отозванным на срок ttl.
	Deny(ctx context.Context, tokenID uuid.UUID, ttl time.Duration) error
	// IsDenied возвращает true, если токен отозван.
	IsDenied(ctx context.Context, tokenID uuid.UUID) (bool, error)
	// Close закрывает клиент Redis.
	Close() error
}

type redisDenylist struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisDenylist создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "auth:deny:".
func NewRedisDenylist(redisURL, prefix string) (TokenDenylist, error) {
	if prefix == "" {
		prefix = "auth:deny:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}

	return &redisDenylist{rdb: rdb, prefix: prefix}, nil
}

func (d *redisDenylist) key(id uuid.UUID) string { return d.prefix + id.String() }

func (d *redisDenylist) Deny(ctx context.Context, tokenID uuid.UUID, ttl time.Duration) error {
	if ttl <= 0 {
		// Токен уже истёк — помечать нечего.
		return nil
	}

	return d.rdb.Set(ctx, d.key(tokenID), "1", ttl).Err()
}

func (d *redisDenylist) IsDenied(ctx context.Context, tokenID uuid.UUID) (bool, error) {
	n, err := d.rdb.Exists(ctx, d.key(tokenID)).Result()
	if err != nil {
		return false, err
	}

	return n > 0, nil
}

func (d *redisDenylist) Close() error { return d.rdb.Close() }
