// cache — опциональный read-through кэш пользователей поверх Redis.
//
// Кэш хранит публичную проекцию учетной записи (без хэша пароля) по ID
// субъекта и снимает нагрузку с хранилища на горячем пути разрешения
// личности по access-токену. Консистентность обеспечивается только
// коротким TTL; инвалидация по событиям не предусмотрена.
package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"user-auth-service/internal/models"
)

// UserCache — минимальный контракт кэша пользователей.
type UserCache interface {
	// Get возвращает запись и признак её наличия в кэше.
	Get(ctx context.Context, id int64) (*models.User, bool, error)
	// Set сохраняет запись с TTL.
	Set(ctx context.Context, user *models.User, ttl time.Duration) error
	// Close закрывает клиент Redis.
	Close() error
}

type redisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache создаёт клиент Redis из URL (например, redis://:pass@host:6379/0).
// Если prefix пустой — используется "auth:user:".
func NewRedisCache(redisURL, prefix string) (UserCache, error) {
	if prefix == "" {
		prefix = "auth:user:"
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

	return &redisCache{rdb: rdb, prefix: prefix}, nil
}

func (c *redisCache) key(id int64) string {
	return c.prefix + strconv.FormatInt(id, 10)
}

// Храним как Redis Hash с публичными полями пользователя.
func (c *redisCache) Get(ctx context.Context, id int64) (*models.User, bool, error) {
	m, err := c.rdb.HGetAll(ctx, c.key(id)).Result()
	if err != nil {
		return nil, false, err
	}

	if len(m) == 0 {
		return nil, false, nil
	}

	role, _ := models.ParseRole(m["role"])

	return &models.User{
		ID:          id,
		Email:       m["email"],
		FirstName:   m["first_name"],
		LastName:    m["last_name"],
		Patronymic:  m["patronymic"],
		Subdivision: m["subdivision"],
		Position:    m["position"],
		Role:        role,
		IsActive:    m["act"] == "1",
	}, true, nil
}

func (c *redisCache) Set(ctx context.Context, user *models.User, ttl time.Duration) error {
	kv := map[string]string{
		"email":       user.Email,
		"first_name":  user.FirstName,
		"last_name":   user.LastName,
		"patronymic":  user.Patronymic,
		"subdivision": user.Subdivision,
		"position":    user.Position,
		"role":        string(user.Role),
		"act":         boolTo01(user.IsActive),
	}

	pipe := c.rdb.TxPipeline()
	pipe.HSet(ctx, c.key(user.ID), kv)
	pipe.Expire(ctx, c.key(user.ID), ttl)

	_, err := pipe.Exec(ctx)
	return err
}

func (c *redisCache) Close() error { return c.rdb.Close() }

func boolTo01(b bool) string {
	if b {
		return "1"
	}

	return "0"
}
