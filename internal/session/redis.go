package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/bpass-backend/internal/config"
)

// RedisStore — хранилище сессий в Redis. Переживает перезапуск процесса,
// TTL сессии поддерживается самим Redis.
type RedisStore struct {
	Db  *redis.Client
	ttl time.Duration
}

// NewRedisStore подключается к Redis и проверяет соединение.
func NewRedisStore(ctx context.Context, cfg config.RedisConnection, ttl time.Duration) (*RedisStore, error) {
	const op = "session.NewRedisStore"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{Db: db, ttl: ttl}, nil
}

func sessionKey(sid string) string {
	return fmt.Sprintf("session:%s", sid)
}

// Load возвращает данные сессии; отсутствие ключа означает новую сессию.
func (s *RedisStore) Load(ctx context.Context, sid string) (*Data, error) {
	const op = "session.RedisStore.Load"
	val, err := s.Db.Get(ctx, sessionKey(sid)).Result()
	if err == redis.Nil {
		return &Data{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	var data Data
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &data, nil
}

// Save сохраняет данные сессии, продлевая TTL ключа.
func (s *RedisStore) Save(ctx context.Context, sid string, data *Data) error {
	const op = "session.RedisStore.Save"
	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return s.Db.Set(ctx, sessionKey(sid), jsonData, s.ttl).Err()
}

// Delete удаляет сессию.
func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	return s.Db.Del(ctx, sessionKey(sid)).Err()
}
