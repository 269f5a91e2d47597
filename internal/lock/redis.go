package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Locker рекомендательная блокировка ресурса на время операции записи
// Используется на пути создания бронирования: ключ (сотрудник, дата)
// удерживается на время validate+insert, чтобы конкурирующие запросы на тот же
// ресурс и день получали быстрый отказ вместо конфликта сериализации в БД
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Unlock(ctx context.Context, key string) error
}

// RedisLock реализация Locker на Redis SETNX с TTL
type RedisLock struct {
	client *redis.Client
}

// NewRedisLock создает блокировщик и проверяет соединение с Redis
func NewRedisLock(addr, password string, db int) (*RedisLock, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("lock: failed to connect to redis: %w", err)
	}

	return &RedisLock{client: client}, nil
}

// Lock пытается захватить блокировку; false означает, что ключ уже занят
func (r *RedisLock) Lock(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	acquired, err := r.client.SetNX(ctx, "lock:"+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("lock: setnx %s: %w", key, err)
	}
	return acquired, nil
}

// Unlock освобождает блокировку
func (r *RedisLock) Unlock(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, "lock:"+key).Err(); err != nil {
		return fmt.Errorf("lock: del %s: %w", key, err)
	}
	return nil
}

// Close закрывает соединение с Redis
func (r *RedisLock) Close() error {
	return r.client.Close()
}

// ResourceDateKey формирует ключ блокировки для ресурса (сотрудник + филиал) и даты
func ResourceDateKey(branchID, employeeID int64, date time.Time) string {
	return fmt.Sprintf("booking:%d:%d:%s", branchID, employeeID, date.Format("2006-01-02"))
}
