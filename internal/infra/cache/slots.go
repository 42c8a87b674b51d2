package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SlotCache кеш ответов подбора слотов в Redis
// Слоты - read-only путь, допускающий слегка устаревшие данные:
// финальную проверку пересечений всё равно делает создание записи
// внутри сериализуемой транзакции
type SlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSlotCache создает кеш слотов с указанным TTL
func NewSlotCache(client *redis.Client, ttl time.Duration) *SlotCache {
	return &SlotCache{
		client: client,
		ttl:    ttl,
	}
}

// Get возвращает закешированный ответ по ключу
// Второй результат false означает промах кеша
func (c *SlotCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache: get %s: %w", key, err)
	}
	return data, true, nil
}

// Set сохраняет ответ по ключу с TTL кеша
func (c *SlotCache) Set(ctx context.Context, key string, value []byte) error {
	if err := c.client.Set(ctx, key, value, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache: set %s: %w", key, err)
	}
	return nil
}
