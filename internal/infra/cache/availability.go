package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// ErrCacheMiss возвращается, когда карты нет в кэше
var ErrCacheMiss = errors.New("cache: availability map not found")

// AvailabilityCache кэш карт доступности столиков в Redis.
// Ключи привязаны к (столик, дата) и явно инвалидируются при каждой
// мутации брони — устаревшее значение живёт не дольше TTL даже при
// пропущенной инвалидации. Кэш вспомогательный: любая ошибка Redis
// трактуется как промах и карта строится заново из БД.
type AvailabilityCache struct {
	client *redis.Client
	ttl    time.Duration
	log    Logger
}

// NewAvailabilityCache создает кэш поверх установленного redis-клиента
func NewAvailabilityCache(client *redis.Client, ttl time.Duration, log Logger) *AvailabilityCache {
	return &AvailabilityCache{
		client: client,
		ttl:    ttl,
		log:    log,
	}
}

func key(tableID int64, date time.Time) string {
	return fmt.Sprintf("availmap:%d:%s", tableID, date.Format("2006-01-02"))
}

// Get возвращает карту доступности из кэша или ErrCacheMiss
func (c *AvailabilityCache) Get(ctx context.Context, tableID int64, date time.Time) (string, error) {
	val, err := c.client.Get(ctx, key(tableID, date)).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	if err != nil {
		c.log.Warn("cache: get failed for table=%d date=%s: %v", tableID, date.Format("2006-01-02"), err)
		return "", ErrCacheMiss
	}
	return val, nil
}

// Set сохраняет карту доступности с TTL
func (c *AvailabilityCache) Set(ctx context.Context, tableID int64, date time.Time, availabilityMap string) {
	if err := c.client.Set(ctx, key(tableID, date), availabilityMap, c.ttl).Err(); err != nil {
		c.log.Warn("cache: set failed for table=%d date=%s: %v", tableID, date.Format("2006-01-02"), err)
	}
}

// Invalidate удаляет карту доступности столика на дату.
// Вызывается после каждой мутации брони этого столика.
func (c *AvailabilityCache) Invalidate(ctx context.Context, tableID int64, date time.Time) {
	if err := c.client.Del(ctx, key(tableID, date)).Err(); err != nil {
		c.log.Warn("cache: invalidate failed for table=%d date=%s: %v", tableID, date.Format("2006-01-02"), err)
	}
}
