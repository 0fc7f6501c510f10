package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
)

// AvailabilityCache кэш занятых интервалов календаря.
// Ключи включают номер версии; Invalidate увеличивает версию, старые ключи истекают по TTL.
type AvailabilityCache struct {
	client redis.Cmdable
	ttl    time.Duration
	prefix string
	loc    *time.Location
}

// NewAvailabilityCache создает кэш. loc - часовой пояс, в который переводятся прочитанные интервалы.
func NewAvailabilityCache(client redis.Cmdable, ttl time.Duration, prefix string, loc *time.Location) *AvailabilityCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if prefix == "" {
		prefix = "petsitting:availability"
	}
	return &AvailabilityCache{client: client, ttl: ttl, prefix: prefix, loc: loc}
}

// Get возвращает закэшированные интервалы и текущую версию; ok=false при промахе.
// При промахе результат сохраняется через Set с этой же версией.
func (c *AvailabilityCache) Get(ctx context.Context, query domain.AvailabilityQuery) ([]domain.AvailabilityEvent, int64, bool, error) {
	version, err := c.version(ctx)
	if err != nil {
		return nil, 0, false, err
	}

	data, err := c.client.Get(ctx, c.key(version, query)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, version, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("%w: Get - %v", ErrCacheGet, err)
	}

	var events []domain.AvailabilityEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, 0, false, fmt.Errorf("%w: Get - %v", ErrDecode, err)
	}
	for i := range events {
		events[i].Start = events[i].Start.In(c.loc)
		events[i].End = events[i].End.In(c.loc)
	}

	return events, version, true, nil
}

// Set сохраняет интервалы под версией, полученной из Get.
// Если между Get и Set прошла инвалидация, запись ложится под старую версию и не читается.
func (c *AvailabilityCache) Set(ctx context.Context, query domain.AvailabilityQuery, version int64, events []domain.AvailabilityEvent) error {
	if events == nil {
		events = []domain.AvailabilityEvent{}
	}
	data, err := json.Marshal(events)
	if err != nil {
		return fmt.Errorf("%w: Set - marshal: %v", ErrCacheSet, err)
	}

	if err := c.client.Set(ctx, c.key(version, query), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Set - %v", ErrCacheSet, err)
	}
	return nil
}

// Invalidate делает все текущие записи недоступными
func (c *AvailabilityCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.versionKey()).Err(); err != nil {
		return fmt.Errorf("%w: Invalidate - %v", ErrCacheSet, err)
	}
	return nil
}

func (c *AvailabilityCache) version(ctx context.Context) (int64, error) {
	version, err := c.client.Get(ctx, c.versionKey()).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("%w: version - %v", ErrCacheGet, err)
	}
	return version, nil
}

func (c *AvailabilityCache) versionKey() string {
	return c.prefix + ":version"
}

func (c *AvailabilityCache) key(version int64, query domain.AvailabilityQuery) string {
	return c.prefix + ":v" + strconv.FormatInt(version, 10) + ":" + query.Key()
}
