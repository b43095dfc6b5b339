package idempotency

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultSize = 10000
	DefaultTTL  = 10 * time.Minute
)

// Cache хранит результаты успешных запросов по ключу идемпотентности в пределах пользователя
// Повтор запроса с тем же Idempotency-Key в течение TTL получает исходный ответ без повторного бронирования.
// Хранятся только готовые ответы, счетчики вместимости слотов сюда не попадают.
// Конкурентные запросы с одним ключом склеиваются: выполняется только первый, остальные ждут его результат.
type Cache[V any] struct {
	lru      *expirable.LRU[string, V]
	inflight singleflight.Group
}

// New создает кэш с ограничением по размеру и времени жизни записи
func New[V any](size int, ttl time.Duration) *Cache[V] {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache[V]{
		lru: expirable.NewLRU[string, V](size, nil, ttl),
	}
}

// Get возвращает сохраненный результат
func (c *Cache[V]) Get(userID int64, key string) (V, bool) {
	return c.lru.Get(cacheKey(userID, key))
}

// Put сохраняет результат
func (c *Cache[V]) Put(userID int64, key string, value V) {
	c.lru.Add(cacheKey(userID, key), value)
}

// Do возвращает сохраненный результат или выполняет fn ровно один раз на ключ
// replayed=true, если результат получен не вызовом fn этого вызывающего.
// Ошибка fn не сохраняется, следующий запрос с тем же ключом выполнит fn заново.
func (c *Cache[V]) Do(userID int64, key string, fn func() (V, error)) (value V, replayed bool, err error) {
	k := cacheKey(userID, key)
	if cached, ok := c.lru.Get(k); ok {
		return cached, true, nil
	}

	executed := false
	result, err, _ := c.inflight.Do(k, func() (interface{}, error) {
		// Первый запрос мог завершиться между Get и Do
		if cached, ok := c.lru.Get(k); ok {
			return cached, nil
		}
		executed = true
		v, err := fn()
		if err != nil {
			return v, err
		}
		c.lru.Add(k, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, !executed, err
	}

	return result.(V), !executed, nil
}

// Len количество живых записей
func (c *Cache[V]) Len() int {
	return c.lru.Len()
}

func cacheKey(userID int64, key string) string {
	return fmt.Sprintf("%d:%s", userID, key)
}
