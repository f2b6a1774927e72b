// Package memory disponibiliza um storage em processo para ambientes de
// desenvolvimento e instâncias únicas. Mesmo contrato do Redis, sem rede.
package memory

import (
	"context"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/extreamsys/contact-api/internal/core/ports"
)

type Storage struct {
	// mu serializa read-modify-write; go-cache só garante atomicidade por operação.
	mu       sync.Mutex
	windows  *cache.Cache
	counters *cache.Cache
	events   *cache.Cache
}

var _ ports.Storage = (*Storage)(nil)

func New() *Storage {
	return &Storage{
		windows:  cache.New(cache.NoExpiration, time.Minute),
		counters: cache.New(cache.NoExpiration, time.Minute),
		events:   cache.New(cache.NoExpiration, time.Minute),
	}
}

func (s *Storage) CountSliding(_ context.Context, key string, window time.Duration, now time.Time) (int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := now.Add(-window).UnixMilli()

	var stamps []int64
	if v, ok := s.windows.Get(key); ok {
		stamps = v.([]int64)
	}

	kept := make([]int64, 0, len(stamps)+1)
	for _, ts := range stamps {
		if ts > cutoff {
			kept = append(kept, ts)
		}
	}
	kept = append(kept, now.UnixMilli())

	s.windows.Set(key, kept, window)
	return int64(len(kept)), time.UnixMilli(kept[0]), nil
}

func (s *Storage) Increment(_ context.Context, key string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int64
	if v, ok := s.counters.Get(key); ok {
		count = v.(int64)
	}
	count++
	s.counters.Set(key, count, ttl)
	return count, nil
}

func (s *Storage) GetCount(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.counters.Get(key); ok {
		return v.(int64), nil
	}
	return 0, nil
}

func (s *Storage) Append(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.events.Set(key, value, ttl)
	return nil
}

func (s *Storage) Close() error {
	return nil
}
