package cache

import (
	"context"

	gocache "github.com/patrickmn/go-cache"

	"userbot/internal/domain/plugin"
)

// MemoryKVStore is the process-local store used when redis is disabled.
// Its contents do not survive a restart.
type MemoryKVStore struct {
	items *gocache.Cache
}

var _ plugin.Store = (*MemoryKVStore)(nil)

func NewMemoryKVStore() *MemoryKVStore {
	return &MemoryKVStore{items: gocache.New(gocache.NoExpiration, 0)}
}

func (s *MemoryKVStore) Get(_ context.Context, key string) (string, error) {
	val, ok := s.items.Get(key)
	if !ok {
		return "", plugin.ErrNotFound
	}
	return val.(string), nil
}

func (s *MemoryKVStore) Set(_ context.Context, key, value string) error {
	s.items.Set(key, value, gocache.NoExpiration)
	return nil
}

func (s *MemoryKVStore) Delete(_ context.Context, key string) error {
	s.items.Delete(key)
	return nil
}
