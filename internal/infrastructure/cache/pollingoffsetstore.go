package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"userbot/internal/domain/plugin"
)

const pollingOffsetKey = "telegram.polling-offset"

// PollingOffsetStore persists the Telegram polling offset in the settings
// store, so it survives restarts whenever the store does.
type PollingOffsetStore struct {
	store plugin.Store
}

func NewPollingOffsetStore(store plugin.Store) *PollingOffsetStore {
	return &PollingOffsetStore{store: store}
}

// GetOffset returns the last saved offset, or 0 if none was saved.
func (s *PollingOffsetStore) GetOffset(ctx context.Context) (int64, error) {
	val, err := s.store.Get(ctx, pollingOffsetKey)
	if err != nil {
		if errors.Is(err, plugin.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get polling offset: %w", err)
	}

	offset, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse polling offset: %w", err)
	}
	return offset, nil
}

func (s *PollingOffsetStore) SaveOffset(ctx context.Context, offset int64) error {
	if err := s.store.Set(ctx, pollingOffsetKey, strconv.FormatInt(offset, 10)); err != nil {
		return fmt.Errorf("failed to save polling offset: %w", err)
	}
	return nil
}
