package telegram

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"

	"userbot/internal/shared/goroutine"
	"userbot/internal/shared/logger"
)

// defaultWorkerCount is the number of concurrent workers per batch. Updates
// of one chat always land on the same worker, so they run in order.
const defaultWorkerCount = 4

// OffsetStore persists polling offset across restarts.
type OffsetStore interface {
	GetOffset(ctx context.Context) (int64, error)
	SaveOffset(ctx context.Context, offset int64) error
}

// UpdateRecorder counts received updates by source.
type UpdateRecorder interface {
	IncUpdate(source string)
}

type updateSource interface {
	GetUpdates(ctx context.Context, offset int64, timeout int) ([]Update, error)
	DeleteWebhook(ctx context.Context) error
}

// PollingService handles long polling for Telegram updates
type PollingService struct {
	source      updateSource
	handler     UpdateHandler
	offsetStore OffsetStore // nil = in-memory only
	recorder    UpdateRecorder
	logger      logger.Interface
	pollTimeout int
	workerCount int
	newBackOff  func() backoff.BackOff

	lastUpdateID int64

	runningMu  sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

func NewPollingService(
	source updateSource,
	handler UpdateHandler,
	offsetStore OffsetStore,
	recorder UpdateRecorder,
	pollTimeout int,
	logger logger.Interface,
) *PollingService {
	return &PollingService{
		source:      source,
		handler:     handler,
		offsetStore: offsetStore,
		recorder:    recorder,
		logger:      logger,
		pollTimeout: pollTimeout,
		workerCount: defaultWorkerCount,
		newBackOff:  defaultBackOff,
	}
}

func defaultBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Second
	b.MaxInterval = time.Minute
	b.MaxElapsedTime = 0
	return b
}

// Start begins polling for updates
func (s *PollingService) Start(ctx context.Context) error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	if s.isRunning {
		return nil
	}

	if s.offsetStore != nil {
		saved, err := s.offsetStore.GetOffset(ctx)
		if err != nil {
			s.logger.Warnw("failed to load polling offset, starting from 0", "error", err)
		} else if saved > 0 {
			s.lastUpdateID = saved
			s.logger.Infow("loaded polling offset from store", "offset", saved)
		}
	}

	// getUpdates is refused while a webhook is set
	if err := s.source.DeleteWebhook(ctx); err != nil {
		return fmt.Errorf("failed to delete webhook before polling: %w", err)
	}

	pollCtx, cancel := context.WithCancel(ctx)
	s.cancelFunc = cancel
	s.isRunning = true

	s.logger.Infow("starting telegram polling service",
		"timeout", s.pollTimeout,
		"workers", s.workerCount,
	)

	s.wg.Add(1)
	goroutine.SafeGo(s.logger, "telegram-poll-loop", func() {
		defer s.wg.Done()
		s.pollLoop(pollCtx)
	})
	return nil
}

// Stop cancels the in-flight poll and waits for the current batch.
func (s *PollingService) Stop() {
	s.runningMu.Lock()
	if !s.isRunning {
		s.runningMu.Unlock()
		return
	}
	s.isRunning = false
	s.cancelFunc()
	s.runningMu.Unlock()

	s.wg.Wait()
	s.logger.Infow("telegram polling service stopped")
}

func (s *PollingService) pollLoop(ctx context.Context) {
	b := s.newBackOff()

	for ctx.Err() == nil {
		err := s.poll(ctx)
		if err == nil {
			b.Reset()
			continue
		}
		if ctx.Err() != nil {
			return
		}

		wait := b.NextBackOff()
		if retry := GetRetryAfter(err); retry > 0 {
			wait = time.Duration(retry) * time.Second
		}
		if isUnauthorized(err) {
			s.logger.Errorw("bot token rejected, polling paused", "error", err, "retry_in", wait)
		} else {
			s.logger.Warnw("failed to get updates", "error", err, "retry_in", wait)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

func (s *PollingService) poll(ctx context.Context) error {
	offset := int64(0)
	if s.lastUpdateID > 0 {
		offset = s.lastUpdateID + 1
	}

	updates, err := s.source.GetUpdates(ctx, offset, s.pollTimeout)
	if err != nil {
		return err
	}
	if len(updates) == 0 {
		return nil
	}

	buckets := make([][]Update, s.workerCount)
	var maxUpdateID int64
	for _, u := range updates {
		if u.UpdateID <= s.lastUpdateID {
			continue
		}
		idx := s.chatAffinity(&u)
		buckets[idx] = append(buckets[idx], u)
		maxUpdateID = max(maxUpdateID, u.UpdateID)
		if s.recorder != nil {
			s.recorder.IncUpdate("polling")
		}
	}

	// first update each worker left unhandled, 0 when it finished its bucket
	pending := make([]int64, s.workerCount)
	var batchWg sync.WaitGroup
	for i, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		batchWg.Add(1)
		goroutine.SafeGo(s.logger, "telegram-worker-batch", func() {
			defer batchWg.Done()
			pending[i] = s.processBatch(ctx, i, bucket)
		})
	}
	batchWg.Wait()

	handledUpTo := maxUpdateID
	for _, id := range pending {
		if id > 0 && id-1 < handledUpTo {
			handledUpTo = id - 1
		}
	}
	if handledUpTo <= s.lastUpdateID {
		return nil
	}
	if handledUpTo < maxUpdateID {
		s.logger.Infow("polling stopped mid batch, unhandled updates will be redelivered",
			"handled_up_to", handledUpTo,
			"max_update_id", maxUpdateID,
		)
	}
	s.lastUpdateID = handledUpTo

	if s.offsetStore != nil {
		// the poll context may already be cancelled during shutdown
		saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.offsetStore.SaveOffset(saveCtx, s.lastUpdateID); err != nil {
			s.logger.Warnw("failed to save polling offset", "error", err)
		}
	}
	return nil
}

// processBatch handles one worker's updates sequentially. A panicking update
// does not stop the rest of the batch. It returns the id of the first update
// skipped because ctx was cancelled, or 0 when every update was handled.
func (s *PollingService) processBatch(ctx context.Context, worker int, updates []Update) int64 {
	for i := range updates {
		if ctx.Err() != nil {
			return updates[i].UpdateID
		}

		func(u *Update) {
			defer goroutine.Recover(s.logger.With("worker", worker, "update_id", u.UpdateID), "telegram-update")

			if err := s.handler.HandleUpdate(ctx, u); err != nil {
				s.logger.Errorw("failed to handle update",
					"worker", worker,
					"update_id", u.UpdateID,
					"error", err,
				)
			}
		}(&updates[i])
	}
	return 0
}

func (s *PollingService) chatAffinity(u *Update) int {
	key := u.UpdateID
	if msg := u.EffectiveMessage(); msg != nil && msg.Chat != nil {
		key = msg.Chat.ID
	}
	idx := int(key % int64(s.workerCount))
	if idx < 0 {
		idx += s.workerCount
	}
	return idx
}
