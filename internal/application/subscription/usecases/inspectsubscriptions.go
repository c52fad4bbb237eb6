package usecases

import (
	"context"
	"errors"
	"net/http"
	"time"

	"userbot/internal/domain/subscription"
	apperrors "userbot/internal/shared/errors"
	"userbot/internal/shared/logger"
)

// InspectResult carries the per-link slots and the chat rendering.
type InspectResult struct {
	Slots []subscription.Slot `json:"slots"`
	Text  string              `json:"text"`
}

// InspectSubscriptionsUseCase extracts subscription links from a message and
// inspects them one after another.
type InspectSubscriptionsUseCase struct {
	source   SubscriptionSource
	names    NameResolver
	recorder OutcomeRecorder
	now      func() time.Time
	logger   logger.Interface
}

func NewInspectSubscriptionsUseCase(
	source SubscriptionSource,
	names NameResolver,
	recorder OutcomeRecorder,
	logger logger.Interface,
) *InspectSubscriptionsUseCase {
	return &InspectSubscriptionsUseCase{
		source:   source,
		names:    names,
		recorder: recorder,
		now:      time.Now,
		logger:   logger,
	}
}

// WithClock replaces the clock used for expiry countdowns.
func (uc *InspectSubscriptionsUseCase) WithClock(now func() time.Time) *InspectSubscriptionsUseCase {
	uc.now = now
	return uc
}

// Execute inspects every link in text. A text without links is a validation
// error; failures of individual links only degrade their own slot.
func (uc *InspectSubscriptionsUseCase) Execute(ctx context.Context, text string) (*InspectResult, error) {
	urls := subscription.ExtractURLs(text)
	if len(urls) == 0 {
		return nil, apperrors.NewValidationError(subscription.MsgNoLinks)
	}

	slots := make([]subscription.Slot, 0, len(urls))
	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		slot := uc.inspect(ctx, url)
		if uc.recorder != nil {
			uc.recorder.IncInspectOutcome(string(slot.Outcome))
		}
		slots = append(slots, slot)
	}

	uc.logger.Infow("subscriptions inspected", "count", len(slots))

	return &InspectResult{
		Slots: slots,
		Text:  subscription.RenderSlots(slots),
	}, nil
}

func (uc *InspectSubscriptionsUseCase) inspect(ctx context.Context, url string) subscription.Slot {
	resp, err := uc.source.FetchPrimary(ctx, url)
	if err != nil {
		uc.logger.Warnw("subscription fetch failed", "url", url, "error", err)
		return subscription.Slot{URL: url, Outcome: subscription.OutcomeConnectionError, Error: err.Error()}
	}
	if resp.StatusCode != http.StatusOK {
		return subscription.Slot{URL: url, Outcome: subscription.OutcomeUnreachable, StatusCode: resp.StatusCode}
	}

	info, err := subscription.ParseUserInfo(resp.UserInfo)
	if err != nil {
		return subscription.Slot{
			URL:     url,
			Outcome: subscription.OutcomeNoTraffic,
			Report:  &subscription.Report{URL: url, AirportName: uc.airportName(ctx, url)},
		}
	}
	report := &subscription.Report{
		URL:     url,
		Traffic: &info.Traffic,
		Nodes:   uc.aggregate(ctx, url),
		Expiry:  info.Expiry(uc.now()),
	}
	report.AirportName = uc.airportName(ctx, url)

	return subscription.Slot{URL: url, Outcome: subscription.OutcomeOK, Report: report}
}

// aggregate returns nil when the body cannot be fetched or classified.
func (uc *InspectSubscriptionsUseCase) aggregate(ctx context.Context, url string) *subscription.NodeStats {
	body, err := uc.source.FetchBody(ctx, url)
	if err != nil {
		uc.logger.Debugw("subscription body unavailable", "url", url, "error", err)
		return nil
	}
	stats, err := subscription.Aggregate(body)
	if err != nil {
		uc.logger.Debugw("subscription body not recognised", "url", url, "error", err)
		return nil
	}
	return stats
}

func (uc *InspectSubscriptionsUseCase) airportName(ctx context.Context, url string) string {
	name, err := uc.names.Resolve(ctx, url)
	if err != nil {
		if !errors.Is(err, subscription.ErrNameUnavailable) {
			uc.logger.Warnw("airport name resolution failed", "url", url, "error", err)
		}
		return subscription.MsgUnknown
	}
	return name
}
