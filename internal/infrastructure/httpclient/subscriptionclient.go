package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"userbot/internal/application/subscription/usecases"
)

// SubscriptionClient fetches subscription links with a client user agent.
type SubscriptionClient struct {
	fetcher   *Fetcher
	userAgent string
	timeout   time.Duration
}

var _ usecases.SubscriptionSource = (*SubscriptionClient)(nil)

func NewSubscriptionClient(fetcher *Fetcher, userAgent string, timeout time.Duration) *SubscriptionClient {
	return &SubscriptionClient{fetcher: fetcher, userAgent: userAgent, timeout: timeout}
}

// FetchPrimary only needs the status and the subscription-userinfo header,
// so the body is never read.
func (c *SubscriptionClient) FetchPrimary(ctx context.Context, url string) (*usecases.PrimaryResponse, error) {
	resp, err := c.fetcher.Get(ctx, url, Options{
		UserAgent:   c.userAgent,
		Timeout:     c.timeout,
		Redirects:   FollowMoved,
		HeadersOnly: true,
	})
	if err != nil {
		return nil, err
	}
	return &usecases.PrimaryResponse{
		StatusCode: resp.StatusCode,
		UserInfo:   resp.Header.Get("subscription-userinfo"),
	}, nil
}

func (c *SubscriptionClient) FetchBody(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.fetcher.Get(ctx, url, Options{
		UserAgent: c.userAgent,
		Timeout:   c.timeout,
		Redirects: FollowAll,
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return resp.Body, nil
}
