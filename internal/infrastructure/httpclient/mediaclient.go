package httpclient

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"userbot/internal/application/media/usecases"
)

// MediaClient calls the keyword APIs of the img and vd commands and downloads
// the media they point at.
type MediaClient struct {
	fetcher          *Fetcher
	userAgent        string
	maxDownloadBytes int64
}

var _ usecases.MediaSource = (*MediaClient)(nil)

func NewMediaClient(fetcher *Fetcher, userAgent string, maxDownloadBytes int64) *MediaClient {
	return &MediaClient{
		fetcher:          fetcher,
		userAgent:        userAgent,
		maxDownloadBytes: maxDownloadBytes,
	}
}

func (c *MediaClient) CallAPI(ctx context.Context, url string, timeout time.Duration) (*usecases.APIResponse, error) {
	resp, err := c.fetcher.Get(ctx, url, Options{
		UserAgent:    c.userAgent,
		Timeout:      timeout,
		Redirects:    FollowAll,
		MaxBodyBytes: c.maxDownloadBytes,
	})
	if err != nil {
		return nil, err
	}
	return &usecases.APIResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		FinalURL:    resp.FinalURL,
		Body:        resp.Body,
	}, nil
}

func (c *MediaClient) Download(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	resp, err := c.fetcher.Get(ctx, url, Options{
		UserAgent:    c.userAgent,
		Timeout:      timeout,
		Redirects:    FollowAll,
		MaxBodyBytes: c.maxDownloadBytes,
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return resp.Body, nil
}
