package usecases

import (
	"context"
	"time"
)

// APIResponse is the answer of a keyword's API endpoint after redirects.
type APIResponse struct {
	StatusCode  int
	ContentType string
	FinalURL    string
	Body        []byte
}

// MediaSource performs the HTTP side of the media commands.
type MediaSource interface {
	CallAPI(ctx context.Context, url string, timeout time.Duration) (*APIResponse, error)
	// Download fails for any status other than 200.
	Download(ctx context.Context, url string, timeout time.Duration) ([]byte, error)
}
