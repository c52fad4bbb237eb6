// Package httpclient performs the outbound HTTP requests of the plugins.
package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"userbot/internal/shared/logger"
)

// RedirectPolicy selects which 3xx responses Get follows.
type RedirectPolicy int

const (
	FollowNone RedirectPolicy = iota
	// FollowMoved follows 301 and 302 only.
	FollowMoved
	// FollowAll follows every 3xx response that carries a Location.
	FollowAll
)

func (p RedirectPolicy) follows(status int) bool {
	switch p {
	case FollowMoved:
		return status == http.StatusMovedPermanently || status == http.StatusFound
	case FollowAll:
		return status >= 300 && status < 400 && status != http.StatusNotModified
	default:
		return false
	}
}

// Options apply to one Get call. Timeout bounds every hop separately.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Redirects RedirectPolicy
	// MaxBodyBytes overrides the fetcher's body limit when positive.
	MaxBodyBytes int64
	// HeadersOnly leaves the body unread; Response.Body is nil and the body
	// limit does not apply.
	HeadersOnly bool
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	FinalURL   string
}

type Config struct {
	MaxRedirects int
	MaxBodyBytes int64
}

// FetchRecorder receives one result label per Get call.
type FetchRecorder interface {
	IncFetch(result string)
}

// Fetcher follows redirects itself so that hop limits and per-hop timeouts
// apply uniformly.
type Fetcher struct {
	client       *http.Client
	maxRedirects int
	maxBodyBytes int64
	recorder     FetchRecorder
	logger       logger.Interface
}

func NewFetcher(cfg Config, recorder FetchRecorder, log logger.Interface) *Fetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConnsPerHost = 4

	if cfg.MaxRedirects <= 0 {
		cfg.MaxRedirects = 10
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = 16 << 20
	}

	return &Fetcher{
		client: &http.Client{
			Transport: transport,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		maxRedirects: cfg.MaxRedirects,
		maxBodyBytes: cfg.MaxBodyBytes,
		recorder:     recorder,
		logger:       log,
	}
}

// Get issues a GET and follows redirects according to opts. A failure to get
// any final response is reported as *FetchError.
func (f *Fetcher) Get(ctx context.Context, rawURL string, opts Options) (*Response, error) {
	current := rawURL
	for hops := 0; ; hops++ {
		resp, err := f.do(ctx, current, opts)
		if err != nil {
			kind := classify(err)
			f.record(string(kind))
			f.logger.Debugw("fetch failed", "url", current, "kind", kind, "error", err)
			return nil, &FetchError{Kind: kind, URL: current, Err: err}
		}

		location := resp.Header.Get("Location")
		if !opts.Redirects.follows(resp.StatusCode) || location == "" {
			f.record("ok")
			return resp, nil
		}

		if hops >= f.maxRedirects {
			f.record(string(KindTooManyRedirects))
			return nil, &FetchError{
				Kind: KindTooManyRedirects,
				URL:  rawURL,
				Err:  fmt.Errorf("stopped after %d redirects", hops),
			}
		}

		next, err := resolveLocation(current, location)
		if err != nil {
			f.record(string(KindOther))
			return nil, &FetchError{Kind: KindOther, URL: current, Err: err}
		}
		current = next
	}
}

func (f *Fetcher) do(ctx context.Context, rawURL string, opts Options) (*Response, error) {
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if opts.UserAgent != "" {
		req.Header.Set("User-Agent", opts.UserAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if opts.HeadersOnly {
		return &Response{StatusCode: resp.StatusCode, Header: resp.Header, FinalURL: rawURL}, nil
	}

	limit := f.maxBodyBytes
	if opts.MaxBodyBytes > 0 {
		limit = opts.MaxBodyBytes
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, ErrBodyTooLarge
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
		FinalURL:   rawURL,
	}, nil
}

func (f *Fetcher) record(result string) {
	if f.recorder != nil {
		f.recorder.IncFetch(result)
	}
}

// resolveLocation resolves a possibly relative Location against base.
func resolveLocation(base, location string) (string, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", base, err)
	}
	loc, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("invalid redirect location %q: %w", location, err)
	}
	return baseURL.ResolveReference(loc).String(), nil
}
