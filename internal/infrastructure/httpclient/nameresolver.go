package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html/charset"

	"userbot/internal/application/subscription/usecases"
	"userbot/internal/domain/subscription"
)

const maxConverterDepth = 5

var (
	converterInnerURL = regexp.MustCompile(`url=([^&]*)`)
	dispositionName   = regexp.MustCompile(`filename\*=UTF-8''(.+)`)
	schemeAndHost     = regexp.MustCompile(`(https?://)([^/]+)`)
)

var titleLabels = []struct{ marker, label string }{
	{"Attention Required! | Cloudflare", "该域名仅限国内IP访问"},
	{"Access denied", "该域名非机场面板域名"},
	{"404 Not Found", "该域名非机场面板域名"},
	{"Just a moment", "该域名开启了5s盾"},
}

type NameResolverConfig struct {
	ClientUserAgent  string
	BrowserUserAgent string
	PanelTimeout     time.Duration
	LoginTimeout     time.Duration
	FallbackTimeout  time.Duration
}

// NameResolver derives the airport name from a subscription link: converter
// links are unwrapped, v2board style links use Content-Disposition, anything
// else uses the panel login page title.
type NameResolver struct {
	fetcher *Fetcher
	cfg     NameResolverConfig
	policy  *bluemonday.Policy
}

var _ usecases.NameResolver = (*NameResolver)(nil)

func NewNameResolver(fetcher *Fetcher, cfg NameResolverConfig) *NameResolver {
	return &NameResolver{
		fetcher: fetcher,
		cfg:     cfg,
		policy:  bluemonday.StrictPolicy(),
	}
}

func (r *NameResolver) Resolve(ctx context.Context, rawURL string) (string, error) {
	return r.resolve(ctx, rawURL, 0)
}

func (r *NameResolver) resolve(ctx context.Context, rawURL string, depth int) (string, error) {
	switch {
	case strings.Contains(rawURL, "sub?target="):
		if depth >= maxConverterDepth {
			return "", fmt.Errorf("%w: converter links nested too deep", subscription.ErrNameUnavailable)
		}
		m := converterInnerURL.FindStringSubmatch(rawURL)
		if m == nil {
			return "", fmt.Errorf("%w: converter link without url parameter", subscription.ErrNameUnavailable)
		}
		return r.resolve(ctx, unquote(m[1]), depth+1)

	case strings.Contains(rawURL, "api/v1/client/subscribe?token"):
		return r.fromDisposition(ctx, rawURL)

	default:
		return r.fromPanelTitle(ctx, rawURL)
	}
}

func (r *NameResolver) fromDisposition(ctx context.Context, rawURL string) (string, error) {
	if !strings.Contains(rawURL, "&flag=clash") {
		rawURL += "&flag=clash"
	}

	resp, err := r.fetcher.Get(ctx, rawURL, Options{
		UserAgent: r.cfg.ClientUserAgent,
		Timeout:   r.cfg.PanelTimeout,
		Redirects: FollowAll,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", subscription.ErrNameUnavailable, err)
	}

	m := dispositionName.FindStringSubmatch(resp.Header.Get("Content-Disposition"))
	if m == nil {
		return "", fmt.Errorf("%w: no filename in Content-Disposition", subscription.ErrNameUnavailable)
	}

	name := unquote(m[1])
	name = strings.ReplaceAll(name, "%20", " ")
	name = strings.ReplaceAll(name, "%2B", "+")
	return name, nil
}

func (r *NameResolver) fromPanelTitle(ctx context.Context, rawURL string) (string, error) {
	m := schemeAndHost.FindStringSubmatch(rawURL)
	if m == nil {
		return "", fmt.Errorf("%w: no host in %q", subscription.ErrNameUnavailable, rawURL)
	}
	base := m[1] + m[2]

	opts := Options{UserAgent: r.cfg.BrowserUserAgent, Timeout: r.cfg.LoginTimeout, Redirects: FollowAll}
	resp, err := r.fetcher.Get(ctx, base+"/auth/login", opts)
	if err == nil && resp.StatusCode != http.StatusOK {
		opts.Timeout = r.cfg.FallbackTimeout
		resp, err = r.fetcher.Get(ctx, base, opts)
	}
	if err != nil {
		return "", fmt.Errorf("%w: %w", subscription.ErrNameUnavailable, err)
	}

	title, err := r.extractTitle(resp)
	if err != nil {
		return "", err
	}
	return labelTitle(title), nil
}

func (r *NameResolver) extractTitle(resp *Response) (string, error) {
	reader, err := charset.NewReader(bytes.NewReader(resp.Body), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("%w: %w", subscription.ErrNameUnavailable, err)
	}

	doc, err := goquery.NewDocumentFromReader(reader)
	if err != nil {
		return "", fmt.Errorf("%w: %w", subscription.ErrNameUnavailable, err)
	}

	sel := doc.Find("title").First()
	if sel.Length() == 0 {
		return "", fmt.Errorf("%w: page has no title", subscription.ErrNameUnavailable)
	}

	// Title content is raw text to the HTML parser, so tags written inside
	// it (or entity-escaped ones) come back from Text() verbatim.
	title := html.UnescapeString(r.policy.Sanitize(sel.Text()))
	title = strings.TrimSpace(strings.ReplaceAll(title, "登录 — ", ""))
	if title == "" {
		return "", fmt.Errorf("%w: empty title", subscription.ErrNameUnavailable)
	}
	return title, nil
}

func labelTitle(title string) string {
	for _, l := range titleLabels {
		if strings.Contains(title, l.marker) {
			return l.label
		}
	}
	return title
}

// unquote percent-decodes every well-formed escape in s and keeps malformed
// ones verbatim. Invalid UTF-8 in the result becomes U+FFFD.
func unquote(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) {
			if v, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
				b.WriteByte(byte(v))
				i += 2
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return strings.ToValidUTF8(b.String(), "\uFFFD")
}
