package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userbot/internal/shared/logger"
)

func TestSubscriptionClient(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/sub", http.StatusFound)
	})
	mux.HandleFunc("/sub", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Subscription-Userinfo", "upload=1; download=2; total=3; expire=4")
		_, _ = w.Write([]byte("proxies: []"))
	})
	mux.HandleFunc("/moved", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/sub", http.StatusSeeOther)
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	fetcher := NewFetcher(Config{}, nil, logger.NewNopLogger())
	client := NewSubscriptionClient(fetcher, "ClashforWindows/0.18.1", time.Second)
	ctx := context.Background()

	primary, err := client.FetchPrimary(ctx, srv.URL+"/old")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, primary.StatusCode)
	assert.Equal(t, "upload=1; download=2; total=3; expire=4", primary.UserInfo)

	primary, err = client.FetchPrimary(ctx, srv.URL+"/moved")
	require.NoError(t, err)
	assert.Equal(t, http.StatusSeeOther, primary.StatusCode)

	body, err := client.FetchBody(ctx, srv.URL+"/moved")
	require.NoError(t, err)
	assert.Equal(t, "proxies: []", string(body))

	_, err = client.FetchBody(ctx, srv.URL+"/gone")
	assert.Error(t, err)
}

func TestSubscriptionClient_PrimaryIgnoresBodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Subscription-Userinfo", "upload=1; download=2; total=3")
		_, _ = w.Write([]byte(strings.Repeat("x", 64)))
	}))
	defer srv.Close()

	fetcher := NewFetcher(Config{MaxBodyBytes: 8}, nil, logger.NewNopLogger())
	client := NewSubscriptionClient(fetcher, "ClashforWindows/0.18.1", time.Second)
	ctx := context.Background()

	primary, err := client.FetchPrimary(ctx, srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, primary.StatusCode)
	assert.Equal(t, "upload=1; download=2; total=3", primary.UserInfo)

	_, err = client.FetchBody(ctx, srv.URL)
	assert.ErrorIs(t, err, ErrBodyTooLarge)
}
