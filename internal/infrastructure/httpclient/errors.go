package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// FailureKind classifies why a fetch produced no response.
type FailureKind string

const (
	KindTimedOut          FailureKind = "timed_out"
	KindConnectionRefused FailureKind = "connection_refused"
	KindTooManyRedirects  FailureKind = "too_many_redirects"
	KindOther             FailureKind = "other"
)

var ErrBodyTooLarge = errors.New("response body exceeds limit")

// FetchError is returned by Fetcher.Get when no final response was obtained.
type FetchError struct {
	Kind FailureKind
	URL  string
	Err  error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch %s: %s", e.URL, e.Kind)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// KindOf returns the failure kind of err, or "" when err is not a FetchError.
func KindOf(err error) FailureKind {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Kind
	}
	return ""
}

func classify(err error) FailureKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimedOut
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimedOut
	}
	if errors.Is(err, syscall.ECONNREFUSED) {
		return KindConnectionRefused
	}
	return KindOther
}
