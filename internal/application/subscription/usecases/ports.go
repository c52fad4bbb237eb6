package usecases

import (
	"context"
)

// PrimaryResponse is the final response of the traffic fetch.
type PrimaryResponse struct {
	StatusCode int
	// UserInfo is the subscription-userinfo header, empty when absent.
	UserInfo string
}

// SubscriptionSource fetches subscription links.
type SubscriptionSource interface {
	// FetchPrimary follows 301/302 redirects and returns the final response.
	// An error means no response was obtained at all.
	FetchPrimary(ctx context.Context, url string) (*PrimaryResponse, error)
	// FetchBody refetches the subscription for aggregation. Non-200
	// responses are errors.
	FetchBody(ctx context.Context, url string) ([]byte, error)
}

// NameResolver derives a human label for the provider behind a link.
type NameResolver interface {
	Resolve(ctx context.Context, url string) (string, error)
}

// OutcomeRecorder counts inspected links by outcome.
type OutcomeRecorder interface {
	IncInspectOutcome(outcome string)
}
