// Package ratelimit caps how often one client may submit diagnostics or chat messages.
package ratelimit

import "context"

// Limiter decides whether a client may make another request.
// retryAfter is the number of seconds until the client may retry when not allowed.
type Limiter interface {
	Allow(ctx context.Context, clientID string) (allowed bool, retryAfter int, err error)
}
