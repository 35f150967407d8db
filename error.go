/*
Copyright © 2026 Rezzed AI.

Released under MIT license.
*/

package rategate

import (
	"fmt"
	"time"
)

// RateLimitError is returned by Gate.Hit when the number of events recorded
// for a key within the current window is not below the configured limit.
//
// It is an expected, recoverable outcome rather than a fatal condition:
// callers are supposed to branch on it (errors.As) and, for example, respond
// to the upstream requester with a retry-after hint derived from ResetIn.
type RateLimitError struct {
	// Category is the configured diagnostic label of the Gate.
	Category string

	// Limit is the configured maximum number of events per window.
	Limit int

	// Window is the configured sliding window duration.
	Window time.Duration

	// ResetIn is the number of whole seconds (rounded up) until the oldest
	// counted event leaves the window and the next slot frees up. A caller
	// retrying at or after this delay is guaranteed the window has advanced.
	ResetIn int
}

func newRateLimitError(category string, limit int, window time.Duration, resetIn int) *RateLimitError {
	return &RateLimitError{Category: category, Limit: limit, Window: window, ResetIn: resetIn}
}

// Error implements the error interface.
func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s exceeded: at most %d events per %s are allowed, retry in %ds",
		e.Category, e.Limit, e.Window, e.ResetIn)
}
