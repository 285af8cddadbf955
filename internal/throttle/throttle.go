// Package throttle spaces out requests to the wiki and image hosts.
package throttle

import (
	"time"

	"golang.org/x/time/rate"
)

// New returns a limiter that lets one request through immediately and then
// one per interval. A non-positive interval disables throttling.
func New(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}
