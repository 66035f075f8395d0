// ABOUTME: Retry timing helpers for external API calls
// ABOUTME: Exponential backoff with jitter, shared by the OpenAI client
package util

import (
	"math/rand/v2"
	"time"
)

// maxBackoff caps the delay between retry attempts.
const maxBackoff = 30 * time.Second

// Backoff returns the delay before the given retry attempt: base doubled
// per attempt, capped at 30 seconds, with random jitter of up to 25% in
// either direction.
func Backoff(base time.Duration, attempt int) time.Duration {
	if attempt <= 0 || base <= 0 {
		return 0
	}
	// Bound the shift so it cannot overflow.
	if attempt > 30 {
		attempt = 30
	}
	delay := base * time.Duration(1<<uint(attempt))
	if delay > maxBackoff || delay <= 0 {
		delay = maxBackoff
	}
	jitter := time.Duration(rand.Int64N(int64(delay)/2)) - delay/4
	return delay + jitter
}
