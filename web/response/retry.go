package response

import (
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"httpkit/web/catalog"
	"httpkit/web/status"

	"github.com/benbjohnson/clock"
)

const (
	// MinRetryDelay and MaxRetryDelay bound every computed retry delay.
	MinRetryDelay = 100 * time.Millisecond
	MaxRetryDelay = 30 * time.Second

	// DefaultJitterMax is the half-open upper bound of the random jitter
	// added to keep retrying clients from stampeding in lockstep.
	DefaultJitterMax = 128 * time.Millisecond
)

// RetryPolicy carries what the delay computation depends on. The zero value
// uses the wall clock, the global RNG and the default jitter bound; tests
// inject a mock clock and a seeded source to make the result reproducible.
type RetryPolicy struct {
	Clock     clock.Clock
	Rand      *rand.Rand
	JitterMax time.Duration
}

func (p RetryPolicy) now() time.Time {
	if p.Clock != nil {
		return p.Clock.Now()
	}
	return time.Now()
}

func (p RetryPolicy) jitter() time.Duration {
	bound := p.JitterMax
	if bound <= 0 {
		bound = DefaultJitterMax
	}
	if p.Rand != nil {
		return time.Duration(p.Rand.Int63n(int64(bound)))
	}
	return time.Duration(rand.Int63n(int64(bound)))
}

// RetryAfter computes how long to wait before retrying this response with
// the default policy.
func (r *Response) RetryAfter() time.Duration {
	return r.RetryAfterIn(RetryPolicy{})
}

// RetryAfterIn computes the retry delay: the per-status base, raised by a
// Retry-After or X-Retry-After header carrying either delay-seconds or an
// HTTP date, clamped to [MinRetryDelay, MaxRetryDelay], plus jitter, then
// clamped once more.
//
// Reference: https://datatracker.ietf.org/doc/html/rfc7231#section-7.1.3
func (r *Response) RetryAfterIn(p RetryPolicy) time.Duration {
	base := status.RetryBaseDelay(r.Status.Code)
	delay := base

	if v := r.retryAfterHeader(); v != "" {
		if secs, err := strconv.ParseFloat(v, 64); err == nil {
			delay = max(time.Duration(secs*float64(time.Second)), base)
		} else if at, err := http.ParseTime(v); err == nil {
			delay = max(base, at.Sub(p.now()))
		}
	}

	delay = clampDelay(delay)
	delay += p.jitter()
	return clampDelay(delay)
}

func (r *Response) retryAfterHeader() string {
	if r.Headers == nil {
		return ""
	}
	if v, ok := r.Headers.Get(catalog.RetryAfter); ok {
		return v
	}
	v, _ := r.Headers.Get(catalog.XRetryAfter)
	return v
}

func clampDelay(d time.Duration) time.Duration {
	if d < MinRetryDelay {
		return MinRetryDelay
	}
	if d > MaxRetryDelay {
		return MaxRetryDelay
	}
	return d
}
