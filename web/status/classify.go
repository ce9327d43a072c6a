package status

import "time"

func (s Status) IsInformational() bool { return s.Code >= 100 && s.Code < 200 }

func (s Status) IsSuccess() bool { return s.Code >= 200 && s.Code < 300 }

// IsRedirect reports whether a client may follow this status automatically.
// Not every 3xx qualifies: 300 has no single target, 304 means "use your
// cached copy" and 305 is deprecated, so none of them count here.
func (s Status) IsRedirect() bool {
	switch s.Code {
	case MovedPermanently.Code, Found.Code, SeeOther.Code,
		TemporaryRedirect.Code, PermanentRedirect.Code:
		return true
	}
	return false
}

// IsUseCached reports whether the response tells the client to reuse its
// cached copy (304).
func (s Status) IsUseCached() bool { return s.Code == NotModified.Code }

// IsClientError covers 4xx plus the 666 sentinel.
func (s Status) IsClientError() bool {
	return (s.Code >= 400 && s.Code < 500) || s.Code == ClientError.Code
}

func (s Status) IsServerError() bool { return s.Code >= 500 && s.Code < 600 }

// IsValid reports whether the toolkit treats the status as a successful
// outcome: 200, 201, 202 or 204.
func (s Status) IsValid() bool {
	switch s.Code {
	case OK.Code, Created.Code, Accepted.Code, NoContent.Code:
		return true
	}
	return false
}

// CanRetry reports whether a request that got this status is worth retrying.
// The set is a fixed allow-list; no other code qualifies regardless of class.
func (s Status) CanRetry() bool {
	switch s.Code {
	case RequestTimeout.Code, Locked.Code, TooEarly.Code, TooManyRequests.Code,
		InternalServerError.Code, ServiceUnavailable.Code, GatewayTimeout.Code:
		return true
	}
	return false
}

// IsExceedsRateLimit reports whether the server pushed back for pacing
// reasons (429, 425).
func (s Status) IsExceedsRateLimit() bool {
	return s.Code == TooManyRequests.Code || s.Code == TooEarly.Code
}

// RetryBaseDelay is the starting retry delay for a status code, before any
// Retry-After header and jitter are applied. Codes without an entry get the
// 256ms default.
func RetryBaseDelay(code int) time.Duration {
	switch code {
	case RequestTimeout.Code:
		return 128 * time.Millisecond
	case Locked.Code, ServiceUnavailable.Code:
		return 1024 * time.Millisecond
	}
	return 256 * time.Millisecond
}
