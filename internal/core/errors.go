package core

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound means the identity does not exist or was deleted.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserSuspended means the identity exists but is suspended/forbidden.
	ErrUserSuspended = errors.New("user suspended")
)

// RateLimitError marks a quota or rate-limit response from the generative
// service. The executor retries exactly these; everything else fails fast.
type RateLimitError struct {
	StatusCode int
	Detail     string
}

func (e *RateLimitError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("rate limited (http %d): %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("rate limited: %s", e.Detail)
}

func IsRateLimit(err error) bool {
	var rle *RateLimitError
	return errors.As(err, &rle)
}
