package core

import (
	"context"
	"time"
)

// HistorySource yields a user's posts and comments, newest first, bounded by
// the time window (zero window means full history).
type HistorySource interface {
	UserHistory(ctx context.Context, username string, window time.Duration) (posts, comments []HistoryItem, err error)
}

// TextGenerator produces text for a prompt. Rate-limit conditions are
// reported as *RateLimitError so callers can branch on the error type.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Notifier receives human-readable progress messages. Implementations must be
// safe for use from the analysis goroutine while the host drains elsewhere.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }
