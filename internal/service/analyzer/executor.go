package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/ramblinglizard/KarmaScanner/internal/core"
	"github.com/ramblinglizard/KarmaScanner/pkg/retry"
)

// Executor sends prompts to the text generator and absorbs transient rate
// limiting with exponential backoff. Only rate-limit errors are retried;
// anything else fails the query on the spot.
type Executor struct {
	gen       core.TextGenerator
	notifier  core.Notifier
	attempts  int
	baseDelay time.Duration
}

func NewExecutor(gen core.TextGenerator, notifier core.Notifier, attempts int) *Executor {
	if notifier == nil {
		notifier = core.NotifierFunc(func(string) {})
	}
	return &Executor{
		gen:       gen,
		notifier:  notifier,
		attempts:  attempts,
		baseDelay: 5 * time.Second,
	}
}

// Query runs a single prompt. It never returns an error: failures come back
// as an unsuccessful result whose text describes what went wrong.
func (e *Executor) Query(ctx context.Context, prompt string) core.AnalysisResult {
	var text string

	retrier := retry.NewRetrier(&retry.Config{
		MaxAttempts:   e.attempts,
		InitialDelay:  e.baseDelay,
		BackoffFactor: 2,
		RetryIf:       core.IsRateLimit,
		OnWait: func(_ int, wait time.Duration) {
			e.notifier.Notify(fmt.Sprintf("[WARNING] Rate limit hit. Waiting %ds before retry...", int(wait.Seconds())))
		},
	})

	err := retrier.Do(ctx, func() error {
		out, genErr := e.gen.Generate(ctx, prompt)
		if genErr != nil {
			return genErr
		}
		text = out
		return nil
	})
	if err == nil {
		return core.AnalysisResult{Success: true, Text: text}
	}

	if core.IsRateLimit(err) {
		e.notifier.Notify(fmt.Sprintf("[ERROR] Rate limit persists after %d attempts", e.attempts))
		return core.AnalysisResult{Success: false, Text: "Rate limit error: " + err.Error()}
	}
	return core.AnalysisResult{Success: false, Text: "Error: " + err.Error()}
}
