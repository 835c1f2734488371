package retry

import (
	"context"
	"time"
)

type Operation = func() error

type Config struct {
	// MaxAttempts is the total number of tries, including the first one.
	MaxAttempts   int
	InitialDelay  time.Duration
	BackoffFactor float64
	// RetryIf reports whether an error is worth another attempt.
	// When nil, every error is retried.
	RetryIf func(err error) bool
	// OnWait is called before each backoff sleep with the number of the
	// attempt that just failed (1-based) and the upcoming wait.
	OnWait func(attempt int, wait time.Duration)
}

func NewDefaultConfig() *Config {
	return &Config{
		MaxAttempts:   3,
		InitialDelay:  5 * time.Second,
		BackoffFactor: 2,
	}
}

type Retrier struct {
	config *Config
}

func NewRetrier(config *Config) *Retrier {
	return &Retrier{
		config: config,
	}
}

func NewDefaultRetrier() *Retrier {
	return NewRetrier(NewDefaultConfig())
}

// Do runs op until it succeeds, the attempt budget runs out, an error fails
// the RetryIf check, or the context is cancelled during a backoff wait.
// The wait schedule is strictly geometric: InitialDelay, then each wait
// multiplied by BackoffFactor.
func (r *Retrier) Do(ctx context.Context, op Operation) error {
	delay := r.config.InitialDelay
	var err error

	for attempt := 0; attempt < r.config.MaxAttempts; attempt++ {
		err = op()
		if err == nil {
			return nil
		}

		if r.config.RetryIf != nil && !r.config.RetryIf(err) {
			return err
		}

		if attempt == r.config.MaxAttempts-1 {
			return err
		}

		if r.config.OnWait != nil {
			r.config.OnWait(attempt+1, delay)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * r.config.BackoffFactor)
	}
	return err
}
