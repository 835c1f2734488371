package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func fastConfig() *Config {
	return &Config{
		MaxAttempts:   3,
		InitialDelay:  5 * time.Millisecond,
		BackoffFactor: 2,
	}
}

func TestRetry_SuccessOnFirstTry(t *testing.T) {
	ctx := context.Background()
	retrier := NewRetrier(fastConfig())

	counter := 0
	err := retrier.Do(ctx, func() error {
		counter++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counter != 1 {
		t.Errorf("expected 1 attempt, got %d", counter)
	}
}

func TestRetry_SuccessAfterRetries(t *testing.T) {
	ctx := context.Background()
	retrier := NewRetrier(fastConfig())

	counter := 0
	err := retrier.Do(ctx, func() error {
		counter++
		if counter < 3 {
			return errors.New("temporary error")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counter != 3 {
		t.Errorf("expected 3 attempts, got %d", counter)
	}
}

func TestRetry_AttemptBudgetExhausted(t *testing.T) {
	ctx := context.Background()
	retrier := NewRetrier(fastConfig())

	expectedErr := errors.New("persistent error")
	counter := 0
	err := retrier.Do(ctx, func() error {
		counter++
		return expectedErr
	})
	if !errors.Is(err, expectedErr) {
		t.Errorf("expected %v, got %v", expectedErr, err)
	}
	if counter != 3 {
		t.Errorf("expected 3 attempts, got %d", counter)
	}
}

func TestRetry_RetryIfStopsImmediately(t *testing.T) {
	ctx := context.Background()
	cfg := fastConfig()
	cfg.RetryIf = func(err error) bool { return false }
	retrier := NewRetrier(cfg)

	counter := 0
	err := retrier.Do(ctx, func() error {
		counter++
		return errors.New("fatal")
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if counter != 1 {
		t.Errorf("expected 1 attempt, got %d", counter)
	}
}

func TestRetry_GeometricSchedule(t *testing.T) {
	ctx := context.Background()
	cfg := fastConfig()

	var waits []time.Duration
	cfg.OnWait = func(attempt int, wait time.Duration) {
		waits = append(waits, wait)
	}
	retrier := NewRetrier(cfg)

	_ = retrier.Do(ctx, func() error {
		return errors.New("error")
	})

	expected := []time.Duration{5 * time.Millisecond, 10 * time.Millisecond}
	if len(waits) != len(expected) {
		t.Fatalf("expected %d waits, got %d", len(expected), len(waits))
	}
	for i, w := range waits {
		if w != expected[i] {
			t.Errorf("wait %d: expected %v, got %v", i, expected[i], w)
		}
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	retrier := NewRetrier(fastConfig())

	err := retrier.Do(ctx, func() error {
		cancel()
		return errors.New("error after cancel")
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
