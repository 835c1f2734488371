package analyzer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ramblinglizard/KarmaScanner/internal/core"
)

type recordingNotifier struct {
	mu   sync.Mutex
	msgs []string
}

func (n *recordingNotifier) Notify(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.msgs = append(n.msgs, msg)
}

func (n *recordingNotifier) messages() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.msgs...)
}

// scriptedGenerator replays a fixed sequence of responses.
type scriptedGenerator struct {
	mu      sync.Mutex
	calls   int
	prompts []string
	script  []func() (string, error)
}

func (g *scriptedGenerator) Generate(_ context.Context, prompt string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.calls
	g.calls++
	g.prompts = append(g.prompts, prompt)
	if i < len(g.script) {
		return g.script[i]()
	}
	return g.script[len(g.script)-1]()
}

func ok(text string) func() (string, error) {
	return func() (string, error) { return text, nil }
}

func rateLimited() func() (string, error) {
	return func() (string, error) {
		return "", &core.RateLimitError{StatusCode: 429, Detail: "quota exceeded"}
	}
}

func hardError(msg string) func() (string, error) {
	return func() (string, error) { return "", errors.New(msg) }
}

func newTestExecutor(gen core.TextGenerator, n core.Notifier) *Executor {
	e := NewExecutor(gen, n, 3)
	e.baseDelay = time.Millisecond
	return e
}

func TestExecutorQuerySuccess(t *testing.T) {
	gen := &scriptedGenerator{script: []func() (string, error){ok("answer")}}
	res := newTestExecutor(gen, nil).Query(context.Background(), "prompt")

	if !res.Success || res.Text != "answer" {
		t.Errorf("got %+v, want success with %q", res, "answer")
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
}

func TestExecutorQueryRecoversFromRateLimit(t *testing.T) {
	gen := &scriptedGenerator{script: []func() (string, error){
		rateLimited(),
		rateLimited(),
		ok("eventually"),
	}}
	notifier := &recordingNotifier{}

	res := newTestExecutor(gen, notifier).Query(context.Background(), "prompt")

	if !res.Success || res.Text != "eventually" {
		t.Fatalf("got %+v, want success on third attempt", res)
	}
	if gen.calls != 3 {
		t.Errorf("generator called %d times, want 3", gen.calls)
	}

	var warnings int
	for _, m := range notifier.messages() {
		if strings.HasPrefix(m, "[WARNING] Rate limit hit.") {
			warnings++
		}
	}
	if warnings != 2 {
		t.Errorf("got %d rate limit warnings, want 2", warnings)
	}
}

func TestExecutorQueryRateLimitExhausted(t *testing.T) {
	gen := &scriptedGenerator{script: []func() (string, error){rateLimited()}}
	notifier := &recordingNotifier{}

	res := newTestExecutor(gen, notifier).Query(context.Background(), "prompt")

	if res.Success {
		t.Fatal("expected failure after exhausting attempts")
	}
	if !strings.HasPrefix(res.Text, "Rate limit error: ") {
		t.Errorf("got %q, want rate limit failure text", res.Text)
	}
	if gen.calls != 3 {
		t.Errorf("generator called %d times, want 3", gen.calls)
	}

	msgs := notifier.messages()
	if len(msgs) == 0 || msgs[len(msgs)-1] != "[ERROR] Rate limit persists after 3 attempts" {
		t.Errorf("missing exhaustion notice, got %v", msgs)
	}
}

func TestExecutorQueryDoesNotRetryOtherErrors(t *testing.T) {
	gen := &scriptedGenerator{script: []func() (string, error){hardError("invalid key")}}

	res := newTestExecutor(gen, nil).Query(context.Background(), "prompt")

	if res.Success {
		t.Fatal("expected failure")
	}
	if res.Text != "Error: invalid key" {
		t.Errorf("got %q, want %q", res.Text, "Error: invalid key")
	}
	if gen.calls != 1 {
		t.Errorf("generator called %d times, want 1", gen.calls)
	}
}

func TestExecutorBackoffSchedule(t *testing.T) {
	gen := &scriptedGenerator{script: []func() (string, error){rateLimited()}}
	notifier := &recordingNotifier{}

	e := NewExecutor(gen, notifier, 3)
	e.baseDelay = 5 * time.Millisecond
	start := time.Now()
	e.Query(context.Background(), "prompt")

	// Two waits: 5ms then 10ms.
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Errorf("expected at least 15ms of backoff, got %v", elapsed)
	}
}
