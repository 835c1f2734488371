package notify

import (
	"context"
	"sync"

	"github.com/ramblinglizard/KarmaScanner/internal/core"
	"github.com/ramblinglizard/KarmaScanner/pkg/log"
	"github.com/rs/zerolog"
)

// OperationComplete is appended when a run finishes, success or not, so the
// host knows it can re-enable its controls.
const OperationComplete = "--- OPERATION COMPLETE ---"

// Console writes progress messages to the context logger.
type Console struct {
	logger *zerolog.Logger
}

func NewConsole(ctx context.Context) *Console {
	return &Console{logger: log.FromCtx(ctx)}
}

func (c *Console) Notify(msg string) {
	c.logger.Info().Msg(msg)
}

// Queue buffers progress messages for a host that drains them elsewhere,
// e.g. a chat transport. A full queue drops new messages instead of stalling
// the analysis pipeline.
type Queue struct {
	ch        chan string
	closeOnce sync.Once
}

func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 256
	}
	return &Queue{ch: make(chan string, size)}
}

func (q *Queue) Notify(msg string) {
	select {
	case q.ch <- msg:
	default:
	}
}

// Messages is the host's read side of the queue.
func (q *Queue) Messages() <-chan string {
	return q.ch
}

// Close appends the OperationComplete sentinel and closes the channel.
// Safe to call more than once.
func (q *Queue) Close() {
	q.closeOnce.Do(func() {
		select {
		case q.ch <- OperationComplete:
		default:
		}
		close(q.ch)
	})
}

// Multi fans one message out to several notifiers.
func Multi(notifiers ...core.Notifier) core.Notifier {
	return core.NotifierFunc(func(msg string) {
		for _, n := range notifiers {
			n.Notify(msg)
		}
	})
}

// Discard drops every message. Useful in tests.
var Discard core.Notifier = core.NotifierFunc(func(string) {})
