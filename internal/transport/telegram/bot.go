package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/ramblinglizard/KarmaScanner/internal/config"
	"github.com/ramblinglizard/KarmaScanner/internal/core"
	"github.com/ramblinglizard/KarmaScanner/internal/notify"
	"github.com/ramblinglizard/KarmaScanner/internal/service/analyzer"
	"github.com/ramblinglizard/KarmaScanner/pkg/log"
)

const baseContextKey = "base_context"

const helpText = `KarmaScanner commands:
/analyze <username> [days] -- <question>
/runs

Example: /analyze spez 30 -- what topics do they post about?
Days of 0 (or omitted) means the full history.`

// RunnerFactory builds an analysis runner around a per-request notifier so
// progress can stream back to the chat that asked.
type RunnerFactory func(notifier core.Notifier) *analyzer.Runner

type Bot struct {
	bot     *tele.Bot
	cfg     *config.TelegramConfig
	runners RunnerFactory
	runs    core.RunsRepository
	sender  *sender
	ownerID int64
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	runners RunnerFactory,
	runs core.RunsRepository,
) (*Bot, error) {
	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	bot := &Bot{
		bot:     b,
		cfg:     cfg,
		runners: runners,
		runs:    runs,
		sender:  newSender(b),
		ownerID: cfg.OwnerID,
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	// Middleware: Only allow the owner
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			if c.Sender().ID != bot.ownerID {
				return nil // Ignore unauthorized users
			}
			return next(c)
		}
	})

	b.Handle("/analyze", bot.handleAnalyze)
	b.Handle("/runs", bot.handleRuns)
	b.Handle(tele.OnText, func(c tele.Context) error {
		return c.Send(helpText)
	})

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleAnalyze(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	logger := log.FromCtx(ctx)

	req, err := parseAnalyzeCommand(c.Message().Payload)
	if err != nil {
		return c.Send(fmt.Sprintf("%v\n\n%s", err, helpText))
	}

	_ = c.Notify(tele.Typing)

	queue := notify.NewQueue(64)
	runner := b.runners(queue)
	chat := c.Chat()

	go func() {
		done := make(chan struct{})
		go func() {
			defer close(done)
			for msg := range queue.Messages() {
				if _, err := b.bot.Send(chat, msg); err != nil {
					logger.Error().Err(err).Msg("failed to send progress message")
				}
			}
		}()

		result := runner.Run(ctx, req)
		queue.Close()
		<-done

		if !result.Success {
			if _, err := b.bot.Send(chat, "Analysis failed: "+result.Text); err != nil {
				logger.Error().Err(err).Msg("failed to send failure message")
			}
			return
		}
		if err := b.sender.sendMarkdown(ctx, chat, result.Text); err != nil {
			logger.Error().Err(err).Msg("failed to send analysis answer")
		}
	}()

	return nil
}

func (b *Bot) handleRuns(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)

	if b.runs == nil {
		return c.Send("Run history is not enabled.")
	}

	runs, err := b.runs.RecentRuns(ctx, 10)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("failed to load recent runs")
		return c.Send("Could not load recent runs.")
	}
	if len(runs) == 0 {
		return c.Send("No runs recorded yet.")
	}

	var sb strings.Builder
	sb.WriteString("Recent runs:\n")
	for _, run := range runs {
		status := "ok"
		if !run.Success {
			status = "failed"
		}
		fmt.Fprintf(&sb, "#%d u/%s (%s, %d items, %d chunks) %s\n",
			run.ID, run.Identity, status, run.ItemCount, run.Chunks, run.CreatedAt.Format("2006-01-02 15:04"))
	}
	return c.Send(sb.String())
}

// parseAnalyzeCommand parses "<username> [days] -- <question>".
func parseAnalyzeCommand(payload string) (core.AnalysisRequest, error) {
	head, question, found := strings.Cut(payload, "--")
	question = strings.TrimSpace(question)
	if !found || question == "" {
		return core.AnalysisRequest{}, fmt.Errorf("missing question")
	}

	fields := strings.Fields(head)
	if len(fields) == 0 || len(fields) > 2 {
		return core.AnalysisRequest{}, fmt.Errorf("expected a username and an optional day count")
	}

	req := core.AnalysisRequest{
		Identity: strings.TrimPrefix(fields[0], "u/"),
		Question: question,
	}

	if len(fields) == 2 {
		days, err := strconv.Atoi(fields[1])
		if err != nil || days < 0 {
			return core.AnalysisRequest{}, fmt.Errorf("invalid day count %q", fields[1])
		}
		req.Window = time.Duration(days) * 24 * time.Hour
	}

	return req, nil
}
