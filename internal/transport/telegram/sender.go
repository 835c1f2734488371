package telegram

import (
	"context"
	"strings"

	tele "gopkg.in/telebot.v3"

	"github.com/ramblinglizard/KarmaScanner/pkg/conv"
	"github.com/ramblinglizard/KarmaScanner/pkg/log"
)

const maxTelegramMsgLen = 4000 // Safety margin below 4096

type sender struct {
	bot *tele.Bot
}

func newSender(bot *tele.Bot) *sender {
	return &sender{bot: bot}
}

// sendMarkdown converts Markdown to Telegram HTML and sends it in chunks if
// needed. When Telegram rejects the HTML rendering, the text goes out again
// as plain text so the answer is never lost.
func (s *sender) sendMarkdown(ctx context.Context, to tele.Recipient, md string) error {
	logger := log.FromCtx(ctx)
	html := strings.TrimSpace(conv.MarkdownToTelegramHTML([]byte(md)))

	for i, chunk := range splitText(html, maxTelegramMsgLen) {
		if _, err := s.bot.Send(to, chunk, tele.ModeHTML); err != nil {
			logger.Warn().Err(err).Int("chunk", i).Int("len", len(chunk)).Msg("html send failed, retrying as plain text")
			return s.sendPlain(ctx, to, md)
		}
	}
	return nil
}

func (s *sender) sendPlain(ctx context.Context, to tele.Recipient, md string) error {
	logger := log.FromCtx(ctx)
	text := strings.TrimSpace(conv.MarkdownToPlainText([]byte(md)))

	for i, chunk := range splitText(text, maxTelegramMsgLen) {
		if _, err := s.bot.Send(to, chunk); err != nil {
			logger.Error().Err(err).Int("chunk", i).Int("len", len(chunk)).Msg("failed to send telegram chunk")
			return err
		}
	}
	return nil
}

// splitText splits text into chunks respecting Telegram's limit.
// It tries to split at newlines to preserve formatting.
func splitText(text string, maxLen int) []string {
	if len(text) <= maxLen {
		return []string{text}
	}

	var chunks []string
	for len(text) > 0 {
		if len(text) <= maxLen {
			chunks = append(chunks, text)
			break
		}

		cut := maxLen
		// Prefer a newline break point as long as it keeps chunks a
		// reasonable size.
		if idx := strings.LastIndex(text[:maxLen], "\n"); idx > maxLen/3 {
			cut = idx
		}

		chunks = append(chunks, text[:cut])
		text = strings.TrimSpace(text[cut:])
	}
	return chunks
}
