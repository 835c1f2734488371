package reddit

import (
	"context"
	"fmt"
	"time"

	"github.com/ramblinglizard/KarmaScanner/internal/core"
)

const (
	tombstoneBody = "[removed]"
	deletedAuthor = "[deleted]"

	postProgressEvery    = 50
	commentProgressEvery = 100
)

// History implements core.HistorySource over the public listings. Listings
// come back newest first, so pagination stops at the first item older than
// the requested window.
type History struct {
	client   *Client
	notifier core.Notifier
}

func NewHistory(client *Client, notifier core.Notifier) *History {
	if notifier == nil {
		notifier = core.NotifierFunc(func(string) {})
	}
	return &History{
		client:   client,
		notifier: notifier,
	}
}

func (h *History) UserHistory(ctx context.Context, username string, window time.Duration) ([]core.HistoryItem, []core.HistoryItem, error) {
	h.notifier.Notify(fmt.Sprintf("[INFO] Extracting history for u/%s...", username))

	var cutoff int64
	if window > 0 {
		cutoff = time.Now().Add(-window).Unix()
	}

	h.notifier.Notify("[INFO] Fetching posts...")
	posts, err := h.collect(ctx, username, "submitted", cutoff)
	if err != nil {
		return nil, nil, err
	}
	h.notifier.Notify(fmt.Sprintf("[SUCCESS] Extracted %d posts", len(posts)))

	h.notifier.Notify("[INFO] Fetching comments...")
	comments, err := h.collect(ctx, username, "comments", cutoff)
	if err != nil {
		return nil, nil, err
	}
	h.notifier.Notify(fmt.Sprintf("[SUCCESS] Extracted %d comments", len(comments)))
	h.notifier.Notify(fmt.Sprintf("[SUMMARY] Total items: %d", len(posts)+len(comments)))

	return posts, comments, nil
}

func (h *History) collect(ctx context.Context, username, section string, cutoff int64) ([]core.HistoryItem, error) {
	var items []core.HistoryItem
	after := ""

	for {
		page, err := h.client.userPage(ctx, username, section, after)
		if err != nil {
			return nil, err
		}

		for _, c := range page.Data.Children {
			created := int64(c.Data.CreatedUTC)
			if created < cutoff {
				return items, nil
			}
			if c.Data.Author == deletedAuthor && c.Data.Body == tombstoneBody {
				continue
			}
			items = append(items, toItem(section, c.Data))
			h.progress(section, len(items))
		}

		after = page.Data.After
		if after == "" || len(page.Data.Children) == 0 {
			return items, nil
		}
	}
}

func (h *History) progress(section string, count int) {
	switch section {
	case "submitted":
		if count%postProgressEvery == 0 {
			h.notifier.Notify(fmt.Sprintf("  -> Found %d posts...", count))
		}
	case "comments":
		if count%commentProgressEvery == 0 {
			h.notifier.Notify(fmt.Sprintf("  -> Found %d comments...", count))
		}
	}
}

func toItem(section string, t thing) core.HistoryItem {
	if section == "submitted" {
		return core.HistoryItem{
			Kind:      core.KindPost,
			Subreddit: t.Subreddit,
			Title:     t.Title,
			Body:      t.Selftext,
			Score:     t.Score,
			URL:       t.URL,
			CreatedAt: int64(t.CreatedUTC),
		}
	}
	return core.HistoryItem{
		Kind:      core.KindComment,
		Subreddit: t.Subreddit,
		Body:      t.Body,
		Score:     t.Score,
		CreatedAt: int64(t.CreatedUTC),
	}
}
