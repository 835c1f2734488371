package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ramblinglizard/KarmaScanner/internal/core"
)

// Per-item truncation limits for the compact encoding. Hard byte slices, no
// ellipsis: the output feeds a language model, not a screen.
const (
	maxTitleLen       = 80
	maxPostBodyLen    = 150
	maxCommentBodyLen = 200
)

// FormatItemLine encodes one item as a single compact line:
// posts as "P|r/<sub>|<title>|<body>", comments as "C|r/<sub>|<body>".
// The chunk partitioner prices items with exactly this encoding.
func FormatItemLine(item core.HistoryItem) string {
	if item.IsPost() {
		return "P|r/" + item.Subreddit + "|" + truncate(item.Title, maxTitleLen) + "|" + truncate(item.Body, maxPostBodyLen)
	}
	return "C|r/" + item.Subreddit + "|" + truncate(item.Body, maxCommentBodyLen)
}

// FormatHistory merges posts and comments into one compact blob: a count
// header followed by one line per item, newest first. When the merged set
// exceeds maxItems only the most recent maxItems survive.
func FormatHistory(posts, comments []core.HistoryItem, maxItems int) string {
	all := make([]core.HistoryItem, 0, len(posts)+len(comments))
	all = append(all, posts...)
	all = append(all, comments...)

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt > all[j].CreatedAt
	})

	if maxItems > 0 && len(all) > maxItems {
		all = all[:maxItems]
	}

	postCount := 0
	for _, item := range all {
		if item.IsPost() {
			postCount++
		}
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("Posts:%d Comments:%d\n", postCount, len(all)-postCount))
	for _, item := range all {
		b.WriteString("\n")
		b.WriteString(FormatItemLine(item))
	}
	return b.String()
}

// CorpusText is the untruncated full-corpus encoding used for the token
// estimate that picks the single-shot or multi-chunk path.
func CorpusText(items []core.HistoryItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, FormatItemLine(item))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, max int) string {
	if len(s) > max {
		return s[:max]
	}
	return s
}
