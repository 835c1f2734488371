package analyzer

import (
	"strings"
	"testing"

	"github.com/ramblinglizard/KarmaScanner/internal/core"
)

func post(sub, title, body string, created int64) core.HistoryItem {
	return core.HistoryItem{Kind: core.KindPost, Subreddit: sub, Title: title, Body: body, CreatedAt: created}
}

func comment(sub, body string, created int64) core.HistoryItem {
	return core.HistoryItem{Kind: core.KindComment, Subreddit: sub, Body: body, CreatedAt: created}
}

func TestFormatItemLine(t *testing.T) {
	tests := []struct {
		name string
		item core.HistoryItem
		want string
	}{
		{
			name: "post with body",
			item: post("golang", "Generics are here", "Some thoughts on type parameters", 100),
			want: "P|r/golang|Generics are here|Some thoughts on type parameters",
		},
		{
			name: "post without body",
			item: post("golang", "Link post", "", 100),
			want: "P|r/golang|Link post|",
		},
		{
			name: "comment",
			item: comment("AskReddit", "interesting take", 100),
			want: "C|r/AskReddit|interesting take",
		},
		{
			name: "long title cut at 80",
			item: post("test", strings.Repeat("t", 120), "", 100),
			want: "P|r/test|" + strings.Repeat("t", 80) + "|",
		},
		{
			name: "long post body cut at 150",
			item: post("test", "t", strings.Repeat("b", 300), 100),
			want: "P|r/test|t|" + strings.Repeat("b", 150),
		},
		{
			name: "long comment cut at 200",
			item: comment("test", strings.Repeat("c", 500), 100),
			want: "C|r/test|" + strings.Repeat("c", 200),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatItemLine(tt.item); got != tt.want {
				t.Errorf("FormatItemLine() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatHistory(t *testing.T) {
	posts := []core.HistoryItem{
		post("a", "oldest", "", 10),
		post("b", "newest", "", 30),
	}
	comments := []core.HistoryItem{
		comment("c", "middle", 20),
	}

	got := FormatHistory(posts, comments, 500)
	want := "Posts:2 Comments:1\n" +
		"\nP|r/b|newest|" +
		"\nC|r/c|middle" +
		"\nP|r/a|oldest|"
	if got != want {
		t.Errorf("FormatHistory() = %q, want %q", got, want)
	}

	// Deterministic for identical input.
	if again := FormatHistory(posts, comments, 500); again != got {
		t.Error("FormatHistory() is not deterministic")
	}
}

func TestFormatHistoryCapsItems(t *testing.T) {
	var posts []core.HistoryItem
	for i := 0; i < 5; i++ {
		posts = append(posts, post("a", "p", "", int64(i)))
	}
	comments := []core.HistoryItem{comment("b", "kept", 100)}

	got := FormatHistory(posts, comments, 3)

	if !strings.HasPrefix(got, "Posts:2 Comments:1\n") {
		t.Errorf("header should count capped items, got %q", got)
	}
	if n := strings.Count(got, "\nP|"); n != 2 {
		t.Errorf("got %d post lines, want 2", n)
	}
	// The newest comment survives the cap.
	if !strings.Contains(got, "C|r/b|kept") {
		t.Errorf("newest comment missing from %q", got)
	}
}

func TestFormatHistoryStableOrderOnTies(t *testing.T) {
	posts := []core.HistoryItem{
		post("a", "first", "", 50),
		post("a", "second", "", 50),
	}
	got := FormatHistory(posts, nil, 500)
	if strings.Index(got, "first") > strings.Index(got, "second") {
		t.Errorf("equal timestamps should keep input order, got %q", got)
	}
}

func TestCorpusText(t *testing.T) {
	items := []core.HistoryItem{
		post("a", "t", "b", 1),
		comment("c", "x", 2),
	}
	want := "P|r/a|t|b\nC|r/c|x"
	if got := CorpusText(items); got != want {
		t.Errorf("CorpusText() = %q, want %q", got, want)
	}
	if CorpusText(nil) != "" {
		t.Error("CorpusText(nil) should be empty")
	}
}
