package core

import "time"

const (
	AppName       = "KarmaScanner"
	AppUserAgent  = "KarmaScanner/2.0"
	AppVersion    = "2.0.0"
	RepositoryURL = "https://github.com/ramblinglizard/KarmaScanner"
)

type ItemKind string

const (
	KindPost    ItemKind = "post"
	KindComment ItemKind = "comment"
)

// HistoryItem is one post or comment from a user's history. CreatedAt is the
// sole ordering key; Title and URL are only set for posts.
type HistoryItem struct {
	Kind      ItemKind
	Subreddit string
	CreatedAt int64 // unix seconds, UTC
	Score     int
	Title     string
	Body      string
	URL       string
}

func (i HistoryItem) IsPost() bool {
	return i.Kind == KindPost
}

type AnalysisRequest struct {
	Identity string
	Question string
	// Window bounds how far back history is fetched. Zero means unbounded.
	Window time.Duration
}

// AnalysisResult is the only structured signal crossing the pipeline boundary.
// On failure Text carries a human-readable diagnostic, never a partial answer.
type AnalysisResult struct {
	Success bool
	Text    string
}

// AnalysisRun is a persisted record of one completed analysis.
type AnalysisRun struct {
	ID        int64
	Identity  string
	Question  string
	Success   bool
	Answer    string
	ItemCount int
	Chunks    int
	Duration  time.Duration
	CreatedAt time.Time
}
