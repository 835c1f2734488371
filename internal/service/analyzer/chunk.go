package analyzer

import "github.com/ramblinglizard/KarmaScanner/internal/core"

// Chunk is a consecutive slice of history items whose formatted lines fit
// within a single request budget.
type Chunk struct {
	Items  []core.HistoryItem
	Tokens int
}

// SplitItems partitions items in order into chunks of at most maxTokens
// estimated tokens each. Every chunk after the first reserves headerReserve
// tokens for the per-chunk header and legend. An item whose own cost exceeds
// the budget still gets a chunk of its own; nothing is dropped.
func SplitItems(items []core.HistoryItem, est Estimator, maxTokens, headerReserve int) []Chunk {
	var chunks []Chunk
	var cur []core.HistoryItem
	curTokens := 0

	for _, item := range items {
		itemTokens := est.Estimate(FormatItemLine(item))
		if curTokens+itemTokens > maxTokens && len(cur) > 0 {
			chunks = append(chunks, Chunk{Items: cur, Tokens: curTokens})
			cur = nil
			curTokens = headerReserve
		}
		cur = append(cur, item)
		curTokens += itemTokens
	}
	if len(cur) > 0 {
		chunks = append(chunks, Chunk{Items: cur, Tokens: curTokens})
	}
	return chunks
}
