package analyzer

import (
	"fmt"
	"strings"
)

func buildSingleShotPrompt(question, history string) string {
	return fmt.Sprintf(`Analyze this Reddit user's activity and answer the question below.

DATA FORMAT (ultra-compact to save tokens):
- First line: Posts:N Comments:M
- P|subreddit|title|body = Post
- C|subreddit|text = Comment

QUESTION: %s

USER ACTIVITY:
%s

Provide a detailed, insightful answer based on patterns and topics in their activity. Reference specific examples.`,
		question, history)
}

func buildChunkPrompt(question, history string, index, total int) string {
	return fmt.Sprintf(`Analyze this PARTIAL Reddit user activity (chunk %d/%d) and answer the question.

QUESTION: %s

PARTIAL ACTIVITY:
%s

Provide insights based on THIS chunk only. Keep response concise as it will be combined with other chunks.`,
		index, total, question, history)
}

func buildSynthesisPrompt(question string, partials []string, totalChunks int) string {
	return fmt.Sprintf(`You analyzed a Reddit user in %d parts. Below are the partial analyses.

ORIGINAL QUESTION: %s

PARTIAL ANALYSES:
%s

Synthesize these partial analyses into ONE comprehensive, coherent answer to the original question. Combine insights, identify patterns across all chunks, and provide a unified perspective.`,
		totalChunks, question, strings.Join(partials, "\n\n"))
}
