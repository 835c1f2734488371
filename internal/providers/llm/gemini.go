package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ramblinglizard/KarmaScanner/internal/core"
)

const geminiBaseURL = "https://generativelanguage.googleapis.com"

// Gemini talks to Google's generateContent REST endpoint. Rate limiting
// (HTTP 429 or a RESOURCE_EXHAUSTED status) comes back as a
// *core.RateLimitError so callers can back off and retry.
type Gemini struct {
	baseProvider
}

func NewGemini(apiKey, model string) *Gemini {
	return &Gemini{
		baseProvider: newBaseProvider(geminiBaseURL, apiKey, model),
	}
}

// NewGeminiWithBaseURL exists for tests that stand in for the real API.
func NewGeminiWithBaseURL(baseURL, apiKey, model string) *Gemini {
	return &Gemini{
		baseProvider: newBaseProvider(baseURL, apiKey, model),
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	payload := geminiRequest{
		Contents: []geminiContent{
			{Parts: []geminiPart{{Text: prompt}}},
		},
	}

	headers := map[string]string{
		"x-goog-api-key": g.apiKey,
	}

	path := fmt.Sprintf("/v1beta/models/%s:generateContent", g.model)
	resp, err := g.doRequest(ctx, http.MethodPost, path, payload, headers)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyError(resp.StatusCode, data)
	}

	var apiResp geminiResponse
	if err := json.Unmarshal(data, &apiResp); err != nil {
		return "", fmt.Errorf("decode gemini response: %w", err)
	}

	if len(apiResp.Candidates) == 0 {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var b strings.Builder
	for _, part := range apiResp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	return b.String(), nil
}

func classifyError(statusCode int, data []byte) error {
	if e, ok := parseAPIError(data); ok {
		if statusCode == http.StatusTooManyRequests || e.Error.Status == "RESOURCE_EXHAUSTED" {
			return &core.RateLimitError{StatusCode: statusCode, Detail: e.Error.Message}
		}
		return fmt.Errorf("gemini api error (http %d, %s): %s", statusCode, e.Error.Status, e.Error.Message)
	}
	if statusCode == http.StatusTooManyRequests {
		return &core.RateLimitError{StatusCode: statusCode, Detail: string(data)}
	}
	return fmt.Errorf("gemini http %d: %s", statusCode, string(data))
}
