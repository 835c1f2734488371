package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ramblinglizard/KarmaScanner/internal/config"
	"github.com/ramblinglizard/KarmaScanner/internal/core"
)

// Client reads user history through Reddit's public JSON listings. No OAuth:
// the .json endpoints only need a descriptive User-Agent.
type Client struct {
	client    *http.Client
	baseURL   string
	userAgent string
	pageSize  int
}

func NewClient(cfg *config.RedditConfig) *Client {
	return &Client{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		pageSize:  cfg.PageSize,
	}
}

// userPage fetches one page of a user listing, either "submitted" or
// "comments". A 404 means the account does not exist or was deleted, a 403
// means it was suspended.
func (c *Client) userPage(ctx context.Context, username, section, after string) (listing, error) {
	q := url.Values{}
	q.Set("raw_json", "1")
	q.Set("limit", fmt.Sprintf("%d", c.pageSize))
	q.Set("sort", "new")
	if after != "" {
		q.Set("after", after)
	}

	endpoint := fmt.Sprintf("%s/user/%s/%s.json?%s", c.baseURL, url.PathEscape(username), section, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return listing{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return listing{}, fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return listing{}, core.ErrUserNotFound
	case http.StatusForbidden:
		return listing{}, core.ErrUserSuspended
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return listing{}, fmt.Errorf("reddit http %d: %s", resp.StatusCode, string(body))
	}

	var l listing
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		return listing{}, fmt.Errorf("decode listing: %w", err)
	}
	return l, nil
}
