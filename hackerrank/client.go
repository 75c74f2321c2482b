package hackerrank

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrNoSubmissions      = errors.New("no submissions found for challenge")
	ErrSubmissionNotFound = errors.New("submission not found")
)

// Track is the taxonomy bucket a challenge belongs to.
type Track struct {
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// Submission is a single submission record as reported by the
// per-challenge submission endpoints.
type Submission struct {
	ID         int64  `json:"id"`
	Status     string `json:"status"`
	StatusCode int    `json:"status_code"`
	Code       string `json:"code"`
	Language   string `json:"language"`
	Name       string `json:"name"`
	Track      Track  `json:"track"`
	CreatedAt  int64  `json:"created_at_epoch"`
}

// Client talks to the source site's REST API. Requests are
// authenticated with the browser session cookie forwarded by the shell.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cookie     string
}

func NewClient(baseURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL: baseURL,
	}
}

// SetSession stores the browser session cookie used on every request.
func (c *Client) SetSession(cookie string) {
	c.cookie = cookie
}

func (c *Client) get(ctx context.Context, url string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if c.cookie != "" {
		req.Header.Set("Cookie", c.cookie)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrSubmissionNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}

// LatestSubmission returns the most recent submission for the given
// challenge slug, including its code.
func (c *Client) LatestSubmission(ctx context.Context, slug string) (*Submission, error) {
	listURL := fmt.Sprintf(
		"%s/rest/contests/master/challenges/%s/submissions/?offset=0&limit=1",
		c.baseURL, slug)

	var listing struct {
		Models []Submission `json:"models"`
		Total  int          `json:"total"`
	}
	if err := c.get(ctx, listURL, &listing); err != nil {
		return nil, err
	}
	if len(listing.Models) == 0 {
		return nil, ErrNoSubmissions
	}

	// the listing omits the code field, fetch the full record
	return c.SubmissionDetail(ctx, slug, listing.Models[0].ID)
}

// SubmissionDetail returns the full submission record, code included.
func (c *Client) SubmissionDetail(ctx context.Context, slug string, id int64) (*Submission, error) {
	detailURL := fmt.Sprintf(
		"%s/rest/contests/master/challenges/%s/submissions/%d",
		c.baseURL, slug, id)

	var detail struct {
		Model Submission `json:"model"`
	}
	if err := c.get(ctx, detailURL, &detail); err != nil {
		return nil, err
	}
	return &detail.Model, nil
}
