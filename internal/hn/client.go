package hn

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/creitz/hn-audit/internal/domain"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public Hacker News Firebase API.
const DefaultBaseURL = "https://hacker-news.firebaseio.com/v0"

// Doer is the request surface of http.Client. Tests substitute it to
// intercept the transport without changing production wiring.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the live API. All expected failure classes on the item
// endpoint (bad status, timeout, malformed body) normalize to a nil item;
// only faults like an unbuildable request or a cancelled context surface as
// errors.
type Client struct {
	doer    Doer
	limiter *rate.Limiter
	baseURL string
}

// NewClient builds a live client. An empty baseURL selects the public API.
// rateEvery is the minimum interval between requests; zero or negative
// disables throttling.
func NewClient(baseURL string, fetchTimeout, rateEvery time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if fetchTimeout <= 0 {
		fetchTimeout = 10 * time.Second
	}
	return &Client{
		doer:    &http.Client{Timeout: fetchTimeout},
		limiter: rate.NewLimiter(rate.Every(rateEvery), 1),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// WithDoer swaps the underlying HTTP client and returns c for chaining.
func (c *Client) WithDoer(d Doer) *Client {
	c.doer = d
	return c
}

// TopStories fetches the top-stories listing: an ordered slice of up to 500
// story/job IDs. Unlike item fetches, a bad listing is an error; the whole
// run is meaningless without it.
func (c *Client) TopStories(ctx context.Context) ([]int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := c.baseURL + "/topstories.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build listing request: %w", err)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("top stories request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("top stories status: %d", resp.StatusCode)
	}

	// Decoding into []int rejects non-array payloads and non-integer
	// entries in one step.
	var ids []int
	if err := json.NewDecoder(resp.Body).Decode(&ids); err != nil {
		return nil, fmt.Errorf("top stories payload: %w", err)
	}
	return ids, nil
}

// Fetch retrieves one item. A (nil, nil) return covers every expected
// failure: non-2xx status, transport error or timeout, empty or null body,
// and anything that does not decode as an item object.
func (c *Client) Fetch(ctx context.Context, id int) (*domain.Item, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/item/%d.json", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build item request: %w", err)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		// Cancellation is the caller's decision, not API flakiness.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}

	return decodeItem(body), nil
}

// decodeItem turns a response body into an item, or nil when the body is
// empty, the service's "no such item" null, or not an item object at all.
func decodeItem(body []byte) *domain.Item {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil
	}

	var item domain.Item
	if err := json.Unmarshal(body, &item); err != nil {
		return nil
	}
	return &item
}
