// Package leaderboard talks to the remote depth ranking service.
// Submissions are fire-and-forget; the ranked list is cached for a TTL.
package leaderboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/PatrikSjolin/hollowheart/internal/platform/logger"
)

const topKey = "top"

// Entry is one ranked player.
type Entry struct {
	Name  string `json:"name"`
	Depth int    `json:"depth"`
}

// Client submits record depths and fetches the ranking. A Client with an
// empty base URL is disabled: Submit does nothing and Top returns nil.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *expirable.LRU[string, []Entry]
	logger     *logger.Logger

	inflight sync.WaitGroup
}

// NewClient creates a leaderboard client for baseURL.
func NewClient(baseURL string, ttl, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		cache:      expirable.NewLRU[string, []Entry](1, nil, ttl),
		logger:     log,
	}
}

// Enabled reports whether a service URL is configured.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// Submit posts a record depth in the background. Failures are logged.
func (c *Client) Submit(name string, depth int) {
	if !c.Enabled() {
		return
	}
	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.httpClient.Timeout)
		defer cancel()
		if err := c.post(ctx, Entry{Name: name, Depth: depth}); err != nil {
			c.logger.Warn(fmt.Sprintf("leaderboard submit %s@%d: %v", name, depth, err))
			return
		}
		// A new record makes the cached ranking stale.
		c.cache.Remove(topKey)
	}()
}

// Wait blocks until pending submissions finish.
func (c *Client) Wait() {
	c.inflight.Wait()
}

func (c *Client) post(ctx context.Context, e Entry) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("failed to marshal entry: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/scores", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("leaderboard error (status %d)", resp.StatusCode)
	}
	return nil
}

// Top returns the ranking, deepest first, from cache when fresh.
func (c *Client) Top(ctx context.Context) ([]Entry, error) {
	if !c.Enabled() {
		return nil, nil
	}
	if cached, ok := c.cache.Get(topKey); ok {
		return cached, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/scores", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("leaderboard error (status %d)", resp.StatusCode)
	}

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode ranking: %w", err)
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Depth > entries[j].Depth })

	c.cache.Add(topKey, entries)
	return entries, nil
}

// Handler serves the cached ranking as JSON. Fetch failures yield an empty
// list so clients never see the remote service's errors.
func (c *Client) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := c.Top(r.Context())
		if err != nil {
			c.logger.Warn(fmt.Sprintf("leaderboard fetch: %v", err))
		}
		if entries == nil {
			entries = []Entry{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entries)
	}
}
