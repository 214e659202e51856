// Package forwarder rotates through the platform feeds and relays each
// page to the ingestion agent.
//
// This package enables feedsim to:
// - Poll every platform feed with its own resumable cursor
// - Extract the next cursor from each platform's envelope shape
// - Forward full envelopes to the agent endpoint
package forwarder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/nammasuttu/feedsim/internal/platform"
)

// HTTPClient interface for making HTTP requests (allows injection for
// testing).
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures the Forwarder.
type Option func(*Forwarder)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(f *Forwarder) { f.httpClient = httpClient }
}

// WithLimit sets the page size requested from the feed API.
func WithLimit(limit int) Option {
	return func(f *Forwarder) { f.limit = limit }
}

// WithDelay sets the pause between platform requests.
func WithDelay(d time.Duration) Option {
	return func(f *Forwarder) { f.delay = d }
}

// Forwarder holds one cursor per platform and walks them in rotation. A
// nil cursor means that platform's feed is exhausted and is skipped until
// Reset.
type Forwarder struct {
	feedURL    string
	agentURL   string
	limit      int
	delay      time.Duration
	httpClient HTTPClient

	mu      sync.Mutex
	cursors map[platform.Platform]*string
	cancel  context.CancelFunc
}

// New creates a Forwarder polling feedURL and posting to agentURL.
func New(feedURL, agentURL string, opts ...Option) *Forwarder {
	f := &Forwarder{
		feedURL:    feedURL,
		agentURL:   agentURL,
		limit:      2,
		delay:      10 * time.Second,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cursors:    make(map[platform.Platform]*string),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.Reset()
	return f
}

// Reset rewinds every platform cursor to the start of its feed.
func (f *Forwarder) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	start := "0"
	for _, p := range platform.All() {
		c := start
		f.cursors[p] = &c
	}
}

// Cursor returns the current cursor for a platform; nil means exhausted.
func (f *Forwarder) Cursor(p platform.Platform) *string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cursors[p]
}

// RunOnce performs a single rotation over all platforms: fetch one page
// each, advance cursors, and forward the envelopes. Per-platform failures
// are logged and skipped, never fatal.
func (f *Forwarder) RunOnce(ctx context.Context) error {
	for _, p := range platform.All() {
		if err := ctx.Err(); err != nil {
			return err
		}

		cursor := f.Cursor(p)
		if cursor == nil {
			log.Printf("[forwarder] %s exhausted, skipping", p)
			continue
		}

		body, next, err := f.fetchPage(ctx, p, *cursor)
		if err != nil {
			log.Printf("[forwarder] fetching %s: %v", p, err)
			continue
		}

		f.mu.Lock()
		f.cursors[p] = next
		f.mu.Unlock()

		if err := f.forward(ctx, body); err != nil {
			log.Printf("[forwarder] posting %s page to agent: %v", p, err)
		}
	}
	return ctx.Err()
}

// Run rotates until the context is canceled or Stop is called.
func (f *Forwarder) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	f.mu.Lock()
	f.cancel = cancel
	f.mu.Unlock()
	defer f.Stop()

	for {
		if err := f.RunOnce(ctx); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(f.delay):
		}
	}
}

// Stop cancels a running rotation loop. Safe to call when not running.
func (f *Forwarder) Stop() {
	f.mu.Lock()
	cancel := f.cancel
	f.cancel = nil
	f.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Running reports whether a rotation loop is active.
func (f *Forwarder) Running() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cancel != nil
}

// fetchPage GETs one page and pulls the platform-specific next cursor out
// of the envelope. The raw body is returned untouched so the agent sees
// exactly what the feed served.
func (f *Forwarder) fetchPage(ctx context.Context, p platform.Platform, cursor string) ([]byte, *string, error) {
	u := fmt.Sprintf("%s/api/%s?limit=%d&cursor=%s", f.feedURL, p, f.limit, url.QueryEscape(cursor))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, nil, fmt.Errorf("feed API returned status %d", resp.StatusCode)
	}

	next, err := nextCursor(p, body, cursor, f.limit)
	if err != nil {
		return nil, nil, err
	}
	return body, next, nil
}

// nextCursor extracts the follow-up cursor from a platform envelope. Each
// platform names it differently; eventbrite only reports has_more_items,
// so its cursor advances arithmetically.
func nextCursor(p platform.Platform, body []byte, cursor string, limit int) (*string, error) {
	var env struct {
		Data       json.RawMessage `json:"data"`
		Meta       struct {
			NextToken *string `json:"next_token"`
		} `json:"meta"`
		Paging struct {
			Next *string `json:"next"`
		} `json:"paging"`
		Pagination struct {
			HasMoreItems bool `json:"has_more_items"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to parse %s envelope: %w", p, err)
	}

	switch p {
	case platform.Reddit:
		var listing struct {
			After *string `json:"after"`
		}
		if err := json.Unmarshal(env.Data, &listing); err != nil {
			return nil, fmt.Errorf("failed to parse reddit listing: %w", err)
		}
		return listing.After, nil
	case platform.Twitter:
		return env.Meta.NextToken, nil
	case platform.Instagram, platform.Nammasuttu:
		return env.Paging.Next, nil
	case platform.Eventbrite:
		if !env.Pagination.HasMoreItems {
			return nil, nil
		}
		current, err := strconv.Atoi(cursor)
		if err != nil {
			current = 0
		}
		next := strconv.Itoa(current + limit)
		return &next, nil
	default:
		return nil, fmt.Errorf("no cursor rule for platform %s", p)
	}
}

// forward posts a feed envelope to the agent endpoint.
func (f *Forwarder) forward(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.agentURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("agent returned status %d", resp.StatusCode)
	}
	return nil
}
