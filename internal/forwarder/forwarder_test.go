// Package forwarder tests document the rotation behavior.
//
// Test requirements (this file serves as documentation):
// - One rotation fetches a page from every platform and posts it onward
// - Cursors advance via each platform's envelope shape
// - Exhausted platforms are skipped
// - Feed failures are absorbed, not fatal
package forwarder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/nammasuttu/feedsim/internal/api"
	"github.com/nammasuttu/feedsim/internal/platform"
	"github.com/nammasuttu/feedsim/internal/store"
)

type capturedPost struct {
	body map[string]any
}

// agentRecorder collects envelopes posted to /agent.
type agentRecorder struct {
	mu    sync.Mutex
	posts []capturedPost
}

func (a *agentRecorder) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		a.mu.Lock()
		a.posts = append(a.posts, capturedPost{body: body})
		a.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"received"}`))
	})
}

func (a *agentRecorder) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.posts)
}

func newFixture(t *testing.T) (*httptest.Server, *agentRecorder, *httptest.Server) {
	t.Helper()
	st := store.New(nil, store.WithPoolSize(4))
	feed := httptest.NewServer(api.NewServer(st).Handler())
	t.Cleanup(feed.Close)

	rec := &agentRecorder{}
	agent := httptest.NewServer(rec.handler())
	t.Cleanup(agent.Close)

	return feed, rec, agent
}

func TestRunOnce_ForwardsEveryPlatformPage(t *testing.T) {
	feed, rec, agent := newFixture(t)
	f := New(feed.URL, agent.URL, WithLimit(2))

	if err := f.RunOnce(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Five platforms, one envelope each.
	if rec.count() != 5 {
		t.Fatalf("expected 5 forwarded envelopes, got %d", rec.count())
	}
}

func TestRunOnce_AdvancesCursorsPerPlatformShape(t *testing.T) {
	feed, _, agent := newFixture(t)
	f := New(feed.URL, agent.URL, WithLimit(2))

	if err := f.RunOnce(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Pools hold 4 mock events; after one page of 2, every mock platform
	// should sit at cursor 2.
	for _, p := range []platform.Platform{platform.Twitter, platform.Reddit, platform.Instagram, platform.Eventbrite} {
		cursor := f.Cursor(p)
		if cursor == nil {
			t.Errorf("%s: cursor should not be exhausted yet", p)
			continue
		}
		if *cursor != "2" {
			t.Errorf("%s: expected cursor 2, got %s", p, *cursor)
		}
	}

	// Nammasuttu has no backing store here, so its empty feed ends
	// immediately.
	if f.Cursor(platform.Nammasuttu) != nil {
		t.Error("nammasuttu should be exhausted with no backing store")
	}
}

func TestRunOnce_ExhaustsAndSkips(t *testing.T) {
	feed, rec, agent := newFixture(t)
	f := New(feed.URL, agent.URL, WithLimit(2))

	ctx := context.Background()
	// 4 events at limit 2: two rotations drain every mock platform.
	for i := 0; i < 2; i++ {
		if err := f.RunOnce(ctx); err != nil {
			t.Fatalf("rotation %d: %v", i, err)
		}
	}
	for _, p := range platform.All() {
		if f.Cursor(p) != nil {
			t.Errorf("%s should be exhausted after two rotations", p)
		}
	}

	before := rec.count()
	if err := f.RunOnce(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.count() != before {
		t.Error("exhausted platforms should be skipped, not re-fetched")
	}
}

func TestRunOnce_FeedFailureIsAbsorbed(t *testing.T) {
	rec := &agentRecorder{}
	agent := httptest.NewServer(rec.handler())
	defer agent.Close()

	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer down.Close()

	f := New(down.URL, agent.URL)
	if err := f.RunOnce(context.Background()); err != nil {
		t.Fatalf("feed failures must not be fatal: %v", err)
	}
	if rec.count() != 0 {
		t.Errorf("no envelopes should be forwarded on failure, got %d", rec.count())
	}

	// Cursors stay put so the next rotation retries.
	for _, p := range platform.All() {
		if c := f.Cursor(p); c == nil || *c != "0" {
			t.Errorf("%s cursor should remain at start after failure", p)
		}
	}
}

func TestReset_RewindsCursors(t *testing.T) {
	feed, _, agent := newFixture(t)
	f := New(feed.URL, agent.URL, WithLimit(4))

	if err := f.RunOnce(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Cursor(platform.Twitter) != nil {
		t.Fatal("twitter should be exhausted after reading the whole pool")
	}

	f.Reset()
	if c := f.Cursor(platform.Twitter); c == nil || *c != "0" {
		t.Error("reset should rewind cursors to 0")
	}
}
