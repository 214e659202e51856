// Package store owns the per-platform event pools: cached generation,
// periodic and on-demand refresh, and cursor-based page reads.
package store

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nammasuttu/feedsim/internal/event"
	"github.com/nammasuttu/feedsim/internal/platform"
)

const (
	// DefaultPoolSize is how many events each platform pool holds per
	// refresh cycle.
	DefaultPoolSize = 50

	// DefaultRefreshInterval is how often every pool is rebuilt.
	DefaultRefreshInterval = 5 * time.Minute
)

// Fetcher pulls events for the store-backed platform. *reports.Store
// satisfies it.
type Fetcher interface {
	FetchRecent(ctx context.Context, limit int) ([]event.Event, error)
}

// Store caches one event pool per platform. Pools are replaced wholesale
// on refresh and never mutated in place, so readers always see a complete
// pool. One mutex guards the pool and refresh-time maps; snapshot reads
// keep the hold time short.
type Store struct {
	mu        sync.Mutex
	pools     map[platform.Platform][]event.Event
	refreshed map[platform.Platform]time.Time

	reports  Fetcher
	poolSize int
	now      func() time.Time
	cron     *cron.Cron
}

// Option configures the Store.
type Option func(*Store)

// WithPoolSize overrides the per-platform pool size.
func WithPoolSize(n int) Option {
	return func(s *Store) { s.poolSize = n }
}

// WithClock injects the time source (useful for testing day rollover).
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a Store and synchronously populates every platform's pool.
// reports may be nil; the nammasuttu pool then stays empty.
func New(reports Fetcher, opts ...Option) *Store {
	s := &Store{
		pools:     make(map[platform.Platform][]event.Event),
		refreshed: make(map[platform.Platform]time.Time),
		reports:   reports,
		poolSize:  DefaultPoolSize,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Refresh()
	return s
}

// Refresh rebuilds the pools for the given platforms, or for all platforms
// when none are given. Each pool is built outside the lock and swapped in
// atomically, so concurrent readers see either the old or the new pool.
func (s *Store) Refresh(platforms ...platform.Platform) {
	if len(platforms) == 0 {
		platforms = platform.All()
	}
	for _, p := range platforms {
		pool := s.buildPool(p)

		s.mu.Lock()
		s.pools[p] = pool
		s.refreshed[p] = s.now()
		s.mu.Unlock()

		refreshesTotal.WithLabelValues(string(p)).Inc()
		poolSize.WithLabelValues(string(p)).Set(float64(len(pool)))
	}
}

func (s *Store) buildPool(p platform.Platform) []event.Event {
	if p == platform.Nammasuttu {
		if s.reports == nil {
			return nil
		}
		events, err := s.reports.FetchRecent(context.Background(), s.poolSize)
		if err != nil {
			// Degrade to an empty pool for this cycle; the next
			// refresh retries.
			log.Printf("[store] fetching reports for %s: %v", p, err)
			refreshFailures.WithLabelValues(string(p)).Inc()
			return nil
		}
		return events
	}
	return event.Generate(string(p), event.Day(s.now()), s.poolSize)
}

// Page returns one formatted page of the platform's pool.
//
// The cursor is a plain offset into the current pool; it is not stable
// across a refresh, since refresh replaces the pool wholesale. A cursor at
// or past the end of the pool yields an empty page and an absent next
// cursor, which callers read as end-of-feed.
func (s *Store) Page(p platform.Platform, limit, cursor int) ([]any, *int) {
	pool := s.snapshot(p)
	if len(pool) == 0 {
		// Cache miss: refresh just this platform and re-read.
		s.Refresh(p)
		pool = s.snapshot(p)
	}

	if cursor < 0 {
		cursor = 0
	}
	if limit < 0 {
		limit = 0
	}
	if cursor >= len(pool) {
		return []any{}, nil
	}

	end := cursor + limit
	if end > len(pool) {
		end = len(pool)
	}

	items := make([]any, 0, end-cursor)
	for _, e := range pool[cursor:end] {
		if post, ok := platform.Format(p, e); ok {
			items = append(items, post)
		}
	}
	pagesServed.WithLabelValues(string(p)).Inc()

	var next *int
	if end < len(pool) {
		next = &end
	}
	return items, next
}

// LastRefreshed reports when the platform's pool was last replaced.
func (s *Store) LastRefreshed(p platform.Platform) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.refreshed[p]
	return t, ok
}

// snapshot returns the current pool reference. Pools are immutable once
// published, so handing out the reference is safe.
func (s *Store) snapshot(p platform.Platform) []event.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pools[p]
}

// Start begins the periodic refresh loop. Calling Start twice is a no-op.
func (s *Store) Start(interval time.Duration) {
	if s.cron != nil {
		return
	}
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	s.cron = cron.New()
	if _, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		s.Refresh()
	}); err != nil {
		log.Printf("[store] scheduling refresh: %v", err)
		return
	}
	s.cron.Start()
	log.Printf("[store] periodic refresh every %s", interval)
}

// Close stops the periodic refresh loop and waits for an in-flight run.
func (s *Store) Close() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.cron = nil
}
