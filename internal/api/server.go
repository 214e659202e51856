// Package api serves the paginated platform feeds over HTTP.
package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nammasuttu/feedsim/internal/platform"
	"github.com/nammasuttu/feedsim/internal/store"
)

// DefaultPageLimit applies when the limit query parameter is missing.
const DefaultPageLimit = 20

// Server exposes the synced event store as platform-shaped feeds.
type Server struct {
	store *store.Store
	mux   *http.ServeMux
}

// NewServer wires the feed routes around the store.
func NewServer(st *store.Store) *Server {
	s := &Server{store: st, mux: http.NewServeMux()}
	s.mux.HandleFunc("/", s.handleRoot)
	s.mux.HandleFunc("/api/", s.handleFeed)
	s.mux.Handle("/metrics", promhttp.Handler())
	return s
}

// Handler returns the root handler for ListenAndServe.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, statusResponse{Message: "feedsim backend is running. See /api/{platform}"})
}

// handleFeed serves GET /api/{platform}?limit=N&cursor=C.
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	p := platform.Platform(strings.TrimPrefix(r.URL.Path, "/api/"))
	if !platform.Supported(p) {
		writeJSON(w, errorResponse{Error: "Unsupported platform"})
		return
	}

	limit := intQuery(r, "limit", DefaultPageLimit)
	// A non-numeric cursor means start from the beginning, not an error.
	cursor := intQuery(r, "cursor", 0)

	items, next := s.store.Page(p, limit, cursor)
	writeJSON(w, envelope(p, items, next, limit, cursor))
}

// envelope wraps a page in the platform's response shape.
func envelope(p platform.Platform, items []any, next *int, limit, cursor int) any {
	switch p {
	case platform.Twitter:
		return TwitterFeed{
			Data: items,
			Meta: TwitterMeta{ResultCount: len(items), NextToken: cursorString(next)},
		}
	case platform.Reddit:
		return RedditFeed{Data: RedditListing{Children: items, After: cursorString(next)}}
	case platform.Instagram:
		return InstagramFeed{Data: items, Paging: Paging{Next: cursorString(next)}}
	case platform.Eventbrite:
		pageNumber := 1
		if limit > 0 {
			pageNumber = cursor/limit + 1
		}
		return EventbriteFeed{
			Events: items,
			Pagination: EventbritePagination{
				PageNumber:   pageNumber,
				PageSize:     limit,
				HasMoreItems: next != nil,
			},
		}
	default: // nammasuttu
		return ReportsFeed{Reports: items, Paging: Paging{Next: cursorString(next)}}
	}
}

func cursorString(next *int) *string {
	if next == nil {
		return nil
	}
	s := strconv.Itoa(*next)
	return &s
}

func intQuery(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[api] encoding response: %v", err)
	}
}

// ListenAndServe runs the feed server until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("[api] feed server listening on %s", addr)
	if err := http.ListenAndServe(addr, s.mux); err != nil {
		return fmt.Errorf("feed server: %w", err)
	}
	return nil
}
