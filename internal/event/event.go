// Package event defines the canonical city event record shared by every
// platform feed, and the deterministic generator that populates mock pools.
//
// This package enables feedsim to:
// - Represent events in one platform-agnostic shape
// - Generate reproducible per-platform, per-day mock pools
// - Carry enrichment fields for store-backed events
package event

import "time"

// Event is the platform-agnostic record behind every feed item.
type Event struct {
	EventID     string    `json:"event_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
	Category    string    `json:"category"`

	// Enrichment fields, populated only for store-backed events.
	Media          string   `json:"media,omitempty"`
	TruthnessScore *float64 `json:"truthnessScore,omitempty"`
	SentimentRate  *float64 `json:"sentimentRate,omitempty"`
	Author         string   `json:"author,omitempty"`
	Source         string   `json:"source,omitempty"`
}

// Key identifies an event for batch-level dedup beyond the EventID.
type Key struct {
	Title    string
	Location string
	Category string
}

// Key returns the dedup key for the event.
func (e Event) Key() Key {
	return Key{Title: e.Title, Location: e.Location, Category: e.Category}
}
