// Package agent is the boundary to the ingestion analysis agent. The real
// extraction is a black box behind the Extractor and Analyzer interfaces;
// the receiver here does the envelope plumbing: accept a forwarded feed
// payload, flatten it to its post list, extract structured facts, and
// persist them.
package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nammasuttu/feedsim/internal/event"
)

// Fact is the structured result extracted from one post.
type Fact struct {
	Location    string
	Description string
	StartTime   time.Time
	Category    string
	MediaURL    string
}

// Extractor turns a free-form post into a Fact.
type Extractor interface {
	Extract(post map[string]any) (Fact, error)
}

// Analyzer summarizes a media attachment by URL.
type Analyzer interface {
	Analyze(ctx context.Context, mediaURL string) (string, error)
}

// Writer persists extracted facts. *reports.Store satisfies it.
type Writer interface {
	Insert(ctx context.Context, e event.Event) error
}

// ErrNoContent means the post carried nothing extractable.
var ErrNoContent = errors.New("post has no extractable content")

// KeywordExtractor is a deterministic stand-in for the LLM extraction
// agent. It knows the field spellings of every platform envelope and pulls
// location, description, start time, and media URL out of whichever are
// present.
type KeywordExtractor struct{}

// Extract implements Extractor.
func (KeywordExtractor) Extract(post map[string]any) (Fact, error) {
	// Reddit posts travel wrapped in a data object.
	if data, ok := post["data"].(map[string]any); ok {
		post = data
	}

	fact := Fact{
		Description: extractDescription(post),
		Location:    extractLocation(post),
		StartTime:   extractStartTime(post),
		Category:    extractCategory(post),
		MediaURL:    firstString(post, "media_url", "media"),
	}
	if fact.Description == "" && fact.Location == "" {
		return Fact{}, ErrNoContent
	}
	return fact, nil
}

func extractDescription(post map[string]any) string {
	if text := firstString(post, "text", "selftext", "caption"); text != "" {
		return text
	}
	// Eventbrite nests description.text; nammasuttu uses plain fields.
	desc := firstString(post, "description")
	if desc == "" {
		desc = nestedString(post, "description", "text")
	}
	title := firstString(post, "title")
	if title == "" {
		title = nestedString(post, "name", "text")
	}
	switch {
	case desc != "" && title != "":
		return fmt.Sprintf("%s: %s", title, desc)
	case desc != "":
		return desc
	default:
		return title
	}
}

func extractLocation(post map[string]any) string {
	if loc := nestedString(post, "geo", "place_name"); loc != "" {
		return loc
	}
	if loc := nestedString(post, "location", "name"); loc != "" {
		return loc
	}
	if venue, ok := post["venue"].(map[string]any); ok {
		if loc := nestedString(venue, "address", "localized_address_display"); loc != "" {
			return loc
		}
	}
	return firstString(post, "location")
}

func extractStartTime(post map[string]any) time.Time {
	for _, key := range []string{"created_at", "timestamp"} {
		if raw := firstString(post, key); raw != "" {
			if t, err := time.Parse(time.RFC3339, raw); err == nil {
				return t
			}
		}
	}
	if local := nestedString(post, "start", "local"); local != "" {
		if t, err := time.Parse(time.RFC3339, local); err == nil {
			return t
		}
	}
	if epoch, ok := post["created_utc"].(float64); ok && epoch > 0 {
		return time.Unix(int64(epoch), 0).UTC()
	}
	return time.Time{}
}

func extractCategory(post map[string]any) string {
	if cat := firstString(post, "category"); cat != "" {
		return cat
	}
	// Instagram smuggles the category in the caption hashtag.
	if caption := firstString(post, "caption"); caption != "" {
		if idx := strings.LastIndex(caption, "#"); idx >= 0 && idx+1 < len(caption) {
			return strings.TrimSpace(caption[idx+1:])
		}
	}
	return ""
}

// firstString returns the first of the named keys holding a non-empty
// string.
func firstString(post map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := post[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func nestedString(post map[string]any, outer, inner string) string {
	obj, ok := post[outer].(map[string]any)
	if !ok {
		return ""
	}
	s, _ := obj[inner].(string)
	return s
}
