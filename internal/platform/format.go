package platform

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/nammasuttu/feedsim/internal/event"
)

const (
	redditSubreddit = "bangalore"
	eventbriteTZ    = "Asia/Kolkata"
)

// Format renders a canonical event into the platform's wire shape. The
// second return is false when the platform is unknown or the event fails
// the platform's mandatory-field policy; such events carry no data for the
// caller and must be dropped, not surfaced as errors.
func Format(p Platform, e event.Event) (any, bool) {
	switch p {
	case Twitter:
		return formatTwitter(e), true
	case Reddit:
		return formatReddit(e), true
	case Instagram:
		return formatInstagram(e), true
	case Eventbrite:
		return formatEventbrite(e), true
	case Nammasuttu:
		r := formatReport(e)
		if r == nil {
			return nil, false
		}
		return r, true
	default:
		return nil, false
	}
}

func formatTwitter(e event.Event) *TwitterPost {
	return &TwitterPost{
		ID:        e.EventID,
		Text:      fmt.Sprintf("%s: %s", e.Title, e.Description),
		CreatedAt: formatTime(e.Timestamp),
		Geo: TwitterGeo{
			Coordinates: TwitterCoordinates{Latitude: e.Latitude, Longitude: e.Longitude},
			PlaceName:   e.Location,
		},
		User: TwitterUser{
			ID:       "user_" + idSuffix(e.EventID, 4),
			Username: fmt.Sprintf("user%d", 1000+rand.Intn(9000)),
		},
	}
}

func formatReddit(e event.Event) *RedditPost {
	return &RedditPost{Data: RedditPostData{
		ID:         e.EventID,
		Title:      e.Title,
		Selftext:   e.Description,
		CreatedUTC: time.Now().Unix(),
		Subreddit:  redditSubreddit,
		Author:     "user_" + idSuffix(e.EventID, 3),
		Geo:        RedditGeo{Lat: e.Latitude, Lng: e.Longitude},
	}}
}

func formatInstagram(e event.Event) *InstagramPost {
	return &InstagramPost{
		ID:        e.EventID,
		Caption:   fmt.Sprintf("%s #%s", e.Title, strings.ToLower(e.Category)),
		MediaURL:  MediaURL(e),
		Timestamp: formatTime(e.Timestamp),
		Location: InstagramLocation{
			Name:      e.Location,
			Latitude:  e.Latitude,
			Longitude: e.Longitude,
		},
		User: InstagramUser{Username: "insta_" + idSuffix(e.EventID, 4)},
	}
}

func formatEventbrite(e event.Event) *EventbritePost {
	return &EventbritePost{
		ID:          e.EventID,
		Name:        EventbriteText{Text: e.Title},
		Description: EventbriteText{Text: e.Description},
		Start:       EventbriteStart{Local: formatTime(e.Timestamp), Timezone: eventbriteTZ},
		Venue: EventbriteVenue{Address: EventbriteAddress{
			LocalizedAddressDisplay: e.Location,
			Latitude:                e.Latitude,
			Longitude:               e.Longitude,
		}},
	}
}

// formatReport returns nil when the event misses a mandatory field.
func formatReport(e event.Event) *Report {
	if e.EventID == "" || e.Title == "" {
		return nil
	}
	return &Report{
		ID:             e.EventID,
		Category:       e.Category,
		Title:          e.Title,
		Description:    e.Description,
		Location:       e.Location,
		Timestamp:      formatTime(e.Timestamp),
		Latitude:       e.Latitude,
		Longitude:      e.Longitude,
		Media:          e.Media,
		TruthnessScore: e.TruthnessScore,
		SentimentRate:  e.SentimentRate,
		Author:         e.Author,
		Source:         e.Source,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

// idSuffix returns the last n characters of an event id, the seed for the
// synthetic per-platform usernames.
func idSuffix(id string, n int) string {
	if len(id) <= n {
		return id
	}
	return id[len(id)-n:]
}
