// Package platform renders canonical events into each platform's wire
// shape.
//
// This package enables feedsim to:
// - Enumerate the supported mock platforms
// - Format a canonical event into a platform-specific envelope
// - Derive an illustrative media URL from event text
package platform

// Platform identifies one of the simulated feed sources.
type Platform string

const (
	Twitter    Platform = "twitter"
	Reddit     Platform = "reddit"
	Instagram  Platform = "instagram"
	Eventbrite Platform = "eventbrite"
	// Nammasuttu is the distinguished store-backed city platform; its
	// events come from the reports table rather than the mock generator.
	Nammasuttu Platform = "nammasuttu"
)

// All returns every supported platform, in rotation order.
func All() []Platform {
	return []Platform{Twitter, Reddit, Instagram, Eventbrite, Nammasuttu}
}

// Supported reports whether p is a platform the feed service simulates.
func Supported(p Platform) bool {
	switch p {
	case Twitter, Reddit, Instagram, Eventbrite, Nammasuttu:
		return true
	}
	return false
}
