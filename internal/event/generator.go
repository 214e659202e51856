package event

import (
	"fmt"
	"hash/fnv"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Fixed templates the generator draws from. Titles and descriptions are
// paired by index.
var titles = []string{
	"Food Festival in Town",
	"Heavy Traffic on Main Road",
	"Rainy Weather Expected",
	"Local Safety Drill Announced",
	"Cultural Dance Show Tonight",
	"Community Event at Park",
}

var descriptions = []string{
	"Come and enjoy delicious food from local vendors.",
	"Expect delays due to traffic congestion.",
	"Carry an umbrella, rain is likely today.",
	"Safety drill for all residents, please participate.",
	"Experience traditional dances and music.",
	"Join your neighbors for fun and games at the park.",
}

// places is the gazetteer of well-known Bangalore neighborhoods.
var places = []string{
	"MG Road", "Indiranagar", "Koramangala", "Whitefield", "Jayanagar",
	"Malleshwaram", "HSR Layout", "BTM Layout", "Electronic City", "Hebbal",
	"Banashankari", "Rajajinagar", "Basavanagudi", "Ulsoor", "Yelahanka",
	"Frazer Town", "Vijayanagar", "Richmond Town", "Shivajinagar",
	"Marathahalli", "KR Puram",
}

var categories = []string{
	"Event", "Traffic", "Weather", "Food", "Safety", "Culture",
}

// Approximate Bangalore bounding box.
const (
	latMin, latMax = 12.9, 13.1
	lonMin, lonMax = 77.5, 77.7
)

const city = "Bangalore"

// uniquenessRetryFactor bounds how many draws a batch may spend hunting
// for unique events before giving up and returning a short batch.
const uniquenessRetryFactor = 50

// Day returns the UTC day-of-month component of the generation seed, so
// mock pools roll over daily.
func Day(now time.Time) int {
	return now.UTC().Day()
}

// Seed derives the deterministic generation seed for a platform on a day.
func Seed(platform string, day int) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%s%d", platform, day)))
	return int64(h.Sum64())
}

// Generate produces up to count unique events for platform on the given
// UTC day-of-month. The same (platform, day) always yields the same batch.
// The rand source is local to the call, so concurrent generation and
// unrelated random use elsewhere in the process never interfere.
//
// Uniqueness is enforced on both the event ID and the (title, location,
// category) key. When the retry budget runs out, the batch is returned
// short rather than failing.
func Generate(platform string, day, count int) []Event {
	rng := rand.New(rand.NewSource(Seed(platform, day)))

	usedIDs := make(map[string]struct{}, count)
	usedKeys := make(map[Key]struct{}, count)
	events := make([]Event, 0, count)

	for tries := 0; len(events) < count && tries < count*uniquenessRetryFactor; tries++ {
		e := draw(rng)
		suffix := newID(rng)[:8]
		e.Title = fmt.Sprintf("%s %s", e.Title, suffix)
		e.Description = fmt.Sprintf("%s (ref: %s)", e.Description, suffix)

		if _, dup := usedIDs[e.EventID]; dup {
			continue
		}
		if _, dup := usedKeys[e.Key()]; dup {
			continue
		}
		usedIDs[e.EventID] = struct{}{}
		usedKeys[e.Key()] = struct{}{}
		events = append(events, e)
	}

	return dedupByID(events, count)
}

// draw builds one random base event from the fixed templates.
func draw(rng *rand.Rand) Event {
	idx := rng.Intn(len(titles))
	place := places[rng.Intn(len(places))]
	lat := round6(latMin + rng.Float64()*(latMax-latMin))
	lon := round6(lonMin + rng.Float64()*(lonMax-lonMin))

	return Event{
		EventID:     newID(rng),
		Title:       titles[idx],
		Description: fmt.Sprintf("%s This is happening at %s, %s.", descriptions[idx], place, city),
		Location:    fmt.Sprintf("%s, %s", place, city),
		Latitude:    &lat,
		Longitude:   &lon,
		Timestamp:   time.Now().UTC(),
		Category:    categories[rng.Intn(len(categories))],
	}
}

// newID draws a UUID from the batch-local source, keeping IDs reproducible
// for a fixed seed.
func newID(rng *rand.Rand) string {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		// rand.Rand never errors on Read; fall back just in case.
		return uuid.NewString()
	}
	return id.String()
}

// dedupByID keeps the first occurrence of each event ID and truncates the
// batch to count.
func dedupByID(events []Event, count int) []Event {
	seen := make(map[string]struct{}, len(events))
	unique := events[:0]
	for _, e := range events {
		if _, dup := seen[e.EventID]; dup {
			continue
		}
		seen[e.EventID] = struct{}{}
		unique = append(unique, e)
	}
	if len(unique) > count {
		unique = unique[:count]
	}
	return unique
}

func round6(f float64) float64 {
	return float64(int64(f*1e6+0.5)) / 1e6
}
