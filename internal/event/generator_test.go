package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_DeterministicForSamePlatformAndDay(t *testing.T) {
	a := Generate("twitter", 12, 50)
	b := Generate("twitter", 12, 50)

	require.Equal(t, len(a), len(b))
	for i := range a {
		assert.Equal(t, a[i].EventID, b[i].EventID)
		assert.Equal(t, a[i].Key(), b[i].Key())
		assert.Equal(t, a[i].Latitude, b[i].Latitude)
		assert.Equal(t, a[i].Longitude, b[i].Longitude)
	}
}

func TestGenerate_DifferentSeedsProduceDifferentBatches(t *testing.T) {
	a := Generate("twitter", 12, 50)
	b := Generate("reddit", 12, 50)
	c := Generate("twitter", 13, 50)

	require.NotEmpty(t, a)
	assert.NotEqual(t, a[0].EventID, b[0].EventID)
	assert.NotEqual(t, a[0].EventID, c[0].EventID)
}

func TestGenerate_UniqueIDsAndKeys(t *testing.T) {
	events := Generate("instagram", 3, 50)

	ids := make(map[string]struct{})
	keys := make(map[Key]struct{})
	for _, e := range events {
		_, dupID := ids[e.EventID]
		require.False(t, dupID, "duplicate event id %s", e.EventID)
		ids[e.EventID] = struct{}{}

		_, dupKey := keys[e.Key()]
		require.False(t, dupKey, "duplicate key %+v", e.Key())
		keys[e.Key()] = struct{}{}
	}
}

func TestGenerate_NeverExceedsRequestedCount(t *testing.T) {
	for _, count := range []int{0, 1, 7, 50} {
		events := Generate("eventbrite", 5, count)
		assert.LessOrEqual(t, len(events), count)
	}
}

func TestGenerate_EventsAreWellFormed(t *testing.T) {
	events := Generate("reddit", 20, 10)
	require.NotEmpty(t, events)

	for _, e := range events {
		assert.NotEmpty(t, e.EventID)
		assert.NotEmpty(t, e.Title)
		assert.Contains(t, e.Description, "This is happening at")
		assert.Contains(t, e.Location, ", Bangalore")
		require.NotNil(t, e.Latitude)
		require.NotNil(t, e.Longitude)
		assert.GreaterOrEqual(t, *e.Latitude, latMin)
		assert.LessOrEqual(t, *e.Latitude, latMax)
		assert.GreaterOrEqual(t, *e.Longitude, lonMin)
		assert.LessOrEqual(t, *e.Longitude, lonMax)
		assert.Contains(t, categories, e.Category)
		assert.False(t, e.Timestamp.IsZero())
	}
}

func TestGenerate_DoesNotDisturbUnrelatedRandomness(t *testing.T) {
	// Two interleaved generations must not change each other's output.
	a1 := Generate("twitter", 1, 10)
	_ = Generate("reddit", 1, 10)
	a2 := Generate("twitter", 1, 10)

	require.Equal(t, len(a1), len(a2))
	for i := range a1 {
		assert.Equal(t, a1[i].EventID, a2[i].EventID)
	}
}

func TestDay_UsesUTC(t *testing.T) {
	// 23:30 in UTC-5 is already the next day in UTC.
	loc := time.FixedZone("UTC-5", -5*60*60)
	now := time.Date(2025, 6, 10, 23, 30, 0, 0, loc)
	assert.Equal(t, 11, Day(now))
}
