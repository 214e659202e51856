package platform

// Per-platform post shapes. Each platform renames and nests the canonical
// fields differently; these types pin the exact JSON contract.

// TwitterPost is the twitter wire shape: flat record with a composed text
// field and nested geo/user objects.
type TwitterPost struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	CreatedAt string      `json:"created_at"`
	Geo       TwitterGeo  `json:"geo"`
	User      TwitterUser `json:"user"`
}

type TwitterGeo struct {
	Coordinates TwitterCoordinates `json:"coordinates"`
	PlaceName   string             `json:"place_name"`
}

type TwitterCoordinates struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type TwitterUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// RedditPost wraps everything in a single data object, Reddit listing
// style.
type RedditPost struct {
	Data RedditPostData `json:"data"`
}

type RedditPostData struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Selftext   string    `json:"selftext"`
	CreatedUTC int64     `json:"created_utc"`
	Subreddit  string    `json:"subreddit"`
	Author     string    `json:"author"`
	Geo        RedditGeo `json:"geo"`
}

type RedditGeo struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// InstagramPost is the instagram wire shape: caption with hashtag, derived
// media URL, nested location.
type InstagramPost struct {
	ID        string            `json:"id"`
	Caption   string            `json:"caption"`
	MediaURL  string            `json:"media_url"`
	Timestamp string            `json:"timestamp"`
	Location  InstagramLocation `json:"location"`
	User      InstagramUser     `json:"user"`
}

type InstagramLocation struct {
	Name      string   `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type InstagramUser struct {
	Username string `json:"username"`
}

// EventbritePost nests title, description, start time, and venue the way
// the Eventbrite API does.
type EventbritePost struct {
	ID          string          `json:"id"`
	Name        EventbriteText  `json:"name"`
	Description EventbriteText  `json:"description"`
	Start       EventbriteStart `json:"start"`
	Venue       EventbriteVenue `json:"venue"`
}

type EventbriteText struct {
	Text string `json:"text"`
}

type EventbriteStart struct {
	Local    string `json:"local"`
	Timezone string `json:"timezone"`
}

type EventbriteVenue struct {
	Address EventbriteAddress `json:"address"`
}

type EventbriteAddress struct {
	LocalizedAddressDisplay string   `json:"localized_address_display"`
	Latitude                *float64 `json:"latitude"`
	Longitude               *float64 `json:"longitude"`
}

// Report is the nammasuttu shape: a near pass-through of the canonical
// fields plus the store-backed enrichment fields.
type Report struct {
	ID             string   `json:"id"`
	Category       string   `json:"category"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Location       string   `json:"location"`
	Timestamp      string   `json:"timestamp"`
	Latitude       *float64 `json:"latitude"`
	Longitude      *float64 `json:"longitude"`
	Media          string   `json:"media,omitempty"`
	TruthnessScore *float64 `json:"truthnessScore,omitempty"`
	SentimentRate  *float64 `json:"sentimentRate,omitempty"`
	Author         string   `json:"author,omitempty"`
	Source         string   `json:"source,omitempty"`
}
