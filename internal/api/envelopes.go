package api

// Per-platform response envelopes. Each platform names its item list and
// its pagination block differently; the next cursor always travels as a
// string.

// Paging is the paging block shared by instagram and nammasuttu.
type Paging struct {
	Next *string `json:"next"`
}

// TwitterFeed mirrors the Twitter v2 list shape.
type TwitterFeed struct {
	Data []any       `json:"data"`
	Meta TwitterMeta `json:"meta"`
}

type TwitterMeta struct {
	ResultCount int     `json:"result_count"`
	NextToken   *string `json:"next_token"`
}

// RedditFeed wraps children in a listing object.
type RedditFeed struct {
	Data RedditListing `json:"data"`
}

type RedditListing struct {
	Children []any   `json:"children"`
	After    *string `json:"after"`
}

// InstagramFeed is a flat data list with a paging block.
type InstagramFeed struct {
	Data   []any  `json:"data"`
	Paging Paging `json:"paging"`
}

// EventbriteFeed reports pagination as page numbers rather than cursors.
type EventbriteFeed struct {
	Events     []any                `json:"events"`
	Pagination EventbritePagination `json:"pagination"`
}

type EventbritePagination struct {
	PageNumber   int  `json:"page_number"`
	PageSize     int  `json:"page_size"`
	HasMoreItems bool `json:"has_more_items"`
}

// ReportsFeed is the nammasuttu envelope.
type ReportsFeed struct {
	Reports []any  `json:"reports"`
	Paging  Paging `json:"paging"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type statusResponse struct {
	Message string `json:"message"`
}
